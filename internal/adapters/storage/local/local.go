package local

import (
	"context"
	"errors"
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store implements the object store contract over the local
// filesystem. It backs the legacy local storage tier; signed URLs are
// not supported and downloads go through the application instead.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a Store rooted at cfg.Root
func NewStore(cfg config.LocalStoreConfig, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store root: %w", err)
	}
	return &Store{root: cfg.Root, logger: logger}, nil
}

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", domain.NewStorageError("resolve", key, errors.New("key escapes store root"))
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes one object, creating parent directories as needed.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string) (*domain.PutResult, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, domain.NewStorageError("put", key, err)
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, domain.NewStorageError("put", key, err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return nil, domain.NewStorageError("put", key, err)
	}

	return &domain.PutResult{Key: key, SizeBytes: written}, nil
}

// Get opens one object for reading
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, domain.NewStorageError("get", key, err)
	}
	return f, nil
}

// Delete removes one object. A missing file is success.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return domain.NewStorageError("delete", key, err)
	}

	s.logger.Info("local file deleted", slog.String("key", key))
	return nil
}

// Exists checks file presence
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, domain.NewStorageError("stat", key, err)
	}
	return true, nil
}

// List walks the tree under prefix
func (s *Store) List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error) {
	var objects []domain.ObjectInfo

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, domain.ObjectInfo{
			Key:          key,
			SizeBytes:    info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, domain.NewStorageError("list", prefix, err)
	}

	return objects, nil
}

// SignedURL is not supported by the local tier; callers serve local
// files through the application download path instead.
func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, *time.Time, error) {
	return "", nil, domain.ErrSignedURLUnsupported
}
