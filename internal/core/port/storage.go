package port

import (
	"context"
	"file-drop/internal/core/domain"
	"io"
	"time"
)

// ObjectStore is the storage contract shared by the remote object
// store and the local filesystem store. The chunk assembler and the
// lifecycle engine depend on this interface, never on a backend tag.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string) (*domain.PutResult, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is idempotent: deleting a missing key is success.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, *time.Time, error)
}

// MultipartStore exposes the store's native multipart protocol.
type MultipartStore interface {
	InitMultipartUpload(ctx context.Context, key string, contentType string) (string, error)
	PresignedPartURL(ctx context.Context, key string, partNumber int, uploadID string) (string, map[string]string, *time.Time, error)
	ListParts(ctx context.Context, key string, uploadID string, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error)
	CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (*domain.PutResult, error)
	AbortMultipartUpload(ctx context.Context, key string, uploadID string) error
}

// RemoteStore is what the upload pipeline needs from the remote
// backend: plain object operations plus native multipart.
type RemoteStore interface {
	ObjectStore
	MultipartStore
}
