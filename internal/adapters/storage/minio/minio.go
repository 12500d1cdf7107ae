package minio

import (
	"context"
	"errors"
	"file-drop/internal/config"
	"file-drop/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	core := minio.Core{Client: client}
	return &Adapter{client: client, config: cfg, core: &core, logger: logger}, nil
}

// Put stores one object under key. size may be -1 when unknown; the
// client then falls back to its internal streaming upload.
func (a *Adapter) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string) (*domain.PutResult, error) {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	}

	info, err := a.client.PutObject(ctx, a.config.BucketName, key, r, size, opts)
	if err != nil {
		return nil, domain.NewStorageError("put", key, err)
	}

	return &domain.PutResult{
		Key:       key,
		SizeBytes: info.Size,
		ETag:      strings.Trim(info.ETag, "\""),
	}, nil
}

// Get retrieves an object's bytes as a stream
func (a *Adapter) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, domain.NewStorageError("get", key, err)
	}
	return object, nil
}

// Delete removes an object. Deleting a missing key is success: the
// caller cannot distinguish "already gone" from "never existed".
func (a *Adapter) Delete(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return nil
		}
		return domain.NewStorageError("delete", key, err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// Exists checks object presence by stat
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return false, nil
		}
		return false, domain.NewStorageError("stat", key, err)
	}
	return true, nil
}

// List enumerates objects under prefix
func (a *Adapter) List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}

	var objects []domain.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.config.BucketName, opts) {
		if obj.Err != nil {
			return nil, domain.NewStorageError("list", prefix, obj.Err)
		}
		objects = append(objects, domain.ObjectInfo{
			Key:          obj.Key,
			SizeBytes:    obj.Size,
			ETag:         strings.Trim(obj.ETag, "\""),
			LastModified: obj.LastModified,
		})
	}

	return objects, nil
}

// SignedURL generates a short-lived presigned GET URL for key
func (a *Adapter) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, ttl, nil)
	if err != nil {
		return "", nil, domain.NewStorageError("presign", key, err)
	}

	expiresAt := time.Now().Add(ttl)

	return presignedURL.String(), &expiresAt, nil
}

// InitMultipartUpload inits a multi part upload
func (a *Adapter) InitMultipartUpload(ctx context.Context, key string, contentType string) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
	}
	uploadID, err := a.core.NewMultipartUpload(ctx, a.config.BucketName, key, opts)
	if err != nil {
		return "", domain.NewStorageError("init-multipart", key, err)
	}
	return uploadID, nil
}

// PresignedPartURL generates a presigned PUT url for one part
func (a *Adapter) PresignedPartURL(ctx context.Context, key string, partNumber int, uploadID string) (string, map[string]string, *time.Time, error) {
	reqParams := make(url.Values)
	reqParams.Set("partNumber", fmt.Sprintf("%d", partNumber))
	reqParams.Set("uploadId", uploadID)

	reqHeaders := make(http.Header)

	presignedURL, err := a.core.PresignHeader(ctx, http.MethodPut, a.config.BucketName, key, a.config.MultiPartPresignedDuration, reqParams, reqHeaders)
	if err != nil {
		return "", nil, nil, domain.NewStorageError("presign-part", key, err)
	}

	expiresAt := time.Now().Add(a.config.MultiPartPresignedDuration)
	return presignedURL.String(), a.headerToMap(reqHeaders), &expiresAt, nil
}

// ListParts lists uploaded parts with pagination
func (a *Adapter) ListParts(ctx context.Context, key string, uploadID string, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error) {
	if maxParts <= 0 || maxParts > 1000 {
		maxParts = 1000 //max size for minio
	}

	result, err := a.core.ListObjectParts(ctx, a.config.BucketName, key, uploadID, partNumberMarker, maxParts)
	if err != nil {
		return nil, 0, domain.NewStorageError("list-parts", key, err)
	}

	parts := make([]domain.UploadPart, 0, len(result.ObjectParts))
	for _, part := range result.ObjectParts {
		cleanETag := strings.Trim(part.ETag, "\"")
		parts = append(parts, domain.UploadPart{
			PartNumber:    part.PartNumber,
			ETag:          cleanETag,
			ContentLength: part.Size,
		})
	}

	return parts, result.NextPartNumberMarker, nil
}

// CompleteMultipartUpload marks the minio multipart as complete
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (*domain.PutResult, error) {
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].PartNumber < parts[j].PartNumber
	})

	completeParts := make([]minio.CompletePart, 0, len(parts))
	var size int64
	for _, part := range parts {
		cleanETag := strings.Trim(part.ETag, "\"")
		size += part.ContentLength

		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       cleanETag,
		})
	}

	opts := minio.PutObjectOptions{
		SendContentMd5: false,
	}

	info, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, key, uploadID, completeParts, opts)
	if err != nil {
		return nil, domain.NewStorageError("complete-multipart", key, err)
	}

	if info.Size > 0 {
		size = info.Size
	}

	return &domain.PutResult{
		Key:       key,
		SizeBytes: size,
		ETag:      strings.Trim(info.ETag, "\""),
	}, nil
}

// AbortMultipartUpload releases server-side reservations and any
// uploaded-but-uncommitted part data.
func (a *Adapter) AbortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	err := a.core.AbortMultipartUpload(ctx, a.config.BucketName, key, uploadID)
	if err != nil {
		return domain.NewStorageError("abort-multipart", key, err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("key", key),
		slog.String("uploadID", uploadID))

	return nil
}

func (a *Adapter) headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
