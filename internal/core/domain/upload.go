package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadSessionStatus represents the status of an upload session
type UploadSessionStatus string

const (
	UploadSessionStatusOpen       UploadSessionStatus = "open"
	UploadSessionStatusAssembling UploadSessionStatus = "assembling"
	UploadSessionStatusCompleted  UploadSessionStatus = "completed"
	UploadSessionStatusAborted    UploadSessionStatus = "aborted"
)

// UploadKind distinguishes application-assembled chunk uploads from
// store-native multipart uploads.
type UploadKind string

const (
	UploadKindChunked   UploadKind = "chunked"
	UploadKindMultipart UploadKind = "multipart"
)

// UploadSession tracks one in-progress chunked or multipart upload.
type UploadSession struct {
	ID               uuid.UUID
	FileID           uuid.UUID
	TransferID       uuid.UUID
	Kind             UploadKind
	ProviderUploadID string
	FileName         string
	MimeType         string
	SizeBytes        int64
	ExpectedParts    int
	PartSize         int64
	StorageKey       string
	ChunkPrefix      string
	ExpiresAt        time.Time
	Status           UploadSessionStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UploadPart represents an upload part (chunk)
type UploadPart struct {
	PartNumber     int
	ETag           string
	ChecksumSHA256 string
	PresignedURL   string
	ContentLength  int64
	Headers        map[string]string
	ExpiresAt      *time.Time
}

// ChunkAck acknowledges one stored chunk. Descriptor is set only by
// the call that completed the set and triggered reconstruction.
type ChunkAck struct {
	ChunkReceived bool
	FileCompleted bool
	Descriptor    *FileDescriptor
}

// FileDescriptor describes a finalized object in storage, returned
// once an upload is reconstructed or a multipart upload completes.
type FileDescriptor struct {
	FileID       uuid.UUID
	TransferID   uuid.UUID
	OriginalName string
	MimeType     string
	StorageKey   string
	StorageType  StorageType
	SizeBytes    int64
	ETag         string
}
