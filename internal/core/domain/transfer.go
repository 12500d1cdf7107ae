package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus represents the lifecycle state of a transfer.
// Transitions are monotonic: active -> expired -> deleted, with
// active -> deleted allowed when no local files remain.
type TransferStatus string

const (
	TransferStatusActive  TransferStatus = "active"
	TransferStatusExpired TransferStatus = "expired"
	TransferStatusDeleted TransferStatus = "deleted"
)

// StorageType selects which deletion path the lifecycle engine uses.
type StorageType string

const (
	StorageTypeLocal  StorageType = "local"
	StorageTypeRemote StorageType = "remote"
)

// File is one finalized file belonging to exactly one transfer.
type File struct {
	ID           uuid.UUID
	TransferID   uuid.UUID
	OriginalName string
	DisplayName  string
	StorageKey   string
	StorageType  StorageType
	MimeType     string
	SizeBytes    int64
	CreatedAt    time.Time
}

// Transfer groups one or more finalized files behind a share link and
// access key pair. The file list is write-once: set at creation and
// never mutated afterwards.
type Transfer struct {
	ID                uuid.UUID
	Files             []File
	TotalSizeBytes    int64
	ShareLink         string
	AccessKey         string
	Status            TransferStatus
	ExpiryDate        time.Time
	IsPaymentRequired bool
	IsPaid            bool
	PaymentAmount     int64
	PaymentCurrency   string
	DownloadCount     int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsExpired reports whether the transfer is past its expiry date,
// regardless of the status currently persisted.
func (t *Transfer) IsExpired(now time.Time) bool {
	return t.ExpiryDate.Before(now)
}

// HasLocalFiles reports whether any file needs the local deletion path.
func (t *Transfer) HasLocalFiles() bool {
	for _, f := range t.Files {
		if f.StorageType == StorageTypeLocal {
			return true
		}
	}
	return false
}

// FileRef points at a finalized upload when creating a transfer.
// Either FileID references a completed upload session (remote files)
// or the storage fields are given directly (legacy local files).
type FileRef struct {
	FileID       *uuid.UUID
	StorageKey   string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	StorageType  StorageType
}

// PaymentConfig is the optional payment gate attached at creation.
// The payment provider flips IsPaid externally; the core only reads it.
type PaymentConfig struct {
	Amount   int64
	Currency string
}
