package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is an error thrown when a request is malformed
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidChunkIndex is an error thrown when a chunk index is out of range
var ErrInvalidChunkIndex = errors.New("invalid chunk index")

// ErrPartCountOutOfRange is an error thrown when a part count is out of bounds
var ErrPartCountOutOfRange = errors.New("part count out of range")

// ErrIncompleteUpload is an error thrown when reconstruction is attempted before all chunks are present
var ErrIncompleteUpload = errors.New("incomplete upload")

// ErrSessionNotFound is an error thrown when session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrTransferNotFound is an error thrown when transfer is not found
var ErrTransferNotFound = errors.New("transfer not found")

// ErrAccessDenied is the uniform authorization failure. Every failing
// sub-check (bad link, bad key, expired, unpaid) maps to this same
// value so callers cannot distinguish which check failed.
var ErrAccessDenied = errors.New("access denied")

// ErrDuplicatePart is an error thrown when parts are duplicated
var ErrDuplicatePart = errors.New("duplicate part")

// ErrMismatchETag is an error thrown when tags mismatch
var ErrMismatchETag = errors.New("mismatched ETag")

// ErrMismatchNBParts is an error thrown when nb parts mismatch
var ErrMismatchNBParts = errors.New("mismatched number of parts")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrFileSizeTooSmall is an error thrown when file size is too small
var ErrFileSizeTooSmall = errors.New("file size too small")

// ErrSignedURLUnsupported is an error thrown when a backend cannot issue signed URLs
var ErrSignedURLUnsupported = errors.New("signed urls not supported by storage backend")

// StorageError wraps a backend failure so callers can distinguish a
// storage outage from domain validation errors. The caller decides the
// retry policy.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation and key.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// IsStorageError reports whether err has a StorageError in its chain.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
