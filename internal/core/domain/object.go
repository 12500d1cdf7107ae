package domain

import "time"

// ObjectInfo describes one stored object, as returned by prefix listings.
type ObjectInfo struct {
	Key          string
	SizeBytes    int64
	ETag         string
	LastModified time.Time
}

// PutResult is the acknowledgement of a successful object write.
type PutResult struct {
	Key       string
	SizeBytes int64
	ETag      string
}
