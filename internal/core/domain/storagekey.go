package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxSanitizedNameLen = 64

// SanitizeFilename reduces an untrusted filename to a restricted
// character set (alnum, '.', '-', '_') and bounds its length so it can
// be embedded in a storage key. Untrusted names are never used verbatim.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	out = strings.Trim(out, ".")
	if out == "" {
		out = "file"
	}
	if len(out) > maxSanitizedNameLen {
		ext := ""
		if idx := strings.LastIndex(out, "."); idx > 0 && len(out)-idx <= 16 {
			ext = out[idx:]
		}
		out = out[:maxSanitizedNameLen-len(ext)] + ext
	}
	return out
}

// FinalObjectKey builds the key for a finalized file. Keys are
// namespaced by date and owning transfer/file id so sweeps can
// enumerate by prefix without a side index.
func FinalObjectKey(createdAt time.Time, transferID, fileID uuid.UUID, filename string) string {
	return fmt.Sprintf("prod/%s/t_%s/f_%s_%s",
		createdAt.UTC().Format("2006/01/02"), transferID, fileID, SanitizeFilename(filename))
}

// ChunkKeyPrefix builds the key prefix under which all chunks of one
// in-flight file live.
func ChunkKeyPrefix(createdAt time.Time, transferID, fileID uuid.UUID) string {
	return fmt.Sprintf("temp/%s/t_%s/f_%s/",
		createdAt.UTC().Format("2006/01/02"), transferID, fileID)
}

// ChunkKey builds the key of one chunk under its prefix.
func ChunkKey(prefix string, index int) string {
	return fmt.Sprintf("%schunk_%d", prefix, index)
}

// ParseChunkKey extracts the owning file id and chunk index from a
// chunk key. ok is false for keys outside the chunk namespace.
func ParseChunkKey(key string) (fileID uuid.UUID, index int, ok bool) {
	if !strings.HasPrefix(key, "temp/") {
		return uuid.Nil, 0, false
	}
	segments := strings.Split(key, "/")
	if len(segments) < 3 {
		return uuid.Nil, 0, false
	}
	last := segments[len(segments)-1]
	if !strings.HasPrefix(last, "chunk_") {
		return uuid.Nil, 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(last, "chunk_"))
	if err != nil || idx < 0 {
		return uuid.Nil, 0, false
	}
	fileSegment := segments[len(segments)-2]
	if !strings.HasPrefix(fileSegment, "f_") {
		return uuid.Nil, 0, false
	}
	id, err := uuid.Parse(strings.TrimPrefix(fileSegment, "f_"))
	if err != nil {
		return uuid.Nil, 0, false
	}
	return id, idx, true
}
