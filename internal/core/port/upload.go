package port

import (
	"context"
	"file-drop/internal/core/domain"
	"io"

	"github.com/google/uuid"
)

// UploadService drives both upload paths: application-assembled chunks
// and store-native multipart.
type UploadService interface {
	StartChunkedUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, totalChunks int) (*domain.UploadSession, error)
	SaveChunk(ctx context.Context, sessionID uuid.UUID, chunkIndex int, r io.Reader, size int64) (*domain.ChunkAck, error)
	StartMultipartUpload(ctx context.Context, transferID uuid.UUID, fileName string, contentType string, sizeBytes int64, partCount int) (*domain.UploadSession, []domain.UploadPart, error)
	ListParts(ctx context.Context, sessionID uuid.UUID, maxParts int, partNumberMarker int) ([]domain.UploadPart, int, error)
	CompleteMultipartUpload(ctx context.Context, sessionID uuid.UUID, parts []domain.UploadPart) (*domain.FileDescriptor, error)
}
