package upload

import (
	"context"
	"file-drop/internal/core/domain"
	"fmt"
	"io"
)

// isComplete reports whether every chunk index in [0, ExpectedParts) is
// present under the session's chunk prefix. The set of received chunks
// is derived from the store listing, not tracked state.
func (u *uploadService) isComplete(ctx context.Context, session *domain.UploadSession) (bool, error) {
	objects, err := u.remote.List(ctx, session.ChunkPrefix)
	if err != nil {
		return false, fmt.Errorf("could not list chunks: %w", err)
	}

	received := make(map[int]bool, len(objects))
	for _, obj := range objects {
		fileID, index, ok := domain.ParseChunkKey(obj.Key)
		if !ok || fileID != session.FileID {
			continue
		}
		received[index] = true
	}

	for i := 0; i < session.ExpectedParts; i++ {
		if !received[i] {
			return false, nil
		}
	}
	return true, nil
}

// reconstruct streams the chunks in index order into the final object.
// The chunks are never buffered whole in memory.
func (u *uploadService) reconstruct(ctx context.Context, session *domain.UploadSession) (*domain.FileDescriptor, error) {
	pr, pw := io.Pipe()

	go func() {
		for i := 0; i < session.ExpectedParts; i++ {
			chunk, err := u.remote.Get(ctx, domain.ChunkKey(session.ChunkPrefix, i))
			if err != nil {
				pw.CloseWithError(fmt.Errorf("could not read chunk %d: %w", i, err))
				return
			}
			_, err = io.Copy(pw, chunk)
			chunk.Close()
			if err != nil {
				pw.CloseWithError(fmt.Errorf("could not concatenate chunk %d: %w", i, err))
				return
			}
		}
		pw.Close()
	}()

	result, err := u.remote.Put(ctx, session.StorageKey, pr, -1, session.MimeType, map[string]string{
		"file-id":     session.FileID.String(),
		"transfer-id": session.TransferID.String(),
	})
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}

	u.logger.Info("file reconstructed", "file_id", session.FileID, "key", session.StorageKey, "size", result.SizeBytes)

	return &domain.FileDescriptor{
		FileID:       session.FileID,
		TransferID:   session.TransferID,
		OriginalName: session.FileName,
		MimeType:     session.MimeType,
		StorageKey:   session.StorageKey,
		StorageType:  domain.StorageTypeRemote,
		SizeBytes:    result.SizeBytes,
		ETag:         result.ETag,
	}, nil
}

// cleanupChunks deletes the session's temporary chunks and returns the
// number of chunks that could not be removed. Failures here never fail
// the upload; leftovers are collected by the orphan sweep.
func (u *uploadService) cleanupChunks(ctx context.Context, session *domain.UploadSession) int {
	failed := 0
	for i := 0; i < session.ExpectedParts; i++ {
		if err := u.remote.Delete(ctx, domain.ChunkKey(session.ChunkPrefix, i)); err != nil {
			failed++
		}
	}
	return failed
}
