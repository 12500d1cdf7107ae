package upload

import (
	"context"
	"errors"
	"file-drop/internal/core/domain"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// SaveChunk stores one chunk of a chunked upload. When the stored chunk
// completes the set, the calling request also performs reconstruction;
// concurrent completers race on a conditional claim and exactly one wins.
func (u *uploadService) SaveChunk(ctx context.Context, sessionID uuid.UUID, chunkIndex int, r io.Reader, size int64) (*domain.ChunkAck, error) {
	session, err := u.uow.UploadSessionRepo().FindByIDAndOpen(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return u.ackClosedSession(ctx, sessionID, chunkIndex)
		}
		return nil, err
	}
	if session.Kind != domain.UploadKindChunked {
		return nil, domain.ErrInvalidInput
	}
	if chunkIndex < 0 || chunkIndex >= session.ExpectedParts {
		return nil, domain.ErrInvalidChunkIndex
	}

	chunkKey := domain.ChunkKey(session.ChunkPrefix, chunkIndex)
	if _, err := u.remote.Put(ctx, chunkKey, r, size, "application/octet-stream", nil); err != nil {
		return nil, fmt.Errorf("could not save chunk %d: %w", chunkIndex, err)
	}

	if err := u.uow.UploadSessionRepo().UpdateExpiresAt(ctx, session.ID, time.Now().Add(u.uploadCfg.SessionTTL)); err != nil {
		u.logger.Warn("could not refresh session TTL", "session_id", session.ID, "error", err)
	}

	complete, err := u.isComplete(ctx, session)
	if err != nil {
		return nil, err
	}
	if !complete {
		return &domain.ChunkAck{ChunkReceived: true}, nil
	}

	if err := u.uow.UploadSessionRepo().ClaimForAssembly(ctx, session.FileID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// Another request claimed the assembly.
			return &domain.ChunkAck{ChunkReceived: true}, nil
		}
		return nil, err
	}

	descriptor, err := u.reconstruct(ctx, session)
	if err != nil {
		if revertErr := u.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusOpen); revertErr != nil {
			u.logger.Error("could not reopen session after failed reconstruction", "session_id", session.ID, "error", revertErr)
		}
		return nil, fmt.Errorf("could not reconstruct file %s: %w", session.FileID, err)
	}

	if err := u.uow.UploadSessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusCompleted); err != nil {
		return nil, err
	}

	if failed := u.cleanupChunks(ctx, session); failed > 0 {
		u.logger.Warn("some chunks could not be removed", "session_id", session.ID, "failed", failed)
	}

	return &domain.ChunkAck{ChunkReceived: true, FileCompleted: true, Descriptor: descriptor}, nil
}

// ackClosedSession answers a chunk retry that arrived after the session
// left the open state. Retries against a completed or assembling session
// ack idempotently; an aborted or unknown session stays an error.
func (u *uploadService) ackClosedSession(ctx context.Context, sessionID uuid.UUID, chunkIndex int) (*domain.ChunkAck, error) {
	session, err := u.uow.UploadSessionRepo().FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != domain.UploadKindChunked {
		return nil, domain.ErrInvalidInput
	}
	if chunkIndex < 0 || chunkIndex >= session.ExpectedParts {
		return nil, domain.ErrInvalidChunkIndex
	}

	switch session.Status {
	case domain.UploadSessionStatusCompleted:
		u.logger.Debug("chunk retried after completion", "session_id", session.ID, "chunk_index", chunkIndex)
		return &domain.ChunkAck{ChunkReceived: true, FileCompleted: true}, nil
	case domain.UploadSessionStatusAssembling:
		return &domain.ChunkAck{ChunkReceived: true}, nil
	default:
		return nil, domain.ErrSessionNotFound
	}
}
