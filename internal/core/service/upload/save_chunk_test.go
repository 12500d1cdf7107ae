package upload_test

import (
	"context"
	"errors"
	"file-drop/internal/adapters/repository"
	"file-drop/internal/adapters/storage"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/upload"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func chunkedSession(transferID, fileID uuid.UUID, expectedParts int) *domain.UploadSession {
	now := time.Now()
	return &domain.UploadSession{
		ID:            uuid.New(),
		FileID:        fileID,
		TransferID:    transferID,
		Kind:          domain.UploadKindChunked,
		FileName:      "report.pdf",
		MimeType:      "application/pdf",
		SizeBytes:     1024,
		ExpectedParts: expectedParts,
		StorageKey:    domain.FinalObjectKey(now, transferID, fileID, "report.pdf"),
		ChunkPrefix:   domain.ChunkKeyPrefix(now, transferID, fileID),
		Status:        domain.UploadSessionStatusOpen,
	}
}

func TestUploadService_SaveChunk_NotYetComplete(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	chunkKey := domain.ChunkKey(session.ChunkPrefix, 0)

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)
	mockStore.On("Put", ctx, chunkKey, mock.Anything, int64(5), "application/octet-stream", mock.Anything).
		Return(&domain.PutResult{Key: chunkKey, SizeBytes: 5}, nil)
	mockUow.GetUploadSessionRepoMock().On("UpdateExpiresAt", ctx, session.ID, mock.Anything).Return(nil)
	mockStore.On("List", ctx, session.ChunkPrefix).
		Return([]domain.ObjectInfo{{Key: chunkKey, SizeBytes: 5}}, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 0, strings.NewReader("hello"), 5)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.False(t, ack.FileCompleted)
	assert.Nil(t, ack.Descriptor)
	mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_GapDespiteMatchingCount(t *testing.T) {
	// Arrange - the listing holds as many objects as expected parts, but
	// one belongs to another file and index 1 is still missing
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	key0 := domain.ChunkKey(session.ChunkPrefix, 0)
	key2 := domain.ChunkKey(session.ChunkPrefix, 2)
	foreignKey := domain.ChunkKey(domain.ChunkKeyPrefix(time.Now(), session.TransferID, uuid.New()), 1)

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)
	mockStore.On("Put", ctx, key2, mock.Anything, int64(4), "application/octet-stream", mock.Anything).
		Return(&domain.PutResult{Key: key2}, nil)
	mockUow.GetUploadSessionRepoMock().On("UpdateExpiresAt", ctx, session.ID, mock.Anything).Return(nil)
	mockStore.On("List", ctx, session.ChunkPrefix).
		Return([]domain.ObjectInfo{{Key: key0}, {Key: foreignKey}, {Key: key2}}, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 2, strings.NewReader("data"), 4)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.False(t, ack.FileCompleted)
	mockUow.GetUploadSessionRepoMock().AssertNotCalled(t, "ClaimForAssembly", mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_InvalidIndex(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 3, strings.NewReader("x"), 1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidChunkIndex)
	assert.Nil(t, ack)
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_LastChunkReconstructs(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 2)
	key0 := domain.ChunkKey(session.ChunkPrefix, 0)
	key1 := domain.ChunkKey(session.ChunkPrefix, 1)

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)
	mockStore.On("Put", ctx, key1, mock.Anything, int64(6), "application/octet-stream", mock.Anything).
		Return(&domain.PutResult{Key: key1, SizeBytes: 6}, nil)
	mockUow.GetUploadSessionRepoMock().On("UpdateExpiresAt", ctx, session.ID, mock.Anything).Return(nil)
	mockStore.On("List", ctx, session.ChunkPrefix).
		Return([]domain.ObjectInfo{{Key: key0}, {Key: key1}}, nil)
	mockUow.GetUploadSessionRepoMock().On("ClaimForAssembly", ctx, session.FileID).Return(nil)

	mockStore.On("Get", ctx, key0).Return(io.NopCloser(strings.NewReader("first-")), nil)
	mockStore.On("Get", ctx, key1).Return(io.NopCloser(strings.NewReader("second")), nil)

	var assembled string
	mockStore.On("Put", ctx, session.StorageKey, mock.Anything, int64(-1), session.MimeType, mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(2).(io.Reader))
			assembled = string(data)
		}).
		Return(&domain.PutResult{Key: session.StorageKey, SizeBytes: 12, ETag: "final-etag"}, nil)

	mockUow.GetUploadSessionRepoMock().On("UpdateStatus", ctx, session.ID, domain.UploadSessionStatusCompleted).Return(nil)
	mockStore.On("Delete", ctx, key0).Return(nil)
	mockStore.On("Delete", ctx, key1).Return(nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 1, strings.NewReader("second"), 6)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.True(t, ack.FileCompleted)
	require.NotNil(t, ack.Descriptor)
	assert.Equal(t, session.FileID, ack.Descriptor.FileID)
	assert.Equal(t, session.StorageKey, ack.Descriptor.StorageKey)
	assert.Equal(t, "final-etag", ack.Descriptor.ETag)
	assert.Equal(t, "first-second", assembled)
	mockUow.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestUploadService_SaveChunk_LostAssemblyRace(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 2)
	key0 := domain.ChunkKey(session.ChunkPrefix, 0)
	key1 := domain.ChunkKey(session.ChunkPrefix, 1)

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)
	mockStore.On("Put", ctx, key0, mock.Anything, int64(6), "application/octet-stream", mock.Anything).
		Return(&domain.PutResult{Key: key0}, nil)
	mockUow.GetUploadSessionRepoMock().On("UpdateExpiresAt", ctx, session.ID, mock.Anything).Return(nil)
	mockStore.On("List", ctx, session.ChunkPrefix).
		Return([]domain.ObjectInfo{{Key: key0}, {Key: key1}}, nil)
	mockUow.GetUploadSessionRepoMock().On("ClaimForAssembly", ctx, session.FileID).
		Return(domain.ErrSessionNotFound)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 0, strings.NewReader("first-"), 6)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.False(t, ack.FileCompleted)
	mockStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_ReconstructFailureReopensSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 1)
	key0 := domain.ChunkKey(session.ChunkPrefix, 0)
	storeErr := errors.New("connection reset")

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).Return(session, nil)
	mockStore.On("Put", ctx, key0, mock.Anything, int64(4), "application/octet-stream", mock.Anything).
		Return(&domain.PutResult{Key: key0}, nil)
	mockUow.GetUploadSessionRepoMock().On("UpdateExpiresAt", ctx, session.ID, mock.Anything).Return(nil)
	mockStore.On("List", ctx, session.ChunkPrefix).
		Return([]domain.ObjectInfo{{Key: key0}}, nil)
	mockUow.GetUploadSessionRepoMock().On("ClaimForAssembly", ctx, session.FileID).Return(nil)
	mockStore.On("Get", ctx, key0).Return(io.NopCloser(strings.NewReader("data")), nil)
	mockStore.On("Put", ctx, session.StorageKey, mock.Anything, int64(-1), session.MimeType, mock.Anything).
		Return(nil, storeErr)
	mockUow.GetUploadSessionRepoMock().On("UpdateStatus", ctx, session.ID, domain.UploadSessionStatusOpen).Return(nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 0, strings.NewReader("data"), 4)

	// Assert
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, ack)
	mockUow.GetUploadSessionRepoMock().AssertCalled(t, "UpdateStatus", ctx, session.ID, domain.UploadSessionStatusOpen)
}

func TestUploadService_SaveChunk_UnknownSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	sessionID := uuid.New()
	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, sessionID).
		Return(nil, domain.ErrSessionNotFound)
	mockUow.GetUploadSessionRepoMock().On("FindByID", ctx, sessionID).
		Return(nil, domain.ErrSessionNotFound)

	// Act
	ack, err := service.SaveChunk(ctx, sessionID, 0, strings.NewReader("x"), 1)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Nil(t, ack)
}

func TestUploadService_SaveChunk_RetryAfterCompletion(t *testing.T) {
	// Arrange - a client resends a chunk after another request already
	// completed the session; the retry must ack, not fail
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	session.Status = domain.UploadSessionStatusCompleted

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).
		Return(nil, domain.ErrSessionNotFound)
	mockUow.GetUploadSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 1, strings.NewReader("data"), 4)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.True(t, ack.FileCompleted)
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_RetryDuringAssembly(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	session.Status = domain.UploadSessionStatusAssembling

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).
		Return(nil, domain.ErrSessionNotFound)
	mockUow.GetUploadSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 0, strings.NewReader("data"), 4)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.ChunkReceived)
	assert.False(t, ack.FileCompleted)
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_SaveChunk_RetryAfterAbort(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStore := storage.NewMockStore()
	service := upload.NewUploadService(mockUow, mockStore, defaultCfg, testLogger)

	session := chunkedSession(uuid.New(), uuid.New(), 3)
	session.Status = domain.UploadSessionStatusAborted

	mockUow.GetUploadSessionRepoMock().On("FindByIDAndOpen", ctx, session.ID).
		Return(nil, domain.ErrSessionNotFound)
	mockUow.GetUploadSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)

	// Act
	ack, err := service.SaveChunk(ctx, session.ID, 0, strings.NewReader("data"), 4)

	// Assert
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Nil(t, ack)
}
