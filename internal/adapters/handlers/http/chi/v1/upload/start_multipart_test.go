package upload_test

import (
	"bytes"
	"encoding/json"
	"file-drop/internal/adapters/handlers/http/chi"
	uploadhandler "file-drop/internal/adapters/handlers/http/chi/v1/upload"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/service/upload"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStartMultipartV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - returns presigned parts", func(t *testing.T) {
		// Arrange
		transferID := uuid.New()
		session := &domain.UploadSession{
			ID:     uuid.New(),
			FileID: uuid.New(),
			Kind:   domain.UploadKindMultipart,
		}
		parts := []domain.UploadPart{
			{PartNumber: 1, PresignedURL: "https://signed/1"},
			{PartNumber: 2, PresignedURL: "https://signed/2"},
		}

		mockService := upload.NewMockUploadService()
		mockService.On("StartMultipartUpload",
			mock.Anything, transferID, "movie.mp4", "video/mp4", int64(1<<30), 2).
			Return(session, parts, nil)

		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		requestBody := uploadhandler.V1StartMultipartRequest{
			TransferID:  transferID,
			FileName:    "movie.mp4",
			ContentType: "video/mp4",
			SizeBytes:   1 << 30,
			PartCount:   2,
		}
		jsonBody, _ := json.Marshal(requestBody)
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart", bytes.NewReader(jsonBody))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusCreated, w.Code)

		var response uploadhandler.V1StartMultipartResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, session.ID, response.SessionID)
		assert.Len(t, response.Parts, 2)
		assert.Equal(t, "https://signed/1", response.Parts[0].PresignedURL)

		mockService.AssertExpectations(t)
	})

	t.Run("error - part count out of range", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("StartMultipartUpload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, domain.ErrPartCountOutOfRange)

		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		requestBody := uploadhandler.V1StartMultipartRequest{
			TransferID:  uuid.New(),
			FileName:    "movie.mp4",
			ContentType: "video/mp4",
			SizeBytes:   1024,
			PartCount:   20000,
		}
		jsonBody, _ := json.Marshal(requestBody)
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart", bytes.NewReader(jsonBody))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("error - missing params", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart", bytes.NewReader([]byte(`{"filename":"a.bin"}`)))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "StartMultipartUpload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteMultipartV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - complete multipart upload", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()
		descriptor := &domain.FileDescriptor{
			FileID:     uuid.New(),
			TransferID: uuid.New(),
			StorageKey: "prod/2026/08/28/t_x/f_y_movie.mp4",
			SizeBytes:  1 << 30,
			ETag:       "final-etag",
		}

		mockService := upload.NewMockUploadService()
		mockService.On("CompleteMultipartUpload", mock.Anything, sessionID, mock.Anything).
			Return(descriptor, nil)

		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		requestBody := uploadhandler.V1CompleteMultipartRequest{
			Parts: []uploadhandler.CompletedPart{
				{PartNumber: 1, ETag: "etag1"},
				{PartNumber: 2, ETag: "etag2"},
			},
		}
		jsonBody, _ := json.Marshal(requestBody)
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart/"+sessionID.String()+"/complete", bytes.NewReader(jsonBody))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusCreated, w.Code)

		var response uploadhandler.V1CompleteMultipartResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, descriptor.FileID, response.File.FileID)
		assert.Equal(t, "final-etag", response.File.ETag)

		mockService.AssertExpectations(t)
	})

	t.Run("error - etag mismatch", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("CompleteMultipartUpload", mock.Anything, sessionID, mock.Anything).
			Return(nil, domain.ErrMismatchETag)

		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		requestBody := uploadhandler.V1CompleteMultipartRequest{
			Parts: []uploadhandler.CompletedPart{{PartNumber: 1, ETag: "etag1"}},
		}
		jsonBody, _ := json.Marshal(requestBody)
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart/"+sessionID.String()+"/complete", bytes.NewReader(jsonBody))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("error - no parts", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := uploadhandler.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, nil, testChunkSize, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/multipart/"+uuid.New().String()+"/complete", bytes.NewReader([]byte(`{"parts":[]}`)))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything)
	})
}
