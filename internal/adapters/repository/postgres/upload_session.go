package postgres

import (
	"context"
	"database/sql"
	"errors"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository Creates a new sqlUploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_session (
			id, file_id, transfer_id, kind, provider_upload_id, file_name, mime_type,
			size_bytes, expected_parts, part_size, storage_key, chunk_prefix, expires_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.FileID,
		session.TransferID,
		session.Kind,
		session.ProviderUploadID,
		session.FileName,
		session.MimeType,
		session.SizeBytes,
		session.ExpectedParts,
		session.PartSize,
		session.StorageKey,
		session.ChunkPrefix,
		session.ExpiresAt,
		session.Status,
	)
	if err != nil {
		return err
	}
	return nil
}

// UpdateExpiresAt updates expires at
func (s *sqlUploadSessionRepository) UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `UPDATE upload_session SET expires_at = $1, updated_at = now() WHERE id = $2 AND status = 'open'`

	result, err := s.db.ExecContext(ctx, query, expiresAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (s *sqlUploadSessionRepository) FindByIDAndOpen(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := sessionSelect + ` WHERE id = $1 AND status = 'open'`
	return s.findOne(ctx, query, id)
}

func (s *sqlUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := sessionSelect + ` WHERE id = $1`
	return s.findOne(ctx, query, id)
}

func (s *sqlUploadSessionRepository) FindByFileID(ctx context.Context, fileID uuid.UUID) (*domain.UploadSession, error) {
	query := sessionSelect + ` WHERE file_id = $1`
	return s.findOne(ctx, query, fileID)
}

func (s *sqlUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	query := sessionSelect + ` WHERE status = 'open' AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := row.scan(rows.Scan); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateStatus updates status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	query := `UPDATE upload_session SET status = $1, updated_at = now() WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// ClaimForAssembly is the conditional claim write behind at-most-once
// reconstruction: only the caller whose UPDATE moves the row out of
// 'open' wins. Losers get ErrSessionNotFound and must not reconstruct.
func (s *sqlUploadSessionRepository) ClaimForAssembly(ctx context.Context, fileID uuid.UUID) error {
	query := `UPDATE upload_session SET status = 'assembling', updated_at = now() WHERE file_id = $1 AND status = 'open'`

	result, err := s.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

const sessionSelect = `
	SELECT id, file_id, transfer_id, kind, provider_upload_id, file_name, mime_type,
	       size_bytes, expected_parts, part_size, storage_key, chunk_prefix,
	       expires_at, status, created_at, updated_at
	FROM upload_session`

func (s *sqlUploadSessionRepository) findOne(ctx context.Context, query string, arg any) (*domain.UploadSession, error) {
	var row dbUploadSession
	err := row.scan(s.db.QueryRowContext(ctx, query, arg).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

type dbUploadSession struct {
	ID               uuid.UUID `db:"id"`
	FileID           uuid.UUID `db:"file_id"`
	TransferID       uuid.UUID `db:"transfer_id"`
	Kind             string    `db:"kind"`
	ProviderUploadID string    `db:"provider_upload_id"`
	FileName         string    `db:"file_name"`
	MimeType         string    `db:"mime_type"`
	SizeBytes        int64     `db:"size_bytes"`
	ExpectedParts    int       `db:"expected_parts"`
	PartSize         int64     `db:"part_size"`
	StorageKey       string    `db:"storage_key"`
	ChunkPrefix      string    `db:"chunk_prefix"`
	ExpiresAt        time.Time `db:"expires_at"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (s *dbUploadSession) scan(scan func(dest ...any) error) error {
	return scan(
		&s.ID,
		&s.FileID,
		&s.TransferID,
		&s.Kind,
		&s.ProviderUploadID,
		&s.FileName,
		&s.MimeType,
		&s.SizeBytes,
		&s.ExpectedParts,
		&s.PartSize,
		&s.StorageKey,
		&s.ChunkPrefix,
		&s.ExpiresAt,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() *domain.UploadSession {
	return &domain.UploadSession{
		ID:               s.ID,
		FileID:           s.FileID,
		TransferID:       s.TransferID,
		Kind:             domain.UploadKind(s.Kind),
		ProviderUploadID: s.ProviderUploadID,
		FileName:         s.FileName,
		MimeType:         s.MimeType,
		SizeBytes:        s.SizeBytes,
		ExpectedParts:    s.ExpectedParts,
		PartSize:         s.PartSize,
		StorageKey:       s.StorageKey,
		ChunkPrefix:      s.ChunkPrefix,
		ExpiresAt:        s.ExpiresAt,
		Status:           domain.UploadSessionStatus(s.Status),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
