package postgres

import (
	"context"
	"database/sql"
	"errors"
	"file-drop/internal/core/domain"
	"file-drop/internal/core/port"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type sqlTransferRepository struct {
	db SQLQuerier
}

// NewSQLTransferRepository creates sqlTransferRepository that implements port.TransferRepository
func NewSQLTransferRepository(db SQLQuerier) port.TransferRepository {
	return &sqlTransferRepository{db: db}
}

// Create inserts the transfer and its file manifest. The file list is
// write-once: no update path exists for transfer_file rows.
func (s *sqlTransferRepository) Create(ctx context.Context, transfer domain.Transfer) error {
	query := `
		INSERT INTO transfer (
			id, share_link, access_key, status, total_size_bytes, expiry_date,
			is_payment_required, is_paid, payment_amount, payment_currency, download_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		transfer.ID,
		transfer.ShareLink,
		transfer.AccessKey,
		transfer.Status,
		transfer.TotalSizeBytes,
		transfer.ExpiryDate,
		transfer.IsPaymentRequired,
		transfer.IsPaid,
		transfer.PaymentAmount,
		transfer.PaymentCurrency,
		transfer.DownloadCount,
	)
	if err != nil {
		return fmt.Errorf("error inserting transfer: %w", err)
	}

	fileQuery := `
		INSERT INTO transfer_file (
			id, transfer_id, original_name, display_name, storage_key, storage_type, mime_type, size_bytes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, f := range transfer.Files {
		_, err := s.db.ExecContext(
			ctx,
			fileQuery,
			f.ID,
			transfer.ID,
			f.OriginalName,
			f.DisplayName,
			f.StorageKey,
			f.StorageType,
			f.MimeType,
			f.SizeBytes,
		)
		if err != nil {
			return fmt.Errorf("error inserting transfer file: %w", err)
		}
	}

	return nil
}

// FindByID finds a transfer with its files
func (s *sqlTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	query := transferSelect + ` WHERE id = $1`
	return s.findOne(ctx, query, id)
}

// FindByShareLink finds a transfer by its public locator
func (s *sqlTransferRepository) FindByShareLink(ctx context.Context, shareLink string) (*domain.Transfer, error) {
	query := transferSelect + ` WHERE share_link = $1`
	return s.findOne(ctx, query, shareLink)
}

// UpdateStatus applies a conditional status transition. Zero rows
// affected means the transfer was not in the expected state, which
// keeps overlapping sweeps idempotent.
func (s *sqlTransferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.TransferStatus) error {
	query := `UPDATE transfer SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`

	result, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("error updating transfer status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// IncrementDownloadCount bumps the counter; it is never reset.
func (s *sqlTransferRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE transfer SET download_count = download_count + 1, updated_at = now() WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error incrementing download count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// FindExpiredActive returns active transfers past their expiry date
func (s *sqlTransferRepository) FindExpiredActive(ctx context.Context, now time.Time) ([]domain.Transfer, error) {
	query := transferSelect + ` WHERE status = 'active' AND expiry_date < $1`
	return s.findMany(ctx, query, now)
}

// FindExpiredPastGrace returns expired transfers whose expiry date is
// older than the grace cutoff, i.e. ready for local reclamation.
func (s *sqlTransferRepository) FindExpiredPastGrace(ctx context.Context, cutoff time.Time) ([]domain.Transfer, error) {
	query := transferSelect + ` WHERE status = 'expired' AND expiry_date < $1`
	return s.findMany(ctx, query, cutoff)
}

const transferSelect = `
	SELECT id, share_link, access_key, status, total_size_bytes, expiry_date,
	       is_payment_required, is_paid, payment_amount, payment_currency,
	       download_count, created_at, updated_at
	FROM transfer`

func (s *sqlTransferRepository) findOne(ctx context.Context, query string, arg any) (*domain.Transfer, error) {
	var row dbTransfer
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&row.ID,
		&row.ShareLink,
		&row.AccessKey,
		&row.Status,
		&row.TotalSizeBytes,
		&row.ExpiryDate,
		&row.IsPaymentRequired,
		&row.IsPaid,
		&row.PaymentAmount,
		&row.PaymentCurrency,
		&row.DownloadCount,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}

	transfer := row.ToDomain()
	files, err := s.findFiles(ctx, transfer.ID)
	if err != nil {
		return nil, err
	}
	transfer.Files = files

	return transfer, nil
}

func (s *sqlTransferRepository) findMany(ctx context.Context, query string, arg any) ([]domain.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error querying transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var row dbTransfer
		if err := rows.Scan(
			&row.ID,
			&row.ShareLink,
			&row.AccessKey,
			&row.Status,
			&row.TotalSizeBytes,
			&row.ExpiryDate,
			&row.IsPaymentRequired,
			&row.IsPaid,
			&row.PaymentAmount,
			&row.PaymentCurrency,
			&row.DownloadCount,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning transfer: %w", err)
		}
		transfers = append(transfers, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}

	for i := range transfers {
		files, err := s.findFiles(ctx, transfers[i].ID)
		if err != nil {
			return nil, err
		}
		transfers[i].Files = files
	}

	return transfers, nil
}

func (s *sqlTransferRepository) findFiles(ctx context.Context, transferID uuid.UUID) ([]domain.File, error) {
	query := `
		SELECT id, transfer_id, original_name, display_name, storage_key, storage_type, mime_type, size_bytes, created_at
		FROM transfer_file
		WHERE transfer_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("error querying transfer files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f dbTransferFile
		if err := rows.Scan(
			&f.ID,
			&f.TransferID,
			&f.OriginalName,
			&f.DisplayName,
			&f.StorageKey,
			&f.StorageType,
			&f.MimeType,
			&f.SizeBytes,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning transfer file: %w", err)
		}
		files = append(files, *f.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer files: %w", err)
	}

	return files, nil
}

type dbTransfer struct {
	ID                uuid.UUID `db:"id"`
	ShareLink         string    `db:"share_link"`
	AccessKey         string    `db:"access_key"`
	Status            string    `db:"status"`
	TotalSizeBytes    int64     `db:"total_size_bytes"`
	ExpiryDate        time.Time `db:"expiry_date"`
	IsPaymentRequired bool      `db:"is_payment_required"`
	IsPaid            bool      `db:"is_paid"`
	PaymentAmount     int64     `db:"payment_amount"`
	PaymentCurrency   string    `db:"payment_currency"`
	DownloadCount     int64     `db:"download_count"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (t *dbTransfer) ToDomain() *domain.Transfer {
	return &domain.Transfer{
		ID:                t.ID,
		ShareLink:         t.ShareLink,
		AccessKey:         t.AccessKey,
		Status:            domain.TransferStatus(t.Status),
		TotalSizeBytes:    t.TotalSizeBytes,
		ExpiryDate:        t.ExpiryDate,
		IsPaymentRequired: t.IsPaymentRequired,
		IsPaid:            t.IsPaid,
		PaymentAmount:     t.PaymentAmount,
		PaymentCurrency:   t.PaymentCurrency,
		DownloadCount:     t.DownloadCount,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type dbTransferFile struct {
	ID           uuid.UUID `db:"id"`
	TransferID   uuid.UUID `db:"transfer_id"`
	OriginalName string    `db:"original_name"`
	DisplayName  string    `db:"display_name"`
	StorageKey   string    `db:"storage_key"`
	StorageType  string    `db:"storage_type"`
	MimeType     string    `db:"mime_type"`
	SizeBytes    int64     `db:"size_bytes"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToDomain converts db obj to domain
func (f *dbTransferFile) ToDomain() *domain.File {
	return &domain.File{
		ID:           f.ID,
		TransferID:   f.TransferID,
		OriginalName: f.OriginalName,
		DisplayName:  f.DisplayName,
		StorageKey:   f.StorageKey,
		StorageType:  domain.StorageType(f.StorageType),
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		CreatedAt:    f.CreatedAt,
	}
}
