package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/auxfresh/receipt-generator/internal/models"
)

// ReceiptWriteRepository handles all state-mutating operations for
// receipts against the PostgreSQL store. The payload lives in a jsonb
// column; partial updates merge at the payload level.
type ReceiptWriteRepository struct {
	db *sql.DB
}

func NewReceiptWriteRepository(db *sql.DB) *ReceiptWriteRepository {
	return &ReceiptWriteRepository{db: db}
}

func (r *ReceiptWriteRepository) Create(receipt *models.Receipt) error {
	query := `
		INSERT INTO receipts (id, user_id, type, title, data, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		receipt.ID, receipt.OwnerID, receipt.Type, receipt.Title,
		[]byte(receipt.Data), nullString(receipt.LogoURL),
		receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// GetByID fetches the full write model for internal operations.
func (r *ReceiptWriteRepository) GetByID(id string) (*models.Receipt, error) {
	query := `
		SELECT id, user_id, type, title, data, logo_url, created_at, updated_at
		FROM receipts
		WHERE id = $1
	`
	var receipt models.Receipt
	var data []byte
	var logoURL sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&receipt.ID, &receipt.OwnerID, &receipt.Type, &receipt.Title,
		&data, &logoURL, &receipt.CreatedAt, &receipt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	receipt.Data = json.RawMessage(data)
	if logoURL.Valid {
		receipt.LogoURL = logoURL.String
	}
	return &receipt, nil
}

// MergePayload shallow-merges partial payload fields into the stored
// payload and refreshes updated_at. Fields absent from partial are left
// intact. logoURL, when non-nil, replaces the stored logo reference.
func (r *ReceiptWriteRepository) MergePayload(id string, partial json.RawMessage, logoURL *string, updatedAt time.Time) error {
	var result sql.Result
	var err error

	if logoURL != nil {
		query := `
			UPDATE receipts
			SET data = data || $2::jsonb, logo_url = $3, updated_at = $4
			WHERE id = $1
		`
		result, err = r.db.Exec(query, id, []byte(partial), *logoURL, updatedAt)
	} else {
		query := `
			UPDATE receipts
			SET data = data || $2::jsonb, updated_at = $3
			WHERE id = $1
		`
		result, err = r.db.Exec(query, id, []byte(partial), updatedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("receipt not found")
	}
	return nil
}

// Delete removes the record unconditionally. The logo blob, if any, is
// not reclaimed.
func (r *ReceiptWriteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("receipt not found")
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
