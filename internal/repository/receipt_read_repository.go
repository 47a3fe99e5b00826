package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/auxfresh/receipt-generator/internal/models"
)

// ReceiptReadRepository serves receipt queries straight from PostgreSQL.
// There is no caching layer: every list is a fresh read, and every query
// is owner-scoped in SQL so cross-owner leakage is impossible at the
// query level.
type ReceiptReadRepository struct {
	db *sql.DB
}

func NewReceiptReadRepository(db *sql.DB) *ReceiptReadRepository {
	return &ReceiptReadRepository{db: db}
}

// ListByOwner returns all of one owner's receipts, newest first.
func (r *ReceiptReadRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ReceiptView, error) {
	query := `
		SELECT id, user_id, type, title, data, logo_url, created_at, updated_at
		FROM receipts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	views := []models.ReceiptView{}
	for rows.Next() {
		view, err := scanReceiptView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return views, nil
}

// GetByID returns one receipt view. Ownership is checked by the caller
// against the populated OwnerID.
func (r *ReceiptReadRepository) GetByID(ctx context.Context, id string) (*models.ReceiptView, error) {
	query := `
		SELECT id, user_id, type, title, data, logo_url, created_at, updated_at
		FROM receipts
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	view, err := scanReceiptView(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found")
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CountsByType returns the owner's dashboard counts in one pass.
func (r *ReceiptReadRepository) CountsByType(ctx context.Context, ownerID string) (*models.StatsView, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'banking'),
			COUNT(*) FILTER (WHERE type = 'shopping')
		FROM receipts
		WHERE user_id = $1
	`
	var stats models.StatsView
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&stats.TotalReceipts, &stats.BankingReceipts, &stats.ShoppingReceipts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts: %w", err)
	}
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceiptView(row rowScanner) (*models.ReceiptView, error) {
	var view models.ReceiptView
	var data []byte
	var logoURL sql.NullString

	err := row.Scan(
		&view.ID, &view.OwnerID, &view.Type, &view.Title,
		&data, &logoURL, &view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}

	view.Data = json.RawMessage(data)
	if logoURL.Valid {
		view.LogoURL = logoURL.String
	}
	return &view, nil
}
