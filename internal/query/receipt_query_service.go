package query

import (
	"context"
	"fmt"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/repository"
)

// ReceiptQueryService serves receipt reads. Listing is owner-scoped at
// the repository query itself; direct-id reads check ownership here.
type ReceiptQueryService struct {
	readRepo *repository.ReceiptReadRepository
}

func NewReceiptQueryService(readRepo *repository.ReceiptReadRepository) *ReceiptQueryService {
	return &ReceiptQueryService{readRepo: readRepo}
}

// ListReceipts returns the owner's receipts, newest first. A read
// failure propagates to the caller; it is never masked as an empty list.
func (s *ReceiptQueryService) ListReceipts(q cqrs.ListReceiptsQuery) ([]models.ReceiptView, error) {
	return s.readRepo.ListByOwner(context.Background(), q.OwnerID)
}

func (s *ReceiptQueryService) GetReceipt(q cqrs.GetReceiptQuery) (*models.ReceiptView, error) {
	view, err := s.readRepo.GetByID(context.Background(), q.ReceiptID)
	if err != nil {
		return nil, err
	}
	if view.OwnerID != q.OwnerID {
		return nil, fmt.Errorf("forbidden")
	}
	return view, nil
}

// GetStats returns the owner's dashboard counts.
func (s *ReceiptQueryService) GetStats(q cqrs.GetStatsQuery) (*models.StatsView, error) {
	return s.readRepo.CountsByType(context.Background(), q.OwnerID)
}
