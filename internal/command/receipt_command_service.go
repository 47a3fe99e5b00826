package command

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/auxfresh/receipt-generator/internal/blob"
	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/events"
	"github.com/auxfresh/receipt-generator/internal/models"
	"github.com/auxfresh/receipt-generator/internal/repository"
	"github.com/auxfresh/receipt-generator/internal/utils"
)

// ReceiptCommandService is the sole write path for receipts. Within one
// save, the logo upload always completes before the record write that
// references its URL; a write failure after upload leaves the blob
// orphaned, which is accepted.
type ReceiptCommandService struct {
	writeRepo *repository.ReceiptWriteRepository
	uploader  blob.Uploader
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewReceiptCommandService(
	writeRepo *repository.ReceiptWriteRepository,
	uploader blob.Uploader,
	publisher *events.Publisher,
	logger *zap.Logger,
) *ReceiptCommandService {
	return &ReceiptCommandService{
		writeRepo: writeRepo,
		uploader:  uploader,
		publisher: publisher,
		logger:    logger,
	}
}

// SaveReceipt uploads the logo (when present), derives the title and
// writes the record. A save started is not cancelled by the client
// navigating away, so it runs on a detached context.
func (s *ReceiptCommandService) SaveReceipt(cmd cqrs.SaveReceiptCommand) (*models.Receipt, error) {
	title, err := models.DeriveTitle(cmd.Type, cmd.Data)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	logoURL := ""
	if cmd.Logo != nil {
		url, err := s.uploader.Upload(ctx, blob.LogoKey(cmd.OwnerID, cmd.Logo.Filename), cmd.Logo.ContentType, cmd.Logo.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to upload logo: %w", err)
		}
		logoURL = url
	}

	now := time.Now().UTC()
	receipt := &models.Receipt{
		ID:        utils.GenerateID("rcp"),
		OwnerID:   cmd.OwnerID,
		Type:      cmd.Type,
		Title:     title,
		Data:      cmd.Data,
		LogoURL:   logoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.writeRepo.Create(receipt); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.ReceiptEventsStream, events.ReceiptCreated, events.ReceiptCreatedEvent{
		ReceiptID: receipt.ID,
		OwnerID:   receipt.OwnerID,
		Type:      receipt.Type,
		Title:     receipt.Title,
		HasLogo:   logoURL != "",
	}); err != nil {
		s.logger.Warn("failed to publish receipt.created event", zap.Error(err))
	}
	return receipt, nil
}

// UpdateReceipt shallow-merges partial payload fields into the stored
// payload, optionally replacing the logo, and refreshes updated_at. The
// title keeps its save-time value.
func (s *ReceiptCommandService) UpdateReceipt(cmd cqrs.UpdateReceiptCommand) (*models.Receipt, error) {
	existing, err := s.writeRepo.GetByID(cmd.ReceiptID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != cmd.OwnerID {
		return nil, fmt.Errorf("forbidden")
	}

	ctx := context.Background()

	var logoURL *string
	if cmd.Logo != nil {
		url, err := s.uploader.Upload(ctx, blob.LogoKey(cmd.OwnerID, cmd.Logo.Filename), cmd.Logo.ContentType, cmd.Logo.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to upload logo: %w", err)
		}
		logoURL = &url
	}

	partial := cmd.Data
	if len(partial) == 0 {
		partial = []byte(`{}`)
	}
	if err := s.writeRepo.MergePayload(cmd.ReceiptID, partial, logoURL, time.Now().UTC()); err != nil {
		return nil, err
	}

	updated, err := s.writeRepo.GetByID(cmd.ReceiptID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.ReceiptEventsStream, events.ReceiptUpdated, events.ReceiptUpdatedEvent{
		ReceiptID: updated.ID,
		OwnerID:   updated.OwnerID,
		Type:      updated.Type,
	}); err != nil {
		s.logger.Warn("failed to publish receipt.updated event", zap.Error(err))
	}
	return updated, nil
}

// DeleteReceipt removes the record unconditionally. The logo blob is
// left in place; reclaiming it is a recorded product decision, not a bug.
func (s *ReceiptCommandService) DeleteReceipt(cmd cqrs.DeleteReceiptCommand) error {
	existing, err := s.writeRepo.GetByID(cmd.ReceiptID)
	if err != nil {
		return err
	}
	if existing.OwnerID != cmd.OwnerID {
		return fmt.Errorf("forbidden")
	}

	if err := s.writeRepo.Delete(cmd.ReceiptID); err != nil {
		return err
	}

	if err := s.publisher.Publish(context.Background(), events.ReceiptEventsStream, events.ReceiptDeleted, events.ReceiptDeletedEvent{
		ReceiptID: cmd.ReceiptID,
		OwnerID:   cmd.OwnerID,
	}); err != nil {
		s.logger.Warn("failed to publish receipt.deleted event", zap.Error(err))
	}
	return nil
}
