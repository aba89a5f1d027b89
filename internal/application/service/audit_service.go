package service

import (
	"context"
	"fmt"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// AuditService exposes the transition history of offers
type AuditService interface {
	History(ctx context.Context, offerID string) ([]*entity.TransitionRecord, error)
	ExportHistory(ctx context.Context, offerID string) ([]byte, error)
}

type auditServiceImpl struct {
	auditRepo port.AuditRepository
	offerRepo port.OfferRepository
	logger    Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo port.AuditRepository, offerRepo port.OfferRepository, logger Logger) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// History returns the full transition history of an offer, oldest first.
func (s *auditServiceImpl) History(ctx context.Context, offerID string) ([]*entity.TransitionRecord, error) {
	if _, err := s.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}

	records, err := s.auditRepo.ListByOfferID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("list transition records: %w", err)
	}
	return records, nil
}

var exportHeaders = []string{"Timestamp", "Previous Status", "New Status", "Reason", "Actor"}

// ExportHistory renders the transition history of an offer as an XLSX
// workbook, one row per record, oldest first.
func (s *auditServiceImpl) ExportHistory(ctx context.Context, offerID string) ([]byte, error) {
	records, err := s.History(ctx, offerID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, record := range records {
		values := []interface{}{
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.PreviousStatus,
			record.NewStatus,
			record.Reason,
			record.ActorID,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	s.logger.Info("History exported", "offer_id", offerID, "records", len(records))
	return buf.Bytes(), nil
}
