package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
	"github.com/itakecare/offerflow/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrInvalidCategory is returned when an offer category is not in the closed set
var ErrInvalidCategory = errors.New("unknown offer category")

// ErrInvalidScore is returned when a score is not one of A, B, C
var ErrInvalidScore = errors.New("score must be A, B or C")

// ErrInvalidInput is returned when offer fields fail format validation
var ErrInvalidInput = errors.New("invalid offer input")

// CreateOfferInput carries the fields needed to open a new offer.
type CreateOfferInput struct {
	Reference          string
	CompanyID          string
	ClientName         string
	ClientEmail        string
	OfferCategory      string
	IsPurchase         bool
	WorkflowTemplateID *string
	Amount             float64
	MonthlyPayment     float64
	Currency           string
	ActorID            string
}

// OfferService manages offers outside of workflow transitions
type OfferService interface {
	CreateOffer(ctx context.Context, input CreateOfferInput) (*entity.Offer, error)
	GetOffer(ctx context.Context, id string) (*entity.Offer, error)
	ListOffers(ctx context.Context, companyID string, limit, offset int) ([]*entity.Offer, error)
	RecordScores(ctx context.Context, id string, internalScore, leaserScore *string) error
}

type offerServiceImpl struct {
	offerRepo port.OfferRepository
	auditRepo port.AuditRepository
	txManager port.TransactionManager
	logger    Logger
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo port.OfferRepository,
	auditRepo port.AuditRepository,
	txManager port.TransactionManager,
	logger Logger,
) OfferService {
	return &offerServiceImpl{
		offerRepo: offerRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateOffer creates a new offer at the first workflow step and seeds the
// audit log with its origin record. Creation is idempotent on the company
// reference: an existing offer is returned untouched.
func (s *offerServiceImpl) CreateOffer(ctx context.Context, input CreateOfferInput) (*entity.Offer, error) {
	if !entity.IsValidCategory(input.OfferCategory) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, input.OfferCategory)
	}
	if err := utils.ValidateReference(input.Reference); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.ClientEmail != "" {
		if err := utils.ValidateEmail(input.ClientEmail); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if err := utils.ValidateAmount(input.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.offerRepo.GetByReference(ctx, input.CompanyID, input.Reference)
	if err == nil && existing != nil {
		s.logger.Info("Offer already exists", "reference", input.Reference, "id", existing.ID)
		return existing, nil
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	now := time.Now()
	offer := &entity.Offer{
		ID:                 uuid.NewString(),
		Reference:          input.Reference,
		CompanyID:          input.CompanyID,
		ClientName:         input.ClientName,
		ClientEmail:        input.ClientEmail,
		OfferCategory:      input.OfferCategory,
		IsPurchase:         input.IsPurchase,
		WorkflowStatus:     workflow.StatusDraft,
		WorkflowTemplateID: input.WorkflowTemplateID,
		Amount:             input.Amount,
		MonthlyPayment:     input.MonthlyPayment,
		Currency:           currency,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.offerRepo.Create(txCtx, offer); err != nil {
			return fmt.Errorf("create offer: %w", err)
		}

		origin := &entity.TransitionRecord{
			OfferID:        offer.ID,
			PreviousStatus: "",
			NewStatus:      workflow.StatusDraft,
			Reason:         "offer created",
			ActorID:        input.ActorID,
			Timestamp:      now,
		}
		if err := s.auditRepo.Append(txCtx, origin); err != nil {
			return fmt.Errorf("seed audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create offer", "error", err, "reference", input.Reference)
		return nil, err
	}

	s.logger.Info("Offer created", "id", offer.ID, "reference", offer.Reference, "company_id", offer.CompanyID)
	return offer, nil
}

// GetOffer retrieves an offer by ID
func (s *offerServiceImpl) GetOffer(ctx context.Context, id string) (*entity.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return offer, nil
}

// ListOffers retrieves offers for a company
func (s *offerServiceImpl) ListOffers(ctx context.Context, companyID string, limit, offset int) ([]*entity.Offer, error) {
	offers, err := s.offerRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

// RecordScores writes the analysis grades produced by the external scoring
// collaborator back onto the offer. Scores never drive transitions here.
func (s *offerServiceImpl) RecordScores(ctx context.Context, id string, internalScore, leaserScore *string) error {
	for _, score := range []*string{internalScore, leaserScore} {
		if score != nil && !entity.IsValidScore(*score) {
			return fmt.Errorf("%w: %s", ErrInvalidScore, *score)
		}
	}

	if err := s.offerRepo.UpdateScores(ctx, id, internalScore, leaserScore); err != nil {
		s.logger.Error("Failed to record scores", "error", err, "offer_id", id)
		return fmt.Errorf("record scores: %w", err)
	}

	s.logger.Info("Scores recorded", "offer_id", id)
	return nil
}
