package workflow

import (
	"context"
	"errors"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	domainwf "github.com/itakecare/offerflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// Resolver produces the ordered, visible step sequence an offer is judged
// against: explicit template override first, then the tenant default for the
// offer's category, then the built-in default. It never returns an empty
// sequence.
type Resolver struct {
	templateRepo port.TemplateRepository
	logger       *zap.Logger
}

// NewResolver creates a new sequence resolver
func NewResolver(templateRepo port.TemplateRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Resolve returns the step sequence for the offer.
func (r *Resolver) Resolve(ctx context.Context, offer *entity.Offer) domainwf.Sequence {
	if offer.WorkflowTemplateID != nil && *offer.WorkflowTemplateID != "" {
		steps, err := r.templateRepo.StepsByTemplateID(ctx, *offer.WorkflowTemplateID)
		switch {
		case err != nil && !errors.Is(err, port.ErrNotFound):
			r.logger.Warn("Failed to load workflow template, falling back",
				zap.String("offer_id", offer.ID),
				zap.String("template_id", *offer.WorkflowTemplateID),
				zap.Error(err))
		default:
			if seq := domainwf.Normalize(steps); len(seq) > 0 {
				return seq
			}
		}
	}

	steps, err := r.templateRepo.DefaultSteps(ctx, offer.CompanyID, offer.OfferCategory, offer.IsPurchase)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		r.logger.Warn("Failed to load tenant default sequence, falling back",
			zap.String("offer_id", offer.ID),
			zap.String("company_id", offer.CompanyID),
			zap.Error(err))
	}
	if seq := domainwf.Normalize(steps); len(seq) > 0 {
		return seq
	}

	return domainwf.DefaultSequence(offer.IsPurchase)
}
