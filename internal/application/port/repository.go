package port

import (
	"context"
	"errors"

	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// OfferRepository defines persistence operations for Offer
type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	GetByReference(ctx context.Context, companyID, reference string) (*entity.Offer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Offer, error)

	// UpdateStatus performs an optimistic-concurrency status write: the row is
	// only updated when its current status still equals expectedPrevious.
	// A stale expectation fails with workflow.ErrConcurrencyConflict.
	UpdateStatus(ctx context.Context, id, status, expectedPrevious string) error

	UpdateScores(ctx context.Context, id string, internalScore, leaserScore *string) error
}

// AuditRepository defines persistence operations for the append-only
// transition history. There is deliberately no update or delete.
type AuditRepository interface {
	Append(ctx context.Context, record *entity.TransitionRecord) error
	ListByOfferID(ctx context.Context, offerID string) ([]*entity.TransitionRecord, error)
}

// TemplateRepository resolves tenant-defined workflow step sequences.
type TemplateRepository interface {
	// ListTemplates returns the templates configured for a tenant.
	ListTemplates(ctx context.Context, companyID string) ([]*entity.WorkflowTemplate, error)

	// StepsByTemplateID returns the steps of an explicit template override.
	StepsByTemplateID(ctx context.Context, templateID string) ([]workflow.Step, error)

	// DefaultSteps returns the steps of the tenant's default template for the
	// category and purchase flag, or ErrNotFound when none is configured.
	DefaultSteps(ctx context.Context, companyID, offerCategory string, isPurchase bool) ([]workflow.Step, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
