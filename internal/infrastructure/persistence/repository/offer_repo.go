package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// OfferRepository implements port.OfferRepository
type OfferRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sql.DB, logger *zap.Logger) port.OfferRepository {
	return &OfferRepository{
		db:     db,
		logger: logger,
	}
}

const offerColumns = `
	id, reference, company_id, client_name, client_email, offer_category,
	is_purchase, workflow_status, workflow_template_id,
	internal_score, leaser_score, amount, monthly_payment, currency,
	created_at, updated_at
`

// Create creates a new offer
func (r *OfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	query := `
		INSERT INTO offers (
			id, reference, company_id, client_name, client_email, offer_category,
			is_purchase, workflow_status, workflow_template_id,
			internal_score, leaser_score, amount, monthly_payment, currency,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		offer.ID,
		offer.Reference,
		offer.CompanyID,
		offer.ClientName,
		offer.ClientEmail,
		offer.OfferCategory,
		offer.IsPurchase,
		offer.WorkflowStatus,
		offer.WorkflowTemplateID,
		offer.InternalScore,
		offer.LeaserScore,
		offer.Amount,
		offer.MonthlyPayment,
		offer.Currency,
		offer.CreatedAt,
		offer.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create offer", zap.Error(err))
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID retrieves an offer by ID
func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = ?`

	offer, err := r.scanOffer(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get offer by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return offer, nil
}

// GetByReference retrieves an offer by its company-scoped reference
func (r *OfferRepository) GetByReference(ctx context.Context, companyID, reference string) (*entity.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE company_id = ? AND reference = ?`

	offer, err := r.scanOffer(r.getExecutor(ctx).QueryRowContext(ctx, query, companyID, reference))
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get offer by reference",
			zap.String("company_id", companyID), zap.String("reference", reference), zap.Error(err))
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return offer, nil
}

// ListByCompany retrieves a company's offers with pagination, newest first
func (r *OfferRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE company_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list offers", zap.String("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []*entity.Offer
	for rows.Next() {
		offer, err := r.scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

// UpdateStatus writes the new workflow status only when the row still holds
// expectedPrevious. Losing that race surfaces as ErrConcurrencyConflict, a
// vanished row as ErrNotFound.
func (r *OfferRepository) UpdateStatus(ctx context.Context, id, status, expectedPrevious string) error {
	query := `
		UPDATE offers
		SET workflow_status = ?, updated_at = ?
		WHERE id = ? AND workflow_status = ?
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, status, time.Now(), id, expectedPrevious)
	if err != nil {
		r.logger.Error("Failed to update status", zap.String("id", id), zap.String("status", status), zap.Error(err))
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var current string
	err = r.getExecutor(ctx).QueryRowContext(ctx,
		`SELECT workflow_status FROM offers WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return port.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check offer status: %w", err)
	}

	return fmt.Errorf("%w: expected %s, found %s", workflow.ErrConcurrencyConflict, expectedPrevious, current)
}

// UpdateScores updates the analysis grades of an offer
func (r *OfferRepository) UpdateScores(ctx context.Context, id string, internalScore, leaserScore *string) error {
	query := `
		UPDATE offers
		SET internal_score = COALESCE(?, internal_score),
			leaser_score = COALESCE(?, leaser_score),
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, internalScore, leaserScore, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update scores", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update scores: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return port.ErrNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *OfferRepository) scanOffer(row scanner) (*entity.Offer, error) {
	var offer entity.Offer
	err := row.Scan(
		&offer.ID,
		&offer.Reference,
		&offer.CompanyID,
		&offer.ClientName,
		&offer.ClientEmail,
		&offer.OfferCategory,
		&offer.IsPurchase,
		&offer.WorkflowStatus,
		&offer.WorkflowTemplateID,
		&offer.InternalScore,
		&offer.LeaserScore,
		&offer.Amount,
		&offer.MonthlyPayment,
		&offer.Currency,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// getExecutor returns appropriate executor based on context
func (r *OfferRepository) getExecutor(ctx context.Context) executor {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.OfferRepository = (*OfferRepository)(nil)
