package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// TemplateRepository implements port.TemplateRepository
type TemplateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sql.DB, logger *zap.Logger) port.TemplateRepository {
	return &TemplateRepository{
		db:     db,
		logger: logger,
	}
}

// ListTemplates retrieves the templates configured for a tenant
func (r *TemplateRepository) ListTemplates(ctx context.Context, companyID string) ([]*entity.WorkflowTemplate, error) {
	query := `
		SELECT id, company_id, name, offer_category, is_purchase, is_default
		FROM workflow_templates
		WHERE company_id = ?
		ORDER BY name ASC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, companyID)
	if err != nil {
		r.logger.Error("Failed to list templates", zap.String("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*entity.WorkflowTemplate
	for rows.Next() {
		var template entity.WorkflowTemplate
		err := rows.Scan(
			&template.ID,
			&template.CompanyID,
			&template.Name,
			&template.OfferCategory,
			&template.IsPurchase,
			&template.IsDefault,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &template)
	}

	return templates, rows.Err()
}

// StepsByTemplateID retrieves the steps of a template, or ErrNotFound when
// the template does not exist or has no steps.
func (r *TemplateRepository) StepsByTemplateID(ctx context.Context, templateID string) ([]workflow.Step, error) {
	query := `
		SELECT s.step_key, s.label, s.step_order, s.is_required, s.is_visible,
			s.enables_scoring, s.scoring_type
		FROM workflow_template_steps s
		WHERE s.template_id = ?
		ORDER BY s.step_order ASC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, templateID)
	if err != nil {
		r.logger.Error("Failed to get template steps", zap.String("template_id", templateID), zap.Error(err))
		return nil, fmt.Errorf("failed to get template steps: %w", err)
	}
	defer rows.Close()

	steps, err := scanSteps(rows)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, port.ErrNotFound
	}

	return steps, nil
}

// DefaultSteps retrieves the steps of the tenant's default template for the
// category and purchase flag, or ErrNotFound when none is configured.
func (r *TemplateRepository) DefaultSteps(ctx context.Context, companyID, offerCategory string, isPurchase bool) ([]workflow.Step, error) {
	query := `
		SELECT s.step_key, s.label, s.step_order, s.is_required, s.is_visible,
			s.enables_scoring, s.scoring_type
		FROM workflow_template_steps s
		JOIN workflow_templates t ON t.id = s.template_id
		WHERE t.company_id = ? AND t.offer_category = ? AND t.is_purchase = ?
			AND t.is_default = 1
		ORDER BY s.step_order ASC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, companyID, offerCategory, isPurchase)
	if err != nil {
		r.logger.Error("Failed to get default template steps",
			zap.String("company_id", companyID), zap.String("offer_category", offerCategory), zap.Error(err))
		return nil, fmt.Errorf("failed to get default template steps: %w", err)
	}
	defer rows.Close()

	steps, err := scanSteps(rows)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, port.ErrNotFound
	}

	return steps, nil
}

func scanSteps(rows *sql.Rows) ([]workflow.Step, error) {
	var steps []workflow.Step
	for rows.Next() {
		var step workflow.Step
		var scoringType sql.NullString
		err := rows.Scan(
			&step.Key,
			&step.Label,
			&step.Order,
			&step.IsRequired,
			&step.IsVisible,
			&step.EnablesScoring,
			&scoringType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template step: %w", err)
		}
		if scoringType.Valid {
			step.ScoringType = workflow.ScoringType(scoringType.String)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// getExecutor returns appropriate executor based on context
func (r *TemplateRepository) getExecutor(ctx context.Context) executor {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.TemplateRepository = (*TemplateRepository)(nil)
