package service

import (
	"context"
	"fmt"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
)

// TemplateService exposes tenant workflow templates for configuration UIs
type TemplateService interface {
	ListTemplates(ctx context.Context, companyID string) ([]*entity.WorkflowTemplate, error)
	TemplateSteps(ctx context.Context, templateID string) (workflow.Sequence, error)
}

type templateServiceImpl struct {
	templateRepo port.TemplateRepository
	logger       Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo port.TemplateRepository, logger Logger) TemplateService {
	return &templateServiceImpl{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// ListTemplates returns the templates configured for a tenant
func (s *templateServiceImpl) ListTemplates(ctx context.Context, companyID string) ([]*entity.WorkflowTemplate, error) {
	templates, err := s.templateRepo.ListTemplates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// TemplateSteps returns a template's normalized visible sequence, the same
// view the transition engine judges offers against.
func (s *templateServiceImpl) TemplateSteps(ctx context.Context, templateID string) (workflow.Sequence, error) {
	steps, err := s.templateRepo.StepsByTemplateID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("template steps: %w", err)
	}

	seq := workflow.Normalize(steps)
	if seq == nil {
		return nil, fmt.Errorf("template %s: %w", templateID, port.ErrNotFound)
	}
	return seq, nil
}
