package service

import (
	"context"
	"errors"
	"testing"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
)

type mockTemplateRepo struct {
	templates []*entity.WorkflowTemplate
	steps     map[string][]workflow.Step
	err       error
}

func (m *mockTemplateRepo) ListTemplates(ctx context.Context, companyID string) ([]*entity.WorkflowTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.templates, nil
}

func (m *mockTemplateRepo) StepsByTemplateID(ctx context.Context, templateID string) ([]workflow.Step, error) {
	if m.err != nil {
		return nil, m.err
	}
	steps, exists := m.steps[templateID]
	if !exists {
		return nil, port.ErrNotFound
	}
	return steps, nil
}

func (m *mockTemplateRepo) DefaultSteps(ctx context.Context, companyID, offerCategory string, isPurchase bool) ([]workflow.Step, error) {
	return nil, port.ErrNotFound
}

func TestTemplateService_ListTemplates(t *testing.T) {
	repo := &mockTemplateRepo{
		templates: []*entity.WorkflowTemplate{
			{ID: 1, CompanyID: "co-001", Name: "Standard lease", IsDefault: true},
			{ID: 2, CompanyID: "co-001", Name: "Fast track"},
		},
	}
	svc := NewTemplateService(repo, noopLogger{})

	templates, err := svc.ListTemplates(context.Background(), "co-001")
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(templates) != 2 {
		t.Errorf("templates = %d, want 2", len(templates))
	}
}

func TestTemplateService_TemplateSteps_Normalized(t *testing.T) {
	repo := &mockTemplateRepo{
		steps: map[string][]workflow.Step{
			"1": {
				{Key: "closing", Order: 3, IsVisible: true},
				{Key: "intake", Order: 1, IsVisible: true},
				{Key: "hidden", Order: 2, IsVisible: false},
			},
		},
	}
	svc := NewTemplateService(repo, noopLogger{})

	seq, err := svc.TemplateSteps(context.Background(), "1")
	if err != nil {
		t.Fatalf("TemplateSteps() error = %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("sequence len = %d, want 2 visible steps", len(seq))
	}
	if seq[0].Key != "intake" || seq[1].Key != "closing" {
		t.Errorf("sequence = [%s, %s], want [intake, closing]", seq[0].Key, seq[1].Key)
	}
	if seq[1].Order != 2 {
		t.Errorf("seq[1].Order = %d, want reassigned 2", seq[1].Order)
	}
}

func TestTemplateService_TemplateSteps_Unknown(t *testing.T) {
	svc := NewTemplateService(&mockTemplateRepo{}, noopLogger{})

	if _, err := svc.TemplateSteps(context.Background(), "missing"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
