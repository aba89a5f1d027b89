package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
	"github.com/itakecare/offerflow/migrations"
	"github.com/itakecare/offerflow/pkg/database"
	"go.uber.org/zap"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.NewMigrator(db, zap.NewNop()).RunMigrations(migrations.FS); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func sampleOffer(id string) *entity.Offer {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Offer{
		ID:             id,
		Reference:      "OFF-" + id,
		CompanyID:      "co-001",
		ClientName:     "Acme SRL",
		ClientEmail:    "billing@acme.example",
		OfferCategory:  entity.CategoryClientRequest,
		WorkflowStatus: workflow.StatusDraft,
		Amount:         12000,
		MonthlyPayment: 350,
		Currency:       "EUR",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestOfferRepository_CreateAndGet(t *testing.T) {
	db := setupDB(t)
	repo := NewOfferRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	offer := sampleOffer("off-001")
	if err := repo.Create(ctx, offer); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "off-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Reference != offer.Reference || got.WorkflowStatus != workflow.StatusDraft {
		t.Errorf("got %+v, want reference %s at draft", got, offer.Reference)
	}

	byRef, err := repo.GetByReference(ctx, "co-001", offer.Reference)
	if err != nil {
		t.Fatalf("GetByReference() error = %v", err)
	}
	if byRef.ID != "off-001" {
		t.Errorf("GetByReference().ID = %s, want off-001", byRef.ID)
	}

	if _, err := repo.GetByID(ctx, "off-missing"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestOfferRepository_UpdateStatus_OptimisticConcurrency(t *testing.T) {
	db := setupDB(t)
	repo := NewOfferRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	if err := repo.Create(ctx, sampleOffer("off-001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdateStatus(ctx, "off-001", workflow.StatusInternalReview, workflow.StatusDraft); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	// Second writer still believes the offer is at draft
	err := repo.UpdateStatus(ctx, "off-001", workflow.StatusSent, workflow.StatusDraft)
	if !errors.Is(err, workflow.ErrConcurrencyConflict) {
		t.Errorf("stale UpdateStatus() error = %v, want ErrConcurrencyConflict", err)
	}

	got, err := repo.GetByID(ctx, "off-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.WorkflowStatus != workflow.StatusInternalReview {
		t.Errorf("status = %s, want internal_review untouched by the losing writer", got.WorkflowStatus)
	}

	if err := repo.UpdateStatus(ctx, "off-missing", workflow.StatusSent, workflow.StatusDraft); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestOfferRepository_UpdateScores(t *testing.T) {
	db := setupDB(t)
	repo := NewOfferRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	if err := repo.Create(ctx, sampleOffer("off-001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	internal := entity.ScoreA
	if err := repo.UpdateScores(ctx, "off-001", &internal, nil); err != nil {
		t.Fatalf("UpdateScores() error = %v", err)
	}

	leaser := entity.ScoreB
	if err := repo.UpdateScores(ctx, "off-001", nil, &leaser); err != nil {
		t.Fatalf("UpdateScores() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "off-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.InternalScore == nil || *got.InternalScore != entity.ScoreA {
		t.Error("internal score lost by the second partial update")
	}
	if got.LeaserScore == nil || *got.LeaserScore != entity.ScoreB {
		t.Error("leaser score not recorded")
	}
}

func TestAuditRepository_AppendOrder(t *testing.T) {
	db := setupDB(t)
	offerRepo := NewOfferRepository(db.DB, zap.NewNop())
	auditRepo := NewAuditRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	if err := offerRepo.Create(ctx, sampleOffer("off-001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	steps := []string{workflow.StatusInternalReview, workflow.StatusSent, workflow.StatusInternalReview}
	previous := workflow.StatusDraft
	for i, status := range steps {
		record := &entity.TransitionRecord{
			OfferID:        "off-001",
			PreviousStatus: previous,
			NewStatus:      status,
			ActorID:        "user-7",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := auditRepo.Append(ctx, record); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if record.ID == 0 {
			t.Error("Append() did not backfill the record ID")
		}
		previous = status
	}

	records, err := auditRepo.ListByOfferID(ctx, "off-001")
	if err != nil {
		t.Fatalf("ListByOfferID() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	for i, status := range steps {
		if records[i].NewStatus != status {
			t.Errorf("records[%d].NewStatus = %s, want %s (oldest first)", i, records[i].NewStatus, status)
		}
	}
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db := setupDB(t)
	offerRepo := NewOfferRepository(db.DB, zap.NewNop())
	auditRepo := NewAuditRepository(db.DB, zap.NewNop())
	txManager := NewTxManager(db.DB, zap.NewNop())
	ctx := context.Background()

	if err := offerRepo.Create(ctx, sampleOffer("off-001")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	wantErr := errors.New("append failed")
	err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := offerRepo.UpdateStatus(txCtx, "off-001", workflow.StatusInternalReview, workflow.StatusDraft); err != nil {
			return err
		}
		if err := auditRepo.Append(txCtx, &entity.TransitionRecord{
			OfferID:   "off-001",
			NewStatus: workflow.StatusInternalReview,
			Timestamp: time.Now(),
		}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTransaction() error = %v, want the inner error", err)
	}

	got, err := offerRepo.GetByID(ctx, "off-001")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.WorkflowStatus != workflow.StatusDraft {
		t.Errorf("status = %s, want draft after rollback", got.WorkflowStatus)
	}

	records, err := auditRepo.ListByOfferID(ctx, "off-001")
	if err != nil {
		t.Fatalf("ListByOfferID() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 after rollback", len(records))
	}
}

func TestTemplateRepository_DefaultSteps(t *testing.T) {
	db := setupDB(t)
	repo := NewTemplateRepository(db.DB, zap.NewNop())
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO workflow_templates (company_id, name, offer_category, is_purchase, is_default)
		VALUES ('co-001', 'Standard lease', 'client_request', 0, 1)
	`)
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO workflow_template_steps
			(template_id, step_key, label, step_order, is_required, is_visible, enables_scoring, scoring_type)
		VALUES
			(1, 'draft', 'Draft', 1, 1, 1, 0, NULL),
			(1, 'review', 'Review', 2, 1, 1, 1, 'internal'),
			(1, 'hidden', 'Hidden', 3, 0, 0, 0, NULL)
	`)
	if err != nil {
		t.Fatalf("seed steps: %v", err)
	}

	steps, err := repo.DefaultSteps(ctx, "co-001", entity.CategoryClientRequest, false)
	if err != nil {
		t.Fatalf("DefaultSteps() error = %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3 raw steps", len(steps))
	}
	if steps[1].ScoringType != workflow.ScoringInternal || !steps[1].EnablesScoring {
		t.Errorf("steps[1] = %+v, want internal scoring step", steps[1])
	}

	if _, err := repo.DefaultSteps(ctx, "co-other", entity.CategoryClientRequest, false); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DefaultSteps(unknown tenant) error = %v, want ErrNotFound", err)
	}

	byID, err := repo.StepsByTemplateID(ctx, "1")
	if err != nil {
		t.Fatalf("StepsByTemplateID() error = %v", err)
	}
	if len(byID) != 3 {
		t.Errorf("StepsByTemplateID() steps = %d, want 3", len(byID))
	}

	if _, err := repo.StepsByTemplateID(ctx, "99"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("StepsByTemplateID(missing) error = %v, want ErrNotFound", err)
	}
}
