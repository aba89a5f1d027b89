package service

import (
	"context"
	"errors"
	"testing"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"github.com/itakecare/offerflow/internal/domain/workflow"
)

type mockOfferRepo struct {
	created      []*entity.Offer
	byReference  map[string]*entity.Offer
	byID         map[string]*entity.Offer
	createErr    error
	scoresErr    error
	scoreUpdates int
}

func (m *mockOfferRepo) Create(ctx context.Context, offer *entity.Offer) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, offer)
	return nil
}

func (m *mockOfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	if offer, ok := m.byID[id]; ok {
		return offer, nil
	}
	return nil, port.ErrNotFound
}

func (m *mockOfferRepo) GetByReference(ctx context.Context, companyID, reference string) (*entity.Offer, error) {
	if offer, ok := m.byReference[companyID+"/"+reference]; ok {
		return offer, nil
	}
	return nil, port.ErrNotFound
}

func (m *mockOfferRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Offer, error) {
	var offers []*entity.Offer
	for _, offer := range m.byID {
		if offer.CompanyID == companyID {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

func (m *mockOfferRepo) UpdateStatus(ctx context.Context, id, status, expectedPrevious string) error {
	return nil
}

func (m *mockOfferRepo) UpdateScores(ctx context.Context, id string, internalScore, leaserScore *string) error {
	if m.scoresErr != nil {
		return m.scoresErr
	}
	m.scoreUpdates++
	return nil
}

type mockAuditRepo struct {
	records   []*entity.TransitionRecord
	appendErr error
	listErr   error
}

func (m *mockAuditRepo) Append(ctx context.Context, record *entity.TransitionRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockAuditRepo) ListByOfferID(ctx context.Context, offerID string) ([]*entity.TransitionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*entity.TransitionRecord
	for _, record := range m.records {
		if record.OfferID == offerID {
			out = append(out, record)
		}
	}
	return out, nil
}

type mockTxManager struct {
	err error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

func validInput() CreateOfferInput {
	return CreateOfferInput{
		Reference:      "OFF-2024-0042",
		CompanyID:      "co-001",
		ClientName:     "Acme SRL",
		ClientEmail:    "billing@acme.example",
		OfferCategory:  entity.CategoryClientRequest,
		Amount:         12000,
		MonthlyPayment: 350,
		ActorID:        "user-7",
	}
}

func TestOfferService_CreateOffer(t *testing.T) {
	offerRepo := &mockOfferRepo{byReference: map[string]*entity.Offer{}, byID: map[string]*entity.Offer{}}
	auditRepo := &mockAuditRepo{}
	svc := NewOfferService(offerRepo, auditRepo, &mockTxManager{}, noopLogger{})

	offer, err := svc.CreateOffer(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateOffer() error = %v", err)
	}

	if offer.WorkflowStatus != workflow.StatusDraft {
		t.Errorf("WorkflowStatus = %s, want %s", offer.WorkflowStatus, workflow.StatusDraft)
	}
	if offer.Currency != "EUR" {
		t.Errorf("Currency = %s, want EUR default", offer.Currency)
	}
	if offer.ID == "" {
		t.Error("expected a generated offer ID")
	}
	if len(auditRepo.records) != 1 {
		t.Fatalf("audit records = %d, want 1 origin record", len(auditRepo.records))
	}
	origin := auditRepo.records[0]
	if origin.PreviousStatus != "" || origin.NewStatus != workflow.StatusDraft {
		t.Errorf("origin record = %s -> %s, want \"\" -> draft", origin.PreviousStatus, origin.NewStatus)
	}
}

func TestOfferService_CreateOffer_IdempotentOnReference(t *testing.T) {
	existing := &entity.Offer{ID: "off-existing", Reference: "OFF-2024-0042", CompanyID: "co-001"}
	offerRepo := &mockOfferRepo{
		byReference: map[string]*entity.Offer{"co-001/OFF-2024-0042": existing},
		byID:        map[string]*entity.Offer{},
	}
	svc := NewOfferService(offerRepo, &mockAuditRepo{}, &mockTxManager{}, noopLogger{})

	offer, err := svc.CreateOffer(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateOffer() error = %v", err)
	}

	if offer.ID != "off-existing" {
		t.Errorf("offer.ID = %s, want the existing offer back", offer.ID)
	}
	if len(offerRepo.created) != 0 {
		t.Errorf("created %d offers, want 0 on duplicate reference", len(offerRepo.created))
	}
}

func TestOfferService_CreateOffer_RejectsUnknownCategory(t *testing.T) {
	svc := NewOfferService(
		&mockOfferRepo{byReference: map[string]*entity.Offer{}},
		&mockAuditRepo{}, &mockTxManager{}, noopLogger{})

	input := validInput()
	input.OfferCategory = "mystery"

	_, err := svc.CreateOffer(context.Background(), input)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("error = %v, want ErrInvalidCategory", err)
	}
}

func TestOfferService_CreateOffer_TransactionFailure(t *testing.T) {
	svc := NewOfferService(
		&mockOfferRepo{byReference: map[string]*entity.Offer{}},
		&mockAuditRepo{},
		&mockTxManager{err: errors.New("disk full")},
		noopLogger{})

	_, err := svc.CreateOffer(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected error when the transaction fails")
	}
}

func TestOfferService_RecordScores(t *testing.T) {
	offerRepo := &mockOfferRepo{}
	svc := NewOfferService(offerRepo, &mockAuditRepo{}, &mockTxManager{}, noopLogger{})

	internal := entity.ScoreB
	if err := svc.RecordScores(context.Background(), "off-001", &internal, nil); err != nil {
		t.Fatalf("RecordScores() error = %v", err)
	}
	if offerRepo.scoreUpdates != 1 {
		t.Errorf("score updates = %d, want 1", offerRepo.scoreUpdates)
	}
}

func TestOfferService_RecordScores_RejectsInvalidGrade(t *testing.T) {
	offerRepo := &mockOfferRepo{}
	svc := NewOfferService(offerRepo, &mockAuditRepo{}, &mockTxManager{}, noopLogger{})

	bad := "Z"
	err := svc.RecordScores(context.Background(), "off-001", nil, &bad)
	if !errors.Is(err, ErrInvalidScore) {
		t.Errorf("error = %v, want ErrInvalidScore", err)
	}
	if offerRepo.scoreUpdates != 0 {
		t.Errorf("score updates = %d, want 0 on invalid grade", offerRepo.scoreUpdates)
	}
}
