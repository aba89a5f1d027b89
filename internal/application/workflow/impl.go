package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	domainwf "github.com/itakecare/offerflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// ErrNotTerminal is returned when a conversion retry is requested for an
// offer that is not resting on its terminal step.
var ErrNotTerminal = errors.New("offer is not in a terminal status")

// engineImpl is the concrete implementation of Engine
type engineImpl struct {
	offerRepo port.OfferRepository
	auditRepo port.AuditRepository
	txManager port.TransactionManager
	resolver  *Resolver
	contracts port.ContractCreator
	invoices  port.InvoiceIssuer
	notifier  port.Notifier
	logger    *zap.Logger
}

// NewEngine creates a new transition engine
func NewEngine(
	offerRepo port.OfferRepository,
	auditRepo port.AuditRepository,
	txManager port.TransactionManager,
	resolver *Resolver,
	contracts port.ContractCreator,
	invoices port.InvoiceIssuer,
	notifier port.Notifier,
	logger *zap.Logger,
) Engine {
	return &engineImpl{
		offerRepo: offerRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		resolver:  resolver,
		contracts: contracts,
		invoices:  invoices,
		notifier:  notifier,
		logger:    logger,
	}
}

// RequestTransition processes an ordinary transition intent.
func (e *engineImpl) RequestTransition(ctx context.Context, req TransitionRequest) (*Outcome, error) {
	return e.transition(ctx, req, nil, false)
}

// ValidateWithNotification commits a terminal transition, then notifies.
func (e *engineImpl) ValidateWithNotification(ctx context.Context, req TransitionRequest, opts NotificationOptions) (*Outcome, error) {
	return e.transition(ctx, req, &opts, true)
}

// ValidateWithoutNotification commits a terminal transition silently.
func (e *engineImpl) ValidateWithoutNotification(ctx context.Context, req TransitionRequest) (*Outcome, error) {
	return e.transition(ctx, req, nil, true)
}

func (e *engineImpl) transition(ctx context.Context, req TransitionRequest, notify *NotificationOptions, commitFinal bool) (*Outcome, error) {
	offer, err := e.offerRepo.GetByID(ctx, req.OfferID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}

	seq := e.resolver.Resolve(ctx, offer)

	decision, err := domainwf.Validate(seq, offer.WorkflowStatus, req.TargetStatus, req.Reason)
	if err != nil {
		return nil, err
	}

	if decision.Gate {
		e.logger.Info("Scoring gate raised",
			zap.String("offer_id", offer.ID),
			zap.String("scoring_type", decision.ScoringType.String()),
			zap.String("target_status", req.TargetStatus))
		return &Outcome{
			Status:         OutcomeScoringRequired,
			PreviousStatus: offer.WorkflowStatus,
			ScoringType:    decision.ScoringType,
		}, nil
	}

	if decision.IsFinal && !commitFinal {
		return &Outcome{
			Status:         OutcomeValidationChoice,
			PreviousStatus: offer.WorkflowStatus,
			IsFinal:        true,
		}, nil
	}

	return e.commit(ctx, offer, req, decision, notify)
}

// commit persists the status change and the audit record as one unit, then
// runs the post-commit side effects. Side effect failures degrade the
// outcome but never revert the commit.
func (e *engineImpl) commit(ctx context.Context, offer *entity.Offer, req TransitionRequest, decision domainwf.Decision, notify *NotificationOptions) (*Outcome, error) {
	previous := offer.WorkflowStatus
	record := &entity.TransitionRecord{
		OfferID:        offer.ID,
		PreviousStatus: previous,
		NewStatus:      req.TargetStatus,
		Reason:         req.Reason,
		ActorID:        req.ActorID,
		Timestamp:      time.Now(),
	}

	err := e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.offerRepo.UpdateStatus(txCtx, offer.ID, req.TargetStatus, previous); err != nil {
			return err
		}
		if err := e.auditRepo.Append(txCtx, record); err != nil {
			return fmt.Errorf("append audit record: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainwf.ErrConcurrencyConflict) {
			e.logger.Warn("Concurrent transition lost the race",
				zap.String("offer_id", offer.ID),
				zap.String("expected_previous", previous))
		}
		return nil, err
	}

	offer.WorkflowStatus = req.TargetStatus
	e.logger.Info("Transition committed",
		zap.String("offer_id", offer.ID),
		zap.String("previous_status", previous),
		zap.String("new_status", req.TargetStatus),
		zap.Bool("is_final", decision.IsFinal))

	outcome := &Outcome{
		Status:         OutcomeCommitted,
		PreviousStatus: previous,
		NewStatus:      req.TargetStatus,
		IsFinal:        decision.IsFinal,
	}

	if decision.IsFinal {
		e.convert(ctx, offer, outcome)
	}

	if notify != nil {
		if err := e.notifier.SendAcceptance(ctx, offer, notify.CustomContent, notify.IncludeAttachment); err != nil {
			e.logger.Warn("Acceptance notification failed after commit",
				zap.String("offer_id", offer.ID),
				zap.Error(err))
			outcome.Status = OutcomeCommittedWithWarning
			outcome.Warnings = append(outcome.Warnings, "notification failed: "+err.Error())
		}
	}

	return outcome, nil
}

// convert triggers the downstream conversion for a terminal commit: contract
// creation for lease offers, draft-invoice creation for purchase offers.
func (e *engineImpl) convert(ctx context.Context, offer *entity.Offer, outcome *Outcome) {
	if offer.IsPurchase {
		ref, err := e.invoices.CreateDraft(ctx, offer)
		if err != nil {
			e.logger.Warn("Draft invoice creation failed after commit",
				zap.String("offer_id", offer.ID),
				zap.Error(err))
			outcome.Status = OutcomeCommittedWithWarning
			outcome.Warnings = append(outcome.Warnings, "invoice creation failed: "+err.Error())
			return
		}
		outcome.InvoiceRef = ref
		return
	}

	if err := e.contracts.CreateContract(ctx, offer); err != nil {
		e.logger.Warn("Contract creation failed after commit",
			zap.String("offer_id", offer.ID),
			zap.Error(err))
		outcome.Status = OutcomeCommittedWithWarning
		outcome.Warnings = append(outcome.Warnings, "contract creation failed: "+err.Error())
	}
}

// RetryConversion re-runs the conversion side effect only, without touching
// the offer's status or audit history.
func (e *engineImpl) RetryConversion(ctx context.Context, offerID string) (*Outcome, error) {
	offer, err := e.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}

	seq := e.resolver.Resolve(ctx, offer)
	if domainwf.CanonicalStep(offer.WorkflowStatus, seq) != seq.TerminalIndex() {
		return nil, ErrNotTerminal
	}

	outcome := &Outcome{
		Status:         OutcomeCommitted,
		PreviousStatus: offer.WorkflowStatus,
		NewStatus:      offer.WorkflowStatus,
		IsFinal:        true,
	}
	e.convert(ctx, offer, outcome)
	return outcome, nil
}

// Steps returns the stepper read model for an offer.
func (e *engineImpl) Steps(ctx context.Context, offerID string) (*StepView, error) {
	offer, err := e.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("load offer: %w", err)
	}

	seq := e.resolver.Resolve(ctx, offer)
	return &StepView{
		Steps:        seq,
		CurrentIndex: domainwf.CanonicalStep(offer.WorkflowStatus, seq),
	}, nil
}
