package workflow

import (
	"context"

	domainwf "github.com/itakecare/offerflow/internal/domain/workflow"
)

// TransitionRequest is a caller's intent to move an offer to a status.
type TransitionRequest struct {
	OfferID      string
	TargetStatus string
	Reason       string
	ActorID      string
}

// NotificationOptions configures the acceptance notification of the
// with-notification terminal validation path.
type NotificationOptions struct {
	CustomContent     string
	IncludeAttachment bool
}

// OutcomeStatus classifies the result of a transition request.
type OutcomeStatus string

const (
	// OutcomeCommitted means the status change and its side effects succeeded.
	OutcomeCommitted OutcomeStatus = "committed"

	// OutcomeCommittedWithWarning means the status change is durable but a
	// post-commit side effect (conversion or notification) failed. The caller
	// may retry just the failed side effect.
	OutcomeCommittedWithWarning OutcomeStatus = "committed_with_warning"

	// OutcomeScoringRequired means the move was intercepted by a scoring gate:
	// no status change happened and the caller must route the offer to the
	// external analysis identified by ScoringType.
	OutcomeScoringRequired OutcomeStatus = "scoring_required"

	// OutcomeValidationChoice means the target is the terminal step and the
	// caller must choose between the with- and without-notification
	// validation paths. No status change happened.
	OutcomeValidationChoice OutcomeStatus = "validation_choice_required"
)

// Outcome is the result of a transition request.
type Outcome struct {
	Status         OutcomeStatus        `json:"status"`
	PreviousStatus string               `json:"previous_status"`
	NewStatus      string               `json:"new_status,omitempty"`
	ScoringType    domainwf.ScoringType `json:"scoring_type,omitempty"`
	IsFinal        bool                 `json:"is_final"`
	InvoiceRef     string               `json:"invoice_ref,omitempty"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// StepView is the server-computed stepper model: the resolved visible
// sequence plus the offer's canonical position in it.
type StepView struct {
	Steps        domainwf.Sequence `json:"steps"`
	CurrentIndex int               `json:"current_index"`
}

// Engine orchestrates offer workflow transitions. It is the only component
// allowed to mutate an offer's workflow status.
type Engine interface {
	// RequestTransition validates and, for ordinary targets, commits the move.
	// Scoring gates and terminal targets come back as non-committing outcomes.
	RequestTransition(ctx context.Context, req TransitionRequest) (*Outcome, error)

	// ValidateWithNotification commits a terminal transition and then sends
	// the acceptance notification. Notification failure degrades the outcome
	// to committed-with-warning, never reverts the commit.
	ValidateWithNotification(ctx context.Context, req TransitionRequest, opts NotificationOptions) (*Outcome, error)

	// ValidateWithoutNotification commits a terminal transition without any
	// notification attempt.
	ValidateWithoutNotification(ctx context.Context, req TransitionRequest) (*Outcome, error)

	// RetryConversion re-runs only the conversion side effect for an offer
	// already resting on its terminal step.
	RetryConversion(ctx context.Context, offerID string) (*Outcome, error)

	// Steps returns the resolved sequence and canonical index for an offer.
	Steps(ctx context.Context, offerID string) (*StepView, error)
}
