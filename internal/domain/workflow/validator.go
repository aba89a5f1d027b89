package workflow

import "strings"

// Decision is the validator's verdict on a permitted move.
//
// When Gate is set the status must not change: the caller routes the offer to
// the external analysis identified by ScoringType instead. When IsFinal is
// set the transition commits normally but the executor must run the terminal
// conversion side effects afterwards.
type Decision struct {
	Gate         bool
	ScoringType  ScoringType
	IsFinal      bool
	CurrentIndex int
	TargetIndex  int
}

// Validate decides whether moving an offer from currentStatus to targetStatus
// is permitted under the resolved sequence.
//
// Rules, in order:
//  1. a forward (or same-step) request for a scoring-enabled step, addressed
//     by its own key, raises a scoring gate instead of a transition;
//  2. forward moves are limited to one step ahead of the canonical step;
//  3. requesting the exact current status is a no-op;
//  4. rejection-class targets require a non-empty reason;
//  5. a target on the terminal step flags the transition as final.
//
// Backward moves are always permitted and never re-raise a scoring gate.
func Validate(seq Sequence, currentStatus, targetStatus, reason string) (Decision, error) {
	current := CanonicalStep(currentStatus, seq)
	target := CanonicalStep(targetStatus, seq)

	// Scoring gates only fire when the step is addressed by its own key.
	// Sub-states that alias onto a scoring step (rejections, docs requests)
	// are ordinary status changes within that step.
	if i := seq.IndexOf(targetStatus); i >= 0 && seq[i].EnablesScoring && i >= current {
		return Decision{
			Gate:         true,
			ScoringType:  seq[i].ScoringType,
			CurrentIndex: current,
			TargetIndex:  i,
		}, nil
	}

	if target > current+1 {
		return Decision{}, ErrInvalidTransition
	}

	if targetStatus == currentStatus {
		return Decision{}, ErrNoOp
	}

	if IsRejection(targetStatus) && strings.TrimSpace(reason) == "" {
		return Decision{}, ErrReasonRequired
	}

	return Decision{
		IsFinal:      target == seq.TerminalIndex(),
		CurrentIndex: current,
		TargetIndex:  target,
	}, nil
}
