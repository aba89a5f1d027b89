package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a forward move skips steps
	ErrInvalidTransition = errors.New("invalid transition: cannot skip steps")

	// ErrNoOp is returned when the target status equals the current status
	ErrNoOp = errors.New("target status equals current status")

	// ErrReasonRequired is returned when a rejection-class target has no reason
	ErrReasonRequired = errors.New("a reason is required for rejection statuses")

	// ErrConcurrencyConflict is returned when the expected previous status is stale
	ErrConcurrencyConflict = errors.New("offer status changed concurrently")
)
