package entity

import "time"

// TransitionRecord is one append-only audit entry for a committed status
// transition. Records are never mutated or deleted.
type TransitionRecord struct {
	ID             int64     `json:"id"`
	OfferID        string    `json:"offer_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Reason         string    `json:"reason,omitempty"`
	ActorID        string    `json:"actor_id"`
	Timestamp      time.Time `json:"timestamp"`
}
