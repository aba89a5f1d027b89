package workflow

import (
	"errors"
	"testing"
)

func TestValidate_ScoringGate(t *testing.T) {
	seq := DefaultLeaseSequence()

	tests := []struct {
		name        string
		current     string
		target      string
		wantGate    bool
		wantScoring ScoringType
	}{
		{"forward into internal review", "draft", "internal_review", true, ScoringInternal},
		{"forward into leaser review", "sent", "leaser_review", true, ScoringLeaser},
		{"same-step re-entry re-raises gate", "internal_review", "internal_review", true, ScoringInternal},
		{"forward gate wins over skip rule", "draft", "leaser_review", true, ScoringLeaser},
		{"gate from unresolvable current status", "archived", "internal_review", true, ScoringInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := Validate(seq, tt.current, tt.target, "")
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if decision.Gate != tt.wantGate {
				t.Errorf("Validate() gate = %v, want %v", decision.Gate, tt.wantGate)
			}
			if decision.ScoringType != tt.wantScoring {
				t.Errorf("Validate() scoring type = %s, want %s", decision.ScoringType, tt.wantScoring)
			}
		})
	}
}

func TestValidate_BackwardIntoScoringStepDoesNotGate(t *testing.T) {
	seq := DefaultLeaseSequence()

	decision, err := Validate(seq, "sent", "internal_review", "")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if decision.Gate {
		t.Error("backward move into a scoring step must not re-raise the gate")
	}
	if decision.IsFinal {
		t.Error("backward move must not be final")
	}
	if decision.TargetIndex != 1 {
		t.Errorf("Validate() target index = %d, want 1", decision.TargetIndex)
	}
}

func TestValidate_ForwardSkipRejected(t *testing.T) {
	seq := DefaultLeaseSequence()

	// Scenario: draft straight to sent skips internal review.
	_, err := Validate(seq, "draft", "sent", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Validate() error = %v, want ErrInvalidTransition", err)
	}

	// Skipping to the terminal step is rejected the same way.
	_, err = Validate(seq, "draft", "contract_ready", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Validate() error = %v, want ErrInvalidTransition", err)
	}
}

func TestValidate_NoOp(t *testing.T) {
	seq := DefaultLeaseSequence()

	_, err := Validate(seq, "sent", "sent", "")
	if !errors.Is(err, ErrNoOp) {
		t.Errorf("Validate() error = %v, want ErrNoOp", err)
	}
}

func TestValidate_RejectionRequiresReason(t *testing.T) {
	seq := DefaultLeaseSequence()

	tests := []struct {
		name    string
		current string
		target  string
		reason  string
		wantErr error
	}{
		{"leaser rejection without reason", "leaser_review", "leaser_rejected", "", ErrReasonRequired},
		{"leaser rejection with blank reason", "leaser_review", "leaser_rejected", "   ", ErrReasonRequired},
		{"leaser rejection with reason", "leaser_review", "leaser_rejected", "insufficient guarantees", nil},
		{"internal rejection without reason", "internal_review", "internal_rejected", "", ErrReasonRequired},
		{"internal rejection with reason", "internal_review", "internal_rejected", "incomplete file", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(seq, tt.current, tt.target, tt.reason)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_TerminalFlag(t *testing.T) {
	seq := DefaultLeaseSequence()

	decision, err := Validate(seq, "leaser_review", "contract_ready", "")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !decision.IsFinal {
		t.Error("transition to the terminal step must be flagged final")
	}

	// Terminal aliases resolve to the last step and carry the flag too.
	decision, err = Validate(seq, "leaser_review", "financed", "")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !decision.IsFinal {
		t.Error("terminal alias must be flagged final")
	}

	decision, err = Validate(seq, "draft", "internal_rejected", "missing documents")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if decision.IsFinal {
		t.Error("non-terminal transition must not be flagged final")
	}
}

func TestValidate_BackwardMovesAlwaysPermitted(t *testing.T) {
	seq := DefaultLeaseSequence()

	tests := []struct {
		current string
		target  string
	}{
		{"contract_ready", "draft"},
		{"contract_ready", "sent"},
		{"leaser_review", "draft"},
		{"sent", "draft"},
	}

	for _, tt := range tests {
		t.Run(tt.current+"_to_"+tt.target, func(t *testing.T) {
			decision, err := Validate(seq, tt.current, tt.target, "")
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if decision.Gate || decision.IsFinal {
				t.Errorf("backward move decision = %+v, want plain transition", decision)
			}
		})
	}
}

func TestValidate_PurchaseTerminal(t *testing.T) {
	seq := DefaultPurchaseSequence()

	decision, err := Validate(seq, "leaser_review", "invoicing", "")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !decision.IsFinal {
		t.Error("transition to invoicing must be flagged final for purchase offers")
	}
}
