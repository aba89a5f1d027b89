package workflow

import "sort"

// ScoringType identifies which external analysis a scoring-enabled step
// routes to.
type ScoringType string

const (
	ScoringInternal ScoringType = "internal"
	ScoringLeaser   ScoringType = "leaser"
)

// String returns the string representation of the scoring type
func (s ScoringType) String() string {
	return string(s)
}

// Step is one stage in an offer's workflow sequence.
type Step struct {
	Key            string      `json:"key"`
	Label          string      `json:"label"`
	Order          int         `json:"order"`
	IsRequired     bool        `json:"is_required"`
	IsVisible      bool        `json:"is_visible"`
	EnablesScoring bool        `json:"enables_scoring"`
	ScoringType    ScoringType `json:"scoring_type,omitempty"`
}

// Sequence is the ordered list of visible steps an offer is judged against.
// A resolved sequence is an immutable snapshot; orders are unique and
// contiguous from 1.
type Sequence []Step

// IndexOf returns the position of the step with the given key, or -1.
func (s Sequence) IndexOf(key string) int {
	for i, step := range s {
		if step.Key == key {
			return i
		}
	}
	return -1
}

// Terminal returns the last step of the sequence.
func (s Sequence) Terminal() Step {
	return s[len(s)-1]
}

// TerminalIndex returns the index of the last step.
func (s Sequence) TerminalIndex() int {
	return len(s) - 1
}

// ScoringIndex returns the position of the step flagged with the given
// scoring type, or -1.
func (s Sequence) ScoringIndex(st ScoringType) int {
	for i, step := range s {
		if step.EnablesScoring && step.ScoringType == st {
			return i
		}
	}
	return -1
}

// Normalize sorts steps by order, drops invisible ones and reassigns orders
// so they are contiguous from 1. It returns nil for an empty input so callers
// can fall back to a built-in default.
func Normalize(steps []Step) Sequence {
	visible := make([]Step, 0, len(steps))
	for _, step := range steps {
		if step.IsVisible {
			visible = append(visible, step)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	for i := range visible {
		visible[i].Order = i + 1
	}
	return Sequence(visible)
}
