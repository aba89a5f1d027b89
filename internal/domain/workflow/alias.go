package workflow

import "strings"

// CanonicalStep maps a raw persisted status onto an index into the resolved
// sequence. The resolution chain degrades gracefully and never fails: an
// unresolvable status means the offer is treated as being at the first step.
//
// Chain: exact key match, alias table, fuzzy containment, scoring-type hint,
// then index 0.
func CanonicalStep(rawStatus string, seq Sequence) int {
	if len(seq) == 0 {
		return 0
	}

	if i := seq.IndexOf(rawStatus); i >= 0 {
		return i
	}

	if terminalAliases[rawStatus] {
		return seq.TerminalIndex()
	}
	if key, ok := stepAliases[rawStatus]; ok {
		if i := seq.IndexOf(key); i >= 0 {
			return i
		}
	}

	if rawStatus != "" {
		for i, step := range seq {
			if strings.Contains(rawStatus, step.Key) || strings.Contains(step.Key, rawStatus) {
				return i
			}
		}
	}

	switch {
	case strings.Contains(rawStatus, "internal"):
		if i := seq.ScoringIndex(ScoringInternal); i >= 0 {
			return i
		}
	case strings.Contains(rawStatus, "leaser"):
		if i := seq.ScoringIndex(ScoringLeaser); i >= 0 {
			return i
		}
	}

	return 0
}
