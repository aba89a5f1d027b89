package workflow

// Canonical step keys. These are the only values that appear as step keys in
// the built-in sequences; persisted offers may still carry any of the legacy
// sub-state values below, which the alias map collapses onto these keys.
const (
	StatusDraft          = "draft"
	StatusInternalReview = "internal_review"
	StatusSent           = "sent"
	StatusLeaserReview   = "leaser_review"
	StatusContractReady  = "contract_ready"
	StatusInvoicing      = "invoicing"
)

// Legacy sub-state values still present in persisted offers.
const (
	StatusInternalApproved      = "internal_approved"
	StatusInternalDocsRequested = "internal_docs_requested"
	StatusInternalRejected      = "internal_rejected"
	StatusInternalScoring       = "internal_scoring"
	StatusLeaserApproved        = "leaser_approved"
	StatusLeaserDocsRequested   = "leaser_docs_requested"
	StatusLeaserRejected        = "leaser_rejected"
	StatusLeaserSent            = "leaser_sent"
	StatusOfferValidation       = "offer_validation"
	StatusFinanced              = "financed"
	StatusLeaserAccepted        = "leaser_accepted"
	StatusRejected              = "rejected"
)

// stepAliases collapses legacy sub-states onto the canonical step key they
// belong to. Kept as data rather than branching code so the table can grow
// without touching the resolution chain.
var stepAliases = map[string]string{
	StatusInternalApproved:      StatusInternalReview,
	StatusInternalDocsRequested: StatusInternalReview,
	StatusInternalRejected:      StatusInternalReview,
	StatusInternalScoring:       StatusInternalReview,
	StatusLeaserApproved:        StatusLeaserReview,
	StatusLeaserDocsRequested:   StatusLeaserReview,
	StatusLeaserRejected:        StatusLeaserReview,
	StatusLeaserSent:            StatusLeaserReview,
}

// terminalAliases are raw statuses that belong to whatever the terminal step
// of the resolved sequence is, regardless of its key.
var terminalAliases = map[string]bool{
	StatusOfferValidation: true,
	StatusFinanced:        true,
	StatusLeaserAccepted:  true,
}

// rejectionStatuses are targets that require a non-empty reason.
var rejectionStatuses = map[string]bool{
	StatusInternalRejected: true,
	StatusLeaserRejected:   true,
	StatusRejected:         true,
}

// IsRejection returns true if the status is a rejection-class status
func IsRejection(status string) bool {
	return rejectionStatuses[status]
}
