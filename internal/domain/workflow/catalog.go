package workflow

// DefaultLeaseSequence returns the built-in sequence used when no tenant
// template applies to a lease offer.
func DefaultLeaseSequence() Sequence {
	return Sequence{
		{Key: StatusDraft, Label: "Draft", Order: 1, IsRequired: true, IsVisible: true},
		{Key: StatusInternalReview, Label: "Internal Review", Order: 2, IsRequired: true, IsVisible: true, EnablesScoring: true, ScoringType: ScoringInternal},
		{Key: StatusSent, Label: "Sent", Order: 3, IsRequired: true, IsVisible: true},
		{Key: StatusLeaserReview, Label: "Leaser Review", Order: 4, IsRequired: true, IsVisible: true, EnablesScoring: true, ScoringType: ScoringLeaser},
		{Key: StatusContractReady, Label: "Contract Ready", Order: 5, IsRequired: true, IsVisible: true},
	}
}

// DefaultPurchaseSequence returns the built-in sequence for purchase offers,
// which ends in an invoicing step instead of contract readiness.
func DefaultPurchaseSequence() Sequence {
	return Sequence{
		{Key: StatusDraft, Label: "Draft", Order: 1, IsRequired: true, IsVisible: true},
		{Key: StatusInternalReview, Label: "Internal Review", Order: 2, IsRequired: true, IsVisible: true, EnablesScoring: true, ScoringType: ScoringInternal},
		{Key: StatusSent, Label: "Sent", Order: 3, IsRequired: true, IsVisible: true},
		{Key: StatusLeaserReview, Label: "Leaser Review", Order: 4, IsRequired: true, IsVisible: true, EnablesScoring: true, ScoringType: ScoringLeaser},
		{Key: StatusInvoicing, Label: "Invoicing", Order: 5, IsRequired: true, IsVisible: true},
	}
}

// DefaultSequence returns the built-in sequence for the purchase flag.
func DefaultSequence(isPurchase bool) Sequence {
	if isPurchase {
		return DefaultPurchaseSequence()
	}
	return DefaultLeaseSequence()
}
