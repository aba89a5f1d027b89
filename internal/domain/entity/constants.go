package entity

// Offer category constants
const (
	CategoryClientRequest   = "client_request"
	CategoryAmbassadorOffer = "ambassador_offer"
	CategoryPartnerOffer    = "partner_offer"
	CategoryInternalOffer   = "internal_offer"
)

var validCategories = map[string]bool{
	CategoryClientRequest:   true,
	CategoryAmbassadorOffer: true,
	CategoryPartnerOffer:    true,
	CategoryInternalOffer:   true,
}

// IsValidCategory returns true if the category is a known offer category
func IsValidCategory(category string) bool {
	return validCategories[category]
}

// Score constants for internal and leaser analysis results
const (
	ScoreA = "A"
	ScoreB = "B"
	ScoreC = "C"
)

// IsValidScore returns true if the score is a known analysis grade
func IsValidScore(score string) bool {
	return score == ScoreA || score == ScoreB || score == ScoreC
}
