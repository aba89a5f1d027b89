package entity

import "time"

// Offer represents a financing offer moving through the approval workflow.
// WorkflowStatus is only ever mutated through the transition engine.
type Offer struct {
	ID                 string    `json:"id"`
	Reference          string    `json:"reference"`
	CompanyID          string    `json:"company_id"`
	ClientName         string    `json:"client_name"`
	ClientEmail        string    `json:"client_email"`
	OfferCategory      string    `json:"offer_category"`
	IsPurchase         bool      `json:"is_purchase"`
	WorkflowStatus     string    `json:"workflow_status"`
	WorkflowTemplateID *string   `json:"workflow_template_id,omitempty"`
	InternalScore      *string   `json:"internal_score,omitempty"`
	LeaserScore        *string   `json:"leaser_score,omitempty"`
	Amount             float64   `json:"amount"`
	MonthlyPayment     float64   `json:"monthly_payment"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
