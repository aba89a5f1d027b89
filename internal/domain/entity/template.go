package entity

import "time"

// WorkflowTemplate is a tenant-defined step sequence. A template either
// serves as the company default for an offer category or is attached to a
// single offer as an explicit override.
type WorkflowTemplate struct {
	ID            int64     `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	OfferCategory string    `json:"offer_category"`
	IsPurchase    bool      `json:"is_purchase"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

// WorkflowTemplateStep is one stage belonging to a WorkflowTemplate.
type WorkflowTemplateStep struct {
	ID             int64  `json:"id"`
	TemplateID     int64  `json:"template_id"`
	Key            string `json:"key"`
	Label          string `json:"label"`
	StepOrder      int    `json:"step_order"`
	IsRequired     bool   `json:"is_required"`
	IsVisible      bool   `json:"is_visible"`
	EnablesScoring bool   `json:"enables_scoring"`
	ScoringType    string `json:"scoring_type,omitempty"`
}
