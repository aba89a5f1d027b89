package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/application/service"
	appwf "github.com/itakecare/offerflow/internal/application/workflow"
	domainwf "github.com/itakecare/offerflow/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	engine          appwf.Engine
	offerService    service.OfferService
	auditService    service.AuditService
	templateService service.TemplateService
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	engine appwf.Engine,
	offerService service.OfferService,
	auditService service.AuditService,
	templateService service.TemplateService,
	logger Logger,
) *Handlers {
	return &Handlers{
		engine:          engine,
		offerService:    offerService,
		auditService:    auditService,
		templateService: templateService,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateOfferRequest represents the body of POST /api/offers
type CreateOfferRequest struct {
	Reference          string  `json:"reference" binding:"required"`
	CompanyID          string  `json:"company_id" binding:"required"`
	ClientName         string  `json:"client_name"`
	ClientEmail        string  `json:"client_email"`
	OfferCategory      string  `json:"offer_category" binding:"required"`
	IsPurchase         bool    `json:"is_purchase"`
	WorkflowTemplateID *string `json:"workflow_template_id"`
	Amount             float64 `json:"amount"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	Currency           string  `json:"currency"`
	ActorID            string  `json:"actor_id"`
}

// TransitionBody represents the body of POST /api/offers/:id/transitions
type TransitionBody struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Reason       string `json:"reason"`
	ActorID      string `json:"actor_id"`
}

// ValidationBody represents the body of POST /api/offers/:id/validation
type ValidationBody struct {
	TargetStatus      string `json:"target_status" binding:"required"`
	Reason            string `json:"reason"`
	ActorID           string `json:"actor_id"`
	Notify            bool   `json:"notify"`
	CustomContent     string `json:"custom_content"`
	IncludeAttachment bool   `json:"include_attachment"`
}

// ScoresBody represents the body of PUT /api/offers/:id/scores
type ScoresBody struct {
	InternalScore *string `json:"internal_score"`
	LeaserScore   *string `json:"leaser_score"`
}

// ListOffersRequest represents query parameters for listing offers
type ListOffersRequest struct {
	CompanyID string `form:"company_id" binding:"required"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateOffer handles POST /api/offers
func (h *Handlers) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), service.CreateOfferInput{
		Reference:          req.Reference,
		CompanyID:          req.CompanyID,
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		OfferCategory:      req.OfferCategory,
		IsPurchase:         req.IsPurchase,
		WorkflowTemplateID: req.WorkflowTemplateID,
		Amount:             req.Amount,
		MonthlyPayment:     req.MonthlyPayment,
		Currency:           req.Currency,
		ActorID:            req.ActorID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: offer})
}

// GetOffer handles GET /api/offers/:id
func (h *Handlers) GetOffer(c *gin.Context) {
	offer, err := h.offerService.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: offer})
}

// ListOffers handles GET /api/offers
func (h *Handlers) ListOffers(c *gin.Context) {
	var req ListOffersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	offers, err := h.offerService.ListOffers(c.Request.Context(), req.CompanyID, req.Limit, req.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: offers})
}

// GetSteps handles GET /api/offers/:id/steps
func (h *Handlers) GetSteps(c *gin.Context) {
	view, err := h.engine.Steps(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: view})
}

// RecordScores handles PUT /api/offers/:id/scores
func (h *Handlers) RecordScores(c *gin.Context) {
	var req ScoresBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.offerService.RecordScores(c.Request.Context(), c.Param("id"), req.InternalScore, req.LeaserScore); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// RequestTransition handles POST /api/offers/:id/transitions
func (h *Handlers) RequestTransition(c *gin.Context) {
	var req TransitionBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	outcome, err := h.engine.RequestTransition(c.Request.Context(), appwf.TransitionRequest{
		OfferID:      c.Param("id"),
		TargetStatus: req.TargetStatus,
		Reason:       req.Reason,
		ActorID:      req.ActorID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// ValidateOffer handles POST /api/offers/:id/validation, the explicit choice
// between the with- and without-notification terminal paths.
func (h *Handlers) ValidateOffer(c *gin.Context) {
	var req ValidationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	transition := appwf.TransitionRequest{
		OfferID:      c.Param("id"),
		TargetStatus: req.TargetStatus,
		Reason:       req.Reason,
		ActorID:      req.ActorID,
	}

	var (
		outcome *appwf.Outcome
		err     error
	)
	if req.Notify {
		outcome, err = h.engine.ValidateWithNotification(c.Request.Context(), transition, appwf.NotificationOptions{
			CustomContent:     req.CustomContent,
			IncludeAttachment: req.IncludeAttachment,
		})
	} else {
		outcome, err = h.engine.ValidateWithoutNotification(c.Request.Context(), transition)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// RetryConversion handles POST /api/offers/:id/conversion/retry
func (h *Handlers) RetryConversion(c *gin.Context) {
	outcome, err := h.engine.RetryConversion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

// GetHistory handles GET /api/offers/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	records, err := h.auditService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// ExportHistory handles GET /api/offers/:id/history/export
func (h *Handlers) ExportHistory(c *gin.Context) {
	id := c.Param("id")
	data, err := h.auditService.ExportHistory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("offer_%s_history.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListTemplates handles GET /api/templates
func (h *Handlers) ListTemplates(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "company_id is required",
		})
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: templates})
}

// GetTemplateSteps handles GET /api/templates/:id/steps
func (h *Handlers) GetTemplateSteps(c *gin.Context) {
	seq, err := h.templateService.TemplateSteps(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: seq})
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Error("Invalid request", "error", err)
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   "invalid request: " + err.Error(),
	})
}

// respondError maps domain and application errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, port.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainwf.ErrInvalidTransition),
		errors.Is(err, domainwf.ErrReasonRequired):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domainwf.ErrNoOp),
		errors.Is(err, domainwf.ErrConcurrencyConflict),
		errors.Is(err, appwf.ErrNotTerminal):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   err.Error(),
	})
}
