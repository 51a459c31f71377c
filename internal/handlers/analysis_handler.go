package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// AnalysisHandler handles persisted analyses.
type AnalysisHandler struct {
	service services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// BudgetRequest is an optional one-time budget for a run.
type BudgetRequest struct {
	Min int `json:"min" binding:"min=0"`
	Max int `json:"max" binding:"min=0"`
}

// CreateAnalysisRequest is the body of POST /analyses.
type CreateAnalysisRequest struct {
	Budget           *BudgetRequest `json:"budget"`
	ExecutiveSummary *string        `json:"executiveSummary" binding:"omitempty,max=10000"`
	ActionPlan       *string        `json:"actionPlan" binding:"omitempty,max=10000"`
	PropertyID       string         `json:"propertyId" binding:"required,uuid"`
	TenantProfileID  string         `json:"tenantProfileId" binding:"required,uuid"`
}

// UpdateAnalysisStatusRequest is the body of PATCH /analyses/:id/status.
type UpdateAnalysisStatusRequest struct {
	Status models.AnalysisStatus `json:"status" binding:"required,oneof=draft final archived"`
}

// AnalysisResponse wraps a single analysis.
type AnalysisResponse struct {
	Analysis *models.Analysis `json:"analysis"`
}

// AnalysisListResponse wraps a property's analyses.
type AnalysisListResponse struct {
	Analyses []models.Analysis `json:"analyses"`
	Count    int               `json:"count"`
}

// Create handles POST /api/v1/analyses.
func (h *AnalysisHandler) Create(c *gin.Context) {
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	in := services.AnalysisInput{
		PropertyID:       req.PropertyID,
		TenantProfileID:  req.TenantProfileID,
		ExecutiveSummary: req.ExecutiveSummary,
		ActionPlan:       req.ActionPlan,
	}
	if req.Budget != nil {
		in.Budget = &services.Budget{Min: req.Budget.Min, Max: req.Budget.Max}
	}

	a, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		serviceError(c, err, "Failed to create analysis")
		return
	}
	c.JSON(http.StatusCreated, AnalysisResponse{Analysis: a})
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load analysis")
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: a})
}

// ListByProperty handles GET /api/v1/properties/:id/analyses.
func (h *AnalysisHandler) ListByProperty(c *gin.Context) {
	analyses, err := h.service.ListByProperty(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to list analyses")
		return
	}
	if analyses == nil {
		analyses = []models.Analysis{}
	}
	c.JSON(http.StatusOK, AnalysisListResponse{Analyses: analyses, Count: len(analyses)})
}

// UpdateStatus handles PATCH /api/v1/analyses/:id/status.
func (h *AnalysisHandler) UpdateStatus(c *gin.Context) {
	var req UpdateAnalysisStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	a, err := h.service.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Status)
	if err != nil {
		serviceError(c, err, "Failed to update analysis")
		return
	}
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: a})
}
