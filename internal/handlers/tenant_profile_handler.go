package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// TenantProfileHandler handles tenant-profile CRUD and the profile chat.
type TenantProfileHandler struct {
	service services.TenantProfileService
}

// NewTenantProfileHandler creates a new TenantProfileHandler instance.
func NewTenantProfileHandler(service services.TenantProfileService) *TenantProfileHandler {
	return &TenantProfileHandler{service: service}
}

// CreateTenantProfileRequest is the body of POST /tenant-profiles.
type CreateTenantProfileRequest struct {
	Summary             *string                    `json:"summary"`
	Confidence          *float64                   `json:"confidence" binding:"omitempty,min=0,max=1"`
	PropertyID          string                     `json:"propertyId" binding:"required,uuid"`
	GenerationMethod    models.GenerationMethod    `json:"generationMethod" binding:"omitempty,oneof=manual questionnaire chat"`
	Demographics        models.Demographics        `json:"demographics"`
	Preferences         models.Preferences         `json:"preferences"`
	Lifestyle           models.Lifestyle           `json:"lifestyle"`
	ConversationHistory models.ConversationHistory `json:"conversationHistory" binding:"omitempty,dive"`
}

// UpdateTenantProfileRequest is the body of PATCH /tenant-profiles/:id.
// Omitted fields are left unchanged.
type UpdateTenantProfileRequest struct {
	Demographics        *models.Demographics        `json:"demographics"`
	Preferences         *models.Preferences         `json:"preferences"`
	Lifestyle           *models.Lifestyle           `json:"lifestyle"`
	Summary             *string                     `json:"summary"`
	ConversationHistory *models.ConversationHistory `json:"conversationHistory"`
	GenerationMethod    *models.GenerationMethod    `json:"generationMethod" binding:"omitempty,oneof=manual questionnaire chat"`
	Confidence          *float64                    `json:"confidence" binding:"omitempty,min=0,max=1"`
}

// ChatRequest is the body of POST /tenant-profiles/chat.
type ChatRequest struct {
	PropertyID string               `json:"propertyId" binding:"required,uuid"`
	Messages   []models.ChatMessage `json:"messages" binding:"required,min=1,max=60,dive"`
}

// TenantProfileResponse wraps a single tenant profile.
type TenantProfileResponse struct {
	TenantProfile *models.TenantProfile `json:"tenantProfile"`
}

// Create handles POST /api/v1/tenant-profiles.
func (h *TenantProfileHandler) Create(c *gin.Context) {
	var req CreateTenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	tp, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), services.TenantProfileInput{
		PropertyID:          req.PropertyID,
		Demographics:        req.Demographics,
		Preferences:         req.Preferences,
		Lifestyle:           req.Lifestyle,
		Summary:             req.Summary,
		ConversationHistory: req.ConversationHistory,
		GenerationMethod:    req.GenerationMethod,
		Confidence:          req.Confidence,
	})
	if err != nil {
		serviceError(c, err, "Failed to create tenant profile")
		return
	}
	c.JSON(http.StatusCreated, TenantProfileResponse{TenantProfile: tp})
}

// Get handles GET /api/v1/tenant-profiles/:id.
func (h *TenantProfileHandler) Get(c *gin.Context) {
	tp, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load tenant profile")
		return
	}
	c.JSON(http.StatusOK, TenantProfileResponse{TenantProfile: tp})
}

// GetByProperty handles GET /api/v1/properties/:id/tenant-profile.
func (h *TenantProfileHandler) GetByProperty(c *gin.Context) {
	tp, err := h.service.GetByProperty(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load tenant profile")
		return
	}
	c.JSON(http.StatusOK, TenantProfileResponse{TenantProfile: tp})
}

// Update handles PATCH /api/v1/tenant-profiles/:id.
func (h *TenantProfileHandler) Update(c *gin.Context) {
	var req UpdateTenantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	tp, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), services.TenantProfileUpdate{
		Demographics:        req.Demographics,
		Preferences:         req.Preferences,
		Lifestyle:           req.Lifestyle,
		Summary:             req.Summary,
		ConversationHistory: req.ConversationHistory,
		GenerationMethod:    req.GenerationMethod,
		Confidence:          req.Confidence,
	})
	if err != nil {
		serviceError(c, err, "Failed to update tenant profile")
		return
	}
	c.JSON(http.StatusOK, TenantProfileResponse{TenantProfile: tp})
}

// Delete handles DELETE /api/v1/tenant-profiles/:id.
func (h *TenantProfileHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err, "Failed to delete tenant profile")
		return
	}
	c.Status(http.StatusNoContent)
}

// Chat handles POST /api/v1/tenant-profiles/chat.
// The client owns the transcript and resends it on every turn.
func (h *TenantProfileHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), middleware.GetUserID(c), req.PropertyID, req.Messages)
	if err != nil {
		serviceError(c, err, "Failed to continue profile chat")
		return
	}
	c.JSON(http.StatusOK, resp)
}
