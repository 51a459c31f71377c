package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// PropertyHandler handles property CRUD and rent estimation.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// PropertyRequest is the body of POST and PUT /properties.
type PropertyRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=2000"`
	Address     models.Address         `json:"address"`
	Details     models.PropertyDetails `json:"details"`
	Latitude    float64                `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64                `json:"longitude" binding:"min=-180,max=180"`
}

func (r PropertyRequest) input() services.PropertyInput {
	return services.PropertyInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Details:     r.Details,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// PropertyResponse wraps a single property.
type PropertyResponse struct {
	Property *models.Property `json:"property"`
}

// PropertyListResponse wraps the caller's properties.
type PropertyListResponse struct {
	Properties []models.Property `json:"properties"`
	Count      int               `json:"count"`
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), req.input())
	if err != nil {
		serviceError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, PropertyResponse{Property: p})
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.service.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err, "Failed to list properties")
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	c.JSON(http.StatusOK, PropertyListResponse{Properties: properties, Count: len(properties)})
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load property")
		return
	}
	c.JSON(http.StatusOK, PropertyResponse{Property: p})
}

// Update handles PUT /api/v1/properties/:id. The body replaces every
// editable field.
func (h *PropertyHandler) Update(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.input())
	if err != nil {
		serviceError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, PropertyResponse{Property: p})
}

// Delete handles DELETE /api/v1/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		serviceError(c, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}

// RentEstimate handles GET /api/v1/properties/:id/rent-estimate.
func (h *PropertyHandler) RentEstimate(c *gin.Context) {
	est, err := h.service.EstimateRent(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to estimate rent")
		return
	}
	c.JSON(http.StatusOK, est)
}
