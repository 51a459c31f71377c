package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// AmenityHandler handles the amenity catalog.
type AmenityHandler struct {
	service services.AmenityService
}

// NewAmenityHandler creates a new AmenityHandler instance.
func NewAmenityHandler(service services.AmenityService) *AmenityHandler {
	return &AmenityHandler{service: service}
}

// AmenityListQuery holds the catalog filters.
type AmenityListQuery struct {
	Category *string `form:"category" binding:"omitempty,max=100"`
	MinCost  *int    `form:"minCost" binding:"omitempty,min=0"`
	MaxCost  *int    `form:"maxCost" binding:"omitempty,min=0"`
}

// AmenityRequest is the body of POST and PUT /amenities.
type AmenityRequest struct {
	Name               string   `json:"name" binding:"required,max=200"`
	Category           string   `json:"category" binding:"required,max=100"`
	Description        string   `json:"description" binding:"max=2000"`
	ImplementationTime string   `json:"implementationTime" binding:"max=100"`
	Requirements       []string `json:"requirements"`
	Benefits           []string `json:"benefits"`
	EstimatedCostLow   int      `json:"estimatedCostLow" binding:"min=0"`
	EstimatedCostHigh  int      `json:"estimatedCostHigh" binding:"min=0,gtefield=EstimatedCostLow"`
	ImpactScore        float64  `json:"impactScore" binding:"min=0,max=100"`
	PopularityScore    float64  `json:"popularityScore" binding:"min=0,max=100"`
}

func (r AmenityRequest) amenity(id string) *models.Amenity {
	return &models.Amenity{
		ID:                 id,
		Name:               r.Name,
		Category:           r.Category,
		Description:        r.Description,
		ImplementationTime: r.ImplementationTime,
		Requirements:       r.Requirements,
		Benefits:           r.Benefits,
		EstimatedCostLow:   r.EstimatedCostLow,
		EstimatedCostHigh:  r.EstimatedCostHigh,
		ImpactScore:        r.ImpactScore,
		PopularityScore:    r.PopularityScore,
		IsActive:           true,
	}
}

// AmenityResponse wraps a single amenity.
type AmenityResponse struct {
	Amenity *models.Amenity `json:"amenity"`
}

// AmenityListResponse wraps a catalog page.
type AmenityListResponse struct {
	Amenities []models.Amenity `json:"amenities"`
	Count     int              `json:"count"`
}

// CategoriesResponse lists the distinct active categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// List handles GET /api/v1/amenities.
func (h *AmenityHandler) List(c *gin.Context) {
	var q AmenityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindError(c, err)
		return
	}

	amenities, err := h.service.List(c.Request.Context(), models.AmenityFilter{
		Category: q.Category,
		MinCost:  q.MinCost,
		MaxCost:  q.MaxCost,
	})
	if err != nil {
		serviceError(c, err, "Failed to list amenities")
		return
	}
	if amenities == nil {
		amenities = []models.Amenity{}
	}
	c.JSON(http.StatusOK, AmenityListResponse{Amenities: amenities, Count: len(amenities)})
}

// Categories handles GET /api/v1/amenities/categories.
func (h *AmenityHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		serviceError(c, err, "Failed to list amenity categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

// Get handles GET /api/v1/amenities/:id.
func (h *AmenityHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Failed to load amenity")
		return
	}
	c.JSON(http.StatusOK, AmenityResponse{Amenity: a})
}

// Create handles POST /api/v1/amenities.
func (h *AmenityHandler) Create(c *gin.Context) {
	var req AmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	a := req.amenity("")
	if err := h.service.Create(c.Request.Context(), a); err != nil {
		serviceError(c, err, "Failed to create amenity")
		return
	}
	c.JSON(http.StatusCreated, AmenityResponse{Amenity: a})
}

// Update handles PUT /api/v1/amenities/:id.
func (h *AmenityHandler) Update(c *gin.Context) {
	var req AmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	a := req.amenity(c.Param("id"))
	if err := h.service.Update(c.Request.Context(), a); err != nil {
		serviceError(c, err, "Failed to update amenity")
		return
	}
	c.JSON(http.StatusOK, AmenityResponse{Amenity: a})
}

// Delete handles DELETE /api/v1/amenities/:id.
func (h *AmenityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err, "Failed to delete amenity")
		return
	}
	c.Status(http.StatusNoContent)
}
