package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// RecommendationHandler serves ranked amenity recommendations and scaled
// cost estimates.
type RecommendationHandler struct {
	recommendations services.RecommendationService
	profiles        services.TenantProfileService
}

// NewRecommendationHandler creates a new RecommendationHandler instance.
func NewRecommendationHandler(recommendations services.RecommendationService, profiles services.TenantProfileService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, profiles: profiles}
}

// RecommendationsQuery holds the optional budget for a recommendation run.
type RecommendationsQuery struct {
	BudgetMin *int `form:"budgetMin" binding:"omitempty,min=0"`
	BudgetMax *int `form:"budgetMax" binding:"omitempty,min=0"`
}

// RecommendationsResponse lists ranked recommendations, best first.
type RecommendationsResponse struct {
	Recommendations []models.AmenityRecommendation `json:"recommendations"`
	TenantProfileID string                         `json:"tenantProfileId"`
	Count           int                            `json:"count"`
}

// CostEstimatesRequest is the body of POST /amenities/cost-estimates.
type CostEstimatesRequest struct {
	AmenityIDs   []string `json:"amenityIds" binding:"required,min=1,max=100"`
	PropertySize int      `json:"propertySize" binding:"omitempty,min=1"`
}

// CostEstimatesResponse lists amenities with costs scaled to the property.
type CostEstimatesResponse struct {
	Amenities []models.AmenityCostEstimate `json:"amenities"`
	Count     int                          `json:"count"`
}

// Recommendations handles GET /api/v1/tenant-profiles/:id/recommendations.
func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	var q RecommendationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindError(c, err)
		return
	}

	var budget *services.Budget
	switch {
	case q.BudgetMax != nil:
		budget = &services.Budget{Max: *q.BudgetMax}
		if q.BudgetMin != nil {
			budget.Min = *q.BudgetMin
		}
	case q.BudgetMin != nil:
		apierrors.BadRequest(c, "budgetMax is required when budgetMin is set", map[string]interface{}{
			"field": "budgetMax",
		})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	// Ownership goes through the profile's property.
	if _, err := h.profiles.Get(ctx, middleware.GetUserID(c), id); err != nil {
		serviceError(c, err, "Failed to load tenant profile")
		return
	}

	recs, err := h.recommendations.GetRecommendations(ctx, id, budget)
	if err != nil {
		serviceError(c, err, "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		TenantProfileID: id,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// CostEstimates handles POST /api/v1/amenities/cost-estimates.
func (h *RecommendationHandler) CostEstimates(c *gin.Context) {
	var req CostEstimatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	estimates, err := h.recommendations.GetAmenitiesWithCostEstimates(c.Request.Context(), req.AmenityIDs, req.PropertySize)
	if err != nil {
		serviceError(c, err, "Failed to estimate amenity costs")
		return
	}
	c.JSON(http.StatusOK, CostEstimatesResponse{Amenities: estimates, Count: len(estimates)})
}
