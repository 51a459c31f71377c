package services

import (
	"context"
	"fmt"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/metrics"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
	"github.com/florenciacomuzzi/amp-report/internal/scoring"
)

// Budget bounds the one-time cost of candidate amenities.
// Only Max constrains the catalog: amenities whose low estimate exceeds it
// are never scored.
type Budget struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RecommendationService ranks the amenity catalog against tenant profiles.
type RecommendationService interface {
	// GetRecommendations returns up to the configured number of ranked
	// recommendations for the profile. budget may be nil.
	// Returns ErrTenantProfileNotFound when the profile does not exist and
	// ErrInvalidBudget for a negative budget. Only budget.Max
	// restricts the catalog, so an inverted budget is accepted.
	GetRecommendations(ctx context.Context, tenantProfileID string, budget *Budget) ([]models.AmenityRecommendation, error)

	// GetAmenitiesWithCostEstimates scales the cost bands of the given
	// amenities to propertySize units. Unknown IDs are skipped, so the result
	// may be empty.
	GetAmenitiesWithCostEstimates(ctx context.Context, amenityIDs []string, propertySize int) ([]models.AmenityCostEstimate, error)
}

type recommendationService struct {
	profiles    repository.TenantProfileRepository
	amenities   repository.AmenityRepository
	recommender *scoring.Recommender
	log         *logger.Logger
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(
	profiles repository.TenantProfileRepository,
	amenities repository.AmenityRepository,
	recommender *scoring.Recommender,
	log *logger.Logger,
) RecommendationService {
	return &recommendationService{
		profiles:    profiles,
		amenities:   amenities,
		recommender: recommender,
		log:         log.Named("recommendations"),
	}
}

func (s *recommendationService) GetRecommendations(ctx context.Context, tenantProfileID string, budget *Budget) ([]models.AmenityRecommendation, error) {
	if budget != nil && (budget.Min < 0 || budget.Max < 0) {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidBudget, budget.Min, budget.Max)
	}
	if !validID(tenantProfileID) {
		metrics.RecommendationsServed.WithLabelValues("not_found").Inc()
		return nil, ErrTenantProfileNotFound
	}

	profile, err := s.profiles.FindByID(ctx, tenantProfileID)
	if err != nil {
		metrics.RecommendationsServed.WithLabelValues("failed").Inc()
		s.log.Error("Failed to load tenant profile", err, map[string]interface{}{
			"tenant_profile_id": tenantProfileID,
		})
		return nil, fmt.Errorf("failed to load tenant profile: %w", err)
	}
	if profile == nil {
		metrics.RecommendationsServed.WithLabelValues("not_found").Inc()
		return nil, ErrTenantProfileNotFound
	}

	filter := models.AmenityFilter{ActiveOnly: true}
	if budget != nil {
		maxLow := budget.Max
		filter.MaxLowCost = &maxLow
	}

	catalog, err := s.amenities.List(ctx, filter)
	if err != nil {
		metrics.RecommendationsServed.WithLabelValues("failed").Inc()
		s.log.Error("Failed to load amenity catalog", err, map[string]interface{}{
			"tenant_profile_id": tenantProfileID,
		})
		return nil, fmt.Errorf("failed to load amenity catalog: %w", err)
	}

	recs := s.recommender.Recommend(scoring.NormalizeTenantProfile(profile), catalog)

	metrics.RecommendationsServed.WithLabelValues("success").Inc()
	metrics.RecommendationCount.Observe(float64(len(recs)))

	fields := map[string]interface{}{
		"tenant_profile_id": tenantProfileID,
		"candidates":        len(catalog),
		"count":             len(recs),
	}
	if budget != nil {
		fields["budget_max"] = budget.Max
	}
	s.log.Info("Recommendations generated", fields)

	return recs, nil
}

func (s *recommendationService) GetAmenitiesWithCostEstimates(ctx context.Context, amenityIDs []string, propertySize int) ([]models.AmenityCostEstimate, error) {
	ids := make([]string, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		if validID(id) {
			ids = append(ids, id)
		}
	}

	amenities, err := s.amenities.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load amenities: %w", err)
	}

	return scoring.EstimateCosts(amenities, propertySize), nil
}
