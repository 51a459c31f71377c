package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
)

// AnalysisInput requests a new analysis. Budget may be nil.
type AnalysisInput struct {
	Budget           *Budget
	ExecutiveSummary *string
	ActionPlan       *string
	PropertyID       string
	TenantProfileID  string
}

// AnalysisService runs and persists amenity analyses.
type AnalysisService interface {
	// Create ranks the catalog for the tenant profile and stores the result
	// as a draft analysis. The profile must belong to the property.
	Create(ctx context.Context, userID string, in AnalysisInput) (*models.Analysis, error)

	// Get returns the analysis with its recommended amenities in rank order.
	Get(ctx context.Context, userID, id string) (*models.Analysis, error)

	// ListByProperty returns the property's analyses, newest first.
	ListByProperty(ctx context.Context, userID, propertyID string) ([]models.Analysis, error)

	// UpdateStatus moves an analysis between draft, final and archived.
	UpdateStatus(ctx context.Context, userID, id string, status models.AnalysisStatus) (*models.Analysis, error)
}

type analysisService struct {
	analyses        repository.AnalysisRepository
	properties      repository.PropertyRepository
	profiles        repository.TenantProfileRepository
	recommendations RecommendationService
	log             *logger.Logger
}

// NewAnalysisService creates a new instance of AnalysisService.
func NewAnalysisService(
	analyses repository.AnalysisRepository,
	properties repository.PropertyRepository,
	profiles repository.TenantProfileRepository,
	recommendations RecommendationService,
	log *logger.Logger,
) AnalysisService {
	return &analysisService{
		analyses:        analyses,
		properties:      properties,
		profiles:        profiles,
		recommendations: recommendations,
		log:             log.Named("analyses"),
	}
}

func (s *analysisService) Create(ctx context.Context, userID string, in AnalysisInput) (*models.Analysis, error) {
	if _, err := ownedProperty(ctx, s.properties, userID, in.PropertyID); err != nil {
		return nil, err
	}
	if !validID(in.TenantProfileID) {
		return nil, ErrTenantProfileNotFound
	}

	profile, err := s.profiles.FindByID(ctx, in.TenantProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant profile: %w", err)
	}
	if profile == nil || profile.PropertyID != in.PropertyID {
		return nil, ErrTenantProfileNotFound
	}

	recs, err := s.recommendations.GetRecommendations(ctx, in.TenantProfileID, in.Budget)
	if err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		PropertyID:           in.PropertyID,
		TenantProfileID:      in.TenantProfileID,
		Status:               models.AnalysisDraft,
		ExecutiveSummary:     in.ExecutiveSummary,
		ActionPlan:           in.ActionPlan,
		RecommendedAmenities: make([]models.RecommendedAmenity, 0, len(recs)),
	}
	for _, rec := range recs {
		analysis.RecommendedAmenities = append(analysis.RecommendedAmenities, models.RecommendedAmenity{Recommendation: rec})
	}

	if err := s.analyses.Create(ctx, analysis); err != nil {
		s.log.Error("Failed to persist analysis", err, map[string]interface{}{
			"property_id":       in.PropertyID,
			"tenant_profile_id": in.TenantProfileID,
		})
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	s.log.Info("Analysis created", map[string]interface{}{
		"analysis_id":     analysis.ID,
		"property_id":     in.PropertyID,
		"recommendations": len(recs),
	})

	return s.load(ctx, analysis.ID)
}

func (s *analysisService) Get(ctx context.Context, userID, id string) (*models.Analysis, error) {
	if !validID(id) {
		return nil, ErrAnalysisNotFound
	}

	analysis, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := ownedProperty(ctx, s.properties, userID, analysis.PropertyID); err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

func (s *analysisService) ListByProperty(ctx context.Context, userID, propertyID string) ([]models.Analysis, error) {
	if _, err := ownedProperty(ctx, s.properties, userID, propertyID); err != nil {
		return nil, err
	}

	analyses, err := s.analyses.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

func (s *analysisService) UpdateStatus(ctx context.Context, userID, id string, status models.AnalysisStatus) (*models.Analysis, error) {
	switch status {
	case models.AnalysisDraft, models.AnalysisFinal, models.AnalysisArchived:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	ok, err := s.analyses.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update analysis: %w", err)
	}
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return s.load(ctx, id)
}

func (s *analysisService) load(ctx context.Context, id string) (*models.Analysis, error) {
	analysis, err := s.analyses.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}
