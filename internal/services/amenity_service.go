package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
)

// AmenityService manages the amenity catalog.
type AmenityService interface {
	// List returns active amenities matching filter.
	List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.Amenity, error)
	Create(ctx context.Context, a *models.Amenity) error
	Update(ctx context.Context, a *models.Amenity) error
	// Delete deactivates the amenity; existing analyses keep referencing it.
	Delete(ctx context.Context, id string) error
}

type amenityService struct {
	repo repository.AmenityRepository
	log  *logger.Logger
}

// NewAmenityService creates a new instance of AmenityService.
func NewAmenityService(repo repository.AmenityRepository, log *logger.Logger) AmenityService {
	return &amenityService{repo: repo, log: log.Named("amenities")}
}

func (s *amenityService) List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error) {
	filter.ActiveOnly = true
	if filter.MinCost != nil && filter.MaxCost != nil && *filter.MinCost > *filter.MaxCost {
		return nil, fmt.Errorf("%w: minCost %d exceeds maxCost %d", ErrInvalidInput, *filter.MinCost, *filter.MaxCost)
	}

	amenities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	return amenities, nil
}

func (s *amenityService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenity categories: %w", err)
	}
	return categories, nil
}

func (s *amenityService) Get(ctx context.Context, id string) (*models.Amenity, error) {
	if !validID(id) {
		return nil, ErrAmenityNotFound
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load amenity: %w", err)
	}
	if a == nil {
		return nil, ErrAmenityNotFound
	}
	return a, nil
}

func validateAmenity(a *models.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Category = strings.TrimSpace(a.Category)
	switch {
	case a.Name == "" || a.Category == "":
		return fmt.Errorf("%w: name and category are required", ErrInvalidInput)
	case a.EstimatedCostLow < 0 || a.EstimatedCostHigh < a.EstimatedCostLow:
		return fmt.Errorf("%w: cost band %d-%d", ErrInvalidInput, a.EstimatedCostLow, a.EstimatedCostHigh)
	case a.ImpactScore < 0 || a.ImpactScore > 100 || a.PopularityScore < 0 || a.PopularityScore > 100:
		return fmt.Errorf("%w: impact and popularity scores must be within 0-100", ErrInvalidInput)
	}
	return nil
}

func (s *amenityService) Create(ctx context.Context, a *models.Amenity) error {
	if err := validateAmenity(a); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAmenityExists
		}
		return fmt.Errorf("failed to create amenity: %w", err)
	}

	s.log.Info("Amenity created", map[string]interface{}{"amenity_id": a.ID, "name": a.Name})
	return nil
}

func (s *amenityService) Update(ctx context.Context, a *models.Amenity) error {
	if !validID(a.ID) {
		return ErrAmenityNotFound
	}
	if err := validateAmenity(a); err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAmenityExists
		}
		return fmt.Errorf("failed to update amenity: %w", err)
	}
	if !ok {
		return ErrAmenityNotFound
	}
	return nil
}

func (s *amenityService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrAmenityNotFound
	}

	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete amenity: %w", err)
	}
	if !ok {
		return ErrAmenityNotFound
	}

	s.log.Info("Amenity deactivated", map[string]interface{}{"amenity_id": id})
	return nil
}
