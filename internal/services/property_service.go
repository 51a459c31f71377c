package services

import (
	"context"
	"fmt"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/rent"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
)

// PropertyInput is the user-editable part of a property.
type PropertyInput struct {
	Name        *string
	Description *string
	Address     models.Address
	Details     models.PropertyDetails
	Latitude    float64
	Longitude   float64
}

// RentEstimate is a rent estimate plus whether the property's own target
// band looks plausible.
type RentEstimate struct {
	rent.Estimate
	TargetReasonable bool `json:"targetReasonable"`
}

// PropertyService defines property business logic. Every operation is
// scoped to the calling user.
type PropertyService interface {
	// Create registers a property owned by userID.
	Create(ctx context.Context, userID string, in PropertyInput) (*models.Property, error)

	// Get returns ErrPropertyNotFound when the property does not exist and
	// ErrForbidden when it belongs to someone else.
	Get(ctx context.Context, userID, id string) (*models.Property, error)

	// List returns the user's active properties, newest first.
	List(ctx context.Context, userID string) ([]models.Property, error)

	Update(ctx context.Context, userID, id string, in PropertyInput) (*models.Property, error)

	// Delete soft-deletes the property.
	Delete(ctx context.Context, userID, id string) error

	// EstimateRent suggests a monthly rent band for the property.
	EstimateRent(ctx context.Context, userID, id string) (*RentEstimate, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	estimator *rent.Estimator
	log       *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertyRepository, estimator *rent.Estimator, log *logger.Logger) PropertyService {
	return &propertyService{
		repo:      repo,
		estimator: estimator,
		log:       log.Named("properties"),
	}
}

func (s *propertyService) Create(ctx context.Context, userID string, in PropertyInput) (*models.Property, error) {
	p := &models.Property{UserID: &userID}
	applyPropertyInput(p, in)

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("Failed to create property", err, map[string]interface{}{"user_id": userID})
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("Property created", map[string]interface{}{
		"user_id":     userID,
		"property_id": p.ID,
		"units":       p.Details.NumberOfUnits,
	})
	return p, nil
}

func (s *propertyService) Get(ctx context.Context, userID, id string) (*models.Property, error) {
	return ownedProperty(ctx, s.repo, userID, id)
}

func (s *propertyService) List(ctx context.Context, userID string) ([]models.Property, error) {
	properties, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *propertyService) Update(ctx context.Context, userID, id string, in PropertyInput) (*models.Property, error) {
	p, err := ownedProperty(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}
	applyPropertyInput(p, in)

	ok, err := s.repo.Update(ctx, p)
	if err != nil {
		s.log.Error("Failed to update property", err, map[string]interface{}{"property_id": id})
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return p, nil
}

func (s *propertyService) Delete(ctx context.Context, userID, id string) error {
	if _, err := ownedProperty(ctx, s.repo, userID, id); err != nil {
		return err
	}

	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if !ok {
		return ErrPropertyNotFound
	}

	s.log.Info("Property deactivated", map[string]interface{}{"user_id": userID, "property_id": id})
	return nil
}

func (s *propertyService) EstimateRent(ctx context.Context, userID, id string) (*RentEstimate, error) {
	p, err := ownedProperty(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}

	target := p.Details.TargetRentRange
	return &RentEstimate{
		Estimate:         s.estimator.Estimate(p),
		TargetReasonable: rent.IsReasonable(target.Min, target.Max),
	}, nil
}

func applyPropertyInput(p *models.Property, in PropertyInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Address = in.Address
	p.Details = in.Details
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
}

// ownedProperty loads an active property and checks it belongs to userID.
func ownedProperty(ctx context.Context, repo repository.PropertyRepository, userID, id string) (*models.Property, error) {
	if !validID(id) {
		return nil, ErrPropertyNotFound
	}

	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	if p.UserID == nil || *p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}
