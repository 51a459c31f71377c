package models

import (
	"time"
)

// AnalysisStatus is the lifecycle state of an analysis.
type AnalysisStatus string

const (
	AnalysisDraft    AnalysisStatus = "draft"
	AnalysisFinal    AnalysisStatus = "final"
	AnalysisArchived AnalysisStatus = "archived"
)

// Analysis ties a property and tenant profile to a persisted recommendation set.
type Analysis struct {
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
	ExecutiveSummary     *string              `json:"executiveSummary,omitempty"`
	ActionPlan           *string              `json:"actionPlan,omitempty"`
	ID                   string               `json:"id"`
	PropertyID           string               `json:"propertyId"`
	TenantProfileID      string               `json:"tenantProfileId"`
	Status               AnalysisStatus       `json:"status"`
	RecommendedAmenities []RecommendedAmenity `json:"recommendedAmenities"`
}

// RecommendedAmenity is an analysis_amenities row joined with its amenity.
type RecommendedAmenity struct {
	Amenity
	Recommendation AmenityRecommendation `json:"recommendation"`
}

// User is an account that owns properties.
type User struct {
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"isActive"`
}
