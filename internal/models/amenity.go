package models

import (
	"time"
)

// Priority classifies how urgently an amenity should be added.
type Priority string

const (
	PriorityEssential   Priority = "essential"
	PriorityRecommended Priority = "recommended"
	PriorityNiceToHave  Priority = "nice-to-have"
)

// StringList is a JSONB-backed list of strings.
type StringList []string

// Amenity is an entry in the curated amenity catalog.
// ImpactScore and PopularityScore are static weights in [0,100].
type Amenity struct {
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Category           string     `json:"category"`
	Description        string     `json:"description"`
	ImplementationTime string     `json:"implementationTime"`
	Requirements       StringList `json:"requirements,omitempty"`
	Benefits           StringList `json:"benefits,omitempty"`
	EstimatedCostLow   int        `json:"estimatedCostLow"`
	EstimatedCostHigh  int        `json:"estimatedCostHigh"`
	ImpactScore        float64    `json:"impactScore"`
	PopularityScore    float64    `json:"popularityScore"`
	IsActive           bool       `json:"isActive"`
}

// AmenityFilter narrows a catalog query.
// Nil pointers mean "no constraint".
type AmenityFilter struct {
	Category   *string
	MinCost    *int // lower bound on estimated_cost_low
	MaxCost    *int // upper bound on estimated_cost_high
	MaxLowCost *int // upper bound on estimated_cost_low (budget filter)
	ActiveOnly bool
}

// AmenityRecommendation is a scored suggestion to add an amenity.
type AmenityRecommendation struct {
	AmenityID string   `json:"amenityId"`
	Rationale string   `json:"rationale"`
	Priority  Priority `json:"priority"`
	Score     float64  `json:"score"`
	ROI       float64  `json:"roi"`
}

// CostRange is a low/high/average cost triple in whole currency units.
type CostRange struct {
	Low     int `json:"low"`
	High    int `json:"high"`
	Average int `json:"average"`
}

// AmenityCostEstimate is an amenity with costs scaled to a property's size.
type AmenityCostEstimate struct {
	Amenity            Amenity   `json:"amenity"`
	ImplementationTime string    `json:"implementationTime"`
	EstimatedCost      CostRange `json:"estimatedCost"`
}
