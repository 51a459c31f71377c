package models

import (
	"time"
)

// PropertyType is the building type of a managed property.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeOther     PropertyType = "other"
)

// Address is a postal address stored as JSONB.
type Address struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country,omitempty"`
}

// RentRange is a monthly rent band.
type RentRange struct {
	Min float64 `json:"min" binding:"gte=0"`
	Max float64 `json:"max" binding:"gte=0"`
}

// PropertyDetails holds the physical characteristics of a property.
type PropertyDetails struct {
	PropertyType     PropertyType `json:"propertyType" binding:"required,oneof=apartment condo townhouse other"`
	SpecialFeatures  string       `json:"specialFeatures,omitempty"`
	CurrentAmenities []string     `json:"currentAmenities"`
	NearbyLandmarks  []string     `json:"nearbyLandmarks,omitempty"`
	TargetRentRange  RentRange    `json:"targetRentRange"`
	NumberOfUnits    int          `json:"numberOfUnits" binding:"required,min=1"`
	YearBuilt        int          `json:"yearBuilt" binding:"required,min=1800,max=2100"`
}

// Property is a building registered by a user.
// Nullable columns use pointers to distinguish NULL from zero values.
type Property struct {
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	UserID      *string         `json:"userId,omitempty"`
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Address     Address         `json:"address"`
	ID          string          `json:"id"`
	Details     PropertyDetails `json:"details"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	IsActive    bool            `json:"isActive"`
}
