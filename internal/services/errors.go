package services

import (
	"errors"

	"github.com/google/uuid"
)

// Service-level errors. Handlers map these to HTTP status codes.
var (
	ErrTenantProfileNotFound = errors.New("tenant profile not found")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrAmenityNotFound       = errors.New("amenity not found")
	ErrAnalysisNotFound      = errors.New("analysis not found")

	ErrForbidden          = errors.New("resource belongs to another user")
	ErrProfileExists      = errors.New("property already has a tenant profile")
	ErrAmenityExists      = errors.New("amenity name already exists")
	ErrInvalidBudget      = errors.New("invalid budget")
	ErrInvalidInput       = errors.New("invalid input")
	ErrChatDisabled       = errors.New("profile chat is not configured")
	ErrChatUpstream       = errors.New("profile chat upstream failure")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// validID reports whether id is a well-formed UUID. Malformed IDs are
// treated as "not found" rather than reaching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
