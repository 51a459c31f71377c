package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

// serviceError maps a service sentinel to its HTTP response. Anything
// unrecognised is a 500 carrying fallback as the client message.
func serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrTenantProfileNotFound):
		apierrors.NotFound(c, "Tenant profile not found")
	case errors.Is(err, services.ErrAmenityNotFound):
		apierrors.NotFound(c, "Amenity not found")
	case errors.Is(err, services.ErrAnalysisNotFound):
		apierrors.NotFound(c, "Analysis not found")
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You do not have access to this resource")
	case errors.Is(err, services.ErrProfileExists):
		apierrors.Conflict(c, "Property already has a tenant profile")
	case errors.Is(err, services.ErrAmenityExists):
		apierrors.Conflict(c, "An amenity with this name already exists")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrInvalidBudget), errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrChatDisabled):
		apierrors.ServiceUnavailable(c, "Profile chat is not configured")
	case errors.Is(err, services.ErrChatUpstream):
		apierrors.BadGateway(c, "Profile assistant is unavailable", err)
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
