package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with logger and request ID in context.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/properties/p-1", nil)

	c.Set(middleware.LoggerKey, logger.New("test"))
	c.Set(middleware.RequestIDKey, "test-request-id")

	return c, w
}

func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	var response ErrorResponse
	err := json.Unmarshal(body.Bytes(), &response)
	require.NoError(t, err, "Failed to parse error response JSON")
	return response
}

func TestSimpleResponses(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{name: "not found", call: func(c *gin.Context) { NotFound(c, "Property not found") }, status: http.StatusNotFound, code: ErrNotFound},
		{name: "unauthorized", call: func(c *gin.Context) { Unauthorized(c, "Property not found") }, status: http.StatusUnauthorized, code: ErrUnauthorized},
		{name: "forbidden", call: func(c *gin.Context) { Forbidden(c, "Property not found") }, status: http.StatusForbidden, code: ErrForbidden},
		{name: "conflict", call: func(c *gin.Context) { Conflict(c, "Property not found") }, status: http.StatusConflict, code: ErrConflict},
		{name: "unavailable", call: func(c *gin.Context) { ServiceUnavailable(c, "Property not found") }, status: http.StatusServiceUnavailable, code: ErrServiceUnavailable},
		{name: "bad gateway", call: func(c *gin.Context) { BadGateway(c, "Property not found", errors.New("timeout")) }, status: http.StatusBadGateway, code: ErrUpstream},
		{name: "internal", call: func(c *gin.Context) { InternalServerError(c, "Property not found", errors.New("boom")) }, status: http.StatusInternalServerError, code: ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted(), "Expected handler chain to be aborted")

			response := parseErrorResponse(t, w.Body)
			assert.Equal(t, tt.code, response.Error.Code)
			assert.Equal(t, "Property not found", response.Error.Message)
			assert.Equal(t, "test-request-id", response.Error.RequestID)
			assert.Nil(t, response.Error.Details)
		})
	}
}

func TestInternalServerError_HidesCause(t *testing.T) {
	c, w := setupTestContext()

	InternalServerError(c, "Failed to load recommendations", errors.New("pq: relation \"amenities\" does not exist"))

	assert.NotContains(t, w.Body.String(), "relation")
}

func TestBadRequest(t *testing.T) {
	t.Run("without details", func(t *testing.T) {
		c, w := setupTestContext()

		BadRequest(c, "Invalid budget", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrBadRequest, response.Error.Code)
		assert.Nil(t, response.Error.Details)
	})

	t.Run("with details", func(t *testing.T) {
		c, w := setupTestContext()

		BadRequest(c, "Invalid budget", map[string]interface{}{"field": "budgetMax", "value": "-1"})

		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, "budgetMax", response.Error.Details["field"])
		assert.Equal(t, "-1", response.Error.Details["value"])
	})
}

type registerRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	err := validator.New().Struct(registerRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	ValidationError(c, validationErrors)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code)
	assert.Equal(t, "Validation failed for one or more fields", response.Error.Message)
	assert.Equal(t, "Must be a valid email address", response.Error.Details["Email"])
	assert.Equal(t, "Value is too short or small (minimum: 8)", response.Error.Details["Password"])
}

func TestBindError(t *testing.T) {
	t.Run("validation errors", func(t *testing.T) {
		c, w := setupTestContext()

		BindError(c, validator.New().Struct(registerRequest{}))

		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrValidation, response.Error.Code)
		assert.Len(t, response.Error.Details, 2)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{"))
		c.Request.Header.Set("Content-Type", "application/json")

		var req registerRequest
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)

		BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrBadRequest, response.Error.Code)
		assert.Contains(t, response.Error.Details, "error")
	})
}

func TestFormatValidationError(t *testing.T) {
	tests := []struct {
		tag      string
		param    string
		expected string
	}{
		{"required", "", "This field is required"},
		{"email", "", "Must be a valid email address"},
		{"min", "1", "Value is too short or small (minimum: 1)"},
		{"max", "2100", "Value is too long or large (maximum: 2100)"},
		{"len", "10", "Must have length of 10"},
		{"gt", "0", "Must be greater than 0"},
		{"gte", "0", "Must be greater than or equal to 0"},
		{"lt", "100", "Must be less than 100"},
		{"lte", "100", "Must be less than or equal to 100"},
		{"oneof", "apartment condo townhouse other", "Must be one of: apartment condo townhouse other"},
		{"url", "", "Must be a valid URL"},
		{"uuid", "", "Must be a valid UUID"},
		{"dive", "", "Contains an invalid entry"},
		{"latitude", "", "Must be a valid latitude"},
		{"longitude", "", "Must be a valid longitude"},
		{"unknown_tag", "", "Validation failed for tag: unknown_tag"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValidationError(&mockFieldError{tag: tt.tag, param: tt.param}))
		})
	}
}

func TestErrorResponseWithoutContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	NotFound(c, "Tenant profile not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Empty(t, response.Error.RequestID)
}

// mockFieldError is a mock implementation of validator.FieldError for testing.
type mockFieldError struct {
	tag   string
	param string
}

func (m *mockFieldError) Tag() string                    { return m.tag }
func (m *mockFieldError) ActualTag() string              { return m.tag }
func (m *mockFieldError) Namespace() string              { return "" }
func (m *mockFieldError) StructNamespace() string        { return "" }
func (m *mockFieldError) Field() string                  { return "TestField" }
func (m *mockFieldError) StructField() string            { return "TestField" }
func (m *mockFieldError) Value() interface{}             { return nil }
func (m *mockFieldError) Param() string                  { return m.param }
func (m *mockFieldError) Kind() reflect.Kind             { return reflect.String }
func (m *mockFieldError) Type() reflect.Type             { return nil }
func (m *mockFieldError) Translate(ut.Translator) string { return "" }
func (m *mockFieldError) Error() string                  { return "" }
