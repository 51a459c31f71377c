package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/florenciacomuzzi/amp-report/internal/errors"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testUserID     = "0b8f9a4e-5c1d-4e2f-9a3b-7c6d5e4f3a21"
	testPropertyID = "7a1e2f3b-4c5d-4e6f-8a9b-0c1d2e3f4a5b"
	testProfileID  = "9c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f"
	testAnalysisID = "2e4f6a8b-0c1d-4e3f-8a5b-7c9d1e2f3a4b"
	testAmenityID  = "4b6d8f0a-2c4e-4a6b-8d0f-2a4c6e8a0b2d"
	testToken      = "valid-token"
)

// staticVerifier accepts exactly testToken.
type staticVerifier struct{}

func (staticVerifier) VerifySubject(token string) (string, error) {
	if token != testToken {
		return "", errors.New("token is expired")
	}
	return testUserID, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// testServer bundles the router with every mocked service.
type testServer struct {
	router          *gin.Engine
	auth            *MockAuthService
	properties      *MockPropertyService
	profiles        *MockTenantProfileService
	amenities       *MockAmenityService
	recommendations *MockRecommendationService
	analyses        *MockAnalysisService
}

func newTestServer() *testServer {
	s := &testServer{
		auth:            new(MockAuthService),
		properties:      new(MockPropertyService),
		profiles:        new(MockTenantProfileService),
		amenities:       new(MockAmenityService),
		recommendations: new(MockRecommendationService),
		analyses:        new(MockAnalysisService),
	}
	s.router = NewRouter(RouterConfig{
		Log:             logger.New("test"),
		Verifier:        staticVerifier{},
		Health:          NewHealthHandler(stubPinger{}, "test", true),
		Auth:            s.auth,
		Properties:      s.properties,
		TenantProfiles:  s.profiles,
		Amenities:       s.amenities,
		Recommendations: s.recommendations,
		Analyses:        s.analyses,
		CORSOrigins:     []string{"http://localhost:3000"},
	})
	return s
}

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, in services.RegisterInput) (*services.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

// MockPropertyService is a mock implementation of PropertyService for testing
type MockPropertyService struct{ mock.Mock }

func (m *MockPropertyService) Create(ctx context.Context, userID string, in services.PropertyInput) (*models.Property, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, userID, id string) (*models.Property, error) {
	args := m.Called(ctx, userID, id)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) List(ctx context.Context, userID string) ([]models.Property, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Property)
	return list, args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, userID, id string, in services.PropertyInput) (*models.Property, error) {
	args := m.Called(ctx, userID, id, in)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockPropertyService) EstimateRent(ctx context.Context, userID, id string) (*services.RentEstimate, error) {
	args := m.Called(ctx, userID, id)
	e, _ := args.Get(0).(*services.RentEstimate)
	return e, args.Error(1)
}

// MockTenantProfileService is a mock implementation of TenantProfileService for testing
type MockTenantProfileService struct{ mock.Mock }

func (m *MockTenantProfileService) Create(ctx context.Context, userID string, in services.TenantProfileInput) (*models.TenantProfile, error) {
	args := m.Called(ctx, userID, in)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileService) Get(ctx context.Context, userID, id string) (*models.TenantProfile, error) {
	args := m.Called(ctx, userID, id)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileService) GetByProperty(ctx context.Context, userID, propertyID string) (*models.TenantProfile, error) {
	args := m.Called(ctx, userID, propertyID)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileService) Update(ctx context.Context, userID, id string, upd services.TenantProfileUpdate) (*models.TenantProfile, error) {
	args := m.Called(ctx, userID, id, upd)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTenantProfileService) Chat(ctx context.Context, userID, propertyID string, transcript []models.ChatMessage) (*services.ChatResponse, error) {
	args := m.Called(ctx, userID, propertyID, transcript)
	r, _ := args.Get(0).(*services.ChatResponse)
	return r, args.Error(1)
}

// MockAmenityService is a mock implementation of AmenityService for testing
type MockAmenityService struct{ mock.Mock }

func (m *MockAmenityService) List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Amenity)
	return list, args.Error(1)
}

func (m *MockAmenityService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func (m *MockAmenityService) Get(ctx context.Context, id string) (*models.Amenity, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Amenity)
	return a, args.Error(1)
}

func (m *MockAmenityService) Create(ctx context.Context, a *models.Amenity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAmenityService) Update(ctx context.Context, a *models.Amenity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAmenityService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockRecommendationService is a mock implementation of RecommendationService for testing
type MockRecommendationService struct{ mock.Mock }

func (m *MockRecommendationService) GetRecommendations(ctx context.Context, tenantProfileID string, budget *services.Budget) ([]models.AmenityRecommendation, error) {
	args := m.Called(ctx, tenantProfileID, budget)
	recs, _ := args.Get(0).([]models.AmenityRecommendation)
	return recs, args.Error(1)
}

func (m *MockRecommendationService) GetAmenitiesWithCostEstimates(ctx context.Context, amenityIDs []string, propertySize int) ([]models.AmenityCostEstimate, error) {
	args := m.Called(ctx, amenityIDs, propertySize)
	list, _ := args.Get(0).([]models.AmenityCostEstimate)
	return list, args.Error(1)
}

// MockAnalysisService is a mock implementation of AnalysisService for testing
type MockAnalysisService struct{ mock.Mock }

func (m *MockAnalysisService) Create(ctx context.Context, userID string, in services.AnalysisInput) (*models.Analysis, error) {
	args := m.Called(ctx, userID, in)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

func (m *MockAnalysisService) Get(ctx context.Context, userID, id string) (*models.Analysis, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

func (m *MockAnalysisService) ListByProperty(ctx context.Context, userID, propertyID string) ([]models.Analysis, error) {
	args := m.Called(ctx, userID, propertyID)
	list, _ := args.Get(0).([]models.Analysis)
	return list, args.Error(1)
}

func (m *MockAnalysisService) UpdateStatus(ctx context.Context, userID, id string, status models.AnalysisStatus) (*models.Analysis, error) {
	args := m.Called(ctx, userID, id, status)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

// do sends a JSON request through the router. Authenticated requests carry
// the token staticVerifier accepts.
func (s *testServer) do(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierrors.ErrorResponse](t, w).Error.Code
}
