package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/florenciacomuzzi/amp-report/internal/llm"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockPropertyRepository) ListByUser(ctx context.Context, userID string) ([]models.Property, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Property)
	return list, args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *models.Property) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTenantProfileRepository is a mock implementation of TenantProfileRepository for testing
type MockTenantProfileRepository struct {
	mock.Mock
}

func (m *MockTenantProfileRepository) Create(ctx context.Context, tp *models.TenantProfile) error {
	return m.Called(ctx, tp).Error(0)
}

func (m *MockTenantProfileRepository) FindByID(ctx context.Context, id string) (*models.TenantProfile, error) {
	args := m.Called(ctx, id)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileRepository) FindByPropertyID(ctx context.Context, propertyID string) (*models.TenantProfile, error) {
	args := m.Called(ctx, propertyID)
	tp, _ := args.Get(0).(*models.TenantProfile)
	return tp, args.Error(1)
}

func (m *MockTenantProfileRepository) Update(ctx context.Context, tp *models.TenantProfile) (bool, error) {
	args := m.Called(ctx, tp)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantProfileRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAmenityRepository is a mock implementation of AmenityRepository for testing
type MockAmenityRepository struct {
	mock.Mock
}

func (m *MockAmenityRepository) List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]models.Amenity)
	return list, args.Error(1)
}

func (m *MockAmenityRepository) FindByID(ctx context.Context, id string) (*models.Amenity, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Amenity)
	return a, args.Error(1)
}

func (m *MockAmenityRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]models.Amenity)
	return list, args.Error(1)
}

func (m *MockAmenityRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func (m *MockAmenityRepository) Create(ctx context.Context, a *models.Amenity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAmenityRepository) CreateIfAbsent(ctx context.Context, a *models.Amenity) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockAmenityRepository) Update(ctx context.Context, a *models.Amenity) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockAmenityRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAnalysisRepository is a mock implementation of AnalysisRepository for testing
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnalysisRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Analysis)
	return a, args.Error(1)
}

func (m *MockAnalysisRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Analysis, error) {
	args := m.Called(ctx, propertyID)
	list, _ := args.Get(0).([]models.Analysis)
	return list, args.Error(1)
}

func (m *MockAnalysisRepository) UpdateStatus(ctx context.Context, id string, status models.AnalysisStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockAssistant is a mock implementation of ProfileAssistant for testing
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Chat(ctx context.Context, property *models.Property, transcript []models.ChatMessage) (*llm.ChatResult, error) {
	args := m.Called(ctx, property, transcript)
	r, _ := args.Get(0).(*llm.ChatResult)
	return r, args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer for testing
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID, email string) (string, time.Time, error) {
	args := m.Called(userID, email)
	expires, _ := args.Get(1).(time.Time)
	return args.String(0), expires, args.Error(2)
}

const (
	ownerID    = "0b8f9a4e-5c1d-4e2f-9a3b-7c6d5e4f3a21"
	strangerID = "5d2c1b0a-9e8f-4a7b-8c6d-1e2f3a4b5c6d"
	propertyID = "7a1e2f3b-4c5d-4e6f-8a9b-0c1d2e3f4a5b"
	profileID  = "9c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f"
	analysisID = "2e4f6a8b-0c1d-4e3f-8a5b-7c9d1e2f3a4b"
	amenityID  = "4b6d8f0a-2c4e-4a6b-8d0f-2a4c6e8a0b2d"
)

func ownedTestProperty() *models.Property {
	owner := ownerID
	return &models.Property{
		ID:     propertyID,
		UserID: &owner,
		Address: models.Address{
			Street: "100 Congress Ave",
			City:   "Austin",
			State:  "TX",
			Zip:    "78701",
		},
		Details: models.PropertyDetails{
			PropertyType:     models.PropertyTypeApartment,
			NumberOfUnits:    120,
			YearBuilt:        2010,
			CurrentAmenities: []string{"Laundry"},
			TargetRentRange:  models.RentRange{Min: 1500, Max: 2200},
		},
		IsActive: true,
	}
}

func boolPtr(b bool) *bool { return &b }

func testProfile() *models.TenantProfile {
	return &models.TenantProfile{
		ID:         profileID,
		PropertyID: propertyID,
		Demographics: models.Demographics{
			AgeRange:                &models.Range{Min: 25, Max: 35},
			IncomeRange:             &models.Range{Min: 60000, Max: 90000},
			ProfessionalBackgrounds: []string{"software engineer"},
		},
		Preferences: models.Preferences{
			AmenityPriorities: []string{"fitness"},
			PetOwnership:      boolPtr(true),
		},
		Lifestyle: models.Lifestyle{
			{Category: "fitness", Description: "works out daily", Importance: models.ImportanceHigh},
		},
		GenerationMethod: models.GenerationManual,
		Confidence:       0.7,
	}
}
