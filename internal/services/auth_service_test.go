package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/florenciacomuzzi/amp-report/internal/auth"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/metrics"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
)

var tokenExpiry = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func storedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           ownerID,
		Email:        "manager@example.com",
		PasswordHash: hash,
		FirstName:    "Dana",
		LastName:     "Ortiz",
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	service := NewAuthService(users, tokens, logger.New("test"))

	success := metrics.AuthAttemptsTotal.WithLabelValues("register", "success")
	before := testutil.ToFloat64(success)

	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "manager@example.com" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3cret-pass" &&
			u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = ownerID
	}).Return(nil)
	tokens.On("Issue", ownerID, "manager@example.com").Return("signed.jwt", tokenExpiry, nil)

	session, err := service.Register(ctx, RegisterInput{
		Email:     "  Manager@Example.com ",
		Password:  "s3cret-pass",
		FirstName: "Dana",
		LastName:  "Ortiz",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", session.Token)
	assert.Equal(t, tokenExpiry, session.ExpiresAt)
	assert.Equal(t, ownerID, session.User.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(success))
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := NewAuthService(users, tokens, logger.New("test")).Register(ctx, RegisterInput{
		Email: "taken@example.com", Password: "long-enough", FirstName: "A", LastName: "B",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAuthService_Register_Invalid(t *testing.T) {
	for name, in := range map[string]RegisterInput{
		"short password": {Email: "a@example.com", Password: "short", FirstName: "A", LastName: "B"},
		"missing name":   {Email: "a@example.com", Password: "long-enough"},
		"missing email":  {Password: "long-enough", FirstName: "A", LastName: "B"},
	} {
		t.Run(name, func(t *testing.T) {
			users := new(MockUserRepository)

			_, err := NewAuthService(users, new(MockTokenIssuer), logger.New("test")).Register(context.Background(), in)

			assert.ErrorIs(t, err, ErrInvalidInput)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		users.On("FindByEmail", ctx, "manager@example.com").Return(storedUser(t, "correct-horse"), nil)
		users.On("TouchLastLogin", ctx, ownerID).Return(nil)
		tokens.On("Issue", ownerID, "manager@example.com").Return("signed.jwt", tokenExpiry, nil)

		session, err := NewAuthService(users, tokens, logger.New("test")).Login(ctx, "manager@example.com", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", session.Token)
		users.AssertExpectations(t)
	})

	t.Run("last-login failure does not block sign-in", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		users.On("FindByEmail", ctx, "manager@example.com").Return(storedUser(t, "correct-horse"), nil)
		users.On("TouchLastLogin", ctx, ownerID).Return(errors.New("read-only replica"))
		tokens.On("Issue", ownerID, "manager@example.com").Return("signed.jwt", tokenExpiry, nil)

		_, err := NewAuthService(users, tokens, logger.New("test")).Login(ctx, "manager@example.com", "correct-horse")

		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", ctx, "manager@example.com").Return(storedUser(t, "correct-horse"), nil)

		_, err := NewAuthService(users, new(MockTokenIssuer), logger.New("test")).Login(ctx, "manager@example.com", "battery-staple")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := NewAuthService(users, new(MockTokenIssuer), logger.New("test")).Login(ctx, "nobody@example.com", "whatever-123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		users := new(MockUserRepository)
		u := storedUser(t, "correct-horse")
		u.IsActive = false
		users.On("FindByEmail", ctx, "manager@example.com").Return(u, nil)

		_, err := NewAuthService(users, new(MockTokenIssuer), logger.New("test")).Login(ctx, "manager@example.com", "correct-horse")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("FindByID", ctx, ownerID).Return(storedUser(t, "correct-horse"), nil)

	u, err := NewAuthService(users, new(MockTokenIssuer), logger.New("test")).Me(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, "Dana", u.FirstName)
}
