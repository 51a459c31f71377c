package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/florenciacomuzzi/amp-report/internal/auth"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/metrics"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
)

// TokenIssuer mints access tokens. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Company   *string
	Phone     *string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is a signed-in user and their access token.
type Session struct {
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
}

// AuthService registers and authenticates users.
type AuthService interface {
	// Register returns ErrEmailTaken when the email is already in use.
	Register(ctx context.Context, in RegisterInput) (*Session, error)

	// Login returns ErrInvalidCredentials for an unknown email, a wrong
	// password or a deactivated account alike.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Me returns the user behind an authenticated request.
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	log    *logger.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, log *logger.Logger) AuthService {
	return &authService{users: users, tokens: tokens, log: log.Named("auth")}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}
	if len(in.Password) < auth.MinPasswordLength {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Company:      in.Company,
		Phone:        in.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, ErrEmailTaken
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.session(u)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info("User registered", map[string]interface{}{"user_id": u.ID})
	return session, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil || !u.IsActive {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			s.log.Warn("Login rejected", map[string]interface{}{"user_id": u.ID})
			return nil, ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, err
	}

	// A failed stamp must not block sign-in.
	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		s.log.Warn("Failed to record last login", map[string]interface{}{"user_id": u.ID, "error": err.Error()})
	}

	session, err := s.session(u)
	if err != nil {
		return nil, err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return session, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *authService) session(u *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}
