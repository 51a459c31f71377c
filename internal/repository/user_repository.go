package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// UserRepository defines data access for user accounts.
// Email lookups are case-insensitive.
type UserRepository interface {
	// Create inserts u and fills in its ID and timestamps.
	// Returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, u *models.User) error

	// FindByEmail returns nil, nil when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns nil, nil when the user does not exist.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// TouchLastLogin stamps last_login_at with the current time.
	TouchLastLogin(ctx context.Context, id string) error
}

type userRepository struct {
	db *database.Database
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, company, phone,
	is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Company,
		&u.Phone,
		&u.IsActive,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, company, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Company, u.Phone,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user %s: %w", id, err)
	}
	return u, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	if _, err := r.db.Pool.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login for user %s: %w", id, err)
	}
	return nil
}
