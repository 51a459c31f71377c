package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// PropertyRepository defines data access for properties.
// Soft-deleted properties (is_active = false) are invisible to every read.
type PropertyRepository interface {
	// Create inserts p and fills in its ID and timestamps.
	Create(ctx context.Context, p *models.Property) error

	// FindByID returns nil, nil when no active property has the ID.
	FindByID(ctx context.Context, id string) (*models.Property, error)

	// ListByUser returns the user's active properties, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Property, error)

	// Update overwrites the mutable columns of p. Returns false when the
	// property does not exist or is inactive.
	Update(ctx context.Context, p *models.Property) (bool, error)

	// Deactivate soft-deletes the property. Returns false when nothing changed.
	Deactivate(ctx context.Context, id string) (bool, error)
}

type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `
	id, user_id, name, description, address, details,
	latitude, longitude, is_active, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Address,
		&p.Details,
		&p.Latitude,
		&p.Longitude,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties (user_id, name, description, address, details, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.UserID, p.Name, p.Description, p.Address, p.Details, p.Latitude, p.Longitude,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND is_active`

	p, err := scanProperty(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %s: %w", id, err)
	}
	return p, nil
}

func (r *propertyRepository) ListByUser(ctx context.Context, userID string) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for user %s: %w", userID, err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *models.Property) (bool, error) {
	query := `
		UPDATE properties
		SET name = $2, description = $3, address = $4, details = $5,
		    latitude = $6, longitude = $7, updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Address, p.Details, p.Latitude, p.Longitude,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update property %s: %w", p.ID, err)
	}
	return true, nil
}

func (r *propertyRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE properties SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate property %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
