package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// TenantProfileRepository defines data access for tenant profiles.
type TenantProfileRepository interface {
	// Create inserts tp and fills in its ID and timestamps.
	// Returns ErrDuplicate when the property already has a profile.
	Create(ctx context.Context, tp *models.TenantProfile) error

	// FindByID returns nil, nil when the profile does not exist.
	FindByID(ctx context.Context, id string) (*models.TenantProfile, error)

	// FindByPropertyID returns nil, nil when the property has no profile.
	FindByPropertyID(ctx context.Context, propertyID string) (*models.TenantProfile, error)

	// Update overwrites every mutable column. Returns false when the profile is gone.
	Update(ctx context.Context, tp *models.TenantProfile) (bool, error)

	// Delete removes the profile and, by cascade, its analyses.
	Delete(ctx context.Context, id string) (bool, error)
}

type tenantProfileRepository struct {
	db *database.Database
}

// NewTenantProfileRepository creates a new instance of TenantProfileRepository.
func NewTenantProfileRepository(db *database.Database) TenantProfileRepository {
	return &tenantProfileRepository{db: db}
}

const tenantProfileColumns = `
	id, property_id, demographics, preferences, lifestyle, summary,
	conversation_history, confidence, generation_method, created_at, updated_at`

func scanTenantProfile(row pgx.Row) (*models.TenantProfile, error) {
	var tp models.TenantProfile
	err := row.Scan(
		&tp.ID,
		&tp.PropertyID,
		&tp.Demographics,
		&tp.Preferences,
		&tp.Lifestyle,
		&tp.Summary,
		&tp.ConversationHistory,
		&tp.Confidence,
		&tp.GenerationMethod,
		&tp.CreatedAt,
		&tp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func (r *tenantProfileRepository) Create(ctx context.Context, tp *models.TenantProfile) error {
	query := `
		INSERT INTO tenant_profiles (
			property_id, demographics, preferences, lifestyle, summary,
			conversation_history, confidence, generation_method
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		tp.PropertyID, tp.Demographics, tp.Preferences, tp.Lifestyle, tp.Summary,
		tp.ConversationHistory, tp.Confidence, string(tp.GenerationMethod),
	).Scan(&tp.ID, &tp.CreatedAt, &tp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant profile for property %s: %w", tp.PropertyID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert tenant profile: %w", err)
	}
	return nil
}

func (r *tenantProfileRepository) FindByID(ctx context.Context, id string) (*models.TenantProfile, error) {
	return r.findOne(ctx, `SELECT `+tenantProfileColumns+` FROM tenant_profiles WHERE id = $1`, id)
}

func (r *tenantProfileRepository) FindByPropertyID(ctx context.Context, propertyID string) (*models.TenantProfile, error) {
	return r.findOne(ctx, `SELECT `+tenantProfileColumns+` FROM tenant_profiles WHERE property_id = $1`, propertyID)
}

func (r *tenantProfileRepository) findOne(ctx context.Context, query string, arg string) (*models.TenantProfile, error) {
	tp, err := scanTenantProfile(r.db.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tenant profile %s: %w", arg, err)
	}
	return tp, nil
}

func (r *tenantProfileRepository) Update(ctx context.Context, tp *models.TenantProfile) (bool, error) {
	query := `
		UPDATE tenant_profiles
		SET demographics = $2, preferences = $3, lifestyle = $4, summary = $5,
		    conversation_history = $6, confidence = $7, generation_method = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		tp.ID, tp.Demographics, tp.Preferences, tp.Lifestyle, tp.Summary,
		tp.ConversationHistory, tp.Confidence, string(tp.GenerationMethod),
	).Scan(&tp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update tenant profile %s: %w", tp.ID, err)
	}
	return true, nil
}

func (r *tenantProfileRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tenant_profiles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete tenant profile %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
