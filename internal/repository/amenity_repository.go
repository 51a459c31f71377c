package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// AmenityRepository defines data access for the amenity catalog.
type AmenityRepository interface {
	// List returns catalog entries matching filter, ordered by category then name.
	// Every non-nil filter field is applied in SQL.
	List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error)

	// FindByID returns nil, nil when the amenity does not exist.
	FindByID(ctx context.Context, id string) (*models.Amenity, error)

	// FindByIDs returns the amenities among ids, deactivated ones included.
	// Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error)

	// Categories returns the distinct categories of active amenities.
	Categories(ctx context.Context) ([]string, error)

	// Create inserts a and fills in its ID and timestamps.
	// Returns ErrDuplicate when the name is taken.
	Create(ctx context.Context, a *models.Amenity) error

	// CreateIfAbsent inserts a unless an amenity with the same name exists.
	// Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, a *models.Amenity) (bool, error)

	// Update overwrites the mutable columns of a. Returns false when it does not exist.
	Update(ctx context.Context, a *models.Amenity) (bool, error)

	// Deactivate soft-deletes the amenity. Returns false when nothing changed.
	Deactivate(ctx context.Context, id string) (bool, error)
}

type amenityRepository struct {
	db *database.Database
}

// NewAmenityRepository creates a new instance of AmenityRepository.
func NewAmenityRepository(db *database.Database) AmenityRepository {
	return &amenityRepository{db: db}
}

// amenityColumns is qualified with the "am" alias so it can be reused in joins.
const amenityColumns = `
	am.id, am.name, am.category, am.description,
	am.estimated_cost_low, am.estimated_cost_high, am.implementation_time,
	am.impact_score, am.popularity_score, am.requirements, am.benefits,
	am.is_active, am.created_at, am.updated_at`

// amenityDest returns scan destinations in amenityColumns order.
func amenityDest(a *models.Amenity) []interface{} {
	return []interface{}{
		&a.ID,
		&a.Name,
		&a.Category,
		&a.Description,
		&a.EstimatedCostLow,
		&a.EstimatedCostHigh,
		&a.ImplementationTime,
		&a.ImpactScore,
		&a.PopularityScore,
		&a.Requirements,
		&a.Benefits,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

// buildAmenityWhere turns a filter into a WHERE clause and its positional args.
func buildAmenityWhere(filter models.AmenityFilter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.ActiveOnly {
		clauses = append(clauses, "am.is_active")
	}
	if filter.Category != nil {
		add("am.category = $%d", *filter.Category)
	}
	if filter.MinCost != nil {
		add("am.estimated_cost_low >= $%d", *filter.MinCost)
	}
	if filter.MaxCost != nil {
		add("am.estimated_cost_high <= $%d", *filter.MaxCost)
	}
	if filter.MaxLowCost != nil {
		add("am.estimated_cost_low <= $%d", *filter.MaxLowCost)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *amenityRepository) List(ctx context.Context, filter models.AmenityFilter) ([]models.Amenity, error) {
	where, args := buildAmenityWhere(filter)
	query := `SELECT ` + amenityColumns + ` FROM amenities am` + where + ` ORDER BY am.category, am.name`

	return r.query(ctx, query, args...)
}

func (r *amenityRepository) FindByID(ctx context.Context, id string) (*models.Amenity, error) {
	var a models.Amenity
	err := r.db.Pool.QueryRow(ctx, `SELECT `+amenityColumns+` FROM amenities am WHERE am.id = $1`, id).
		Scan(amenityDest(&a)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query amenity %s: %w", id, err)
	}
	return &a, nil
}

func (r *amenityRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return []models.Amenity{}, nil
	}
	query := `SELECT ` + amenityColumns + `
		FROM amenities am
		WHERE am.id = ANY($1::uuid[])
		ORDER BY am.name`

	return r.query(ctx, query, ids)
}

func (r *amenityRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Amenity, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query amenities: %w", err)
	}
	defer rows.Close()

	amenities := []models.Amenity{}
	for rows.Next() {
		var a models.Amenity
		if err := rows.Scan(amenityDest(&a)...); err != nil {
			return nil, fmt.Errorf("failed to scan amenity row: %w", err)
		}
		amenities = append(amenities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating amenity rows: %w", err)
	}

	return amenities, nil
}

func (r *amenityRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT category FROM amenities WHERE is_active ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query amenity categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect amenity categories: %w", err)
	}
	return categories, nil
}

const insertAmenity = `
	INSERT INTO amenities (
		name, category, description, estimated_cost_low, estimated_cost_high,
		implementation_time, impact_score, popularity_score, requirements, benefits, is_active
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func amenityArgs(a *models.Amenity) []interface{} {
	return []interface{}{
		a.Name, a.Category, a.Description, a.EstimatedCostLow, a.EstimatedCostHigh,
		a.ImplementationTime, a.ImpactScore, a.PopularityScore, a.Requirements, a.Benefits, a.IsActive,
	}
}

func (r *amenityRepository) Create(ctx context.Context, a *models.Amenity) error {
	err := r.db.Pool.QueryRow(ctx, insertAmenity+` RETURNING id, created_at, updated_at`, amenityArgs(a)...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("amenity %q: %w", a.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert amenity: %w", err)
	}
	return nil
}

func (r *amenityRepository) CreateIfAbsent(ctx context.Context, a *models.Amenity) (bool, error) {
	query := insertAmenity + ` ON CONFLICT (name) DO NOTHING RETURNING id, created_at, updated_at`

	err := r.db.Pool.QueryRow(ctx, query, amenityArgs(a)...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert amenity %q: %w", a.Name, err)
	}
	return true, nil
}

func (r *amenityRepository) Update(ctx context.Context, a *models.Amenity) (bool, error) {
	query := `
		UPDATE amenities
		SET name = $2, category = $3, description = $4, estimated_cost_low = $5,
		    estimated_cost_high = $6, implementation_time = $7, impact_score = $8,
		    popularity_score = $9, requirements = $10, benefits = $11, is_active = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	args := append([]interface{}{a.ID}, amenityArgs(a)...)
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, fmt.Errorf("amenity %q: %w", a.Name, ErrDuplicate)
		}
		return false, fmt.Errorf("failed to update amenity %s: %w", a.ID, err)
	}
	return true, nil
}

func (r *amenityRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE amenities SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate amenity %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
