package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/florenciacomuzzi/amp-report/internal/database"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// AnalysisRepository defines data access for analyses and their
// recommended amenities (the analysis_amenities join table).
type AnalysisRepository interface {
	// Create inserts the analysis row and one analysis_amenities row per
	// recommendation, in rank order, inside a single transaction.
	Create(ctx context.Context, a *models.Analysis) error

	// FindByID returns the analysis with its recommended amenities ordered by
	// rank, or nil, nil when it does not exist.
	FindByID(ctx context.Context, id string) (*models.Analysis, error)

	// ListByProperty returns the property's analyses newest first, without
	// their recommended amenities.
	ListByProperty(ctx context.Context, propertyID string) ([]models.Analysis, error)

	// UpdateStatus changes the lifecycle status. Returns false when the analysis is gone.
	UpdateStatus(ctx context.Context, id string, status models.AnalysisStatus) (bool, error)
}

type analysisRepository struct {
	db *database.Database
}

// NewAnalysisRepository creates a new instance of AnalysisRepository.
func NewAnalysisRepository(db *database.Database) AnalysisRepository {
	return &analysisRepository{db: db}
}

const analysisColumns = `
	id, property_id, tenant_profile_id, status, executive_summary,
	action_plan, created_at, updated_at`

func scanAnalysis(row pgx.Row) (*models.Analysis, error) {
	var a models.Analysis
	err := row.Scan(
		&a.ID,
		&a.PropertyID,
		&a.TenantProfileID,
		&a.Status,
		&a.ExecutiveSummary,
		&a.ActionPlan,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *analysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	if a.Status == "" {
		a.Status = models.AnalysisDraft
	}

	return database.WithTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO analyses (property_id, tenant_profile_id, status, executive_summary, action_plan)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			a.PropertyID, a.TenantProfileID, string(a.Status), a.ExecutiveSummary, a.ActionPlan,
		).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert analysis: %w", err)
		}

		if len(a.RecommendedAmenities) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, ra := range a.RecommendedAmenities {
			rec := ra.Recommendation
			batch.Queue(`
				INSERT INTO analysis_amenities (analysis_id, amenity_id, score, rationale, roi, priority, rank)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				a.ID, rec.AmenityID, rec.Score, rec.Rationale, rec.ROI, string(rec.Priority), i+1,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert analysis amenities for %s: %w", a.ID, err)
		}
		return nil
	})
}

func (r *analysisRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	a, err := scanAnalysis(r.db.Pool.QueryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query analysis %s: %w", id, err)
	}

	query := `SELECT ` + amenityColumns + `, aa.score, aa.rationale, aa.roi, aa.priority
		FROM analysis_amenities aa
		JOIN amenities am ON am.id = aa.amenity_id
		WHERE aa.analysis_id = $1
		ORDER BY aa.rank`

	rows, err := r.db.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query amenities for analysis %s: %w", id, err)
	}
	defer rows.Close()

	a.RecommendedAmenities = []models.RecommendedAmenity{}
	for rows.Next() {
		var ra models.RecommendedAmenity
		dest := append(amenityDest(&ra.Amenity),
			&ra.Recommendation.Score,
			&ra.Recommendation.Rationale,
			&ra.Recommendation.ROI,
			&ra.Recommendation.Priority,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan analysis amenity row: %w", err)
		}
		ra.Recommendation.AmenityID = ra.ID
		a.RecommendedAmenities = append(a.RecommendedAmenities, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis amenity rows: %w", err)
	}

	return a, nil
}

func (r *analysisRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Analysis, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE property_id = $1 ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis rows: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepository) UpdateStatus(ctx context.Context, id string, status models.AnalysisStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE analyses SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return false, fmt.Errorf("failed to update analysis %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
