// Package seed loads the default amenity catalog into the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

//go:embed amenities.yaml
var defaultCatalog []byte

type costBand struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

type catalogEntry struct {
	Name               string   `yaml:"name"`
	Category           string   `yaml:"category"`
	Description        string   `yaml:"description"`
	ImplementationTime string   `yaml:"implementation_time"`
	Requirements       []string `yaml:"requirements"`
	Benefits           []string `yaml:"benefits"`
	Cost               costBand `yaml:"cost"`
	Impact             float64  `yaml:"impact"`
	Popularity         float64  `yaml:"popularity"`
}

type catalogFile struct {
	Amenities []catalogEntry `yaml:"amenities"`
}

// AmenityStore is the part of the amenity repository the seeder writes through.
type AmenityStore interface {
	CreateIfAbsent(ctx context.Context, a *models.Amenity) (bool, error)
}

// Result counts what a seed run did.
type Result struct {
	Created int
	Skipped int
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() ([]models.Amenity, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog and validates every entry.
func ParseCatalog(data []byte) ([]models.Amenity, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse amenity catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Amenities))
	amenities := make([]models.Amenity, 0, len(file.Amenities))
	for i, e := range file.Amenities {
		if e.Name == "" || e.Category == "" {
			return nil, fmt.Errorf("catalog entry %d: name and category are required", i)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = struct{}{}
		if e.Cost.Low < 0 || e.Cost.High < e.Cost.Low {
			return nil, fmt.Errorf("catalog entry %q: invalid cost band %d-%d", e.Name, e.Cost.Low, e.Cost.High)
		}
		if e.Impact < 0 || e.Impact > 100 || e.Popularity < 0 || e.Popularity > 100 {
			return nil, fmt.Errorf("catalog entry %q: scores must be within 0-100", e.Name)
		}

		amenities = append(amenities, models.Amenity{
			Name:               e.Name,
			Category:           e.Category,
			Description:        e.Description,
			EstimatedCostLow:   e.Cost.Low,
			EstimatedCostHigh:  e.Cost.High,
			ImplementationTime: e.ImplementationTime,
			ImpactScore:        e.Impact,
			PopularityScore:    e.Popularity,
			Requirements:       e.Requirements,
			Benefits:           e.Benefits,
			IsActive:           true,
		})
	}
	return amenities, nil
}

// Amenities inserts every catalog entry whose name is not already present.
// Running it twice is a no-op the second time.
func Amenities(ctx context.Context, store AmenityStore, catalog []models.Amenity, log *logger.Logger) (Result, error) {
	var res Result
	for i := range catalog {
		a := catalog[i]
		created, err := store.CreateIfAbsent(ctx, &a)
		if err != nil {
			return res, fmt.Errorf("failed to seed amenity %q: %w", a.Name, err)
		}
		if created {
			res.Created++
			log.Debug("Amenity seeded", map[string]interface{}{"name": a.Name, "category": a.Category})
		} else {
			res.Skipped++
		}
	}

	log.Info("Amenity catalog seeded", map[string]interface{}{
		"created": res.Created,
		"skipped": res.Skipped,
	})
	return res, nil
}
