// Package scoring holds the tenant-profile confidence scorer and the
// rule-based amenity recommender. Everything here is pure: callers load
// profiles and catalogs from storage and hand in immutable snapshots.
package scoring

import (
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Importance multipliers applied to lifestyle rule contributions.
const (
	highImportanceMultiplier   = 1.5
	mediumImportanceMultiplier = 1.0
	lowImportanceMultiplier    = 0.5
)

// Profile is a tenant profile normalized for scoring.
//
// A range counts as provided only when both bounds are positive. A range of
// {0, 0} therefore means "no data" everywhere in this package, for confidence
// and recommendation alike. IncomeFloor keeps a positive lower income bound
// even when the upper bound is missing, since income thresholds look at the
// minimum alone.
type Profile struct {
	AgeRange                models.Range
	IncomeRange             models.Range
	IncomeFloor             float64
	FamilyComposition       []string
	ProfessionalBackgrounds []string
	TransportationNeeds     []string
	AmenityPriorities       []string
	Lifestyle               []models.LifestyleEntry
	HasAgeRange             bool
	HasIncomeRange          bool
	HasPetOwnership         bool
	PetOwner                bool
}

// NormalizeProfile turns possibly-partial profile sections into a fully
// populated Profile. Nil sections, blank tags and whitespace are dropped.
func NormalizeProfile(d *models.Demographics, p *models.Preferences, lifestyle models.Lifestyle) Profile {
	var out Profile

	if d != nil {
		if rangeProvided(d.AgeRange) {
			out.AgeRange = *d.AgeRange
			out.HasAgeRange = true
		}
		if rangeProvided(d.IncomeRange) {
			out.IncomeRange = *d.IncomeRange
			out.HasIncomeRange = true
		}
		if d.IncomeRange != nil && d.IncomeRange.Min > 0 {
			out.IncomeFloor = d.IncomeRange.Min
		}
		out.FamilyComposition = cleanTags(d.FamilyComposition)
		out.ProfessionalBackgrounds = cleanTags(d.ProfessionalBackgrounds)
	}

	if p != nil {
		out.TransportationNeeds = cleanTags(p.TransportationNeeds)
		out.AmenityPriorities = cleanTags(p.AmenityPriorities)
		if p.PetOwnership != nil {
			out.HasPetOwnership = true
			out.PetOwner = *p.PetOwnership
		}
	}

	out.Lifestyle = make([]models.LifestyleEntry, 0, len(lifestyle))
	for _, entry := range lifestyle {
		out.Lifestyle = append(out.Lifestyle, models.LifestyleEntry{
			Category:    strings.TrimSpace(entry.Category),
			Description: strings.TrimSpace(entry.Description),
			Importance:  models.Importance(strings.ToLower(strings.TrimSpace(string(entry.Importance)))),
		})
	}

	return out
}

// NormalizeTenantProfile is NormalizeProfile for a stored profile.
func NormalizeTenantProfile(tp *models.TenantProfile) Profile {
	if tp == nil {
		return NormalizeProfile(nil, nil, nil)
	}
	return NormalizeProfile(&tp.Demographics, &tp.Preferences, tp.Lifestyle)
}

// MinIncome returns the lower income bound, or 0 when none was given.
func (p Profile) MinIncome() float64 {
	return p.IncomeFloor
}

// ageOverlaps reports whether the provided age range intersects [lo, hi].
func (p Profile) ageOverlaps(lo, hi float64) bool {
	return p.HasAgeRange && p.AgeRange.Min <= hi && p.AgeRange.Max >= lo
}

func rangeProvided(r *models.Range) bool {
	return r != nil && r.Min > 0 && r.Max > 0
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// containsAny reports whether s contains any keyword, case-insensitively.
func containsAny(s string, keywords ...string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// anyTagContains reports whether some tag contains one of the keywords.
func anyTagContains(tags []string, keywords ...string) bool {
	for _, t := range tags {
		if containsAny(t, keywords...) {
			return true
		}
	}
	return false
}

// countTagsContaining counts the tags that contain one of the keywords.
func countTagsContaining(tags []string, keywords ...string) int {
	n := 0
	for _, t := range tags {
		if containsAny(t, keywords...) {
			n++
		}
	}
	return n
}

func importanceMultiplier(i models.Importance) float64 {
	switch i {
	case models.ImportanceHigh:
		return highImportanceMultiplier
	case models.ImportanceMedium:
		return mediumImportanceMultiplier
	default:
		return lowImportanceMultiplier
	}
}
