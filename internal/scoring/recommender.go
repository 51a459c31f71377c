package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// RecommenderConfig holds the ranking and ROI constants.
type RecommenderConfig struct {
	ROI                  ROIConfig
	MaxResults           int
	MinScore             float64
	EssentialThreshold   float64
	RecommendedThreshold float64
	// BaseWeight scales popularity and impact (each out of 100) into the score.
	BaseWeight float64
}

// DefaultRecommenderConfig returns the production ranking constants.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		ROI:                  DefaultROIConfig(),
		MaxResults:           15,
		MinScore:             0.1,
		EssentialThreshold:   0.7,
		RecommendedThreshold: 0.5,
		BaseWeight:           0.2,
	}
}

// ScoredAmenity is the unrounded result of scoring one amenity.
type ScoredAmenity struct {
	Amenity   models.Amenity
	Priority  models.Priority
	Rationale []string
	Score     float64
}

// Recommender ranks a catalog against a tenant profile.
type Recommender struct {
	rules      []Rule
	essentials []EssentialRule
	cfg        RecommenderConfig
}

// NewRecommender creates a recommender using the default rule tables.
func NewRecommender(cfg RecommenderConfig) *Recommender {
	return NewRecommenderWithRules(cfg, DefaultRules(), DefaultEssentialRules())
}

// NewRecommenderWithRules creates a recommender with custom rule tables.
func NewRecommenderWithRules(cfg RecommenderConfig, rules []Rule, essentials []EssentialRule) *Recommender {
	return &Recommender{rules: rules, essentials: essentials, cfg: cfg}
}

// Rules returns the rule table the recommender evaluates.
func (r *Recommender) Rules() []Rule {
	return r.rules
}

// ScoreAmenity applies every rule plus the base popularity/impact terms.
func (r *Recommender) ScoreAmenity(p Profile, a models.Amenity) ScoredAmenity {
	var score float64
	var rationale []string

	for _, rule := range r.rules {
		if !rule.Target.Matches(a) {
			continue
		}
		multiplier := rule.Match(p)
		if multiplier <= 0 {
			continue
		}
		score += rule.Weight * multiplier
		rationale = append(rationale, rule.Rationale)
	}

	score += r.cfg.BaseWeight * a.PopularityScore / 100
	score += r.cfg.BaseWeight * a.ImpactScore / 100
	score = math.Min(score, 1)

	return ScoredAmenity{
		Amenity:   a,
		Score:     score,
		Rationale: rationale,
		Priority:  r.priority(p, a, score),
	}
}

func (r *Recommender) priority(p Profile, a models.Amenity, score float64) models.Priority {
	if score > r.cfg.EssentialThreshold || r.isEssential(p, a) {
		return models.PriorityEssential
	}
	if score > r.cfg.RecommendedThreshold {
		return models.PriorityRecommended
	}
	return models.PriorityNiceToHave
}

func (r *Recommender) isEssential(p Profile, a models.Amenity) bool {
	for _, e := range r.essentials {
		if e.Target.Matches(a) && e.Applies(p) {
			return true
		}
	}
	return false
}

// Recommend scores every amenity, drops those at or below MinScore, and
// returns the best MaxResults sorted by score descending, then name.
func (r *Recommender) Recommend(p Profile, amenities []models.Amenity) []models.AmenityRecommendation {
	scored := make([]ScoredAmenity, 0, len(amenities))
	for _, a := range amenities {
		s := r.ScoreAmenity(p, a)
		if s.Score <= r.cfg.MinScore {
			continue
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Amenity.Name < scored[j].Amenity.Name
	})

	if r.cfg.MaxResults > 0 && len(scored) > r.cfg.MaxResults {
		scored = scored[:r.cfg.MaxResults]
	}

	out := make([]models.AmenityRecommendation, 0, len(scored))
	for _, s := range scored {
		out = append(out, models.AmenityRecommendation{
			AmenityID: s.Amenity.ID,
			Score:     round2(s.Score),
			Rationale: joinRationale(s.Rationale),
			ROI:       EstimateROI(r.cfg.ROI, p, s.Amenity),
			Priority:  s.Priority,
		})
	}
	return out
}

// joinRationale joins rule rationales in order, dropping repeats.
func joinRationale(parts []string) string {
	seen := make(map[string]struct{}, len(parts))
	unique := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		unique = append(unique, part)
	}
	return strings.Join(unique, ". ")
}
