package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// ConfidenceWeights are the weights of the five confidence sub-scores.
type ConfidenceWeights struct {
	Demographics float64
	Preferences  float64
	Lifestyle    float64
	Source       float64
	Specificity  float64
}

func (w ConfidenceWeights) sum() float64 {
	return w.Demographics + w.Preferences + w.Lifestyle + w.Source + w.Specificity
}

// ConfidenceConfig holds the constants used by ConfidenceScorer.
type ConfidenceConfig struct {
	Weights ConfidenceWeights
	// SubScoreFloor is the demographics/preferences score when nothing is filled in.
	SubScoreFloor float64
	// DefaultAgeRange and DefaultIncomeRange are the placeholder values the
	// profile generator falls back to; matching them counts as unspecific.
	DefaultAgeRange    models.Range
	DefaultIncomeRange models.Range
	GenericProfessions []string
}

// DefaultConfidenceConfig returns the production confidence constants.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		Weights: ConfidenceWeights{
			Demographics: 0.30,
			Preferences:  0.25,
			Lifestyle:    0.20,
			Source:       0.15,
			Specificity:  0.10,
		},
		SubScoreFloor:      0.3,
		DefaultAgeRange:    models.Range{Min: 25, Max: 45},
		DefaultIncomeRange: models.Range{Min: 50000, Max: 100000},
		GenericProfessions: []string{"technology", "finance", "healthcare"},
	}
}

// ConfidenceInput is everything the confidence computation looks at.
// Any section may be nil.
type ConfidenceInput struct {
	Demographics       *models.Demographics
	Preferences        *models.Preferences
	GenerationMethod   models.GenerationMethod
	Lifestyle          models.Lifestyle
	ConversationLength int
}

// ConfidenceBreakdown exposes each sub-score next to the final confidence.
type ConfidenceBreakdown struct {
	Demographics float64 `json:"demographics"`
	Preferences  float64 `json:"preferences"`
	Lifestyle    float64 `json:"lifestyle"`
	Source       float64 `json:"source"`
	Specificity  float64 `json:"specificity"`
	Confidence   float64 `json:"confidence"`
}

// ConfidenceScorer rates how complete, specific and reliable a tenant profile is.
type ConfidenceScorer struct {
	cfg ConfidenceConfig
}

// NewConfidenceScorer creates a scorer with the given constants.
func NewConfidenceScorer(cfg ConfidenceConfig) *ConfidenceScorer {
	return &ConfidenceScorer{cfg: cfg}
}

// ComputeConfidence scores a profile with the default constants.
func ComputeConfidence(in ConfidenceInput) float64 {
	return NewConfidenceScorer(DefaultConfidenceConfig()).Compute(in)
}

// Compute returns the profile confidence in [0,1], rounded to 2 decimals.
func (s *ConfidenceScorer) Compute(in ConfidenceInput) float64 {
	return s.Breakdown(in).Confidence
}

// Breakdown computes every sub-score and the weighted confidence.
func (s *ConfidenceScorer) Breakdown(in ConfidenceInput) ConfidenceBreakdown {
	p := NormalizeProfile(in.Demographics, in.Preferences, in.Lifestyle)

	b := ConfidenceBreakdown{
		Demographics: s.demographicsScore(p),
		Preferences:  s.preferencesScore(p),
		Lifestyle:    lifestyleScore(p),
		Source:       sourceScore(in.GenerationMethod, in.ConversationLength),
		Specificity:  s.specificityScore(p),
	}

	w := s.cfg.Weights
	total := w.sum()
	if total <= 0 {
		b.Confidence = 0.5
		return b
	}

	weighted := b.Demographics*w.Demographics +
		b.Preferences*w.Preferences +
		b.Lifestyle*w.Lifestyle +
		b.Source*w.Source +
		b.Specificity*w.Specificity

	b.Confidence = round2(clamp(weighted/total, 0, 1))
	return b
}

func (s *ConfidenceScorer) demographicsScore(p Profile) float64 {
	const maxFields = 4
	var score float64
	fields := 0

	if p.HasAgeRange {
		fields++
		spread := p.AgeRange.Max - p.AgeRange.Min
		switch {
		case spread <= 10:
			score += 1
		case spread <= 20:
			score += 0.85
		default:
			score += 0.7
		}
	}

	if p.HasIncomeRange {
		fields++
		ratio := p.IncomeRange.Max / p.IncomeRange.Min
		switch {
		case ratio <= 1.5:
			score += 1
		case ratio <= 2:
			score += 0.85
		default:
			score += 0.7
		}
	}

	if len(p.FamilyComposition) > 0 {
		fields++
		score += tagRichness(len(p.FamilyComposition), 2)
	}

	if len(p.ProfessionalBackgrounds) > 0 {
		fields++
		score += tagRichness(len(p.ProfessionalBackgrounds), 3)
	}

	return s.completeness(score, fields, maxFields, 0.2)
}

func (s *ConfidenceScorer) preferencesScore(p Profile) float64 {
	const maxFields = 3
	var score float64
	fields := 0

	if len(p.TransportationNeeds) > 0 {
		fields++
		score += tagRichness(len(p.TransportationNeeds), 2)
	}

	if p.HasPetOwnership {
		fields++
		score++
	}

	if len(p.AmenityPriorities) > 0 {
		fields++
		score += math.Min(float64(len(p.AmenityPriorities))/5, 1)
	}

	return s.completeness(score, fields, maxFields, 0.15)
}

// completeness averages per-field credit, adds a bonus proportional to the
// filled-field ratio and keeps the result within [floor, 1].
func (s *ConfidenceScorer) completeness(score float64, fields, maxFields int, bonusWeight float64) float64 {
	if fields == 0 {
		return s.cfg.SubScoreFloor
	}
	base := score / float64(fields)
	bonus := float64(fields) / float64(maxFields) * bonusWeight
	return clamp(base+bonus, s.cfg.SubScoreFloor, 1)
}

func lifestyleScore(p Profile) float64 {
	n := len(p.Lifestyle)
	if n == 0 {
		return 0
	}

	countScore := math.Min(float64(n)/5, 1)

	var quality float64
	for _, entry := range p.Lifestyle {
		if entry.Category == "" || entry.Description == "" || entry.Importance == "" {
			continue
		}
		length := utf8.RuneCountInString(entry.Description)
		switch {
		case length > 100:
			quality += 1
		case length > 50:
			quality += 0.8
		default:
			quality += 0.5
		}
	}

	return countScore*0.5 + (quality/float64(n))*0.5
}

func sourceScore(method models.GenerationMethod, conversationLength int) float64 {
	switch method {
	case models.GenerationManual:
		return 0.9
	case models.GenerationQuestionnaire:
		return 0.8
	case models.GenerationChat:
		switch {
		case conversationLength > 20:
			return 0.85
		case conversationLength > 10:
			return 0.75
		case conversationLength > 5:
			return 0.65
		default:
			return 0.55
		}
	default:
		return 0.5
	}
}

func (s *ConfidenceScorer) specificityScore(p Profile) float64 {
	const checks = 4
	passed := 0

	if p.HasAgeRange && p.AgeRange != s.cfg.DefaultAgeRange {
		passed++
	}
	if p.HasIncomeRange && p.IncomeRange != s.cfg.DefaultIncomeRange {
		passed++
	}
	if s.hasSpecificProfession(p.ProfessionalBackgrounds) {
		passed++
	}
	if len(p.AmenityPriorities) > 3 {
		passed++
	}

	return float64(passed) / checks
}

func (s *ConfidenceScorer) hasSpecificProfession(backgrounds []string) bool {
	for _, bg := range backgrounds {
		generic := false
		for _, g := range s.cfg.GenericProfessions {
			if strings.EqualFold(bg, g) {
				generic = true
				break
			}
		}
		if !generic {
			return true
		}
	}
	return false
}

// tagRichness is full credit at rich tag counts and 0.8 otherwise.
func tagRichness(count, rich int) float64 {
	if count >= rich {
		return 1
	}
	return 0.8
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
