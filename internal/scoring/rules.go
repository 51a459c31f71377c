package scoring

import (
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Stage groups rules by the profile section they read.
type Stage string

const (
	StageDemographics Stage = "demographics"
	StagePreferences  Stage = "preferences"
	StageLifestyle    Stage = "lifestyle"
)

// Amenity categories referenced by the rule tables.
const (
	CategoryFitness        = "Fitness & Wellness"
	CategoryTechnology     = "Technology"
	CategoryCommunity      = "Community"
	CategoryConvenience    = "Convenience"
	CategorySustainability = "Sustainability"
	CategoryLuxury         = "Luxury"
)

// Target selects the amenities a rule applies to, by exact name or category.
type Target struct {
	Names      []string
	Categories []string
}

// Matches reports whether the amenity is one of the target names or belongs
// to one of the target categories. Comparison ignores case.
func (t Target) Matches(a models.Amenity) bool {
	for _, n := range t.Names {
		if strings.EqualFold(n, a.Name) {
			return true
		}
	}
	for _, c := range t.Categories {
		if strings.EqualFold(c, a.Category) {
			return true
		}
	}
	return false
}

// Rule adds Weight × Match(profile) to every targeted amenity. Match returns
// 0 when the rule does not fire; counts or importance multipliers otherwise.
type Rule struct {
	Match     func(p Profile) float64
	Name      string
	Stage     Stage
	Rationale string
	Target    Target
	Weight    float64
}

// EssentialRule forces essential priority on targeted amenities when Applies
// holds, regardless of score.
type EssentialRule struct {
	Applies func(p Profile) bool
	Name    string
	Target  Target
}

func names(n ...string) Target      { return Target{Names: n} }
func categories(c ...string) Target { return Target{Categories: c} }

// when turns a predicate into a 0/1 multiplier.
func when(pred func(p Profile) bool) func(p Profile) float64 {
	return func(p Profile) float64 {
		if pred(p) {
			return 1
		}
		return 0
	}
}

// perPriority fires once for every amenity-priority tag containing a keyword.
func perPriority(keywords ...string) func(p Profile) float64 {
	return func(p Profile) float64 {
		return float64(countTagsContaining(p.AmenityPriorities, keywords...))
	}
}

// perLifestyle sums the importance multipliers of lifestyle entries whose
// category contains a category keyword or whose description contains a
// description keyword.
func perLifestyle(categoryKeywords, descriptionKeywords []string) func(p Profile) float64 {
	return func(p Profile) float64 {
		var total float64
		for _, entry := range p.Lifestyle {
			if containsAny(entry.Category, categoryKeywords...) || containsAny(entry.Description, descriptionKeywords...) {
				total += importanceMultiplier(entry.Importance)
			}
		}
		return total
	}
}

func backgroundMentions(keywords ...string) func(p Profile) bool {
	return func(p Profile) bool {
		return anyTagContains(p.ProfessionalBackgrounds, keywords...)
	}
}

func minIncomeAtLeast(threshold float64) func(p Profile) bool {
	return func(p Profile) bool {
		return p.MinIncome() >= threshold
	}
}

func isPetOwner(p Profile) bool {
	return p.HasPetOwnership && p.PetOwner
}

// DefaultRules returns the production rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		// Demographics
		{
			Name:      "young-professionals",
			Stage:     StageDemographics,
			Match:     when(func(p Profile) bool { return p.ageOverlaps(25, 35) }),
			Target:    names("Fitness Center", "Co-working Space", "High-Speed Internet Infrastructure"),
			Weight:    0.15,
			Rationale: "Popular with young professionals",
		},
		{
			Name:  "families",
			Stage: StageDemographics,
			Match: when(func(p Profile) bool {
				return anyTagContains(p.FamilyComposition, "family", "children")
			}),
			Target:    names("Swimming Pool", "Playground", "BBQ/Picnic Area", "Pet Park/Pet Wash Station"),
			Weight:    0.20,
			Rationale: "Family-friendly amenity",
		},
		{
			Name:      "high-income",
			Stage:     StageDemographics,
			Match:     when(minIncomeAtLeast(HighIncomeThreshold)),
			Target:    names("Concierge Service", "Concierge Services", "Valet Parking", "Wine Storage", "Smart Home Features"),
			Weight:    0.15,
			Rationale: "Appeals to high-income residents",
		},
		{
			Name:      "tech-professionals",
			Stage:     StageDemographics,
			Match:     when(backgroundMentions("tech", "engineer", "developer")),
			Target:    categories(CategoryTechnology),
			Weight:    0.20,
			Rationale: "Attractive to tech professionals",
		},
		{
			Name:      "shift-workers",
			Stage:     StageDemographics,
			Match:     when(backgroundMentions("healthcare", "medical", "nurse")),
			Target:    names("24/7 Security", "On-site Maintenance Team", "Package Lockers"),
			Weight:    0.15,
			Rationale: "Convenient for shift workers",
		},

		// Preferences
		{
			Name:  "drivers",
			Stage: StagePreferences,
			Match: when(func(p Profile) bool {
				return anyTagContains(p.TransportationNeeds, "car", "driving")
			}),
			Target:    names("Covered Parking", "EV Charging Stations", "Valet Parking"),
			Weight:    0.15,
			Rationale: "Matches transportation preferences",
		},
		{
			Name:  "cyclists",
			Stage: StagePreferences,
			Match: when(func(p Profile) bool {
				return anyTagContains(p.TransportationNeeds, "bike", "bicycle")
			}),
			Target:    names("Bike Storage", "Bike Repair Station"),
			Weight:    0.20,
			Rationale: "Supports cycling lifestyle",
		},
		{
			Name:      "pet-owners",
			Stage:     StagePreferences,
			Match:     when(isPetOwner),
			Target:    names("Pet Park/Pet Wash Station", "Pet Grooming Service"),
			Weight:    0.25,
			Rationale: "Essential for pet owners",
		},
		{
			Name:      "fitness-priority",
			Stage:     StagePreferences,
			Match:     perPriority("fitness"),
			Target:    categories(CategoryFitness),
			Weight:    0.20,
			Rationale: "Matches fitness priority",
		},
		{
			Name:      "work-priority",
			Stage:     StagePreferences,
			Match:     perPriority("work"),
			Target:    names("Co-working Space", "High-Speed Internet Infrastructure"),
			Weight:    0.20,
			Rationale: "Supports remote work needs",
		},
		{
			Name:      "community-priority",
			Stage:     StagePreferences,
			Match:     perPriority("community"),
			Target:    categories(CategoryCommunity),
			Weight:    0.15,
			Rationale: "Aligns with community preferences",
		},
		{
			Name:      "convenience-priority",
			Stage:     StagePreferences,
			Match:     perPriority("convenience"),
			Target:    categories(CategoryConvenience),
			Weight:    0.15,
			Rationale: "Provides desired convenience",
		},
		{
			Name:  "eco-priority",
			Stage: StagePreferences,
			Match: perPriority("eco", "green", "sustain"),
			Target: Target{
				Names:      []string{"EV Charging Stations", "Bike Storage"},
				Categories: []string{CategorySustainability},
			},
			Weight:    0.20,
			Rationale: "Supports eco-friendly lifestyle",
		},

		// Lifestyle
		{
			Name:      "active-lifestyle",
			Stage:     StageLifestyle,
			Match:     perLifestyle([]string{"active", "fitness"}, []string{"exercise", "health"}),
			Target:    categories(CategoryFitness),
			Weight:    0.15,
			Rationale: "Supports active lifestyle",
		},
		{
			Name:      "social-lifestyle",
			Stage:     StageLifestyle,
			Match:     perLifestyle([]string{"social"}, []string{"social", "entertain"}),
			Target:    names("Clubhouse/Community Room", "BBQ/Picnic Area", "Rooftop Terrace"),
			Weight:    0.15,
			Rationale: "Facilitates social activities",
		},
		{
			Name:      "professional-lifestyle",
			Stage:     StageLifestyle,
			Match:     perLifestyle([]string{"professional", "work"}, []string{"career", "remote"}),
			Target:    names("Co-working Space", "High-Speed Internet Infrastructure", "Business Center"),
			Weight:    0.20,
			Rationale: "Supports professional lifestyle",
		},
		{
			Name:      "outdoor-lifestyle",
			Stage:     StageLifestyle,
			Match:     perLifestyle([]string{"outdoor"}, []string{"outdoor", "nature"}),
			Target:    names("BBQ/Picnic Area", "Rooftop Terrace", "Garden/Green Space", "Bike Storage"),
			Weight:    0.15,
			Rationale: "Appeals to outdoor enthusiasts",
		},
		{
			Name:  "convenience-lifestyle",
			Stage: StageLifestyle,
			Match: perLifestyle([]string{"convenience"}, []string{"convenient", "busy"}),
			Target: Target{
				Names:      []string{"Package Lockers", "On-site Laundry"},
				Categories: []string{CategoryConvenience},
			},
			Weight:    0.15,
			Rationale: "Provides time-saving convenience",
		},
	}
}

// DefaultEssentialRules returns the priority overrides.
func DefaultEssentialRules() []EssentialRule {
	return []EssentialRule{
		{
			Name:    "pet-owner-pet-area",
			Applies: isPetOwner,
			Target:  names("Pet Park/Pet Wash Station"),
		},
		{
			Name:    "remote-worker-internet",
			Applies: backgroundMentions("remote", "tech"),
			Target:  names("High-Speed Internet Infrastructure"),
		},
		{
			Name:    "shift-worker-lockers",
			Applies: backgroundMentions("healthcare", "consultant"),
			Target:  names("Package Lockers"),
		},
	}
}
