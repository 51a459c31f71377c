package models

import (
	"time"
)

// GenerationMethod records how a tenant profile was produced.
type GenerationMethod string

const (
	GenerationManual        GenerationMethod = "manual"
	GenerationQuestionnaire GenerationMethod = "questionnaire"
	GenerationChat          GenerationMethod = "chat"
)

// Importance is the weight a tenant segment places on a lifestyle entry.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Range is an inclusive numeric interval such as an age or income band.
// Bounds are stored as given; min > max is tolerated, not corrected.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Demographics describes who the ideal tenant is.
// Every field is optional: profiles produced by the chat extractor are often partial.
type Demographics struct {
	AgeRange                *Range   `json:"ageRange,omitempty"`
	IncomeRange             *Range   `json:"incomeRange,omitempty"`
	FamilyComposition       []string `json:"familyComposition,omitempty"`
	ProfessionalBackgrounds []string `json:"professionalBackgrounds,omitempty"`
}

// Preferences describes what the ideal tenant asks for.
// PetOwnership is a pointer so that "not asked" and "no pets" stay distinct.
type Preferences struct {
	TransportationNeeds []string `json:"transportationNeeds,omitempty"`
	PetOwnership        *bool    `json:"petOwnership,omitempty"`
	AmenityPriorities   []string `json:"amenityPriorities,omitempty"`
}

// LifestyleEntry is one lifestyle trait of the ideal tenant.
type LifestyleEntry struct {
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
}

// Lifestyle is the ordered list of lifestyle entries stored on a profile.
type Lifestyle []LifestyleEntry

// ChatMessage is one turn of the profile chat transcript.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// ConversationHistory is the transcript a chat-generated profile was extracted from.
type ConversationHistory []ChatMessage

// TenantProfile is the ideal-renter description attached to a property.
type TenantProfile struct {
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	Summary             *string             `json:"summary,omitempty"`
	Demographics        Demographics        `json:"demographics"`
	Preferences         Preferences         `json:"preferences"`
	ID                  string              `json:"id"`
	PropertyID          string              `json:"propertyId"`
	GenerationMethod    GenerationMethod    `json:"generationMethod"`
	Lifestyle           Lifestyle           `json:"lifestyle"`
	ConversationHistory ConversationHistory `json:"conversationHistory,omitempty"`
	Confidence          float64             `json:"confidence"`
}
