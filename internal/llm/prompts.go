package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/florenciacomuzzi/amp-report/internal/models"
)

const extractionSystemPrompt = "You are a data extraction assistant. Extract structured data from conversations and reply with a single JSON object."

// ChatSystemPrompt primes the assistant that interviews a property manager
// about their ideal tenant.
func ChatSystemPrompt(p *models.Property) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant gathering information to create an ideal tenant profile for a property.\n")
	fmt.Fprintf(&b, "The property is located at: %s, %s, %s %s\n", p.Address.Street, p.Address.City, p.Address.State, p.Address.Zip)
	b.WriteString("Property details: ")
	b.WriteString(propertyDetailsJSON(p))
	b.WriteString(`

Your goal is to ask questions and gather information about:
1. Demographics (age range, income range, family composition, professional backgrounds)
2. Preferences (transportation needs, pet ownership, amenity priorities)
3. Lifestyle factors

Ask about transportation preferences (car vs public transit), parking needs and commute requirements.
Be conversational but focused. Ask one question at a time and guide the conversation naturally.
When you have enough information, summarize what you've learned.`)
	return b.String()
}

// ExtractionPrompt asks for the tenant profile implied by a transcript.
func ExtractionPrompt(p *models.Property, transcript []models.ChatMessage) string {
	var b strings.Builder
	b.WriteString("Based on the following conversation, extract the tenant profile information.\n")
	fmt.Fprintf(&b, "Property location: %s, %s\n", p.Address.City, p.Address.State)
	if rent := p.Details.TargetRentRange; rent.Max > 0 || rent.Min > 0 {
		fmt.Fprintf(&b, "Target monthly rent: $%.0f-$%.0f\n", rent.Min, rent.Max)
	}
	b.WriteString(`
Return a JSON object with:
- demographics: { "ageRange": { "min", "max" }, "incomeRange": { "min", "max" }, "familyComposition": [], "professionalBackgrounds": [] }
- preferences: { "transportationNeeds": [], "petOwnership": boolean, "amenityPriorities": [] }
- lifestyle: [{ "category": string, "description": string, "importance": "high" | "medium" | "low" }]
- summary: a brief summary of the ideal tenant profile

For age ranges, interpret natural language:
- "young professionals" typically means 22-35 years
- "recent graduates" typically means 22-28 years
- "middle aged" typically means 35-55 years
- "established professionals" typically means 30-50 years
- "empty nesters" typically means 50-70 years
- "young couples" typically means 25-35 years
- "families with young children" typically means 28-45 years

For income ranges:
- If only a minimum is mentioned, estimate a reasonable maximum from context
- Tenants typically need 3x the monthly rent as annual income
- Translate descriptive terms such as "high earners" into numeric ranges

Be specific and avoid generic or default values. Omit a range entirely rather than guessing.

Conversation:
`)
	b.WriteString(transcriptJSON(transcript))
	return b.String()
}

func propertyDetailsJSON(p *models.Property) string {
	data, err := json.MarshalIndent(p.Details, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func transcriptJSON(messages []models.ChatMessage) string {
	data, err := json.Marshal(messages)
	if err != nil {
		return "[]"
	}
	return string(data)
}
