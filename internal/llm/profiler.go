package llm

import (
	"context"

	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Completer is the part of Client the Profiler needs.
type Completer interface {
	Complete(ctx context.Context, purpose string, messages []models.ChatMessage, jsonMode bool) (*Completion, error)
}

// ChatResult is the assistant's next turn plus the profile extracted from the
// transcript so far. Extraction is nil when nothing usable came back.
type ChatResult struct {
	Extraction *Extraction
	Reply      string
}

// Profiler runs the profile chat: one completion for the assistant's reply and
// one for structured extraction.
type Profiler struct {
	llm Completer
	log *logger.Logger
}

// NewProfiler creates a Profiler over the given completer.
func NewProfiler(llm Completer, log *logger.Logger) *Profiler {
	return &Profiler{llm: llm, log: log.Named("profiler")}
}

// Chat returns the next assistant turn for transcript. An extraction failure
// is logged and leaves ChatResult.Extraction nil; only a failed reply is an error.
func (p *Profiler) Chat(ctx context.Context, property *models.Property, transcript []models.ChatMessage) (*ChatResult, error) {
	messages := make([]models.ChatMessage, 0, len(transcript)+1)
	messages = append(messages, models.ChatMessage{Role: "system", Content: ChatSystemPrompt(property)})
	messages = append(messages, transcript...)

	reply, err := p.llm.Complete(ctx, PurposeChat, messages, false)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Reply:      reply.Content,
		Extraction: p.extract(ctx, property, transcript),
	}, nil
}

func (p *Profiler) extract(ctx context.Context, property *models.Property, transcript []models.ChatMessage) *Extraction {
	completion, err := p.llm.Complete(ctx, PurposeExtract, []models.ChatMessage{
		{Role: "system", Content: extractionSystemPrompt},
		{Role: "user", Content: ExtractionPrompt(property, transcript)},
	}, true)
	if err != nil {
		p.log.Warn("Profile extraction request failed", map[string]interface{}{
			"property_id": property.ID,
			"error":       err.Error(),
		})
		return nil
	}

	extraction, err := ParseExtraction(completion.Content)
	if err != nil {
		p.log.Warn("Profile extraction returned unusable output", map[string]interface{}{
			"property_id": property.ID,
			"error":       err.Error(),
		})
		return nil
	}

	FixRanges(extraction, &property.Details.TargetRentRange)
	return extraction
}
