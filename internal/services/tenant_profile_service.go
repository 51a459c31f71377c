package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/florenciacomuzzi/amp-report/internal/llm"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/metrics"
	"github.com/florenciacomuzzi/amp-report/internal/models"
	"github.com/florenciacomuzzi/amp-report/internal/repository"
	"github.com/florenciacomuzzi/amp-report/internal/scoring"
)

// TenantProfileInput creates a profile. A nil Confidence is computed.
type TenantProfileInput struct {
	Summary             *string
	Confidence          *float64
	PropertyID          string
	GenerationMethod    models.GenerationMethod
	Demographics        models.Demographics
	Preferences         models.Preferences
	Lifestyle           models.Lifestyle
	ConversationHistory models.ConversationHistory
}

// TenantProfileUpdate is a partial update; nil fields are left unchanged.
// Changing demographics, preferences or lifestyle always recomputes
// confidence, overriding Confidence.
type TenantProfileUpdate struct {
	Demographics        *models.Demographics
	Preferences         *models.Preferences
	Lifestyle           *models.Lifestyle
	Summary             *string
	ConversationHistory *models.ConversationHistory
	GenerationMethod    *models.GenerationMethod
	Confidence          *float64
}

// ExtractedProfile is the unsaved profile inferred from a chat transcript.
type ExtractedProfile struct {
	Demographics models.Demographics         `json:"demographics"`
	Preferences  models.Preferences          `json:"preferences"`
	Summary      string                      `json:"summary"`
	Lifestyle    models.Lifestyle            `json:"lifestyle"`
	Breakdown    scoring.ConfidenceBreakdown `json:"confidenceBreakdown"`
	Confidence   float64                     `json:"confidence"`
}

// ChatResponse is the assistant's next turn and, when extraction succeeded,
// the profile implied by the conversation so far.
type ChatResponse struct {
	ExtractedProfile *ExtractedProfile `json:"extractedProfile"`
	Response         string            `json:"response"`
}

// ProfileAssistant produces chat replies and profile extractions.
type ProfileAssistant interface {
	Chat(ctx context.Context, property *models.Property, transcript []models.ChatMessage) (*llm.ChatResult, error)
}

// TenantProfileService defines tenant-profile business logic. Access is
// scoped through the owning property.
type TenantProfileService interface {
	// Create returns ErrProfileExists when the property already has a profile.
	Create(ctx context.Context, userID string, in TenantProfileInput) (*models.TenantProfile, error)

	// Get returns ErrTenantProfileNotFound when the profile does not exist.
	Get(ctx context.Context, userID, id string) (*models.TenantProfile, error)

	// GetByProperty returns ErrTenantProfileNotFound when the property has no profile.
	GetByProperty(ctx context.Context, userID, propertyID string) (*models.TenantProfile, error)

	Update(ctx context.Context, userID, id string, upd TenantProfileUpdate) (*models.TenantProfile, error)

	Delete(ctx context.Context, userID, id string) error

	// Chat continues the profile interview for a property. Nothing is saved.
	// Returns ErrChatDisabled when no assistant is configured.
	Chat(ctx context.Context, userID, propertyID string, transcript []models.ChatMessage) (*ChatResponse, error)
}

type tenantProfileService struct {
	profiles   repository.TenantProfileRepository
	properties repository.PropertyRepository
	scorer     *scoring.ConfidenceScorer
	assistant  ProfileAssistant
	log        *logger.Logger
}

// NewTenantProfileService creates a new instance of TenantProfileService.
// assistant may be nil, which disables Chat.
func NewTenantProfileService(
	profiles repository.TenantProfileRepository,
	properties repository.PropertyRepository,
	scorer *scoring.ConfidenceScorer,
	assistant ProfileAssistant,
	log *logger.Logger,
) TenantProfileService {
	return &tenantProfileService{
		profiles:   profiles,
		properties: properties,
		scorer:     scorer,
		assistant:  assistant,
		log:        log.Named("tenant_profiles"),
	}
}

func (s *tenantProfileService) Create(ctx context.Context, userID string, in TenantProfileInput) (*models.TenantProfile, error) {
	if _, err := ownedProperty(ctx, s.properties, userID, in.PropertyID); err != nil {
		return nil, err
	}

	method := in.GenerationMethod
	if method == "" {
		method = models.GenerationManual
	}

	tp := &models.TenantProfile{
		PropertyID:          in.PropertyID,
		Demographics:        in.Demographics,
		Preferences:         in.Preferences,
		Lifestyle:           in.Lifestyle,
		Summary:             in.Summary,
		ConversationHistory: in.ConversationHistory,
		GenerationMethod:    method,
	}
	if in.Confidence != nil {
		tp.Confidence = *in.Confidence
	} else {
		tp.Confidence = s.confidence(tp)
	}

	if err := s.profiles.Create(ctx, tp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		s.log.Error("Failed to create tenant profile", err, map[string]interface{}{"property_id": in.PropertyID})
		return nil, fmt.Errorf("failed to create tenant profile: %w", err)
	}

	s.log.Info("Tenant profile created", map[string]interface{}{
		"property_id":       tp.PropertyID,
		"tenant_profile_id": tp.ID,
		"generation_method": tp.GenerationMethod,
		"confidence":        tp.Confidence,
	})
	return tp, nil
}

func (s *tenantProfileService) Get(ctx context.Context, userID, id string) (*models.TenantProfile, error) {
	if !validID(id) {
		return nil, ErrTenantProfileNotFound
	}

	tp, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant profile: %w", err)
	}
	return s.authorize(ctx, userID, tp)
}

func (s *tenantProfileService) GetByProperty(ctx context.Context, userID, propertyID string) (*models.TenantProfile, error) {
	if _, err := ownedProperty(ctx, s.properties, userID, propertyID); err != nil {
		return nil, err
	}

	tp, err := s.profiles.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant profile: %w", err)
	}
	if tp == nil {
		return nil, ErrTenantProfileNotFound
	}
	return tp, nil
}

// authorize checks the profile exists and its property belongs to userID.
func (s *tenantProfileService) authorize(ctx context.Context, userID string, tp *models.TenantProfile) (*models.TenantProfile, error) {
	if tp == nil {
		return nil, ErrTenantProfileNotFound
	}
	if _, err := ownedProperty(ctx, s.properties, userID, tp.PropertyID); err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return nil, ErrTenantProfileNotFound
		}
		return nil, err
	}
	return tp, nil
}

func (s *tenantProfileService) Update(ctx context.Context, userID, id string, upd TenantProfileUpdate) (*models.TenantProfile, error) {
	tp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	rescore := false
	if upd.Demographics != nil {
		tp.Demographics = *upd.Demographics
		rescore = true
	}
	if upd.Preferences != nil {
		tp.Preferences = *upd.Preferences
		rescore = true
	}
	if upd.Lifestyle != nil {
		tp.Lifestyle = *upd.Lifestyle
		rescore = true
	}
	if upd.Summary != nil {
		tp.Summary = upd.Summary
	}
	if upd.ConversationHistory != nil {
		tp.ConversationHistory = *upd.ConversationHistory
	}
	if upd.GenerationMethod != nil {
		tp.GenerationMethod = *upd.GenerationMethod
	}

	switch {
	case rescore:
		tp.Confidence = s.confidence(tp)
	case upd.Confidence != nil:
		tp.Confidence = *upd.Confidence
	}

	ok, err := s.profiles.Update(ctx, tp)
	if err != nil {
		s.log.Error("Failed to update tenant profile", err, map[string]interface{}{"tenant_profile_id": id})
		return nil, fmt.Errorf("failed to update tenant profile: %w", err)
	}
	if !ok {
		return nil, ErrTenantProfileNotFound
	}

	s.log.Info("Tenant profile updated", map[string]interface{}{
		"tenant_profile_id": id,
		"rescored":          rescore,
		"confidence":        tp.Confidence,
	})
	return tp, nil
}

func (s *tenantProfileService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	ok, err := s.profiles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant profile: %w", err)
	}
	if !ok {
		return ErrTenantProfileNotFound
	}

	s.log.Info("Tenant profile deleted", map[string]interface{}{"tenant_profile_id": id})
	return nil
}

func (s *tenantProfileService) Chat(ctx context.Context, userID, propertyID string, transcript []models.ChatMessage) (*ChatResponse, error) {
	if s.assistant == nil {
		return nil, ErrChatDisabled
	}

	property, err := ownedProperty(ctx, s.properties, userID, propertyID)
	if err != nil {
		return nil, err
	}

	result, err := s.assistant.Chat(ctx, property, transcript)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChatUpstream, err)
	}

	resp := &ChatResponse{Response: result.Reply}
	if e := result.Extraction; e != nil {
		breakdown := s.scorer.Breakdown(scoring.ConfidenceInput{
			Demographics:       &e.Demographics,
			Preferences:        &e.Preferences,
			Lifestyle:          e.Lifestyle,
			GenerationMethod:   models.GenerationChat,
			ConversationLength: len(transcript),
		})
		metrics.ProfileConfidence.WithLabelValues(string(models.GenerationChat)).Observe(breakdown.Confidence)

		resp.ExtractedProfile = &ExtractedProfile{
			Demographics: e.Demographics,
			Preferences:  e.Preferences,
			Lifestyle:    e.Lifestyle,
			Summary:      e.Summary,
			Confidence:   breakdown.Confidence,
			Breakdown:    breakdown,
		}
	}

	s.log.Info("Profile chat turn completed", map[string]interface{}{
		"property_id": propertyID,
		"messages":    len(transcript),
		"extracted":   resp.ExtractedProfile != nil,
	})
	return resp, nil
}

func (s *tenantProfileService) confidence(tp *models.TenantProfile) float64 {
	c := s.scorer.Compute(scoring.ConfidenceInput{
		Demographics:       &tp.Demographics,
		Preferences:        &tp.Preferences,
		Lifestyle:          tp.Lifestyle,
		GenerationMethod:   tp.GenerationMethod,
		ConversationLength: len(tp.ConversationHistory),
	})
	metrics.ProfileConfidence.WithLabelValues(string(tp.GenerationMethod)).Observe(c)
	return c
}
