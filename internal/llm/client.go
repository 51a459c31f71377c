// Package llm talks to an OpenAI-compatible chat-completion endpoint and
// turns profile-chat transcripts into structured tenant profiles.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/florenciacomuzzi/amp-report/internal/config"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/metrics"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

// Request purposes, used as a metrics label.
const (
	PurposeChat    = "chat"
	PurposeExtract = "extract"
)

var (
	// ErrNotConfigured is returned by NewClient when no API key is set.
	ErrNotConfigured = errors.New("llm client not configured")
	// ErrEmptyResponse is returned when the completion has no choices.
	ErrEmptyResponse = errors.New("no choices in completion response")
)

// Completion is the text of a chat completion plus its token usage.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// Client wraps the go-openai client with timeouts, logging and metrics.
type Client struct {
	client      *openai.Client
	log         *logger.Logger
	model       string
	temperature float32
	timeout     time.Duration
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg config.LLMConfig, log *logger.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		log:         log.Named("llm"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends messages and returns the first choice. When jsonMode is set
// the endpoint is asked for a JSON object response.
func (c *Client) Complete(ctx context.Context, purpose string, messages []models.ChatMessage, jsonMode bool) (*Completion, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.log.Debug("LLM request", map[string]interface{}{
		"model":    c.model,
		"purpose":  purpose,
		"messages": len(messages),
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	elapsed := time.Since(start)
	metrics.LLMRequestDuration.WithLabelValues(c.model, purpose).Observe(elapsed.Seconds())

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, purpose, "error").Inc()
		c.log.Error("LLM request failed", err, map[string]interface{}{
			"model":      c.model,
			"purpose":    purpose,
			"elapsed_ms": elapsed.Milliseconds(),
		})
		return nil, fmt.Errorf("chat completion (%s): %w", purpose, err)
	}
	if len(resp.Choices) == 0 {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, purpose, "empty").Inc()
		return nil, ErrEmptyResponse
	}

	metrics.LLMRequestsTotal.WithLabelValues(c.model, purpose, "success").Inc()
	metrics.LLMTokensUsed.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))

	c.log.Info("LLM request completed", map[string]interface{}{
		"model":             c.model,
		"purpose":           purpose,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"elapsed_ms":        elapsed.Milliseconds(),
	})

	return &Completion{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// StatusCode returns the HTTP status of an upstream API error, or 0.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
