package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenciacomuzzi/amp-report/internal/config"
	"github.com/florenciacomuzzi/amp-report/internal/logger"
	"github.com/florenciacomuzzi/amp-report/internal/models"
)

type recordedRequest struct {
	Model          string `json:"model"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// fakeOpenAI serves /v1/chat/completions, answering with reply and
// recording the decoded request bodies.
func fakeOpenAI(t *testing.T, status int, reply string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req recordedRequest
		require.NoError(t, json.Unmarshal(body, &req))
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]interface{}{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": reply}},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(config.LLMConfig{
		APIKey:      "sk-test",
		BaseURL:     baseURL + "/v1/",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}, logger.New("test"))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(config.LLMConfig{Model: "gpt-4o-mini"}, logger.New("test"))
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(config.LLMConfig{APIKey: "sk-test"}, logger.New("test"))
	assert.Error(t, err)
}

func TestClient_Complete(t *testing.T) {
	srv, requests := fakeOpenAI(t, http.StatusOK, "What age range are you targeting?")
	client := newTestClient(t, srv.URL)

	got, err := client.Complete(context.Background(), PurposeChat, []models.ChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	}, false)

	require.NoError(t, err)
	assert.Equal(t, "What age range are you targeting?", got.Content)
	assert.Equal(t, 12, got.PromptTokens)
	assert.Equal(t, 5, got.CompletionTokens)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Nil(t, req.ResponseFormat)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
}

func TestClient_Complete_JSONMode(t *testing.T) {
	srv, requests := fakeOpenAI(t, http.StatusOK, `{}`)
	client := newTestClient(t, srv.URL)

	_, err := client.Complete(context.Background(), PurposeExtract, []models.ChatMessage{{Role: "user", Content: "x"}}, true)
	require.NoError(t, err)

	require.NotNil(t, (*requests)[0].ResponseFormat)
	assert.Equal(t, "json_object", (*requests)[0].ResponseFormat.Type)
}

func TestClient_Complete_UpstreamError(t *testing.T) {
	srv, _ := fakeOpenAI(t, http.StatusTooManyRequests, "")
	client := newTestClient(t, srv.URL)

	_, err := client.Complete(context.Background(), PurposeChat, []models.ChatMessage{{Role: "user", Content: "x"}}, false)

	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

type scriptedCompleter struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
	prompts map[string][]models.ChatMessage
}

func (s *scriptedCompleter) Complete(ctx context.Context, purpose string, messages []models.ChatMessage, jsonMode bool) (*Completion, error) {
	s.calls = append(s.calls, purpose)
	if s.prompts == nil {
		s.prompts = map[string][]models.ChatMessage{}
	}
	s.prompts[purpose] = messages
	if err := s.errs[purpose]; err != nil {
		return nil, err
	}
	return &Completion{Content: s.replies[purpose]}, nil
}

func testProperty() *models.Property {
	return &models.Property{
		ID:      "prop-1",
		Address: models.Address{Street: "1 Main St", City: "Denver", State: "CO", Zip: "80202"},
		Details: models.PropertyDetails{
			PropertyType:    models.PropertyTypeApartment,
			NumberOfUnits:   80,
			TargetRentRange: models.RentRange{Min: 1500, Max: 2000},
		},
	}
}

func TestProfiler_Chat(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		PurposeChat:    "Do your tenants own pets?",
		PurposeExtract: `{"demographics":{"ageRange":{"min":35,"max":25},"incomeRange":{"min":0,"max":0}},"summary":"Young renters"}`,
	}}
	profiler := NewProfiler(completer, logger.New("test"))
	transcript := []models.ChatMessage{{Role: "user", Content: "Young renters around 25 to 35"}}

	result, err := profiler.Chat(context.Background(), testProperty(), transcript)

	require.NoError(t, err)
	assert.Equal(t, "Do your tenants own pets?", result.Reply)
	assert.Equal(t, []string{PurposeChat, PurposeExtract}, completer.calls)

	chatPrompt := completer.prompts[PurposeChat]
	require.Len(t, chatPrompt, 2)
	assert.Equal(t, "system", chatPrompt[0].Role)
	assert.Contains(t, chatPrompt[0].Content, "Denver")
	assert.Contains(t, completer.prompts[PurposeExtract][1].Content, "Young renters around 25 to 35")

	require.NotNil(t, result.Extraction)
	assert.Equal(t, &models.Range{Min: 25, Max: 35}, result.Extraction.Demographics.AgeRange)
	// 2000 * 36 = 72000
	assert.Equal(t, &models.Range{Min: 72000, Max: 108000}, result.Extraction.Demographics.IncomeRange)
}

func TestProfiler_Chat_ProseAroundExtraction(t *testing.T) {
	completer := &scriptedCompleter{replies: map[string]string{
		PurposeChat:    "Do they commute by car?",
		PurposeExtract: `Here you go: {"demographics":{"incomeRange":{"min":60000,"max":0}},"summary":"Young engineers"}`,
	}}
	profiler := NewProfiler(completer, logger.New("test"))

	result, err := profiler.Chat(context.Background(), testProperty(), nil)

	require.NoError(t, err)
	require.NotNil(t, result.Extraction)
	assert.Equal(t, "Young engineers", result.Extraction.Summary)
	// 2000 * 36 * 1.5 = 108000 beats 60000 * 1.5
	assert.Equal(t, &models.Range{Min: 60000, Max: 108000}, result.Extraction.Demographics.IncomeRange)
}

func TestProfiler_Chat_ExtractionFailureIsSoft(t *testing.T) {
	completer := &scriptedCompleter{
		replies: map[string]string{PurposeChat: "Tell me more.", PurposeExtract: "not json"},
	}
	profiler := NewProfiler(completer, logger.New("test"))

	result, err := profiler.Chat(context.Background(), testProperty(), nil)
	require.NoError(t, err)
	assert.Nil(t, result.Extraction)

	completer.errs = map[string]error{PurposeExtract: errors.New("timeout")}
	result, err = profiler.Chat(context.Background(), testProperty(), nil)
	require.NoError(t, err)
	assert.Nil(t, result.Extraction)
}

func TestProfiler_Chat_ReplyFailure(t *testing.T) {
	completer := &scriptedCompleter{errs: map[string]error{PurposeChat: errors.New("upstream down")}}
	profiler := NewProfiler(completer, logger.New("test"))

	_, err := profiler.Chat(context.Background(), testProperty(), nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "upstream down"))
	assert.Equal(t, []string{PurposeChat}, completer.calls)
}
