// internal/narrative/client_test.go
package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alignment-engine/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(&Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.3,
		Timeout:     2 * time.Second,
		MaxRetries:  2,
	}, logger.NewTestLogger(t))
}

func chatResponse(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func testRequest(hasData bool) Request {
	return Request{
		Symbol:      "AAPL",
		Name:        "Apple Inc.",
		Persona:     "progressive-globalist",
		Description: "Left-leaning economics, Progressive social values, Pro-international cooperation",
		Sources: SourceSummary{
			Donations: "Political Donations: Total $1,000,000, Democrat: $750,000, Republican: $250,000",
			HasData:   hasData,
		},
	}
}

func TestScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		require.Len(t, body.Messages, 1)
		assert.Contains(t, body.Messages[0].Content, "Apple Inc. (AAPL)")

		w.Write([]byte(chatResponse("SCORE: 78\nREASONING: Strong Democratic donation record aligns with the profile.")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Score(context.Background(), testRequest(true))

	require.NoError(t, err)
	assert.Equal(t, 78.0, result.Score)
	assert.Equal(t, "Strong Democratic donation record aligns with the profile.", result.Reasoning)
	assert.Contains(t, result.Prompt, "Available Data:")
}

func TestScoreGeneralKnowledgeMode(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		captured = body.Messages[0].Content
		w.Write([]byte(chatResponse("SCORE: 55\nREASONING: Limited public signal either way.")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Score(context.Background(), testRequest(false))

	require.NoError(t, err)
	assert.Equal(t, 55.0, result.Score)
	assert.Contains(t, captured, "No structured data")
	assert.Contains(t, captured, "general knowledge")
	assert.NotContains(t, captured, "Available Data:")
}

func TestScoreRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(chatResponse("SCORE: 60\nREASONING: Recovered after retry.")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Score(context.Background(), testRequest(true))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 60.0, result.Score)
}

func TestScoreExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Score(context.Background(), testRequest(true))

	assert.ErrorIs(t, err, ErrNarrativeFailed)
}

func TestScoreTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(chatResponse("SCORE: 70\nREASONING: too late")))
	}))
	defer server.Close()

	client := NewClient(&Config{
		BaseURL:    server.URL,
		Model:      "test-model",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 0,
	}, logger.NewTestLogger(t))

	_, err := client.Score(context.Background(), testRequest(true))
	assert.ErrorIs(t, err, ErrNarrativeTimeout)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantScore     float64
		wantReasoning string
	}{
		{
			name:          "well formed",
			raw:           "SCORE: 82\nREASONING: Clear alignment on donations and sustainability.",
			wantScore:     82,
			wantReasoning: "Clear alignment on donations and sustainability.",
		},
		{
			name:          "score clamped high",
			raw:           "SCORE: 140\nREASONING: over-enthusiastic model",
			wantScore:     100,
			wantReasoning: "over-enthusiastic model",
		},
		{
			name:          "score clamped low",
			raw:           "SCORE: -12\nREASONING: hostile",
			wantScore:     0,
			wantReasoning: "hostile",
		},
		{
			name:          "missing markers fall back to neutral",
			raw:           "The company seems fine overall.",
			wantScore:     50,
			wantReasoning: "Could not parse narrative response",
		},
		{
			name:          "non-numeric score falls back to neutral",
			raw:           "SCORE: eighty\nREASONING: spelled out",
			wantScore:     50,
			wantReasoning: "spelled out",
		},
		{
			name:          "reasoning truncated at first line",
			raw:           "SCORE: 65\nREASONING: first line.\nsecond line ignored",
			wantScore:     65,
			wantReasoning: "first line.",
		},
		{
			name:          "leading chatter tolerated",
			raw:           "Sure, here is my assessment:\nSCORE: 44\nREASONING: mixed signals",
			wantScore:     44,
			wantReasoning: "mixed signals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasoning := parseResponse(tt.raw)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestBuildPromptSourceFallbacks(t *testing.T) {
	req := testRequest(true)
	req.Sources.Sustainability = ""
	req.Sources.Leadership = ""
	req.Sources.News = ""

	prompt := buildPrompt(req)
	assert.Contains(t, prompt, "Sustainability Scores: No data")
	assert.Contains(t, prompt, "Leadership Analysis: No statements")
	assert.Contains(t, prompt, "Recent News: No data")
	assert.True(t, strings.Contains(prompt, req.Sources.Donations))
}
