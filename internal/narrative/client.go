// internal/narrative/client.go
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/common/metrics"
)

var (
	ErrNarrativeTimeout = errors.New("NARRATIVE_TIMEOUT")
	ErrNarrativeFailed  = errors.New("NARRATIVE_FAILED")
)

// Config holds the narrative model endpoint settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// Client calls a chat-completions style model endpoint and parses the
// SCORE/REASONING response format.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		// no client timeout, the per-call context carries the deadline
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "narrative"}),
	}
}

func (c *Client) Score(ctx context.Context, req Request) (*Result, error) {
	prompt := buildPrompt(req)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		metrics.NarrativeCalls.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.NarrativeCalls.WithLabelValues("ok").Inc()

	score, reasoning := parseResponse(raw)

	c.logger.Debug("narrative assessment completed", map[string]interface{}{
		"symbol":  req.Symbol,
		"persona": req.Persona,
		"score":   score,
	})

	return &Result{Score: score, Reasoning: reasoning, Prompt: prompt}, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": c.config.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": c.config.Temperature,
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrNarrativeTimeout
			}
		}

		// rebuild per attempt, the request body reader is consumed on send
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNarrativeFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		}

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrNarrativeTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrNarrativeTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrNarrativeFailed, lastErr)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrNarrativeFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrNarrativeFailed, err)
	}
	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrNarrativeFailed)
	}

	return apiResponse.Choices[0].Message.Content, nil
}
