// Package llm contains the generative-text adapters: an OpenAI-compatible
// chat client and a Gemini/Vertex backend, plus the curation, translation,
// and relevance-grading features built on them.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsClipper/internal/config"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a chat client from configuration. A missing API key is
// a configuration error surfaced immediately, not a degraded mode.
func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not configured")
	}
	if cfg.Endpoint == "" || cfg.Model == "" {
		return nil, errors.New("openai endpoint/model is not configured")
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type chatRequest struct {
	system      string
	user        string
	jsonObject  bool
	maxTokens   int
	temperature float64
}

// chat posts one system+user exchange and returns the assistant reply.
func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.system},
			{"role": "user", "content": req.user},
		},
	}
	if req.jsonObject {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}
	if req.maxTokens > 0 {
		payload["max_tokens"] = req.maxTokens
	}
	if req.temperature > 0 {
		payload["temperature"] = req.temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chat error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}
