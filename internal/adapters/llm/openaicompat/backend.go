// Package openaicompat implementa el backend de borradores sobre un endpoint
// /chat/completions compatible con OpenAI (OpenAI, Azure, OpenRouter, vLLM, etc.).
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-diet-planner/internal/domain/diet"
	"pet-diet-planner/internal/platform/httpclient"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  *httpclient.Client // opcional (tests)
}

type Backend struct {
	client *httpclient.Client
}

var _ diet.Backend = (*Backend)(nil)

func New(cfg Config) (*Backend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openaicompat: api key is required")
	}
	if cfg.Client != nil {
		return &Backend{client: cfg.Client}, nil
	}

	base := cfg.BaseURL
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	c, err := httpclient.New(httpclient.Options{
		BaseURL: base,
		Timeout: cfg.Timeout,
		Headers: map[string]string{"Authorization": "Bearer " + strings.TrimSpace(cfg.APIKey)},
	})
	if err != nil {
		return nil, fmt.Errorf("openaicompat: %w", err)
	}
	return &Backend{client: c}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Generate manda un único mensaje de usuario (sin conversación).
func (b *Backend) Generate(ctx context.Context, req diet.GenerateRequest) (string, error) {
	body := chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
	}
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatResponse
	if err := b.client.PostJSON(ctx, "/chat/completions", body, &out); err != nil {
		return "", fmt.Errorf("openaicompat: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openaicompat: no choices in response")
	}

	c := out.Choices[0]
	if c.FinishReason == "content_filter" {
		return "", errors.New("openaicompat: response blocked by content filter")
	}
	return c.Message.Content, nil
}
