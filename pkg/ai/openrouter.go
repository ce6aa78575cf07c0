package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterGenerator talks to an OpenAI-compatible chat completions API.
type OpenRouterGenerator struct {
	client *resty.Client
}

const openRouterBaseURL = "https://openrouter.ai/api/v1"

func NewOpenRouterGenerator(baseURL, apiKey string, timeout time.Duration) *OpenRouterGenerator {
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterGenerator{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetAuthToken(apiKey),
	}
}

func (g *OpenRouterGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a professional resume writer. You answer with JSON only."},
			{"role": "user", "content": prompt},
		},
	}
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if msg := gjson.GetBytes(resp.Body(), "error.message").String(); msg != "" {
			return "", errors.New(msg)
		}
		return "", fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	text := strings.TrimSpace(gjson.GetBytes(resp.Body(), "choices.0.message.content").String())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
