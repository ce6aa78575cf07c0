package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

// GenAIGenerator calls Gemini through the official SDK.
type GenAIGenerator struct {
	client      *genai.Client
	temperature float32
}

func NewGenAIGenerator(ctx context.Context, apiKey string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GenAIGenerator{client: client, temperature: 0.4}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, trimModelPrefix(model), genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

// RESTGenerator calls the Gemini generateContent endpoint directly.
type RESTGenerator struct {
	client *resty.Client
	apiKey string
}

const geminiBaseURL = "https://generativelanguage.googleapis.com"

func NewRESTGenerator(baseURL, apiKey string, timeout time.Duration) *RESTGenerator {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RESTGenerator{
		client: resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(timeout),
		apiKey: apiKey,
	}
}

func (g *RESTGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": prompt}}},
		},
	}
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		Post("/v1/models/" + trimModelPrefix(model) + ":generateContent")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if msg := gjson.GetBytes(resp.Body(), "error.message").String(); msg != "" {
			return "", errors.New(msg)
		}
		return "", fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	text := strings.TrimSpace(gjson.GetBytes(resp.Body(), "candidates.0.content.parts.0.text").String())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

func trimModelPrefix(model string) string {
	return strings.TrimPrefix(model, "models/")
}
