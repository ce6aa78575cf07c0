package config

import (
	"sync"
	"time"
)

// AIConfig selects the enrichment backend. Provider is one of "gemini"
// (SDK), "gemini-rest", "openrouter" or "none".
type AIConfig struct {
	Provider         string
	GeminiAPIKey     string
	GeminiBaseURL    string
	OpenRouterAPIKey string
	OpenRouterURL    string
	Models           []string
	Timeout          time.Duration
}

func (c *AIConfig) Enabled() bool {
	switch c.Provider {
	case "none", "":
		return false
	case "openrouter":
		return c.OpenRouterAPIKey != ""
	default:
		return c.GeminiAPIKey != ""
	}
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		aiConfig = &AIConfig{
			Provider:         getEnv("AI_PROVIDER", "gemini"),
			GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL:    getEnv("GEMINI_BASE_URL", ""),
			OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterURL:    getEnv("OPENROUTER_BASE_URL", ""),
			Models:           getList("AI_MODELS", nil),
			Timeout:          getDuration("AI_TIMEOUT", 60*time.Second),
		}
	})
	return aiConfig
}
