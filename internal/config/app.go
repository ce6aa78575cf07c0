package config

import (
	"log/slog"
	"sync"
	"time"
)

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	BaseURL     string
	CORSOrigins string
	RateLimit   int
	RateWindow  time.Duration
}

func (c *AppConfig) Production() bool { return c.Env == "production" }

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := getEnv("APP_ENV", "")
		if env == "" {
			env = "development"
			slog.Warn("APP_ENV not set, using default", "env", env)
		}
		port := getEnv("PORT", getEnv("APP_PORT", "5000"))
		appConfig = &AppConfig{
			Name:        getEnv("APP_NAME", "Resume Builder API"),
			Env:         env,
			Port:        port,
			BaseURL:     getEnv("APP_URL", "http://localhost:"+port),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
			RateLimit:   getInt("RATE_LIMIT", 20),
			RateWindow:  getDuration("RATE_WINDOW", time.Minute),
		}
	})
	return appConfig
}
