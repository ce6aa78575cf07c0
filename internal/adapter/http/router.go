package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type RouterConfig struct {
	AppName     string
	CORSOrigins string
	RateLimit   int
	RateWindow  time.Duration
	// PDFDir is served under /pdfs when set.
	PDFDir string
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(h *Handler, cfg RouterConfig, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(requestid.New())
	app.Use(AccessLog(log))
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type",
	}))
	app.Use(healthcheck.New())

	app.Get("/", h.Root)
	if cfg.PDFDir != "" {
		app.Static("/pdfs", cfg.PDFDir)
	}

	api := app.Group("/api/resumes")
	api.Post("/", RateLimiter(cfg.RateLimit, cfg.RateWindow), h.CreateResume)
	api.Post("/enhance-section", h.EnhanceSection)
	api.Get("/history/:user_id", h.History)

	return app
}
