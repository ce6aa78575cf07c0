package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
	"resume-builder/templates"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}

	appCfg := config.LoadAppConfig()
	log := logger.Setup(appCfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := config.LoadDBConfig()
	pool, err := infra.NewPool(ctx, dbCfg.URL, dbCfg.MaxConns)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if dbCfg.Migrate {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			os.Exit(1)
		}
	}

	renderCfg := config.LoadRenderConfig()
	var tplFS fs.FS = templates.FS
	if renderCfg.TemplatesDir != "" {
		tplFS = os.DirFS(renderCfg.TemplatesDir)
	}
	compiler := infra.NewPDFLatexCompiler(renderCfg.PDFLatexBin, renderCfg.WorkDir, renderCfg.Timeout)
	renderer := render.New(tplFS, compiler, renderCfg.OutDir, log.With("component", "render"))

	storageCfg := config.LoadStorageConfig()
	var store usecase.ArtifactStore
	pdfDir := ""
	switch storageCfg.Driver {
	case "supabase":
		store = infra.NewSupabaseStore(storageCfg.SupabaseURL, storageCfg.SupabaseKey, storageCfg.SupabaseBucket)
	default:
		store = infra.NewLocalStore(storageCfg.LocalDir, appCfg.BaseURL)
		pdfDir = storageCfg.LocalDir
	}
	log.Info("artifact store ready", "driver", storageCfg.Driver)

	var mailer usecase.Mailer
	if mailCfg := config.LoadMailConfig(); mailCfg.Enabled {
		m, err := infra.NewSMTPMailer(infra.SMTPSettings{
			Host:      mailCfg.SMTPHost,
			Port:      mailCfg.SMTPPort,
			User:      mailCfg.SMTPUser,
			Pass:      mailCfg.SMTPPass,
			From:      mailCfg.From,
			GmailUser: mailCfg.GmailUser,
			GmailPass: mailCfg.GmailPass,
		})
		if err != nil {
			log.Warn("email delivery disabled", "error", err)
		} else {
			mailer = m
		}
	}

	var enhancer usecase.Enhancer
	if gen := newGenerator(ctx, config.LoadAIConfig(), log); gen != nil {
		enhancer = ai.NewClient(gen, config.LoadAIConfig().Models, log.With("component", "ai"))
	}

	svc := usecase.NewService(repo.NewResumesRepo(pool), renderer, store, mailer, enhancer, log)
	h := httpadapter.NewHandler(svc, appCfg.Production(), log)
	app := httpadapter.NewApp(h, httpadapter.RouterConfig{
		AppName:     appCfg.Name,
		CORSOrigins: appCfg.CORSOrigins,
		RateLimit:   appCfg.RateLimit,
		RateWindow:  appCfg.RateWindow,
		PDFDir:      pdfDir,
	}, log)

	go func() {
		log.Info("server listening", "port", appCfg.Port, "env", appCfg.Env)
		if err := app.Listen(":" + appCfg.Port); err != nil {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown", "error", err)
	}
}

func newGenerator(ctx context.Context, cfg *config.AIConfig, log *slog.Logger) ai.Generator {
	if !cfg.Enabled() {
		log.Info("ai enrichment disabled", "provider", cfg.Provider)
		return nil
	}
	switch cfg.Provider {
	case "openrouter":
		return ai.NewOpenRouterGenerator(cfg.OpenRouterURL, cfg.OpenRouterAPIKey, cfg.Timeout)
	case "gemini-rest":
		return ai.NewRESTGenerator(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.Timeout)
	default:
		gen, err := ai.NewGenAIGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("gemini sdk unavailable, falling back to rest", "error", err)
			return ai.NewRESTGenerator(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.Timeout)
		}
		return gen
	}
}
