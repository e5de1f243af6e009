package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aasthak07/QuillStack-AI/internal/auth"
	"github.com/Aasthak07/QuillStack-AI/internal/config"
	"github.com/Aasthak07/QuillStack-AI/internal/database"
	"github.com/Aasthak07/QuillStack-AI/internal/database/migration"
	"github.com/Aasthak07/QuillStack-AI/internal/docgen"
	handlers "github.com/Aasthak07/QuillStack-AI/internal/http/handler"
	"github.com/Aasthak07/QuillStack-AI/internal/http/middleware"
	"github.com/Aasthak07/QuillStack-AI/internal/intake"
	"github.com/Aasthak07/QuillStack-AI/internal/otel"
	"github.com/Aasthak07/QuillStack-AI/internal/repository/postgres"
	"github.com/Aasthak07/QuillStack-AI/internal/service"
	"github.com/Aasthak07/QuillStack-AI/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing; degrades to noop when the exporter is unreachable
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// S3-compatible object storage for archived source uploads
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Metrics registry shared by HTTP middleware and the generation pipeline
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Documentation generation stack: Gemini client, retry/fallback controller
	gemini, err := docgen.NewGemini(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("failed to initialize gemini client: %v", err)
	}
	genMetrics := docgen.NewMetrics(reg)
	generator := docgen.NewController(gemini, cfg.Gemini, genMetrics)

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	in := intake.New(intake.Config{TempDir: cfg.Upload.TempDir, MaxChars: cfg.Upload.MaxChars})
	docSvc := service.NewDocumentService(in, objStore, generator, docRepo)
	userSvc := service.NewUserService(userRepo, tokens)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware: request IDs, JSON request logs, traces, metrics
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize prometheus middleware: %v", err)
	}
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Docs:     docSvc,
		Users:    userSvc,
		Verifier: tokens,
		DevMode:  cfg.IsDevelopment(),
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
