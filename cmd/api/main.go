package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"talentsync/resume-matcher/internal/config"
	"talentsync/resume-matcher/internal/handlers"
	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Info().Str("env", cfg.Server.Env).Msg("config loaded")

	// The embedding capability is built once and shared read-only by
	// every request.
	ctx := context.Background()
	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize embedding capability")
		os.Exit(1)
	}
	logger.Info().Str("model", cfg.Gemini.EmbeddingModel).Int("dimensions", services.EmbeddingDimensions).Msg("embedding capability initialized")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	extractor := services.NewResumeExtractorService()
	embeddingService := services.NewEmbeddingService(embedder)
	matcher := services.NewMatcherService()

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(pdfParser, extractor, embeddingService, cfg.Upload.MaxFileSize)
	embeddingHandler := handlers.NewEmbeddingHandler(embeddingService)
	matchHandler := handlers.NewMatchHandler(matcher)
	healthHandler := handlers.NewHealthHandler(embedder)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher AI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/parse-resume", resumeHandler.HandleParseResume)
	api.Post("/extract-resume-data", resumeHandler.HandleExtractResumeData)
	api.Post("/generate-job-embedding", embeddingHandler.HandleGenerateJobEmbedding)
	api.Post("/generate-text-embedding", embeddingHandler.HandleGenerateTextEmbedding)
	api.Post("/find-matching-jobs", matchHandler.HandleFindMatchingJobs)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Matcher AI API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/parse-resume",
				"POST /api/v1/extract-resume-data",
				"POST /api/v1/generate-job-embedding",
				"POST /api/v1/generate-text-embedding",
				"POST /api/v1/find-matching-jobs",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server starting")

	if err := app.Listen(addr); err != nil {
		logger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
