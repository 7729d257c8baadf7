package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/database"
	"github.com/macuoit/articulation-backend/internal/extractor"
	"github.com/macuoit/articulation-backend/internal/handler"
	"github.com/macuoit/articulation-backend/internal/logger"
	"github.com/macuoit/articulation-backend/internal/repository"
	"github.com/macuoit/articulation-backend/internal/router"
	"github.com/macuoit/articulation-backend/internal/service"
	"github.com/macuoit/articulation-backend/internal/validator"
	"github.com/macuoit/articulation-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Articulation Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	staffRepo := repository.NewStaffRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	equivRepo := repository.NewEquivalencyRepository(pool)
	institutionRepo := repository.NewInstitutionRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// ─── Initialize Extractor ──────────────────────────────────────────
	ext := extractor.NewAnthropicExtractor(cfg, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, staffRepo)
	catalogService := service.NewCatalogService(cfg, rdb, catalogRepo, equivRepo, log)
	enrichmentService := service.NewEnrichmentService(catalogService, log)
	institutionService := service.NewInstitutionService(institutionRepo, log)
	transcriptService := service.NewTranscriptService(cfg, rdb, ext, enrichmentService, reviewRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Transcript:  handler.NewTranscriptHandler(cfg, transcriptService, enrichmentService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Institution: handler.NewInstitutionHandler(institutionService),
		WS:          handler.NewWSHandler(transcriptService, log, cfg.AllowedOrigins),
		System:      handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reviewWorker := worker.NewReviewWorker(reviewRepo, rdb, log)
	go reviewWorker.Start(workerCtx)

	// ─── Prewarm Caches ───────────────────────────────────────────────
	// Build the match index and institution registry BEFORE accepting
	// traffic, so the first upload never races a lazy load.
	if err := catalogService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog prewarm failed")
	}
	if err := institutionService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Institution prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the review worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
