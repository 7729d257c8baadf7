package router

import (
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/handler"
	"github.com/macuoit/articulation-backend/internal/middleware"
	"github.com/macuoit/articulation-backend/internal/response"
	"github.com/macuoit/articulation-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transcript  *handler.TranscriptHandler
	Catalog     *handler.CatalogHandler
	Institution *handler.InstitutionHandler
	WS          *handler.WSHandler
	System      *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli(brotli.DefaultCompression))

	// Serve stored transcript PDFs statically. Uploads are immutable, so
	// cache aggressively (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(
		middleware.RequireStaffJWT(authService),
		middleware.CacheControl(31536000),
	)
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireStaffJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Staff API Group (JWT) ──────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireStaffJWT(authService))
	{
		// Transcript processing
		api.POST("/transcripts", handlers.Transcript.Upload)
		api.GET("/transcripts/:job_id", handlers.Transcript.GetJob)
		api.GET("/transcripts/:job_id/result", handlers.Transcript.GetResult)
		api.POST("/transcripts/:job_id/feedback", handlers.Transcript.Feedback)
		api.POST("/transcripts/enrich", handlers.Transcript.Enrich)
		api.GET("/reviews", handlers.Transcript.ListReviews)

		// Catalog administration
		api.GET("/catalog/partitions", handlers.Catalog.ListPartitions)
		api.POST("/catalog/refresh", handlers.Catalog.Refresh)
		api.POST("/catalog/rows", handlers.Catalog.CreateRow)
		api.POST("/catalog/equivalencies", handlers.Catalog.CreateEquivalency)

		// Institution registry
		api.GET("/institutions", handlers.Institution.List)
		api.GET("/institutions/resolve", handlers.Institution.Resolve)
		api.POST("/institutions", handlers.Institution.Create)

		// Ops
		api.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	// ─── 3. WebSocket Group (Staff WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStaffWSAuth(authService))
	{
		ws.GET("/transcripts/:job_id/stream", handlers.WS.JobStream)
	}

	return router
}
