package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/config"
	domainRepo "github.com/SunnFlower47/kasir-print-service/internal/domain/repository"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/handler"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Print    *handler.PrintHandler
	Settings *handler.SettingsHandler
	Prefs    *handler.PrefsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes, bearer-protected
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(&deps.Cfg.Auth))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	v1.Use(rateLimiter.Middleware())

	printing := v1.Group("/print")
	{
		printing.POST("/receipt",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Print.PrintReceipt)
		printing.POST("/test", h.Print.TestPrint)
		printing.GET("/status", h.Print.GetStatus)
		printing.GET("/jobs", h.Print.ListJobs)
	}

	settings := v1.Group("/settings")
	{
		settings.GET("/printer", h.Settings.GetPrinterSettings)
		settings.GET("/company", h.Settings.GetCompanySettings)
		settings.POST("/reload", h.Settings.Reload)
	}

	prefs := v1.Group("/prefs")
	{
		prefs.GET("/print", h.Prefs.GetPrefs)
		prefs.PUT("/print", h.Prefs.UpdatePrefs)
	}

	return router
}
