package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions tunes the middleware stack built by NewRouter.
type RouterOptions struct {
	RateLimit       int           // requests per window per client IP; 0 disables
	RateLimitWindow time.Duration // rate limiter window
	RequestTimeout  time.Duration // request context deadline; 0 means 10s
	DefaultPath     string        // redirect target of GET /
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Metrics).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1) and the / redirect.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	window := opts.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimit, window),
		middleware.Metrics(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger / Metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.DefaultPath != "" {
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, opts.DefaultPath)
		})
	}

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard/:category/:dataset", handler.GetDashboard)
		v1.GET("/dashboard/:category/:dataset/:type", handler.GetDashboard)
		v1.GET("/selectors/:category/:dataset", handler.GetSelectors)
		v1.GET("/selectors/:category/:dataset/:type", handler.GetSelectors)
		v1.GET("/summary/:category", handler.GetSummary)
		v1.GET("/catalog", handler.GetCatalog)
	}

	return router
}
