package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/config"
	"github.com/guttosm/defipulse/internal/api"
	"github.com/guttosm/defipulse/internal/catalog"
	"github.com/guttosm/defipulse/internal/logger"
	"github.com/guttosm/defipulse/internal/metricsapi"
	"github.com/guttosm/defipulse/internal/service"
)

// Indirections for unit testing.
var (
	catalogLoader = catalog.Load
	newFetcher    = func(cfg config.Config) metricsapi.Fetcher {
		return metricsapi.NewClient(cfg.MetricsAPI.Endpoint(), cfg.MetricsAPI.Token, cfg.MetricsAPI.Timeout)
	}
)

// NewService builds the dashboard service from configuration.
//
// Responsibilities:
//   - Loads the selector catalog (CATALOG_PATH or the embedded default).
//   - Creates the metrics API client for the configured environment.
//
// Returns:
//   - service.DashboardService: ready to serve dashboards.
//   - *catalog.Catalog: the loaded catalog, used for readiness checks.
//   - error: catalog load failures.
func NewService(cfg config.Config) (service.DashboardService, *catalog.Catalog, error) {
	cat, err := catalogLoader(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.L().Info().
		Strs("categories", cat.Categories()).
		Bool("production", cfg.MetricsAPI.Production).
		Msg("catalog loaded")

	return service.NewDashboardService(cat, newFetcher(cfg)), cat, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the dashboard service (catalog + metrics API client).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	svc, cat, err := NewService(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(svc, cfg.Dashboard.DefaultDays)

	router := api.NewRouter(handler, api.RouterOptions{
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		RequestTimeout:  cfg.Server.RequestTimeout,
		DefaultPath:     cfg.Server.DefaultRoutePath,
	})

	healthHandler := api.NewHealthHandler(func() error {
		if len(cat.Categories()) == 0 {
			return errors.New("catalog has no categories")
		}
		return nil
	})
	healthHandler.Register(router)

	// Nothing to release: the metrics API client holds no long-lived resources.
	cleanup := func() {}

	return router, cleanup, nil
}
