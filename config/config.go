package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/defipulse/internal/metricsapi"
)

// DefaultAPIToken is the static bearer token the metrics API is queried with.
const DefaultAPIToken = "8RuQjvvcqhuwqgYQn87C1NGg"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	APP_ENV=production
//	METRICS_API_PROD_URL=https://api.magmatic.xyz
//	METRICS_API_DEV_URL=http://localhost:3000
//	METRICS_API_TOKEN=...
//	METRICS_API_TIMEOUT=0s
//	CATALOG_PATH=./catalog.json
//	DEFAULT_DAYS=30
//	RATE_LIMIT_REQUESTS=60
//	RATE_LIMIT_WINDOW=1m
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	MetricsAPI MetricsAPIConfig // Upstream metrics API
	Catalog    CatalogConfig    // Static selector/label catalog
	Dashboard  DashboardConfig  // Dashboard defaults
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port             string        // TCP port the HTTP server listens on (e.g., "8080")
	RateLimit        int           // Requests per RateLimitWindow per client IP; 0 disables
	RateLimitWindow  time.Duration // Window of the rate limiter
	RequestTimeout   time.Duration // Deadline applied to every request context
	DefaultRoutePath string        // Where GET / redirects to
}

// MetricsAPIConfig defines how the upstream metrics API is reached.
//
// Fields:
//   - Production: true when APP_ENV=production; selects ProdURL over DevURL.
//   - ProdURL / DevURL: base URLs of the two hosts.
//   - Token: static bearer token.
//   - Timeout: client-side timeout per request; 0 means none.
type MetricsAPIConfig struct {
	Production bool
	ProdURL    string
	DevURL     string
	Token      string
	Timeout    time.Duration
}

// CatalogConfig points to the catalog JSON; an empty Path uses the embedded default.
type CatalogConfig struct {
	Path string
}

// DashboardConfig holds defaults used when a request does not specify them.
type DashboardConfig struct {
	DefaultDays int
}

// Endpoint returns the metrics API base URL for the current environment.
func (m MetricsAPIConfig) Endpoint() string {
	if m.Production {
		return m.ProdURL
	}
	return m.DevURL
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	viper.SetDefault("REQUEST_TIMEOUT", 10*time.Second)
	viper.SetDefault("DEFAULT_ROUTE", "/api/v1/dashboard/amm/volume/asset")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("METRICS_API_PROD_URL", metricsapi.ProductionEndpoint)
	viper.SetDefault("METRICS_API_DEV_URL", metricsapi.DevelopmentEndpoint)
	viper.SetDefault("METRICS_API_TOKEN", DefaultAPIToken)
	viper.SetDefault("METRICS_API_TIMEOUT", time.Duration(0))

	viper.SetDefault("CATALOG_PATH", "")
	viper.SetDefault("DEFAULT_DAYS", 30)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:             viper.GetString("SERVER_PORT"),
			RateLimit:        viper.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:  viper.GetDuration("RATE_LIMIT_WINDOW"),
			RequestTimeout:   viper.GetDuration("REQUEST_TIMEOUT"),
			DefaultRoutePath: viper.GetString("DEFAULT_ROUTE"),
		},
		MetricsAPI: MetricsAPIConfig{
			Production: strings.EqualFold(viper.GetString("APP_ENV"), "production"),
			ProdURL:    viper.GetString("METRICS_API_PROD_URL"),
			DevURL:     viper.GetString("METRICS_API_DEV_URL"),
			Token:      viper.GetString("METRICS_API_TOKEN"),
			Timeout:    viper.GetDuration("METRICS_API_TIMEOUT"),
		},
		Catalog: CatalogConfig{
			Path: viper.GetString("CATALOG_PATH"),
		},
		Dashboard: DashboardConfig{
			DefaultDays: viper.GetInt("DEFAULT_DAYS"),
		},
	}

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.MetricsAPI.Endpoint() == "" {
		if AppConfig.MetricsAPI.Production {
			missing = append(missing, "METRICS_API_PROD_URL")
		} else {
			missing = append(missing, "METRICS_API_DEV_URL")
		}
	}
	if AppConfig.MetricsAPI.Token == "" {
		missing = append(missing, "METRICS_API_TOKEN")
	}
	if AppConfig.Dashboard.DefaultDays < 1 {
		missing = append(missing, "DEFAULT_DAYS")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", missing)
	}
}
