package main

//
//  @title           defipulse API
//  @version         1.0
//  @description     DeFi analytics dashboard backend: selectors, chart series and totals over the metrics API.
//  @termsOfService  https://github.com/guttosm/defipulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/defipulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Chart data, selectors and category summaries
//
//  @tag.name        catalog
//  @tag.description Display names and colors
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/guttosm/defipulse/config"
	_ "github.com/guttosm/defipulse/docs" // swagger docs
	"github.com/guttosm/defipulse/internal/app"
	"github.com/guttosm/defipulse/internal/chart"
	"github.com/guttosm/defipulse/internal/dates"
	"github.com/guttosm/defipulse/internal/domain/dto"
	"github.com/guttosm/defipulse/internal/logger"
	"github.com/guttosm/defipulse/internal/route"
	"github.com/guttosm/defipulse/internal/selector"
	"github.com/guttosm/defipulse/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

func serve(ctx context.Context, cmd *cli.Command) error {
	logger.L().Info().Msg("starting API server")

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		return err
	}

	port := cmd.String("port")
	if port == "" {
		port = config.AppConfig.Server.Port
	}
	server := startServer(router, port)
	gracefulShutdown(ctx, server, cleanup)
	return nil
}

// fetchQuery turns the fetch command flags into a dashboard query.
func fetchQuery(cmd *cli.Command, now time.Time) (service.Query, error) {
	p, err := route.New(cmd.String("category"), cmd.String("dataset"), cmd.String("type"))
	if err != nil {
		return service.Query{}, err
	}

	var period dates.Period
	if from, to := cmd.String("from"), cmd.String("to"); from != "" || to != "" {
		if period, err = dates.ParsePeriod(from, to); err != nil {
			return service.Query{}, err
		}
	} else {
		days := int(cmd.Int("days"))
		if days < 1 {
			days = config.AppConfig.Dashboard.DefaultDays
		}
		period = dates.GetPeriod(days, now)
	}

	var groupBy chart.GroupKey
	if s := cmd.String("group-by"); s != "" {
		if groupBy, err = chart.ParseGroupKey(s); err != nil {
			return service.Query{}, err
		}
	}

	sel := map[string]string{}
	for _, id := range []string{selector.ChainID, selector.ProtocolID, selector.AssetID, selector.PairID} {
		if v := cmd.String(id); v != "" {
			sel[id] = v
		}
	}

	return service.Query{
		Route:     p,
		Selection: sel,
		Period:    period,
		Others:    cmd.Bool("others"),
		GroupBy:   groupBy,
	}, nil
}

// stdout receives the fetch command output.
var stdout io.Writer = os.Stdout

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fetch(ctx context.Context, cmd *cli.Command) error {
	q, err := fetchQuery(cmd, time.Now())
	if err != nil {
		return err
	}
	svc, _, err := app.NewService(config.AppConfig)
	if err != nil {
		return err
	}

	if cmd.Bool("summary") {
		s, err := svc.Summary(ctx, q.Route.Category, q.Period)
		if err != nil {
			return err
		}
		return writeJSON(stdout, dto.NewSummaryResponse(s))
	}

	d, err := svc.Dashboard(ctx, q)
	if err != nil {
		return err
	}
	return writeJSON(stdout, dto.NewDashboardResponse(d))
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "defipulse",
		Usage: "DeFi analytics dashboard backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the REST API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Usage: "port for the API server (defaults to SERVER_PORT)"},
				},
				Action: serve,
			},
			{
				Name:  "fetch",
				Usage: "fetch one dashboard and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Value: "amm"},
					&cli.StringFlag{Name: "dataset", Value: "volume"},
					&cli.StringFlag{Name: "type", Value: route.DefaultType},
					&cli.IntFlag{Name: "days", Usage: "window length ending yesterday (defaults to DEFAULT_DAYS)"},
					&cli.StringFlag{Name: "from", Usage: "window start, RFC 3339"},
					&cli.StringFlag{Name: "to", Usage: "window end, RFC 3339"},
					&cli.BoolFlag{Name: "others", Value: true, Usage: "add the residual others series"},
					&cli.StringFlag{Name: "group-by", Usage: "merge rows on all, asset, pair, protocol or chain"},
					&cli.BoolFlag{Name: "summary", Usage: "print the totals of every dataset in the category"},
					&cli.StringFlag{Name: selector.ChainID},
					&cli.StringFlag{Name: selector.ProtocolID},
					&cli.StringFlag{Name: selector.AssetID},
					&cli.StringFlag{Name: selector.PairID},
				},
				Action: fetch,
			},
		},
		DefaultCommand: "serve",
	}
}

// main is the entry point of the defipulse application.
//
// Commands:
//   - serve: Starts the REST API (default).
//   - fetch: Runs one dashboard query against the metrics API and prints JSON.
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		logger.L().Fatal().Err(err).Msg("command failed")
	}
}
