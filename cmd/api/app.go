package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"explorer.navitia.org/internal/app"
	"explorer.navitia.org/internal/appconf"
	"explorer.navitia.org/internal/clock"
	"explorer.navitia.org/internal/logging"
	"explorer.navitia.org/internal/metrics"
	"explorer.navitia.org/internal/navitia"
	"explorer.navitia.org/internal/restapi"
	"explorer.navitia.org/internal/stations"
	"explorer.navitia.org/internal/webui"
)

// dbStatsInterval paces the database pool gauge collector.
const dbStatsInterval = 15 * time.Second

// ParseAPIKeys splits a comma-separated string of API keys and trims whitespace from each key.
// Returns an empty slice if the input is empty.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}

	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

func secondsToDuration(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

// BuildApplication creates and initializes the Application with all dependencies:
// the logger, the upstream client, the disruption cache, the station directory,
// and the metrics registry. Returns an error if the station directory fails to open.
func BuildApplication(cfg appconf.Config, navitiaCfg navitia.Config, stationsDBPath string) (*app.Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store, err := stations.Open(stationsDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open station directory: %w", err)
	}

	client := navitia.NewClient(navitiaCfg)
	disruptions := navitia.NewDisruptionCache(client, navitiaCfg.DisruptionRefreshInterval, logger)

	m := metrics.NewWithLogger(logger)
	m.StartDBStatsCollector(store.DB(), dbStatsInterval)
	disruptions.SetObserver(func(size int, lastUpdated time.Time) {
		m.ObserveDisruptionCache(size, lastUpdated, time.Now())
	})

	coreApp := &app.Application{
		Config:        cfg,
		NavitiaConfig: navitiaCfg,
		Logger:        logger,
		Clock:         clock.RealClock{},
		Navitia:       client,
		Disruptions:   disruptions,
		Stations:      store,
		Metrics:       m,
	}

	return coreApp, nil
}

// CreateServer creates and configures the HTTP server with routes and middleware.
// Sets up both REST API routes and WebUI routes, applies security headers, and adds
// request id tagging, metrics, and request logging.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	webUI := &webui.WebUI{
		Application: coreApp,
	}

	mux := http.NewServeMux()

	api.SetRoutes(mux)
	webUI.SetWebUIRoutes(mux)

	// Wrap with security middleware
	secureHandler := api.WithSecurityHeaders(mux)

	// Metrics and request id sit between security and logging
	metricsHandler := restapi.MetricsHandler(coreApp.Metrics)(secureHandler)
	taggedHandler := restapi.RequestIDMiddleware(metricsHandler)

	// Add request logging middleware (outermost)
	requestLogger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	requestLogMiddleware := restapi.NewRequestLoggingMiddleware(requestLogger)
	handler := requestLogMiddleware(taggedHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv, api
}

// Run manages the server lifecycle with graceful shutdown.
// Starts the disruption cache and the server, waits for shutdown signals
// (SIGINT, SIGTERM), and performs graceful shutdown with a 30-second timeout.
// Returns an error if the server fails to start or shutdown fails.
func Run(srv *http.Server, coreApp *app.Application, api *restapi.RestAPI) error {
	logger := coreApp.Logger
	logger.Info("starting server", "addr", srv.Addr)

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if coreApp.Disruptions != nil {
		coreApp.Disruptions.Start(ctx)
	}

	// Channel to capture server errors
	serverErrors := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for either shutdown signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if api != nil {
		api.Shutdown()
	}
	if coreApp.Disruptions != nil {
		coreApp.Disruptions.Shutdown()
	}
	if coreApp.Metrics != nil {
		coreApp.Metrics.Shutdown()
	}
	if coreApp.Stations != nil {
		if err := coreApp.Stations.Close(); err != nil {
			logger.Error("failed to close station directory", "error", err)
		}
	}

	logger.Info("server exited")
	return nil
}
