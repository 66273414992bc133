// Package app holds the application container: configuration plus the
// long-lived dependencies every handler needs.
package app

import (
	"log/slog"

	"explorer.navitia.org/internal/appconf"
	"explorer.navitia.org/internal/clock"
	"explorer.navitia.org/internal/metrics"
	"explorer.navitia.org/internal/navitia"
	"explorer.navitia.org/internal/stations"
)

// Application carries the shared dependencies. A single instance is built at
// startup and passed to the API and web UI layers.
type Application struct {
	Config        appconf.Config
	NavitiaConfig navitia.Config
	Logger        *slog.Logger
	Clock         clock.Clock

	Navitia     *navitia.Client
	Disruptions *navitia.DisruptionCache
	Stations    *stations.Store
	Metrics     *metrics.Metrics
}
