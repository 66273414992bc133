package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// stationsCacheSeconds caches station lookups client-side; the directory only
// changes when a sync runs.
const stationsCacheSeconds = 300

func registerPprofHandlers(mux *http.ServeMux) { // nolint:unused
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// SetRoutes registers all API endpoints with compression applied per route
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health and metrics endpoints - no authentication required
	mux.HandleFunc("GET /healthz", api.healthHandler)
	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	mux.Handle("GET /api/v1/current-time.json", CacheControlMiddleware(0, rateLimitAndValidateAPIKey(api, api.currentTimeHandler)))
	mux.Handle("GET /api/v1/journeys.json", rateLimitAndValidateAPIKey(api, api.journeysHandler))
	mux.Handle("GET /api/v1/disruptions.json", rateLimitAndValidateAPIKey(api, api.disruptionsHandler))
	mux.Handle("GET /api/v1/stations/search.json", CacheControlMiddleware(stationsCacheSeconds, rateLimitAndValidateAPIKey(api, api.stationsSearchHandler)))
	mux.Handle("GET /api/v1/stations/nearby.json", CacheControlMiddleware(stationsCacheSeconds, rateLimitAndValidateAPIKey(api, api.stationsNearbyHandler)))
	mux.Handle("POST /api/v1/stations/sync.json", rateLimitAndValidateAPIKey(api, api.stationsSyncHandler))

	mux.Handle("GET /api/v1/departures/{id}", rateLimitAndValidateAPIKey(api, api.departuresHandler))
	mux.Handle("GET /api/v1/arrivals/{id}", rateLimitAndValidateAPIKey(api, api.arrivalsHandler))
	mux.Handle("GET /api/v1/vehicle-journeys/{id}", rateLimitAndValidateAPIKey(api, api.vehicleJourneyHandler))
}

// SetupAPIRoutes creates and configures the API router with all middleware applied globally
func (api *RestAPI) SetupAPIRoutes() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return CompressionMiddleware(mux)
}
