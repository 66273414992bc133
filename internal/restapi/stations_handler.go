package restapi

import (
	"net/http"
	"strconv"

	"explorer.navitia.org/internal/models"
	"explorer.navitia.org/internal/stations"
)

// stationsSearchHandler searches the local station directory by name.
func (api *RestAPI) stationsSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := query.Get("q")
	if q == "" {
		api.validationErrorResponse(w, r, map[string][]string{"q": {"required"}})
		return
	}
	limit := parseCount(query.Get("count"), models.DefaultMaxCountForStations)

	results, err := api.Stations.Search(r.Context(), q, limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	response := models.NewListResponseWithClock(models.NewStationViews(results), nil, api.Clock)
	api.sendResponse(w, r, response)
}

// stationsNearbyHandler lists stations around a point, closest first.
func (api *RestAPI) stationsNearbyHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fieldErrors := map[string][]string{}
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		fieldErrors["lat"] = []string{"must be a latitude between -90 and 90"}
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		fieldErrors["lon"] = []string{"must be a longitude between -180 and 180"}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	radius := float64(models.DefaultSearchRadiusInMeters)
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			api.validationErrorResponse(w, r, map[string][]string{"radius": {"must be a positive number of meters"}})
			return
		}
		radius = parsed
	}
	if radius > models.MaxSearchRadiusInMeters {
		radius = models.MaxSearchRadiusInMeters
	}
	limit := parseCount(query.Get("count"), models.DefaultMaxCountForStations)

	results := api.Stations.Nearby(lat, lon, radius, limit)
	response := models.NewListResponseWithClock(models.NewNearbyStationViews(results), nil, api.Clock)
	api.sendResponse(w, r, response)
}

// stationsSyncHandler pulls autocomplete results for a query from the upstream
// into the local directory. Meant for operators seeding the database.
func (api *RestAPI) stationsSyncHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		api.validationErrorResponse(w, r, map[string][]string{"q": {"required"}})
		return
	}

	start := api.Clock.Now()
	resp, err := api.Navitia.Places(r.Context(), q, models.MaxAllowedCount)
	api.observeUpstream("places", start, err)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	items := stations.FromPlaces(resp.Places)
	if err := api.Stations.Upsert(r.Context(), items); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	total, err := api.Stations.Count(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entry := map[string]interface{}{
		"imported": len(items),
		"total":    total,
	}
	api.sendResponse(w, r, models.NewEntryResponseWithClock(entry, api.Clock))
}
