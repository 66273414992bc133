package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"explorer.navitia.org/internal/disruption"
	"explorer.navitia.org/internal/journey"
	"explorer.navitia.org/internal/models"
	"explorer.navitia.org/internal/navitia"
)

// journeysHandler searches point-to-point trip options and enriches each with
// its delay summary and the disruptions that apply to it.
func (api *RestAPI) journeysHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := query.Get("from")
	to := query.Get("to")
	fieldErrors := map[string][]string{}
	if from == "" {
		fieldErrors["from"] = []string{"required"}
	}
	if to == "" {
		fieldErrors["to"] = []string{"required"}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	req := navitia.JourneysRequest{
		From:     from,
		To:       to,
		Datetime: query.Get("datetime"),
		Count:    parseCount(query.Get("count"), models.DefaultMaxCountForBoards),
	}

	start := api.Clock.Now()
	resp, err := api.Navitia.Journeys(r.Context(), req)
	api.observeUpstream("journeys", start, err)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	ds := append(resp.Disruptions, api.cachedDisruptions()...)
	fromName := query.Get("from_name")
	toName := query.Get("to_name")

	views := make([]models.JourneyView, 0, len(resp.Journeys))
	for i := range resp.Journeys {
		j := &resp.Journeys[i]
		vjID := journey.GetInfo(j, fromName, toName).VehicleJourneyID
		matched := disruption.MatchJourney(ds, j, vjID)
		views = append(views, models.NewJourneyView(j, fromName, toName, matched))
	}

	response := models.NewListResponseWithClock(views, models.NewDisruptionViews(resp.Disruptions), api.Clock)
	api.sendResponse(w, r, response)
}

// cachedDisruptions returns the background cache's snapshot, or nil when the
// cache is not wired (tests, degraded startup).
func (api *RestAPI) cachedDisruptions() []navitia.Disruption {
	if api.Disruptions == nil {
		return nil
	}
	return api.Disruptions.Snapshot()
}

// upstreamErrorResponse maps upstream failures onto this API's status codes.
// A 404 passes through as not found; everything else is a bad gateway.
func (api *RestAPI) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *navitia.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			api.sendNotFound(w, r)
			return
		}
		api.sendError(w, r, http.StatusBadGateway, "upstream request failed")
		return
	}
	api.serverErrorResponse(w, r, err)
}

func parseCount(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if n > models.MaxAllowedCount {
		return models.MaxAllowedCount
	}
	return n
}
