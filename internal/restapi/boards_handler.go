package restapi

import (
	"net/http"

	"explorer.navitia.org/internal/disruption"
	"explorer.navitia.org/internal/models"
	"explorer.navitia.org/internal/navitia"
)

// departuresHandler serves the departure board for one stop area.
func (api *RestAPI) departuresHandler(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("id")
	if stopID == "" {
		api.validationErrorResponse(w, r, map[string][]string{"id": {"required"}})
		return
	}
	count := parseCount(r.URL.Query().Get("count"), models.DefaultMaxCountForBoards)

	start := api.Clock.Now()
	resp, err := api.Navitia.Departures(r.Context(), stopID, count)
	api.observeUpstream("departures", start, err)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	views := api.boardViews(resp.Departures, resp.Disruptions, models.BoardDepartures)
	response := models.NewBoardResponseWithClock(views, stopID, models.NewDisruptionViews(resp.Disruptions), api.Clock)
	api.sendResponse(w, r, response)
}

// arrivalsHandler serves the arrival board for one stop area.
func (api *RestAPI) arrivalsHandler(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("id")
	if stopID == "" {
		api.validationErrorResponse(w, r, map[string][]string{"id": {"required"}})
		return
	}
	count := parseCount(r.URL.Query().Get("count"), models.DefaultMaxCountForBoards)

	start := api.Clock.Now()
	resp, err := api.Navitia.Arrivals(r.Context(), stopID, count)
	api.observeUpstream("arrivals", start, err)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	views := api.boardViews(resp.Arrivals, resp.Disruptions, models.BoardArrivals)
	response := models.NewBoardResponseWithClock(views, stopID, models.NewDisruptionViews(resp.Disruptions), api.Clock)
	api.sendResponse(w, r, response)
}

// boardViews matches each board row against the payload and cached
// disruptions, then projects it.
func (api *RestAPI) boardViews(events []navitia.StopEvent, payloadDisruptions []navitia.Disruption, kind models.BoardKind) []models.StopEventView {
	ds := append(payloadDisruptions, api.cachedDisruptions()...)

	views := make([]models.StopEventView, 0, len(events))
	for i := range events {
		e := &events[i]

		var stopPointID, departureTime string
		if e.StopPoint != nil {
			stopPointID = e.StopPoint.ID
		}
		if e.StopDateTime != nil {
			departureTime = e.StopDateTime.DepartureDateTime
			if kind == models.BoardArrivals {
				departureTime = e.StopDateTime.ArrivalDateTime
			}
		}

		matched := disruption.MatchForStopEvent(ds, e.Links, e.TripID(), stopPointID, departureTime)
		views = append(views, models.NewStopEventView(e, kind, matched))
	}
	return views
}
