package restapi

import (
	"net/http"
	"time"

	"explorer.navitia.org/internal/disruption"
	"explorer.navitia.org/internal/models"
	"explorer.navitia.org/internal/navitia"
)

// vehicleJourneyDepth pulls stop_times and their nested stop points.
const vehicleJourneyDepth = 2

// vehicleJourneyHandler serves the detail view of one train run.
func (api *RestAPI) vehicleJourneyHandler(w http.ResponseWriter, r *http.Request) {
	rawID := r.PathValue("id")
	if rawID == "" {
		api.validationErrorResponse(w, r, map[string][]string{"id": {"required"}})
		return
	}
	id := navitia.ExtractVehicleJourneyID(rawID)

	start := api.Clock.Now()
	resp, err := api.Navitia.VehicleJourney(r.Context(), id, vehicleJourneyDepth)
	api.observeUpstream("vehicle_journeys", start, err)
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}
	if len(resp.VehicleJourneys) == 0 {
		api.sendNotFound(w, r)
		return
	}

	vj := &resp.VehicleJourneys[0]

	ds := append(resp.Disruptions, vj.Disruptions...)
	ds = append(ds, api.cachedDisruptions()...)

	ref := disruption.Ref{
		VehicleJourneyID: vj.ID,
		DepartureTime:    runDepartureTime(vj, api.Clock.Now()),
	}
	if vj.Trip != nil && vj.Trip.ID != "" {
		ref.TripIDs = []string{vj.Trip.ID}
	}
	for i := range vj.StopTimes {
		if sp := vj.StopTimes[i].StopPoint; sp != nil {
			if sp.ID != "" {
				ref.StopPointIDs = append(ref.StopPointIDs, sp.ID)
			}
			if sp.Name != "" {
				ref.StopNames = append(ref.StopNames, navitia.NormalizeStopName(sp.Name))
			}
		}
	}
	matched := disruption.Match(ds, &ref, false)

	response := models.NewEntryResponseWithClock(models.NewVehicleJourneyView(vj, matched), api.Clock)
	api.sendResponse(w, r, response)
}

// runDepartureTime is the instant the run's disruptions are filtered against:
// the first stop's realtime departure, falling back to its scheduled
// departure, and to the current time when the run carries no stop times.
func runDepartureTime(vj *navitia.VehicleJourney, now time.Time) string {
	for i := range vj.StopTimes {
		st := &vj.StopTimes[i]
		if st.DepartureDateTime != "" {
			return st.DepartureDateTime
		}
		if st.BaseDepartureDateTime != "" {
			return st.BaseDepartureDateTime
		}
	}
	return navitia.FormatDateTime(now)
}
