package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journeysPayload = `{
	"journeys": [
		{
			"departure_date_time": "20250113T080000",
			"arrival_date_time": "20250113T083000",
			"nb_transfers": 0,
			"sections": [
				{
					"type": "public_transport",
					"mode": "rail",
					"display_informations": {
						"headsign": "88711",
						"commercial_mode": "TER",
						"network": "TER Grand Est"
					},
					"from": {"stop_point": {"id": "stop_point:SNCF:87192039", "name": "Metz Ville (Metz)"}},
					"to": {"stop_point": {"id": "stop_point:SNCF:87191007", "name": "Thionville (Thionville)"}},
					"links": [{"type": "vehicle_journey", "id": "vehicle_journey:SNCF:88711"}],
					"base_departure_date_time": "20250113T080000",
					"departure_date_time": "20250113T080300",
					"base_arrival_date_time": "20250113T083000",
					"arrival_date_time": "20250113T083000"
				}
			]
		}
	],
	"disruptions": [
		{
			"id": "disruption:1",
			"status": "active",
			"severity": {"name": "blocking"},
			"messages": [{"text": "Travaux"}],
			"impacted_objects": [
				{"pt_object": {"id": "vehicle_journey:SNCF:88711", "embedded_type": "vehicle_journey"}}
			]
		},
		{
			"id": "disruption:other",
			"impacted_objects": [
				{"pt_object": {"id": "vehicle_journey:SNCF:99999", "embedded_type": "vehicle_journey"}}
			]
		}
	]
}`

func TestJourneysHandlerRequiresFromAndTo(t *testing.T) {
	api := createTestApi(t)

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/api/v1/journeys.json?key=test")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestJourneysHandlerRequiresAPIKey(t *testing.T) {
	api := createTestApi(t)

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/api/v1/journeys.json?from=a&to=b")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestJourneysHandler(t *testing.T) {
	api := createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coverage/sncf/journeys", r.URL.Path)
		assert.Equal(t, "stop_area:SNCF:87192039", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(journeysPayload))
	}))

	status, model := serveApiAndRetrieveEndpoint(t, api,
		"/api/v1/journeys.json?key=test&from=stop_area:SNCF:87192039&to=stop_area:SNCF:87191007")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 200, model.Code)

	data := dataMap(t, model)
	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	j, ok := list[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "88711", j["trainNumber"])
	assert.Equal(t, "vehicle_journey:SNCF:88711", j["vehicleJourneyId"])
	assert.Equal(t, "+3min", j["departureDelay"])
	assert.Equal(t, "À l'heure", j["arrivalDelay"])

	// Only the disruption touching this run is attached to the journey.
	matched, ok := j["disruptions"].([]interface{})
	require.True(t, ok)
	require.Len(t, matched, 1)
	first, ok := matched[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "disruption:1", first["id"])
	assert.Equal(t, "error", first["severityLevel"])
}

func TestJourneysHandlerUpstreamFailure(t *testing.T) {
	api := createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/api/v1/journeys.json?key=test&from=a&to=b")
	assert.Equal(t, http.StatusBadGateway, status)
}
