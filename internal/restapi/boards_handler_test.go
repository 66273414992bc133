package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const departuresPayload = `{
	"departures": [
		{
			"display_informations": {
				"headsign": "88711",
				"commercial_mode": "TER",
				"network": "TER Grand Est",
				"direction": "Luxembourg (Luxembourg)",
				"links": [{"type": "vehicle_journey", "id": "vehicle_journey:SNCF:88711"}]
			},
			"stop_point": {"id": "stop_point:SNCF:87192039", "name": "Metz Ville (Metz)"},
			"stop_date_time": {
				"base_departure_date_time": "20250113T081000",
				"departure_date_time": "20250113T081500"
			},
			"links": [{"type": "trip", "id": "trip:SNCF:88711"}]
		}
	],
	"disruptions": [
		{
			"id": "disruption:trip",
			"severity": "retard",
			"messages": [{"text": "Retard de 5 minutes"}],
			"impacted_objects": [{"pt_object": {"id": "trip:SNCF:88711", "embedded_type": "trip"}}]
		},
		{
			"id": "disruption:unrelated",
			"impacted_objects": [{"pt_object": {"id": "trip:SNCF:42", "embedded_type": "trip"}}]
		}
	]
}`

func TestDeparturesHandler(t *testing.T) {
	api := createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coverage/sncf/stop_areas/stop_area:SNCF:87192039/departures", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(departuresPayload))
	}))

	status, model := serveApiAndRetrieveEndpoint(t, api, "/api/v1/departures/stop_area:SNCF:87192039?key=test")
	require.Equal(t, http.StatusOK, status)

	data := dataMap(t, model)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "stop_area:SNCF:87192039", entry["stopId"])

	events, ok := entry["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)

	row, ok := events[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "88711", row["trainNumber"])
	assert.Equal(t, "Metz Ville", row["stopName"])
	assert.Equal(t, "+5min", row["delay"])

	matched, ok := row["disruptions"].([]interface{})
	require.True(t, ok)
	require.Len(t, matched, 1)
	first, ok := matched[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "disruption:trip", first["id"])
}

func TestArrivalsHandlerUsesArrivalTimes(t *testing.T) {
	payload := `{
		"arrivals": [
			{
				"display_informations": {"headsign": "88712"},
				"stop_point": {"id": "stop_point:SNCF:87191007", "name": "Thionville (Thionville)"},
				"stop_date_time": {
					"base_arrival_date_time": "20250113T090000",
					"arrival_date_time": "20250113T090000"
				}
			}
		]
	}`
	api := createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coverage/sncf/stop_areas/stop_area:SNCF:87191007/arrivals", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))

	status, model := serveApiAndRetrieveEndpoint(t, api, "/api/v1/arrivals/stop_area:SNCF:87191007?key=test")
	require.Equal(t, http.StatusOK, status)

	data := dataMap(t, model)
	entry := data["entry"].(map[string]interface{})
	events := entry["events"].([]interface{})
	require.Len(t, events, 1)

	row := events[0].(map[string]interface{})
	assert.Equal(t, "À l'heure", row["delay"])
	assert.Equal(t, "20250113T090000", row["baseTime"])
}

func TestDeparturesHandlerUpstreamNotFound(t *testing.T) {
	api := createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/api/v1/departures/stop_area:SNCF:nope?key=test")
	assert.Equal(t, http.StatusNotFound, status)
}
