package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	api := createTestApi(t)

	status, model := serveApiAndRetrieveEndpoint(t, api, "/api/v1/current-time.json?key=test")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 200, model.Code)
	assert.Equal(t, "OK", model.Text)

	data := dataMap(t, model)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	want := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, float64(want.UnixMilli()), entry["time"])
	assert.Equal(t, want.Format(time.RFC3339), entry["readableTime"])
}

func TestCurrentTimeHandlerRejectsBadKey(t *testing.T) {
	api := createTestApi(t)

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/api/v1/current-time.json?key=wrong")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthHandler(t *testing.T) {
	api := createTestApi(t)

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/healthz")
	assert.Equal(t, http.StatusOK, status)
}

func TestDisruptionsHandlerWithoutCache(t *testing.T) {
	api := createTestApi(t)

	status, model := serveApiAndRetrieveEndpoint(t, api, "/api/v1/disruptions.json?key=test")
	require.Equal(t, http.StatusOK, status)

	data := dataMap(t, model)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	list, ok := entry["disruptions"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestMetricsEndpoint(t *testing.T) {
	api := createTestApi(t)

	status, _ := serveApiAndRetrieveEndpoint(t, api, "/metrics")
	assert.Equal(t, http.StatusOK, status)
}
