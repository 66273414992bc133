package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"explorer.navitia.org/internal/app"
	"explorer.navitia.org/internal/appconf"
	"explorer.navitia.org/internal/clock"
	"explorer.navitia.org/internal/metrics"
	"explorer.navitia.org/internal/models"
	"explorer.navitia.org/internal/navitia"
	"explorer.navitia.org/internal/stations"
)

// testAPIKey is accepted by every test API instance.
const testAPIKey = "test"

// createTestApi builds a RestAPI with an in-memory station directory and no
// upstream. Handlers that reach the upstream need createTestApiWithUpstream.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
}

// createTestApiWithUpstream builds a RestAPI whose Navitia client talks to a
// stub upstream served by handler.
func createTestApiWithUpstream(t *testing.T, handler http.Handler) *RestAPI {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	store, err := stations.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mockClock := clock.NewMockClock(time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC))

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{testAPIKey},
			RateLimit: 1000,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  mockClock,
		Navitia: navitia.NewClient(navitia.Config{
			BaseURL:  upstream.URL,
			Token:    "test-token",
			Coverage: "sncf",
		}),
		Stations: store,
		Metrics:  metrics.New(),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	t.Cleanup(application.Metrics.Shutdown)
	return api
}

// serveApiAndRetrieveEndpoint spins up the full route table and GETs path,
// decoding the standard response envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, path string) (int, models.ResponseModel) {
	t.Helper()

	srv := httptest.NewServer(api.SetupAPIRoutes())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	if len(body) > 0 && body[0] == '{' {
		_ = json.Unmarshal(body, &model)
	}
	return resp.StatusCode, model
}

// dataMap extracts the response's data object.
func dataMap(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be an object")
	return data
}
