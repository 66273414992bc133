package navitia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:  srv.URL,
		Token:    "test-token",
		Coverage: "sncf",
	})
}

func TestClientSendsAuthAndAccept(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Write([]byte(`{"disruptions": []}`))
	})

	_, err := c.Disruptions(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/coverage/sncf/disruptions", gotPath)
}

func TestClientJourneysQuery(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"journeys": [{"departure_date_time": "20250113T080000"}]}`))
	})

	resp, err := c.Journeys(context.Background(), JourneysRequest{
		From:     "stop_area:SNCF:87192039",
		To:       "stop_area:SNCF:82001000",
		Datetime: "20250113T073000",
		Count:    5,
	})
	require.NoError(t, err)
	require.Len(t, resp.Journeys, 1)

	assert.Equal(t, []string{"stop_area:SNCF:87192039"}, gotQuery["from"])
	assert.Equal(t, []string{"20250113T073000"}, gotQuery["datetime"])
	assert.Equal(t, []string{"5"}, gotQuery["count"])
	assert.Equal(t, []string{"realtime"}, gotQuery["data_freshness"])
}

func TestClientStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "no token"}`, http.StatusUnauthorized)
	})

	_, err := c.Departures(context.Background(), "stop_area:SNCF:87192039", 10)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "no token")
}

func TestClientVehicleJourneyPathEscaping(t *testing.T) {
	var gotEscapedPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		w.Write([]byte(`{"vehicle_journeys": []}`))
	})

	_, err := c.VehicleJourney(context.Background(), "vehicle_journey:SNCF:2025-12-19:88786", 2)
	require.NoError(t, err)
	assert.Equal(t, "/coverage/sncf/vehicle_journeys/vehicle_journey:SNCF:2025-12-19:88786", gotEscapedPath)
}

func TestClientContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Disruptions(ctx, 0)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := (&Config{}).withDefaults()
	assert.Equal(t, "https://api.navitia.io/v1", cfg.BaseURL)
	assert.Equal(t, "sncf", cfg.Coverage)
	assert.NotZero(t, cfg.Timeout)
	assert.NotZero(t, cfg.DisruptionRefreshInterval)
}
