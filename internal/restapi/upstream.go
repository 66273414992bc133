package restapi

import (
	"errors"
	"strconv"
	"time"

	"explorer.navitia.org/internal/navitia"
)

// observeUpstream records one upstream call against the metrics registry.
// endpoint is the logical upstream operation, not the full path.
func (api *RestAPI) observeUpstream(endpoint string, start time.Time, err error) {
	if api.Metrics == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
		var statusErr *navitia.StatusError
		if errors.As(err, &statusErr) {
			status = strconv.Itoa(statusErr.StatusCode)
		}
	}

	api.Metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	api.Metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
