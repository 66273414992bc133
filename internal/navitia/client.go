package navitia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultCoverage is the coverage area every endpoint defaults to.
const DefaultCoverage = "sncf"

const defaultBaseURL = "https://api.navitia.io/v1"

// Config carries everything needed to reach the upstream Navitia API.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Token is the Navitia API token, sent in the Authorization header.
	Token string
	// Coverage selects the regional dataset, e.g. "sncf".
	Coverage string
	// Timeout bounds each upstream request. Zero means 30s.
	Timeout time.Duration
	// DisruptionRefreshInterval paces the background disruption cache.
	// Zero means 2 minutes.
	DisruptionRefreshInterval time.Duration
	Verbose                   bool
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = defaultBaseURL
	}
	if out.Coverage == "" {
		out.Coverage = DefaultCoverage
	}
	if out.Timeout == 0 {
		out.Timeout = 30 * time.Second
	}
	if out.DisruptionRefreshInterval == 0 {
		out.DisruptionRefreshInterval = 2 * time.Minute
	}
	return out
}

// Client is a Navitia REST API client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	coverage   string
}

// NewClient creates a Navitia client from cfg.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		coverage:   cfg.Coverage,
	}
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("navitia: unexpected status code %d from %s", e.StatusCode, e.URL)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + "/coverage/" + url.PathEscape(c.coverage) + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, URL: u, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// JourneysRequest names the parameters of a journey search.
type JourneysRequest struct {
	From     string
	To       string
	Datetime string // Navitia wire format; empty means "now" upstream
	Count    int
}

// Journeys searches point-to-point trip options.
func (c *Client) Journeys(ctx context.Context, req JourneysRequest) (*JourneysResponse, error) {
	q := url.Values{}
	q.Set("from", req.From)
	q.Set("to", req.To)
	if req.Datetime != "" {
		q.Set("datetime", req.Datetime)
	}
	if req.Count > 0 {
		q.Set("count", strconv.Itoa(req.Count))
	}
	q.Set("data_freshness", "realtime")

	var out JourneysResponse
	if err := c.get(ctx, "/journeys", q, &out); err != nil {
		return nil, fmt.Errorf("fetching journeys: %w", err)
	}
	return &out, nil
}

// Departures returns the departure board of a stop area.
func (c *Client) Departures(ctx context.Context, stopAreaID string, count int) (*DeparturesResponse, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	q.Set("data_freshness", "realtime")

	var out DeparturesResponse
	path := "/stop_areas/" + url.PathEscape(stopAreaID) + "/departures"
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, fmt.Errorf("fetching departures for %s: %w", stopAreaID, err)
	}
	return &out, nil
}

// Arrivals returns the arrival board of a stop area.
func (c *Client) Arrivals(ctx context.Context, stopAreaID string, count int) (*ArrivalsResponse, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	q.Set("data_freshness", "realtime")

	var out ArrivalsResponse
	path := "/stop_areas/" + url.PathEscape(stopAreaID) + "/arrivals"
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, fmt.Errorf("fetching arrivals for %s: %w", stopAreaID, err)
	}
	return &out, nil
}

// VehicleJourney retrieves one vehicle journey with its stop times.
// depth 2 is needed for stop_times and nested objects.
func (c *Client) VehicleJourney(ctx context.Context, id string, depth int) (*VehicleJourneysResponse, error) {
	q := url.Values{}
	if depth > 0 {
		q.Set("depth", strconv.Itoa(depth))
	}

	var out VehicleJourneysResponse
	path := "/vehicle_journeys/" + url.PathEscape(id)
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, fmt.Errorf("fetching vehicle journey %s: %w", id, err)
	}
	return &out, nil
}

// Disruptions lists the coverage's current disruptions.
func (c *Client) Disruptions(ctx context.Context, count int) (*DisruptionsResponse, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}

	var out DisruptionsResponse
	if err := c.get(ctx, "/disruptions", q, &out); err != nil {
		return nil, fmt.Errorf("fetching disruptions: %w", err)
	}
	return &out, nil
}

// Places runs the autocomplete endpoint over stop areas.
func (c *Client) Places(ctx context.Context, query string, count int) (*PlacesResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type[]", "stop_area")
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}

	var out PlacesResponse
	if err := c.get(ctx, "/places", q, &out); err != nil {
		return nil, fmt.Errorf("fetching places: %w", err)
	}
	return &out, nil
}
