package navitia

import (
	"bytes"
	"encoding/json"
)

// Disruption is a service-affecting event published by Navitia. Depending on
// the endpoint, the identity field arrives as id, disruption_id, or
// disruption_uri; Identity() resolves them.
type Disruption struct {
	ID                 string              `json:"id,omitempty"`
	DisruptionID       string              `json:"disruption_id,omitempty"`
	DisruptionURI      string              `json:"disruption_uri,omitempty"`
	Status             string              `json:"status,omitempty"`
	Cause              string              `json:"cause,omitempty"`
	Severity           Severity            `json:"severity,omitempty"`
	Messages           []Message           `json:"messages,omitempty"`
	Message            string              `json:"message,omitempty"`
	ImpactedObjects    []Impact            `json:"impacted_objects,omitempty"`
	ApplicationPeriods []ApplicationPeriod `json:"application_periods,omitempty"`
	UpdatedAt          string              `json:"updated_at,omitempty"`
}

// Identity returns the first non-empty identity field, in the fixed priority
// order id, disruption_id, disruption_uri. Two disruptions are the same entity
// iff their identities are equal.
func (d *Disruption) Identity() string {
	if d.ID != "" {
		return d.ID
	}
	if d.DisruptionID != "" {
		return d.DisruptionID
	}
	return d.DisruptionURI
}

// DisplayMessage returns the canonical message text: the first entry of
// messages, falling back to the legacy single message field.
func (d *Disruption) DisplayMessage() string {
	for _, m := range d.Messages {
		if m.Text != "" {
			return m.Text
		}
		if m.Message != "" {
			return m.Message
		}
	}
	return d.Message
}

// Message is one entry of a disruption's messages list. The text arrives under
// either key depending on the feed.
type Message struct {
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// Severity arrives as either a bare string or an object carrying name/label.
type Severity struct {
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`

	raw string
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.raw)
	}
	type severity Severity
	var obj severity
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Severity(obj)
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) {
	if s.raw != "" {
		return json.Marshal(s.raw)
	}
	type severity Severity
	return json.Marshal(severity(s))
}

// Text normalizes the union: name, then label, then the bare string form.
func (s Severity) Text() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Label != "" {
		return s.Label
	}
	return s.raw
}

// IsZero reports whether no severity information was present at all.
func (s Severity) IsZero() bool {
	return s.Name == "" && s.Label == "" && s.Color == "" && s.raw == ""
}

// ApplicationPeriod is a begin/end window during which a disruption is active.
// An entry lacking begin or end means "always active within this disruption".
type ApplicationPeriod struct {
	Begin string `json:"begin,omitempty"`
	End   string `json:"end,omitempty"`
}

// Impact is one affected object reference plus the stops it touches.
type Impact struct {
	PTObject      *PTObject      `json:"pt_object,omitempty"`
	ImpactedStops []ImpactedStop `json:"impacted_stops,omitempty"`
}

// PTObject is the polymorphic reference inside an impact. embedded_type
// discriminates among vehicle_journey, trip, route, line, and stop_point.
type PTObject struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	EmbeddedType string `json:"embedded_type,omitempty"`
	Trip         *Trip  `json:"trip,omitempty"`
}

// ImpactedStop references a stop touched by an impact, by id and/or by name,
// possibly nested under stop_point or stop_area.
type ImpactedStop struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	StopPoint *StopPoint `json:"stop_point,omitempty"`
	StopArea  *StopArea  `json:"stop_area,omitempty"`
	Cause     string     `json:"cause,omitempty"`
}

// StopID resolves the stop identity across the nesting variants.
func (s *ImpactedStop) StopID() string {
	if s.ID != "" {
		return s.ID
	}
	if s.StopPoint != nil && s.StopPoint.ID != "" {
		return s.StopPoint.ID
	}
	if s.StopArea != nil {
		return s.StopArea.ID
	}
	return ""
}

// StopName resolves the stop name across the nesting variants.
func (s *ImpactedStop) StopName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.StopPoint != nil && s.StopPoint.Name != "" {
		return s.StopPoint.Name
	}
	if s.StopArea != nil {
		return s.StopArea.Name
	}
	return ""
}

// Trip identifies the scheduled run a section or impact belongs to.
type Trip struct {
	ID             string             `json:"id,omitempty"`
	Name           string             `json:"name,omitempty"`
	VehicleJourney *VehicleJourneyRef `json:"vehicle_journey,omitempty"`
}

// VehicleJourneyRef arrives as either a bare id string or an object with an id
// and optional vehicle/headsign detail.
type VehicleJourneyRef struct {
	ID        string   `json:"id,omitempty"`
	Vehicle   *Vehicle `json:"vehicle,omitempty"`
	Headsigns []string `json:"headsigns,omitempty"`
}

func (v *VehicleJourneyRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &v.ID)
	}
	type ref VehicleJourneyRef
	var obj ref
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*v = VehicleJourneyRef(obj)
	return nil
}

// Vehicle carries rolling-stock composition detail when the feed provides it.
// Fields are pointers: absent and zero are different answers for wagon counts.
type Vehicle struct {
	WagonCount *int `json:"wagon_count,omitempty"`
	CarCount   *int `json:"car_count,omitempty"`
	Length     *int `json:"length,omitempty"`
	Capacity   *int `json:"capacity,omitempty"`
}

// StopPoint is a single platform/stop.
type StopPoint struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	Coord *Coord `json:"coord,omitempty"`
}

// StopArea is the named station grouping multiple stop points.
type StopArea struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label,omitempty"`
	Coord *Coord `json:"coord,omitempty"`
}

// Coord is a WGS84 position; Navitia serializes the values as strings.
type Coord struct {
	Lat string `json:"lat,omitempty"`
	Lon string `json:"lon,omitempty"`
}

// Place is a from/to endpoint of a section.
type Place struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	StopPoint *StopPoint `json:"stop_point,omitempty"`
	StopArea  *StopArea  `json:"stop_area,omitempty"`
}

// StopID resolves the endpoint identity, stop_point before stop_area.
func (p *Place) StopID() string {
	if p == nil {
		return ""
	}
	if p.StopPoint != nil && p.StopPoint.ID != "" {
		return p.StopPoint.ID
	}
	if p.StopArea != nil {
		return p.StopArea.ID
	}
	return ""
}

// StopName resolves the endpoint name, stop_point before stop_area.
func (p *Place) StopName() string {
	if p == nil {
		return ""
	}
	if p.StopPoint != nil && p.StopPoint.Name != "" {
		return p.StopPoint.Name
	}
	if p.StopArea != nil {
		return p.StopArea.Name
	}
	return ""
}

// DisplayInformations is the presentation block Navitia attaches to sections,
// departures, and arrivals.
type DisplayInformations struct {
	Headsign               string   `json:"headsign,omitempty"`
	TripShortName          string   `json:"trip_short_name,omitempty"`
	CommercialMode         string   `json:"commercial_mode,omitempty"`
	PhysicalMode           string   `json:"physical_mode,omitempty"`
	Network                string   `json:"network,omitempty"`
	Direction              string   `json:"direction,omitempty"`
	Label                  string   `json:"label,omitempty"`
	Code                   string   `json:"code,omitempty"`
	Color                  string   `json:"color,omitempty"`
	RouteID                string   `json:"route_id,omitempty"`
	LineID                 string   `json:"line_id,omitempty"`
	AdditionalInformations []string `json:"additional_informations,omitempty"`
	Links                  []Link   `json:"links,omitempty"`
}

// Link is a typed reference entry; used to find vehicle_journey, trip, and
// disruption references.
type Link struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
	Rel  string `json:"rel,omitempty"`
	Href string `json:"href,omitempty"`
}

// Route carries the route and its line when depth allows.
type Route struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Line *Line  `json:"line,omitempty"`
}

// Line is a commercial line.
type Line struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// StopDateTime is one scheduled/realtime call at a stop.
type StopDateTime struct {
	StopPoint             *StopPoint `json:"stop_point,omitempty"`
	StopArea              *StopArea  `json:"stop_area,omitempty"`
	DepartureDateTime     string     `json:"departure_date_time,omitempty"`
	ArrivalDateTime       string     `json:"arrival_date_time,omitempty"`
	BaseDepartureDateTime string     `json:"base_departure_date_time,omitempty"`
	BaseArrivalDateTime   string     `json:"base_arrival_date_time,omitempty"`
}

// SectionGeoJSON is the geometry Navitia attaches to a section: a LineString
// with [lon, lat] coordinate pairs.
type SectionGeoJSON struct {
	Type        string       `json:"type,omitempty"`
	Coordinates [][2]float64 `json:"coordinates,omitempty"`
}

// Section is one leg of a journey.
type Section struct {
	ID                    string               `json:"id,omitempty"`
	Type                  string               `json:"type,omitempty"`
	Mode                  string               `json:"mode,omitempty"`
	From                  *Place               `json:"from,omitempty"`
	To                    *Place               `json:"to,omitempty"`
	DisplayInformations   *DisplayInformations `json:"display_informations,omitempty"`
	Links                 []Link               `json:"links,omitempty"`
	Trip                  *Trip                `json:"trip,omitempty"`
	Route                 *Route               `json:"route,omitempty"`
	VehicleJourney        *VehicleJourneyRef   `json:"vehicle_journey,omitempty"`
	StopDateTimes         []StopDateTime       `json:"stop_date_times,omitempty"`
	GeoJSON               *SectionGeoJSON      `json:"geojson,omitempty"`
	Duration              int                  `json:"duration,omitempty"`
	DepartureDateTime     string               `json:"departure_date_time,omitempty"`
	ArrivalDateTime       string               `json:"arrival_date_time,omitempty"`
	BaseDepartureDateTime string               `json:"base_departure_date_time,omitempty"`
	BaseArrivalDateTime   string               `json:"base_arrival_date_time,omitempty"`
}

// SectionTypePublicTransport is the section type carrying a vehicle run; every
// other type (transfer, waiting, street_network) is plumbing between legs.
const SectionTypePublicTransport = "public_transport"

// IsPublicTransport reports whether the section is a vehicle leg.
func (s *Section) IsPublicTransport() bool {
	return s.Type == SectionTypePublicTransport
}

// Durations is the per-journey duration breakdown.
type Durations struct {
	Total       int `json:"total,omitempty"`
	Walking     int `json:"walking,omitempty"`
	Bike        int `json:"bike,omitempty"`
	Car         int `json:"car,omitempty"`
	Taxi        int `json:"taxi,omitempty"`
	Ridesharing int `json:"ridesharing,omitempty"`
}

// JourneyItem is one complete point-to-point trip option.
type JourneyItem struct {
	Sections          []Section  `json:"sections,omitempty"`
	DepartureDateTime string     `json:"departure_date_time,omitempty"`
	ArrivalDateTime   string     `json:"arrival_date_time,omitempty"`
	RequestedDateTime string     `json:"requested_date_time,omitempty"`
	Durations         *Durations `json:"durations,omitempty"`
	NbTransfers       int        `json:"nb_transfers,omitempty"`
	Status            string     `json:"status,omitempty"`
	Type              string     `json:"type,omitempty"`
}

// StopEvent is one row of a departures or arrivals board.
type StopEvent struct {
	DisplayInformations *DisplayInformations `json:"display_informations,omitempty"`
	StopPoint           *StopPoint           `json:"stop_point,omitempty"`
	StopDateTime        *StopDateTime        `json:"stop_date_time,omitempty"`
	Route               *Route               `json:"route,omitempty"`
	Links               []Link               `json:"links,omitempty"`
}

// DisruptionLinkIDs collects the ids of links with type "disruption". These
// are the most reliable matching signal the upstream API provides.
func DisruptionLinkIDs(links []Link) []string {
	var ids []string
	for _, l := range links {
		if l.Type == "disruption" && l.ID != "" {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// TripID resolves the stop event's trip id from its links.
func (e *StopEvent) TripID() string {
	for _, l := range e.Links {
		if l.Type == "trip" && l.ID != "" {
			return l.ID
		}
	}
	return ""
}

// VehicleJourney is the detailed run returned by /vehicle_journeys/{id}.
type VehicleJourney struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name,omitempty"`
	Headsign      string         `json:"headsign,omitempty"`
	StopTimes     []StopDateTime `json:"stop_times,omitempty"`
	Trip          *Trip          `json:"trip,omitempty"`
	Disruptions   []Disruption   `json:"disruptions,omitempty"`
	JourneyPattern *struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"journey_pattern,omitempty"`
}

// JourneysResponse is the payload of /journeys.
type JourneysResponse struct {
	Journeys    []JourneyItem `json:"journeys,omitempty"`
	Disruptions []Disruption  `json:"disruptions,omitempty"`
	Links       []Link        `json:"links,omitempty"`
}

// DeparturesResponse is the payload of /stop_areas/{id}/departures.
type DeparturesResponse struct {
	Departures  []StopEvent  `json:"departures,omitempty"`
	Disruptions []Disruption `json:"disruptions,omitempty"`
}

// ArrivalsResponse is the payload of /stop_areas/{id}/arrivals.
type ArrivalsResponse struct {
	Arrivals    []StopEvent  `json:"arrivals,omitempty"`
	Disruptions []Disruption `json:"disruptions,omitempty"`
}

// VehicleJourneysResponse is the payload of /vehicle_journeys/{id}.
type VehicleJourneysResponse struct {
	VehicleJourneys []VehicleJourney `json:"vehicle_journeys,omitempty"`
	Disruptions     []Disruption     `json:"disruptions,omitempty"`
}

// DisruptionsResponse is the payload of /disruptions.
type DisruptionsResponse struct {
	Disruptions []Disruption `json:"disruptions,omitempty"`
	Pagination  *Pagination  `json:"pagination,omitempty"`
}

// PlacesResponse is the payload of /places.
type PlacesResponse struct {
	Places []PlaceResult `json:"places,omitempty"`
}

// PlaceResult is one autocomplete hit.
type PlaceResult struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Quality      int        `json:"quality,omitempty"`
	EmbeddedType string     `json:"embedded_type,omitempty"`
	StopArea     *StopArea  `json:"stop_area,omitempty"`
	StopPoint    *StopPoint `json:"stop_point,omitempty"`
}

// Pagination is Navitia's paging envelope.
type Pagination struct {
	TotalResult  int `json:"total_result,omitempty"`
	ItemsPerPage int `json:"items_per_page,omitempty"`
	ItemsOnPage  int `json:"items_on_page,omitempty"`
	StartPage    int `json:"start_page,omitempty"`
}
