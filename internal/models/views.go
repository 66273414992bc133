package models

import (
	"strings"

	"explorer.navitia.org/internal/delay"
	"explorer.navitia.org/internal/geo"
	"explorer.navitia.org/internal/journey"
	"explorer.navitia.org/internal/navitia"
	"explorer.navitia.org/internal/stations"
)

// Severity levels exposed to clients. Derived from the upstream severity text,
// which is free-form.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// DisruptionView is the client-facing projection of one disruption.
type DisruptionView struct {
	ID            string              `json:"id"`
	Status        string              `json:"status,omitempty"`
	Cause         string              `json:"cause,omitempty"`
	Severity      string              `json:"severity,omitempty"`
	SeverityLevel string              `json:"severityLevel"`
	Message       string              `json:"message,omitempty"`
	Periods       []ApplicationPeriod `json:"periods,omitempty"`
	ImpactedStops []string            `json:"impactedStops,omitempty"`
	UpdatedAt     string              `json:"updatedAt,omitempty"`
}

// ApplicationPeriod is a raw validity window as sent by the upstream.
type ApplicationPeriod struct {
	Begin string `json:"begin,omitempty"`
	End   string `json:"end,omitempty"`
}

// SeverityLevel buckets free-form severity text into error, warning, or info.
func SeverityLevel(severity string) string {
	s := strings.ToLower(severity)
	switch {
	case strings.Contains(s, "blocking"), strings.Contains(s, "blocked"), strings.Contains(s, "suspended"):
		return SeverityError
	case strings.Contains(s, "information"), strings.Contains(s, "info"):
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// NewDisruptionView projects one upstream disruption.
func NewDisruptionView(d navitia.Disruption) DisruptionView {
	v := DisruptionView{
		ID:            d.Identity(),
		Status:        d.Status,
		Cause:         d.Cause,
		Severity:      d.Severity.Text(),
		SeverityLevel: SeverityLevel(d.Severity.Text()),
		Message:       d.DisplayMessage(),
		UpdatedAt:     d.UpdatedAt,
	}
	for _, p := range d.ApplicationPeriods {
		v.Periods = append(v.Periods, ApplicationPeriod{Begin: p.Begin, End: p.End})
	}
	seen := make(map[string]bool)
	for _, imp := range d.ImpactedObjects {
		for i := range imp.ImpactedStops {
			name := imp.ImpactedStops[i].StopName()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			v.ImpactedStops = append(v.ImpactedStops, name)
		}
	}
	return v
}

// NewDisruptionViews projects a slice, preserving order.
func NewDisruptionViews(ds []navitia.Disruption) []DisruptionView {
	views := make([]DisruptionView, 0, len(ds))
	for _, d := range ds {
		views = append(views, NewDisruptionView(d))
	}
	return views
}

// SectionView is one public transport leg of a journey with its geometry
// encoded as a polyline.
type SectionView struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Geometry string `json:"geometry,omitempty"`
}

// JourneyView is one journey option: the normalized summary, its matched
// disruptions, and the leg geometries for map display.
type JourneyView struct {
	journey.Info
	DepartureDelay string           `json:"departureDelay,omitempty"`
	ArrivalDelay   string           `json:"arrivalDelay,omitempty"`
	MaxDelay       string           `json:"maxDelay,omitempty"`
	NbTransfers    int              `json:"nbTransfers"`
	Sections       []SectionView    `json:"sections,omitempty"`
	Disruptions    []DisruptionView `json:"disruptions"`
}

// NewJourneyView builds the full projection for one journey option. Delay
// formatting failures degrade to empty strings rather than failing the view.
func NewJourneyView(j *navitia.JourneyItem, fromName, toName string, matched []navitia.Disruption) JourneyView {
	info := journey.GetInfo(j, fromName, toName)

	v := JourneyView{
		Info:        info,
		Disruptions: NewDisruptionViews(matched),
	}
	if j == nil {
		return v
	}
	v.NbTransfers = j.NbTransfers

	if d, err := delay.Delay(info.BaseDepartureTime, info.RealDepartureTime); err == nil {
		v.DepartureDelay = d
	}
	if d, err := delay.Delay(info.BaseArrivalTime, info.RealArrivalTime); err == nil {
		v.ArrivalDelay = d
	}
	if m, err := delay.MaxDelay(
		v.DepartureDelay, v.ArrivalDelay,
		info.BaseDepartureTime, info.RealDepartureTime,
		info.BaseArrivalTime, info.RealArrivalTime,
	); err == nil {
		v.MaxDelay = m
	}

	for i := range j.Sections {
		s := &j.Sections[i]
		if !s.IsPublicTransport() {
			continue
		}
		sv := SectionView{Mode: s.Mode}
		if s.From != nil {
			sv.From = navitia.CleanLocationName(s.From.StopName())
		}
		if s.To != nil {
			sv.To = navitia.CleanLocationName(s.To.StopName())
		}
		sv.Geometry = geo.EncodeSectionGeometry(s.GeoJSON)
		v.Sections = append(v.Sections, sv)
	}
	return v
}

// StopEventView is one row of a departures or arrivals board.
type StopEventView struct {
	TrainNumber      string            `json:"trainNumber"`
	VehicleJourneyID string            `json:"vehicleJourneyId,omitempty"`
	TripID           string            `json:"tripId,omitempty"`
	CommercialMode   string            `json:"commercialMode,omitempty"`
	Network          string            `json:"network,omitempty"`
	Transport        journey.Transport `json:"transport"`
	Direction        string            `json:"direction,omitempty"`
	StopName         string            `json:"stopName,omitempty"`
	BaseTime         string            `json:"baseTime,omitempty"`
	RealTime         string            `json:"realTime,omitempty"`
	Delay            string            `json:"delay,omitempty"`
	Disruptions      []DisruptionView  `json:"disruptions"`
}

// BoardKind selects which side of a stop event's schedule a board shows.
type BoardKind int

const (
	BoardDepartures BoardKind = iota
	BoardArrivals
)

// NewStopEventView projects one board row. For departure boards the departure
// times drive the delay; for arrival boards the arrival times do.
func NewStopEventView(e *navitia.StopEvent, kind BoardKind, matched []navitia.Disruption) StopEventView {
	v := StopEventView{
		TrainNumber: UnknownValue,
		Disruptions: NewDisruptionViews(matched),
	}
	if e == nil {
		return v
	}
	v.TripID = e.TripID()

	if di := e.DisplayInformations; di != nil {
		if di.Headsign != "" {
			v.TrainNumber = di.Headsign
		} else if di.TripShortName != "" {
			v.TrainNumber = di.TripShortName
		}
		v.CommercialMode = di.CommercialMode
		v.Network = di.Network
		v.Direction = di.Direction
		for _, l := range di.Links {
			if l.Type == "vehicle_journey" && l.ID != "" {
				v.VehicleJourneyID = navitia.ExtractVehicleJourneyID(l.ID)
				break
			}
		}
	}
	v.Transport = journey.ClassifyTransport(v.CommercialMode, v.Network)

	if sp := e.StopPoint; sp != nil {
		v.StopName = navitia.CleanLocationName(sp.Name)
	}

	if sdt := e.StopDateTime; sdt != nil {
		base, real := sdt.BaseDepartureDateTime, sdt.DepartureDateTime
		if kind == BoardArrivals {
			base, real = sdt.BaseArrivalDateTime, sdt.ArrivalDateTime
		}
		v.BaseTime = base
		v.RealTime = real
		if d, err := delay.Delay(base, real); err == nil {
			v.Delay = d
		}
	}
	return v
}

// StopCallView is one stop of a vehicle journey's run.
type StopCallView struct {
	StopName       string `json:"stopName,omitempty"`
	ArrivalTime    string `json:"arrivalTime,omitempty"`
	DepartureTime  string `json:"departureTime,omitempty"`
	BaseArrival    string `json:"baseArrivalTime,omitempty"`
	BaseDeparture  string `json:"baseDepartureTime,omitempty"`
	DepartureDelay string `json:"departureDelay,omitempty"`
}

// VehicleJourneyView is the detail page projection of one train run.
type VehicleJourneyView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Headsign    string           `json:"headsign,omitempty"`
	Stops       []StopCallView   `json:"stops"`
	Disruptions []DisruptionView `json:"disruptions"`
}

// NewVehicleJourneyView projects one vehicle journey with its stop calls.
func NewVehicleJourneyView(vj *navitia.VehicleJourney, matched []navitia.Disruption) VehicleJourneyView {
	v := VehicleJourneyView{
		Disruptions: NewDisruptionViews(matched),
		Stops:       []StopCallView{},
	}
	if vj == nil {
		return v
	}
	v.ID = vj.ID
	v.Name = vj.Name
	v.Headsign = vj.Headsign

	for i := range vj.StopTimes {
		st := &vj.StopTimes[i]
		call := StopCallView{
			ArrivalTime:   st.ArrivalDateTime,
			DepartureTime: st.DepartureDateTime,
			BaseArrival:   st.BaseArrivalDateTime,
			BaseDeparture: st.BaseDepartureDateTime,
		}
		if st.StopPoint != nil {
			call.StopName = navitia.CleanLocationName(st.StopPoint.Name)
		} else if st.StopArea != nil {
			call.StopName = navitia.CleanLocationName(st.StopArea.Name)
		}
		if d, err := delay.Delay(st.BaseDepartureDateTime, st.DepartureDateTime); err == nil {
			call.DepartureDelay = d
		}
		v.Stops = append(v.Stops, call)
	}
	return v
}

// StationView is one station directory entry.
type StationView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Label          string  `json:"label,omitempty"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// NewStationView projects one directory row.
func NewStationView(s stations.Station) StationView {
	return StationView{ID: s.ID, Name: s.Name, Label: s.Label, Lat: s.Lat, Lon: s.Lon}
}

// NewStationViews projects a search result slice.
func NewStationViews(list []stations.Station) []StationView {
	views := make([]StationView, 0, len(list))
	for _, s := range list {
		views = append(views, NewStationView(s))
	}
	return views
}

// NewNearbyStationViews projects a proximity result slice, carrying distances.
func NewNearbyStationViews(list []stations.NearbyResult) []StationView {
	views := make([]StationView, 0, len(list))
	for _, r := range list {
		v := NewStationView(r.Station)
		v.DistanceMeters = r.DistanceMeters
		views = append(views, v)
	}
	return views
}
