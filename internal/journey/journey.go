// Package journey projects raw journey payloads into the display-oriented
// form the API serves. Everything here is a pure function of its inputs.
package journey

import (
	"strings"

	"explorer.navitia.org/internal/navitia"
)

// Defaults used when a journey carries no public-transport leg at all.
const (
	defaultTrainNumber      = "N/A"
	defaultDepartureStation = "Départ"
	defaultArrivalStation   = "Arrivée"
)

// Info is the normalized projection of one journey. Created fresh per
// request; it has no lifecycle of its own.
type Info struct {
	TrainNumber      string `json:"trainNumber"`
	VehicleJourneyID string `json:"vehicleJourneyId,omitempty"`
	CommercialMode   string `json:"commercialMode"`
	Network          string `json:"network,omitempty"`

	Transport  Transport `json:"transport"`
	WagonCount string    `json:"wagonCount,omitempty"`

	DepartureStation string `json:"departureStation"`
	ArrivalStation   string `json:"arrivalStation"`

	DepartureTime     string `json:"departureTime,omitempty"`
	ArrivalTime       string `json:"arrivalTime,omitempty"`
	BaseDepartureTime string `json:"baseDepartureTime,omitempty"`
	BaseArrivalTime   string `json:"baseArrivalTime,omitempty"`
	RealDepartureTime string `json:"realDepartureTime,omitempty"`
	RealArrivalTime   string `json:"realArrivalTime,omitempty"`

	// DurationSeconds is the journey's total duration.
	DurationSeconds int `json:"duration"`
}

// GetInfo normalizes one journey. fromName and toName are fallback station
// labels used only when the payload carries no usable stop names; either may
// be empty. A journey with no public-transport sections degrades to defaults
// rather than failing.
func GetInfo(j *navitia.JourneyItem, fromName, toName string) Info {
	if j == nil {
		return Info{
			TrainNumber:      defaultTrainNumber,
			CommercialMode:   "Train",
			Transport:        ClassifyTransport("", ""),
			DepartureStation: fallbackName(fromName, defaultDepartureStation),
			ArrivalStation:   fallbackName(toName, defaultArrivalStation),
		}
	}

	first := firstPublicTransport(j.Sections)
	last := lastPublicTransport(j.Sections)

	var commercialMode, network string
	if first != nil && first.DisplayInformations != nil {
		commercialMode = first.DisplayInformations.CommercialMode
		network = first.DisplayInformations.Network
	}

	info := Info{
		TrainNumber:      trainNumber(first),
		VehicleJourneyID: vehicleJourneyID(first),
		CommercialMode:   commercialMode,
		Network:          network,
		Transport:        ClassifyTransport(commercialMode, network),
		WagonCount:       WagonCount(first),
		DepartureStation: departureStation(first, fromName),
		ArrivalStation:   arrivalStation(last, toName),
		DepartureTime:    j.DepartureDateTime,
		ArrivalTime:      j.ArrivalDateTime,
	}
	if info.CommercialMode == "" {
		info.CommercialMode = "Train"
	}

	info.BaseDepartureTime = firstNonEmpty(sectionField(first, func(s *navitia.Section) string { return s.BaseDepartureDateTime }), j.DepartureDateTime)
	info.RealDepartureTime = firstNonEmpty(sectionField(first, func(s *navitia.Section) string { return s.DepartureDateTime }), j.DepartureDateTime)
	info.BaseArrivalTime = firstNonEmpty(sectionField(last, func(s *navitia.Section) string { return s.BaseArrivalDateTime }), j.ArrivalDateTime)
	info.RealArrivalTime = firstNonEmpty(sectionField(last, func(s *navitia.Section) string { return s.ArrivalDateTime }), j.ArrivalDateTime)

	if j.Durations != nil {
		info.DurationSeconds = j.Durations.Total
	}

	return info
}

func firstPublicTransport(sections []navitia.Section) *navitia.Section {
	for i := range sections {
		if sections[i].IsPublicTransport() {
			return &sections[i]
		}
	}
	return nil
}

func lastPublicTransport(sections []navitia.Section) *navitia.Section {
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].IsPublicTransport() {
			return &sections[i]
		}
	}
	return nil
}

func trainNumber(first *navitia.Section) string {
	if first == nil || first.DisplayInformations == nil {
		return defaultTrainNumber
	}
	if h := first.DisplayInformations.Headsign; h != "" {
		return h
	}
	if n := first.DisplayInformations.TripShortName; n != "" {
		return n
	}
	return defaultTrainNumber
}

// vehicleJourneyID resolves the first section's vehicle-journey id, trying in
// order the section's vehicle_journey reference, a vehicle_journey link, and
// the trip's nested reference. Link values carrying a URL or path are reduced
// to the raw id.
func vehicleJourneyID(first *navitia.Section) string {
	if first == nil {
		return ""
	}
	if first.VehicleJourney != nil && first.VehicleJourney.ID != "" {
		return navitia.ExtractVehicleJourneyID(first.VehicleJourney.ID)
	}
	for _, l := range first.Links {
		if l.Type != "vehicle_journey" && !strings.Contains(l.ID, "vehicle_journey") {
			continue
		}
		value := l.ID
		if value == "" {
			value = l.Href
		}
		if id := navitia.ExtractVehicleJourneyID(value); id != "" {
			return id
		}
	}
	if first.Trip != nil && first.Trip.VehicleJourney != nil && first.Trip.VehicleJourney.ID != "" {
		return navitia.ExtractVehicleJourneyID(first.Trip.VehicleJourney.ID)
	}
	return ""
}

func departureStation(first *navitia.Section, fromName string) string {
	if first != nil {
		if name := first.From.StopName(); name != "" {
			return navitia.CleanLocationName(name)
		}
	}
	return navitia.CleanLocationName(fallbackName(fromName, defaultDepartureStation))
}

func arrivalStation(last *navitia.Section, toName string) string {
	if last != nil {
		if name := last.To.StopName(); name != "" {
			return navitia.CleanLocationName(name)
		}
	}
	return navitia.CleanLocationName(fallbackName(toName, defaultArrivalStation))
}

func fallbackName(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func sectionField(s *navitia.Section, get func(*navitia.Section) string) string {
	if s == nil {
		return ""
	}
	return get(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
