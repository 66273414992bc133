// Package disruption decides which service disruptions apply to a journey,
// a departure, or an arrival. Matching runs over already-fetched, in-memory
// disruption lists; every function here is pure and safe for concurrent use.
package disruption

import (
	"explorer.navitia.org/internal/navitia"
)

// MatchByTrip returns the disruptions whose impacted objects reference
// tripID, either through pt_object.trip.id or through a pt_object of
// embedded_type "trip". An empty tripID matches nothing.
func MatchByTrip(disruptions []navitia.Disruption, tripID string) []navitia.Disruption {
	if tripID == "" || len(disruptions) == 0 {
		return nil
	}
	var matched []navitia.Disruption
	for _, d := range disruptions {
		if disruptionMatchesTrip(&d, tripID) {
			matched = append(matched, d)
		}
	}
	return matched
}

func disruptionMatchesTrip(d *navitia.Disruption, tripID string) bool {
	if tripID == "" {
		return false
	}
	for _, obj := range d.ImpactedObjects {
		pt := obj.PTObject
		if pt == nil {
			continue
		}
		if pt.Trip != nil && pt.Trip.ID != "" && pt.Trip.ID == tripID {
			return true
		}
		if pt.EmbeddedType == "trip" && pt.ID == tripID {
			return true
		}
	}
	return false
}

// MatchByStopPoints returns the disruptions whose impacted objects carry a
// pt_object of embedded_type "stop_point" whose id is in stopPointIDs.
func MatchByStopPoints(disruptions []navitia.Disruption, stopPointIDs []string) []navitia.Disruption {
	if len(stopPointIDs) == 0 || len(disruptions) == 0 {
		return nil
	}
	var matched []navitia.Disruption
	for _, d := range disruptions {
		if disruptionMatchesStopPoints(&d, stopPointIDs) {
			matched = append(matched, d)
		}
	}
	return matched
}

func disruptionMatchesStopPoints(d *navitia.Disruption, stopPointIDs []string) bool {
	if len(stopPointIDs) == 0 {
		return false
	}
	for _, obj := range d.ImpactedObjects {
		pt := obj.PTObject
		if pt == nil || pt.EmbeddedType != "stop_point" || pt.ID == "" {
			continue
		}
		for _, id := range stopPointIDs {
			if pt.ID == id {
				return true
			}
		}
	}
	return false
}

// MatchByLinks returns the disruptions whose identity appears in linkIDs.
// Link ids come from links entries of type "disruption" on a section,
// departure, or arrival, and are the most reliable signal the upstream API
// provides.
func MatchByLinks(disruptions []navitia.Disruption, linkIDs []string) []navitia.Disruption {
	if len(linkIDs) == 0 || len(disruptions) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(linkIDs))
	for _, id := range linkIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	var matched []navitia.Disruption
	for _, d := range disruptions {
		identity := d.Identity()
		if identity == "" {
			continue
		}
		if _, ok := ids[identity]; ok {
			matched = append(matched, d)
		}
	}
	return matched
}

// Deduplicate removes later duplicates of the same disruption entity,
// preserving first-seen order. Entities are compared by Identity; entries
// with no identity at all are kept as-is.
func Deduplicate(disruptions []navitia.Disruption) []navitia.Disruption {
	if len(disruptions) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(disruptions))
	out := make([]navitia.Disruption, 0, len(disruptions))
	for _, d := range disruptions {
		identity := d.Identity()
		if identity == "" {
			out = append(out, d)
			continue
		}
		if _, dup := seen[identity]; dup {
			continue
		}
		seen[identity] = struct{}{}
		out = append(out, d)
	}
	return out
}

// collector accumulates matches in insertion order, deduplicated by identity.
type collector struct {
	seen    map[string]struct{}
	matched []navitia.Disruption
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(d navitia.Disruption) {
	identity := d.Identity()
	if identity != "" {
		if _, dup := c.seen[identity]; dup {
			return
		}
		c.seen[identity] = struct{}{}
	}
	c.matched = append(c.matched, d)
}

// MatchForStopEvent is the simplified matcher used by departures and
// arrivals boards. It applies the link, trip, stop-point, impacted-stops and
// general time-window methods, with link matches suppressing the fallback
// methods, then filters by application period against departureTime.
func MatchForStopEvent(disruptions []navitia.Disruption, links []navitia.Link, tripID, stopPointID, departureTime string) []navitia.Disruption {
	ref := Ref{
		TripID:        tripID,
		DepartureTime: departureTime,
		LinkIDs:       navitia.DisruptionLinkIDs(links),
	}
	if stopPointID != "" {
		ref.StopPointIDs = []string{stopPointID}
	}
	return match(disruptions, &ref, false)
}

// Ref is everything a journey exposes that a disruption can be matched
// against. Zero-valued fields disable the corresponding matching method.
type Ref struct {
	TripIDs          []string
	VehicleJourneyID string
	StopPointIDs     []string
	StopNames        []string // normalized with navitia.NormalizeStopName
	RouteIDs         []string
	LineIDs          []string
	LinkIDs          []string
	DepartureTime    string // Navitia wire format

	// TripID is a convenience for single-trip callers; folded into TripIDs.
	TripID string
}

func (r *Ref) tripIDs() []string {
	if r.TripID == "" {
		return r.TripIDs
	}
	return append([]string{r.TripID}, r.TripIDs...)
}

// MatchJourney is the full journey-level matcher: it derives a Ref from the
// journey's public_transport sections (link ids, trip ids, stop-point ids and
// names, route and line ids) and applies every matching method, including
// route/line. vehicleJourneyID may be empty.
func MatchJourney(disruptions []navitia.Disruption, journey *navitia.JourneyItem, vehicleJourneyID string) []navitia.Disruption {
	if journey == nil || len(disruptions) == 0 {
		return nil
	}
	ref := RefFromJourney(journey, vehicleJourneyID)
	return match(disruptions, ref, true)
}

// Match applies every matching method against an explicit Ref.
// withRouteLine selects between the full journey-level matcher and the
// simplified boards matcher.
func Match(disruptions []navitia.Disruption, ref *Ref, withRouteLine bool) []navitia.Disruption {
	if ref == nil || len(disruptions) == 0 {
		return nil
	}
	return match(disruptions, ref, withRouteLine)
}

// RefFromJourney scans a journey's public_transport sections and collects
// every id a disruption could be matched against.
func RefFromJourney(journey *navitia.JourneyItem, vehicleJourneyID string) *Ref {
	ref := &Ref{
		VehicleJourneyID: vehicleJourneyID,
		DepartureTime:    journey.DepartureDateTime,
	}

	for i := range journey.Sections {
		s := &journey.Sections[i]
		if !s.IsPublicTransport() {
			continue
		}

		ref.LinkIDs = append(ref.LinkIDs, navitia.DisruptionLinkIDs(s.Links)...)

		if s.Trip != nil && s.Trip.ID != "" {
			ref.TripIDs = append(ref.TripIDs, s.Trip.ID)
		}

		addStop := func(id, name string) {
			if id != "" {
				ref.StopPointIDs = append(ref.StopPointIDs, id)
			}
			if name != "" {
				ref.StopNames = append(ref.StopNames, navitia.NormalizeStopName(name))
			}
		}
		addStop(s.From.StopID(), s.From.StopName())
		addStop(s.To.StopID(), s.To.StopName())
		for j := range s.StopDateTimes {
			sdt := &s.StopDateTimes[j]
			switch {
			case sdt.StopPoint != nil:
				addStop(sdt.StopPoint.ID, sdt.StopPoint.Name)
			case sdt.StopArea != nil:
				addStop(sdt.StopArea.ID, sdt.StopArea.Name)
			}
		}

		if s.Route != nil && s.Route.ID != "" {
			ref.RouteIDs = append(ref.RouteIDs, s.Route.ID)
		}
		if s.Route != nil && s.Route.Line != nil && s.Route.Line.ID != "" {
			ref.LineIDs = append(ref.LineIDs, s.Route.Line.ID)
		}
		if di := s.DisplayInformations; di != nil {
			if di.RouteID != "" {
				ref.RouteIDs = append(ref.RouteIDs, di.RouteID)
			}
			if di.LineID != "" {
				ref.LineIDs = append(ref.LineIDs, di.LineID)
			}
		}
	}

	return ref
}

// match is the single matching core behind every entry point.
//
// Link matches are authoritative: when any disruption matches by link, the
// fallback methods are skipped entirely and only the link matches (filtered
// by application period) are returned. Otherwise the fallback methods run in
// a fixed order so the result order is deterministic: trip, vehicle-journey,
// stop-point, route/line, impacted-stops, then general time-window matches.
func match(disruptions []navitia.Disruption, ref *Ref, withRouteLine bool) []navitia.Disruption {
	if len(disruptions) == 0 {
		return nil
	}

	if linkMatched := MatchByLinks(disruptions, ref.LinkIDs); len(linkMatched) > 0 {
		out := newCollector()
		for _, d := range linkMatched {
			if appliesAt(&d, ref.DepartureTime) {
				out.add(d)
			}
		}
		return out.matched
	}

	tripIDs := ref.tripIDs()
	out := newCollector()

	methods := []func(d *navitia.Disruption) bool{
		func(d *navitia.Disruption) bool {
			for _, tripID := range tripIDs {
				if disruptionMatchesTrip(d, tripID) {
					return true
				}
			}
			return false
		},
		func(d *navitia.Disruption) bool {
			return disruptionMatchesVehicleJourney(d, ref.VehicleJourneyID)
		},
		func(d *navitia.Disruption) bool {
			return disruptionMatchesStopPoints(d, ref.StopPointIDs)
		},
	}
	if withRouteLine {
		methods = append(methods, func(d *navitia.Disruption) bool {
			return disruptionMatchesRouteOrLine(d, ref.RouteIDs, ref.LineIDs)
		})
	}
	methods = append(methods,
		func(d *navitia.Disruption) bool {
			return disruptionMatchesImpactedStops(d, ref.StopPointIDs, ref.StopNames)
		},
		func(d *navitia.Disruption) bool {
			return disruptionMatchesGeneralWindow(d, ref.DepartureTime)
		},
	)

	for _, method := range methods {
		for _, d := range disruptions {
			if !method(&d) {
				continue
			}
			if !appliesAt(&d, ref.DepartureTime) {
				continue
			}
			out.add(d)
		}
	}

	return out.matched
}

func disruptionMatchesVehicleJourney(d *navitia.Disruption, vehicleJourneyID string) bool {
	if vehicleJourneyID == "" {
		return false
	}
	for _, obj := range d.ImpactedObjects {
		pt := obj.PTObject
		if pt == nil || pt.ID == "" {
			continue
		}
		if pt.ID == vehicleJourneyID {
			return true
		}
	}
	return false
}

func disruptionMatchesRouteOrLine(d *navitia.Disruption, routeIDs, lineIDs []string) bool {
	if len(routeIDs) == 0 && len(lineIDs) == 0 {
		return false
	}
	for _, obj := range d.ImpactedObjects {
		pt := obj.PTObject
		if pt == nil || pt.ID == "" {
			continue
		}
		switch pt.EmbeddedType {
		case "route":
			for _, id := range routeIDs {
				if pt.ID == id {
					return true
				}
			}
		case "line":
			for _, id := range lineIDs {
				if pt.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// disruptionMatchesImpactedStops compares each impacted stop against the
// journey's stops, by id first and then by normalized name. Name comparison
// goes through the same location-name cleaning as display names, so
// "Thionville (Thionville)" and "Thionville" are the same stop.
func disruptionMatchesImpactedStops(d *navitia.Disruption, stopPointIDs, normalizedStopNames []string) bool {
	if len(stopPointIDs) == 0 && len(normalizedStopNames) == 0 {
		return false
	}
	for _, obj := range d.ImpactedObjects {
		for i := range obj.ImpactedStops {
			stop := &obj.ImpactedStops[i]
			if id := stop.StopID(); id != "" {
				for _, sid := range stopPointIDs {
					if id == sid {
						return true
					}
				}
			}
			name := stop.StopName()
			if name == "" {
				continue
			}
			normalized := navitia.NormalizeStopName(name)
			for _, n := range normalizedStopNames {
				if n != "" && n == normalized {
					return true
				}
			}
		}
	}
	return false
}
