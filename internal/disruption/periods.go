package disruption

import (
	"time"

	"explorer.navitia.org/internal/navitia"
)

// appliesAt reports whether a disruption is in effect at the given departure
// time, per its application_periods.
//
// A disruption with no periods always applies. A period entry missing its
// begin or end is open-ended and makes the disruption always applicable. Only
// when every entry carries concrete, parseable bounds is the departure time
// required to fall inclusively inside at least one window; a missing or
// unparseable departure time then discards the disruption.
func appliesAt(d *navitia.Disruption, departureTime string) bool {
	if len(d.ApplicationPeriods) == 0 {
		return true
	}

	type window struct{ begin, end time.Time }
	var windows []window
	for _, p := range d.ApplicationPeriods {
		begin, beginOK := navitia.ParsePeriodBound(p.Begin)
		end, endOK := navitia.ParsePeriodBound(p.End)
		if !beginOK || !endOK {
			return true
		}
		windows = append(windows, window{begin, end})
	}

	if departureTime == "" {
		return false
	}
	at, err := navitia.ParseDateTime(departureTime)
	if err != nil {
		return false
	}

	for _, w := range windows {
		if !at.Before(w.begin) && !at.After(w.end) {
			return true
		}
	}
	return false
}

// disruptionMatchesGeneralWindow is the last-resort matching method: a
// disruption with no impacted objects at all matches purely on its time
// windows. It requires every period bound to be concrete; open-ended or
// absent periods do not general-match, since without an object reference an
// unbounded disruption would attach to everything.
func disruptionMatchesGeneralWindow(d *navitia.Disruption, departureTime string) bool {
	if len(d.ImpactedObjects) != 0 {
		return false
	}
	if len(d.ApplicationPeriods) == 0 || departureTime == "" {
		return false
	}
	at, err := navitia.ParseDateTime(departureTime)
	if err != nil {
		return false
	}
	for _, p := range d.ApplicationPeriods {
		begin, beginOK := navitia.ParsePeriodBound(p.Begin)
		end, endOK := navitia.ParsePeriodBound(p.End)
		if !beginOK || !endOK {
			continue
		}
		if !at.Before(begin) && !at.After(end) {
			return true
		}
	}
	return false
}
