package stations

import (
	"strconv"

	"explorer.navitia.org/internal/navitia"
)

// FromPlaces converts autocomplete results into directory rows. Entries
// without a stop area or with unparseable coordinates are skipped; the
// upstream serializes coordinates as strings.
func FromPlaces(places []navitia.PlaceResult) []Station {
	var items []Station
	for _, p := range places {
		sa := p.StopArea
		if sa == nil || sa.ID == "" {
			continue
		}
		st := Station{
			ID:    sa.ID,
			Name:  sa.Name,
			Label: sa.Label,
		}
		if st.Name == "" {
			st.Name = p.Name
		}
		if sa.Coord != nil {
			lat, errLat := strconv.ParseFloat(sa.Coord.Lat, 64)
			lon, errLon := strconv.ParseFloat(sa.Coord.Lon, 64)
			if errLat != nil || errLon != nil {
				continue
			}
			st.Lat, st.Lon = lat, lon
		}
		items = append(items, st)
	}
	return items
}
