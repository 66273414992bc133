package stations

import (
	"context"
	"math"
	"sort"

	"github.com/tidwall/rtree"
)

const earthRadiusMeters = 6371000

// NearbyResult is a station with its distance from the query point.
type NearbyResult struct {
	Station
	DistanceMeters float64
}

func (s *Store) rebuildSpatialIndex(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, label, lat, lon FROM stations`)
	if err != nil {
		return err
	}
	defer rows.Close()

	tree := &rtree.RTree{}
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Label, &st.Lat, &st.Lon); err != nil {
			return err
		}
		tree.Insert([2]float64{st.Lat, st.Lon}, [2]float64{st.Lat, st.Lon}, st)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
	return nil
}

// Nearby returns stations within radiusMeters of the point, closest first.
// The R-tree narrows candidates with a bounding box; exact great-circle
// distances then filter and order them.
func (s *Store) Nearby(lat, lon, radiusMeters float64, limit int) []NearbyResult {
	if radiusMeters <= 0 || limit == 0 {
		return nil
	}

	latDelta := radiusMeters / 111320.0
	lonScale := math.Cos(lat * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDelta := radiusMeters / (111320.0 * lonScale)

	s.mu.RLock()
	tree := s.tree
	s.mu.RUnlock()

	var results []NearbyResult
	tree.Search(
		[2]float64{lat - latDelta, lon - lonDelta},
		[2]float64{lat + latDelta, lon + lonDelta},
		func(min, max [2]float64, data interface{}) bool {
			st, ok := data.(Station)
			if !ok {
				return true
			}
			d := haversineMeters(lat, lon, st.Lat, st.Lon)
			if d <= radiusMeters {
				results = append(results, NearbyResult{Station: st, DistanceMeters: d})
			}
			return true
		},
	)

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
