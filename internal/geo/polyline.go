// Package geo converts section geometries between the upstream GeoJSON form
// and the compact encoded-polyline form the API serves to map clients.
package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"explorer.navitia.org/internal/navitia"
)

// EncodeSectionGeometry encodes a section's LineString as a Google encoded
// polyline. The upstream sends [lon, lat] pairs; polylines carry [lat, lon].
// Returns "" for a missing or empty geometry.
func EncodeSectionGeometry(g *navitia.SectionGeoJSON) string {
	if g == nil || len(g.Coordinates) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(g.Coordinates))
	for _, c := range g.Coordinates {
		coords = append(coords, []float64{c[1], c[0]})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline decodes an encoded polyline back into [lon, lat] pairs,
// matching the upstream coordinate order.
func DecodePolyline(encoded string) ([][2]float64, error) {
	if encoded == "" {
		return nil, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decoding polyline: %w", err)
	}
	out := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, [2]float64{c[1], c[0]})
	}
	return out, nil
}
