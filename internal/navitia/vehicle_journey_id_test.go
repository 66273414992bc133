package navitia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVehicleJourneyID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain id", "vehicle_journey:SNCF:2025-12-19:88786", "vehicle_journey:SNCF:2025-12-19:88786"},
		{"coverage path", "/coverage/sncf/vehicle_journeys/vehicle_journey:SNCF:123", "vehicle_journey:SNCF:123"},
		{"full url", "https://api.navitia.io/v1/coverage/sncf/vehicle_journeys/vehicle_journey:SNCF:123", "vehicle_journey:SNCF:123"},
		{"query stripped", "/coverage/sncf/vehicle_journeys/vehicle_journey:SNCF:123?depth=2", "vehicle_journey:SNCF:123"},
		{"percent-decoded", "/coverage/sncf/vehicle_journeys/vehicle_journey%3ASNCF%3A123", "vehicle_journey:SNCF:123"},
		{"url without marker", "https://api.navitia.io/v1/coverage/sncf/journeys", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVehicleJourneyID(tt.in))
		})
	}
}
