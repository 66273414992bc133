package navitia

import (
	"net/url"
	"strings"
)

const vehicleJourneysPathMarker = "/vehicle_journeys/"

// ExtractVehicleJourneyID reduces a vehicle-journey link value to the raw
// object id usable in API calls. The value may be a plain id
// ("vehicle_journey:SNCF:2025-12-19:88786"), a URL path
// ("/coverage/sncf/vehicle_journeys/vehicle_journey:SNCF:..."), or a full
// http(s) URL; query parameters are stripped and percent-encoding is decoded.
// Returns "" when no id can be obtained.
func ExtractVehicleJourneyID(linkValue string) string {
	if linkValue == "" {
		return ""
	}

	extracted := linkValue
	if strings.Contains(linkValue, vehicleJourneysPathMarker) {
		_, after, _ := strings.Cut(linkValue, vehicleJourneysPathMarker)
		extracted, _, _ = strings.Cut(after, "?")
	} else if strings.HasPrefix(linkValue, "http://") || strings.HasPrefix(linkValue, "https://") {
		u, err := url.Parse(linkValue)
		if err != nil {
			return ""
		}
		_, after, found := strings.Cut(u.Path, vehicleJourneysPathMarker)
		if !found {
			return ""
		}
		extracted = after
	}

	if extracted == "" {
		return ""
	}

	// The API client re-encodes ids when building request paths, so always
	// hand back the raw colon-separated form.
	if strings.Contains(extracted, "%") {
		if decoded, err := url.QueryUnescape(extracted); err == nil {
			return decoded
		}
	}
	return extracted
}
