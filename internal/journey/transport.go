package journey

import (
	"regexp"
	"strconv"
	"strings"

	"explorer.navitia.org/internal/navitia"
)

// Transport is the presentation bundle derived from a section's commercial
// mode and network.
type Transport struct {
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	TagColor string `json:"tagColor"`
	Label    string `json:"label"`
}

// ClassifyTransport derives the transport presentation from commercial_mode
// and network, both compared lower-cased. Rules run first-match-wins; the
// TER and FLUO mode checks are exact equality because other mode names
// ("Intercités") contain those letters as substrings, while the network side
// stays a substring check ("TER Grand Est").
func ClassifyTransport(commercialMode, network string) Transport {
	mode := strings.ToLower(commercialMode)
	net := strings.ToLower(network)

	switch {
	case strings.Contains(mode, "tgv") || strings.Contains(net, "tgv"):
		return Transport{Icon: "fa-train", Color: "has-text-danger", TagColor: "is-danger", Label: "TGV"}
	case strings.Contains(mode, "intercités") || strings.Contains(net, "intercités") || strings.Contains(mode, "intercity"):
		return Transport{Icon: "fa-train", Color: "has-text-warning", TagColor: "is-warning", Label: "Intercités"}
	case mode == "ter" || strings.Contains(net, "ter"):
		return Transport{Icon: "fa-train", Color: "has-text-info", TagColor: "is-info", Label: "TER"}
	case mode == "fluo" || strings.Contains(net, "fluo"):
		return Transport{Icon: "fa-train", Color: "has-text-success", TagColor: "is-success", Label: "FLUO"}
	case strings.Contains(mode, "rer") || strings.Contains(net, "rer"):
		return Transport{Icon: "fa-subway", Color: "has-text-primary", TagColor: "is-primary", Label: "RER"}
	case strings.Contains(mode, "metro") || strings.Contains(net, "metro"):
		return Transport{Icon: "fa-subway", Color: "has-text-primary", TagColor: "is-primary", Label: "Métro"}
	case strings.Contains(mode, "tram") || strings.Contains(net, "tram"):
		return Transport{Icon: "fa-tram", Color: "has-text-link", TagColor: "is-link", Label: "Tram"}
	case strings.Contains(mode, "bus") || strings.Contains(net, "bus"):
		return Transport{Icon: "fa-bus", Color: "has-text-success", TagColor: "is-success", Label: "Bus"}
	}

	label := commercialMode
	if label == "" {
		label = "Train"
	}
	return Transport{Icon: "fa-train", Color: "has-text-grey", TagColor: "is-dark", Label: label}
}

var compositionPattern = regexp.MustCompile(`(?i)(\d+)\s*(wagon|car|voiture)`)

// WagonCount scans a section for rolling-stock composition, best-effort.
// Sources are tried in a fixed order: explicit vehicle counts on the
// section's vehicle journey, a composition hint in its first headsign, the
// same vehicle counts under trip.vehicle_journey, a "long"/"court" physical
// mode, and finally a composition hint in additional_informations. Returns
// "" when nothing is found.
func WagonCount(section *navitia.Section) string {
	if section == nil {
		return ""
	}

	if vj := section.VehicleJourney; vj != nil {
		if n, ok := vehicleCount(vj.Vehicle); ok {
			return strconv.Itoa(n)
		}
		if len(vj.Headsigns) > 0 {
			if m := compositionPattern.FindStringSubmatch(vj.Headsigns[0]); m != nil {
				return m[1]
			}
		}
	}

	if section.Trip != nil && section.Trip.VehicleJourney != nil {
		if n, ok := vehicleCount(section.Trip.VehicleJourney.Vehicle); ok {
			return strconv.Itoa(n)
		}
	}

	if di := section.DisplayInformations; di != nil {
		mode := strings.ToLower(di.PhysicalMode)
		if strings.Contains(mode, "long") {
			return "Long"
		}
		if strings.Contains(mode, "court") || strings.Contains(mode, "short") {
			return "Court"
		}
		for _, info := range di.AdditionalInformations {
			if m := compositionPattern.FindStringSubmatch(info); m != nil {
				return m[1]
			}
		}
	}

	return ""
}

// vehicleCount reads the first present composition field. Pointer fields keep
// "absent" distinct from an explicit zero.
func vehicleCount(v *navitia.Vehicle) (int, bool) {
	if v == nil {
		return 0, false
	}
	for _, p := range []*int{v.WagonCount, v.CarCount, v.Length, v.Capacity} {
		if p != nil {
			return *p, true
		}
	}
	return 0, false
}
