package restapi

import (
	"net/http"

	"explorer.navitia.org/internal/disruption"
	"explorer.navitia.org/internal/models"
)

// disruptionsHandler lists the cached coverage-wide disruptions.
func (api *RestAPI) disruptionsHandler(w http.ResponseWriter, r *http.Request) {
	ds := disruption.Deduplicate(api.cachedDisruptions())

	entry := map[string]interface{}{
		"disruptions": models.NewDisruptionViews(ds),
	}
	if api.Disruptions != nil {
		if t := api.Disruptions.LastUpdated(); !t.IsZero() {
			entry["lastUpdated"] = t.UnixMilli()
		}
	}

	api.sendResponse(w, r, models.NewEntryResponseWithClock(entry, api.Clock))
}
