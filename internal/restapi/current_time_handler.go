package restapi

import (
	"net/http"
	"time"

	"explorer.navitia.org/internal/models"
)

// Declare a handler which writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := api.Clock.Now()
	entry := map[string]interface{}{
		"time":         now.UnixMilli(),
		"readableTime": now.Format(time.RFC3339),
	}
	response := models.NewEntryResponseWithClock(entry, api.Clock)

	api.sendResponse(w, r, response)
}
