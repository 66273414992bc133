package app

import "net/http"

// IsInvalidAPIKey reports whether key is not one of the configured API keys.
// Comparison is exact; an empty key is always invalid.
func (a *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}
	for _, configured := range a.Config.ApiKeys {
		if key == configured {
			return false
		}
	}
	return true
}

// RequestHasInvalidAPIKey checks the "key" query parameter of r.
func (a *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return a.IsInvalidAPIKey(r.URL.Query().Get("key"))
}
