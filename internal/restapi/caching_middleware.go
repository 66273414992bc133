package restapi

import (
	"fmt"
	"net/http"
)

// CacheControlMiddleware sets the response's Cache-Control header. A positive
// duration marks the route publicly cacheable for that many seconds; zero or
// less forbids caching, which is what time-sensitive routes want.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if durationSeconds > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", durationSeconds))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}

		next.ServeHTTP(w, r)
	})
}
