package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records one finished HTTP request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

const unmatchedRoute = "unmatched"

// Instrument reports every request to observer, labelled by the ServeMux pattern that served it.
// It relies on the mux setting Request.Pattern on the request it is handed, so it must wrap the
// mux without replacing the request in between.
func Instrument(observer RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapWriter(w)
		next.ServeHTTP(wrapped, r)
		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		observer.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
