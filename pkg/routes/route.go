package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
// A positive MaxBytes caps the request body the handler may read.
type Route struct {
	Method   string
	Pattern  string
	Handler  http.HandlerFunc
	MaxBytes int64
}

func (r Route) handler() http.Handler {
	if r.MaxBytes > 0 {
		return http.MaxBytesHandler(r.Handler, r.MaxBytes)
	}
	return r.Handler
}
