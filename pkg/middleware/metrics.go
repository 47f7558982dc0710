package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/metrics"
)

// Metrics returns middleware that counts requests and observes latency.
// Routes are labelled by the matched ServeMux pattern so path values do not
// inflate label cardinality.
func Metrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			reg.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
			reg.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
