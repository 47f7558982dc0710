// Package metrics owns the Prometheus registry exposed by the catalogue service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TrackingUpdates prometheus.Counter
	VerifyMismatch  prometheus.Counter
	StoreRecords    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scm_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scm_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	trackingUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scm_tracking_updates_total",
		Help: "Tracking history replacements committed to the record store.",
	})
	verifyMismatch := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scm_verify_mismatch_total",
		Help: "Verification requests whose recomputed digest disagreed with the record or ledger.",
	})
	storeRecords := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scm_store_records",
		Help: "Records in the store at the last read.",
	})

	r.MustRegister(
		requests, duration, trackingUpdates, verifyMismatch, storeRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:             r,
		Requests:        requests,
		RequestDuration: duration,
		TrackingUpdates: trackingUpdates,
		VerifyMismatch:  verifyMismatch,
		StoreRecords:    storeRecords,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
