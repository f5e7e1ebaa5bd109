// Package metrics exposes the prometheus instrumentation for the API server.
// A private registry keeps the scrape surface limited to what this process
// actually owns.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles every metric the server records. It implements the
// service.TripMetrics and events.PublisherMetrics interfaces so the trip
// validator and the NATS publisher can count outcomes without importing
// prometheus themselves.
type Collector struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	TripsCreated   prometheus.Counter
	TripsDuplicate prometheus.Counter
	TripsRejected  prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
}

// NewCollector builds and registers all metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tce_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tce_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method"}),
		TripsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tce_trips_created_total",
			Help: "Trips persisted by the validated creation path.",
		}),
		TripsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tce_trips_duplicate_total",
			Help: "Trip creation requests answered with an existing identical trip.",
		}),
		TripsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tce_trips_rejected_total",
			Help: "Trip creation requests rejected by validation.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tce_nats_published_total",
			Help: "Total NATS events published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tce_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tce_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.RequestsTotal, c.RequestDuration,
		c.TripsCreated, c.TripsDuplicate, c.TripsRejected,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
	)
	return c
}

// Handler returns the /metrics scrape endpoint for the private registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Middleware instruments every request with a count and a latency sample.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			c.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
			c.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// TripCreated implements service.TripMetrics.
func (c *Collector) TripCreated() { c.TripsCreated.Inc() }

// TripDuplicate implements service.TripMetrics.
func (c *Collector) TripDuplicate() { c.TripsDuplicate.Inc() }

// TripRejected implements service.TripMetrics.
func (c *Collector) TripRejected() { c.TripsRejected.Inc() }

// NATSPublishedInc implements events.PublisherMetrics.
func (c *Collector) NATSPublishedInc() { c.NATSPublished.Inc() }

// NATSPublishErrInc implements events.PublisherMetrics.
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }

// NATSSetConnected implements events.PublisherMetrics.
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}
