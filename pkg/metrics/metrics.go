package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Social graph metrics
	FollowTogglesTotal   *prometheus.CounterVec
	SearchQueriesTotal   *prometheus.CounterVec
	EventsPublishedTotal *prometheus.CounterVec
	ActivitiesRecorded   *prometheus.CounterVec

	// Rate limiting
	RateLimitExceededTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all metrics on a private registry
func Initialize() *Metrics {
	once.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		f := promauto.With(reg)
		instance = &Metrics{
			Registry: reg,
			HTTPRequestsTotal: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: f.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			FollowTogglesTotal: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "follow_toggles_total",
					Help: "Follow toggles by resulting action",
				},
				[]string{"action"},
			),
			SearchQueriesTotal: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "user_search_queries_total",
					Help: "User searches by serving backend",
				},
				[]string{"backend"},
			),
			EventsPublishedTotal: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "follow_events_published_total",
					Help: "Follow events handed to the broker by outcome",
				},
				[]string{"status"},
			),
			ActivitiesRecorded: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "activities_recorded_total",
					Help: "Activities written by the worker by outcome",
				},
				[]string{"status"},
			),
			RateLimitExceededTotal: f.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"scope"},
			),
		}
	})
	return instance
}

// Get returns the initialized metrics instance
func Get() *Metrics {
	return Initialize()
}

// Handler serves the private registry in the exposition format.
func Handler() http.Handler {
	m := Initialize()
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
