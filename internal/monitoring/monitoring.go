// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus instruments
type Metrics struct {
	registry *prometheus.Registry

	DailyPassesTotal    prometheus.Counter
	DailyPassDuration   prometheus.Histogram
	WeatherFetchErrors  prometheus.Counter
	EvaluationsByStatus *prometheus.CounterVec
	NotificationsSent   prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all service metrics on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		DailyPassesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gardenhub",
			Name:      "daily_passes_total",
			Help:      "Number of completed daily status passes",
		}),
		DailyPassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gardenhub",
			Name:      "daily_pass_duration_seconds",
			Help:      "Duration of the daily status pass",
			Buckets:   prometheus.DefBuckets,
		}),
		WeatherFetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gardenhub",
			Name:      "weather_fetch_errors_total",
			Help:      "Number of failed weather provider fetches",
		}),
		EvaluationsByStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gardenhub",
			Name:      "plant_evaluations_total",
			Help:      "Number of plant status evaluations by resulting status",
		}, []string{"status"}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gardenhub",
			Name:      "notifications_sent_total",
			Help:      "Number of status-change notifications delivered",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gardenhub",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, path and status code",
		}, []string{"method", "path", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gardenhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Handler exposes the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePassDuration records one completed daily pass
func (m *Metrics) ObservePassDuration(d time.Duration) {
	m.DailyPassesTotal.Inc()
	m.DailyPassDuration.Observe(d.Seconds())
}

// HTTPMiddleware records a count and latency observation per request.
// The path label uses the mux route template ("/api/v1/plants/{id}")
// so path parameters do not blow up the label cardinality.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
