// Package metrics exposes Prometheus instrumentation for inbound HTTP
// requests and outbound backend calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frenchcert/frenchcert/pkg/middleware"
)

// Service owns a private registry and the collectors registered on it.
type Service struct {
	enabled  bool
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendDuration *prometheus.HistogramVec
}

// New creates a Service. A disabled Service still satisfies every method
// but records nothing and serves 503 from Handler.
func New(cfg *Config) *Service {
	s := &Service{
		enabled:  cfg.IsEnabled(),
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by module, method and status.",
		}, []string{"module", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by module and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module", "method"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency, by method, resource and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource", "outcome"}),
	}

	if s.enabled {
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			s.requests,
			s.requestDuration,
			s.backendDuration,
		)
	}
	return s
}

// Enabled reports whether the Service records metrics.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Registry returns the underlying registry.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Middleware records request count and latency under the module label.
func (s *Service) Middleware(module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !s.enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := middleware.NewStatusRecorder(w)

			next.ServeHTTP(rec, r)

			s.requests.WithLabelValues(module, r.Method, strconv.Itoa(rec.Status())).Inc()
			s.requestDuration.WithLabelValues(module, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// ObserveRequest records one backend call.
func (s *Service) ObserveRequest(method, resource, outcome string, duration time.Duration) {
	if !s.enabled {
		return
	}
	s.backendDuration.WithLabelValues(method, resource, outcome).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Service) Handler() http.Handler {
	if !s.enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "metrics disabled", http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
