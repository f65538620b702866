// Package metrics exports scheduling and delivery counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventscheduling/internal/domain"
)

const namespace = "eventscheduling"

// Prometheus implements domain.Metrics on a private registry.
type Prometheus struct {
	registry   *prometheus.Registry
	deliveries *prometheus.CounterVec
	conflicts  *prometheus.CounterVec
	requests   *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on a fresh registry, together with the Go runtime and
// process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Notification send attempts by category and result.",
		}, []string{"category", "result"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_conflicts_total",
			Help:      "Activity writes rejected for overlapping a room or presenter slot.",
		}, []string{"kind"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.deliveries,
		p.conflicts,
		p.requests,
	)
	return p
}

func (p *Prometheus) ObserveDelivery(category domain.Category, delivered bool) {
	result := "failed"
	if delivered {
		result = "delivered"
	}
	p.deliveries.WithLabelValues(string(category), result).Inc()
}

func (p *Prometheus) ObserveConflict(kind domain.ConflictKind) {
	p.conflicts.WithLabelValues(string(kind)).Inc()
}

// ObserveRequest records one served HTTP request.
func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
