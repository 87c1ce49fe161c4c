package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
)

// Metrics owns a private registry so tests can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	Transitions     *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "week_transitions_total",
			Help:      "Week lifecycle transitions by kind and outcome.",
		}, []string{"transition", "outcome"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_decisions_total",
			Help:      "Operation gate decisions by result and reason.",
		}, []string{"can_operate", "reason"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_events_published_total",
			Help:      "Lifecycle events handed to the broker by type and outcome.",
		}, []string{"type", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(m.Transitions, m.Decisions, m.EventsPublished, m.HTTPRequests, m.HTTPDuration)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordTransition counts a start/finish/finalize attempt. outcome is "ok" or the error class.
func (m *Metrics) RecordTransition(transition, outcome string) {
	m.Transitions.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) RecordDecision(d domain.Decision) {
	reason := d.ReasonText()
	if reason == "" {
		reason = "none"
	}
	m.Decisions.WithLabelValues(strconv.FormatBool(d.CanOperate), reason).Inc()
}

func (m *Metrics) RecordPublish(eventType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
