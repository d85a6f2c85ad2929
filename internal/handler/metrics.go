package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/victorsprings/notification-service/internal/service"
)

const (
	queueReady     = "ready"
	queueScheduled = "scheduled"
)

// Metrics holds Prometheus metrics
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dispatchesTotal     *prometheus.CounterVec
	transportAttempts   *prometheus.CounterVec
	dispatchDuration    *prometheus.HistogramVec
	queueDepth          *prometheus.GaugeVec
}

// NewMetrics registers the service metrics on reg
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		dispatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_dispatched_total",
				Help: "Total number of dispatched notifications by final delivery method",
			},
			[]string{"kind", "method", "success"},
		),
		transportAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notification_transport_attempts_total",
				Help: "Total number of transport attempts",
			},
			[]string{"method", "success"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notification_dispatch_duration_seconds",
				Help:    "Time spent rendering and delivering one notification",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"kind"},
		),
		queueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "notification_queue_depth",
				Help: "Current depth of the notification queues",
			},
			[]string{"queue"},
		),
	}
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDispatch is a dispatcher outcome hook
func (m *Metrics) ObserveDispatch(_ context.Context, result service.DispatchResult) {
	kind := string(result.Request.Kind)
	m.dispatchesTotal.WithLabelValues(kind, string(result.Outcome.Method), strconv.FormatBool(result.Outcome.Succeeded)).Inc()
	m.dispatchDuration.WithLabelValues(kind).Observe(result.Duration.Seconds())

	for _, attempt := range result.Outcome.Attempts {
		m.transportAttempts.WithLabelValues(string(attempt.Method), strconv.FormatBool(attempt.Succeeded)).Inc()
	}
}

// SetQueueDepth sets the current depth of the ready and scheduled queues
func (m *Metrics) SetQueueDepth(ready, scheduled int64) {
	m.queueDepth.WithLabelValues(queueReady).Set(float64(ready))
	m.queueDepth.WithLabelValues(queueScheduled).Set(float64(scheduled))
}

// QueueInspector reports queue depths
type QueueInspector interface {
	QueueDepths(ctx context.Context) (ready, scheduled int64, err error)
}

// RateInspector reports the current outbound dispatch rate
type RateInspector interface {
	CurrentRate(ctx context.Context, scope string) (int64, error)
}

// MetricsHandler handles metrics endpoints
type MetricsHandler struct {
	metrics *Metrics
	queue   QueueInspector
	rate    RateInspector
	scope   string
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metrics *Metrics, queue QueueInspector, rate RateInspector, scope string) *MetricsHandler {
	return &MetricsHandler{
		metrics: metrics,
		queue:   queue,
		rate:    rate,
		scope:   scope,
	}
}

// Handler returns the Prometheus HTTP handler
func (h *MetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.metrics.gatherer, promhttp.HandlerOpts{})
}

// QueueMetrics represents real-time queue metrics
type QueueMetrics struct {
	Ready       int64 `json:"ready"`
	Scheduled   int64 `json:"scheduled"`
	CurrentRate int64 `json:"current_rate_per_sec"`
}

// RealtimeMetrics handles real-time metrics requests
// @Summary Real-time metrics
// @Description Get queue depths and the current dispatch rate
// @Tags metrics
// @Produce json
// @Success 200 {object} Response{data=QueueMetrics}
// @Failure 500 {object} Response
// @Router /metrics/realtime [get]
func (h *MetricsHandler) RealtimeMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ready, scheduled, err := h.queue.QueueDepths(ctx)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "METRICS_ERROR", "Failed to get queue depths", nil)
		return
	}
	h.metrics.SetQueueDepth(ready, scheduled)

	rate, err := h.rate.CurrentRate(ctx, h.scope)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "METRICS_ERROR", "Failed to get dispatch rate", nil)
		return
	}

	JSON(w, http.StatusOK, QueueMetrics{
		Ready:       ready,
		Scheduled:   scheduled,
		CurrentRate: rate,
	})
}
