// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "highpass_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PermitSubmissions counts permit applications accepted for review.
	PermitSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_permit_submissions_total",
		Help: "Total permit applications submitted, by destination",
	}, []string{"destination"})

	// PermitDecisions counts review outcomes by final status.
	PermitDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_permit_decisions_total",
		Help: "Total permit review decisions, by resulting status",
	}, []string{"status"})

	// PermitReviewConflicts counts reviews rejected by the optimistic
	// concurrency guard or the terminal-state guard.
	PermitReviewConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_permit_review_conflicts_total",
		Help: "Total permit reviews refused, by reason",
	}, []string{"reason"})

	// WebhookEvents counts payment webhook deliveries by type and result.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_payment_webhook_events_total",
		Help: "Total Stripe webhook events received, by type and result",
	}, []string{"type", "result"})

	// MailSends counts outbound mail attempts by result.
	MailSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_mail_sends_total",
		Help: "Total outbound mail attempts, by result",
	}, []string{"result"})

	// NotificationsPublished counts notification events published to Redis.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_notifications_published_total",
		Help: "Total notification events published, by event type",
	}, []string{"event"})

	// WebSocketConnections is the gauge of active notification connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "highpass_websocket_connections",
		Help: "Number of active notification WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "highpass_websocket_backpressure_drops_total",
		Help: "Total WebSocket messages dropped due to backpressure, by reason",
	}, []string{"reason"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
