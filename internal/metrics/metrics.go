// Package metrics exposes Prometheus metrics for the wire transports and the
// messenger. A nil *Metrics is valid everywhere and records nothing, so the
// instrumented code never branches on whether metrics are enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the process registers.
type Metrics struct {
	MessagesSent     *prometheus.CounterVec // channel
	MessagesReceived *prometheus.CounterVec // channel
	MessagesDropped  *prometheus.CounterVec // channel, reason
	BytesSent        *prometheus.CounterVec // channel
	BytesReceived    *prometheus.CounterVec // channel
	FrameErrors      prometheus.Counter
	EventsDispatched *prometheus.CounterVec // event
	QueueDepth       *prometheus.GaugeVec   // channel, direction
}

// Default is the process-wide instance, registered against the default
// Prometheus registry (promauto panics on double registration, so it is
// built exactly once).
var Default = New("appsim")

// New creates a Metrics instance with the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		MessagesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages handed to a transport for sending",
		}, []string{"channel"}),
		MessagesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Framed messages received from a transport",
		}, []string{"channel"}),
		MessagesDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Messages dropped before dispatch",
		}, []string{"channel", "reason"}),
		BytesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Encoded bytes written to a channel",
		}, []string{"channel"}),
		BytesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Raw bytes read from a channel",
		}, []string{"channel"}),
		FrameErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_errors_total",
			Help:      "Reliable-stream framing failures (stream desync)",
		}),
		EventsDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Inbound messages dispatched to subscribers",
		}, []string{"event"}),
		QueueDepth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Current transport queue depth",
		}, []string{"channel", "direction"}),
	}
}

func (m *Metrics) IncSent(channel string, bytes int) {
	if m == nil {
		return
	}
	m.MessagesSent.WithLabelValues(channel).Inc()
	m.BytesSent.WithLabelValues(channel).Add(float64(bytes))
}

func (m *Metrics) IncReceived(channel string, bytes int) {
	if m == nil {
		return
	}
	m.MessagesReceived.WithLabelValues(channel).Inc()
	m.BytesReceived.WithLabelValues(channel).Add(float64(bytes))
}

func (m *Metrics) IncDropped(channel, reason string) {
	if m == nil {
		return
	}
	m.MessagesDropped.WithLabelValues(channel, reason).Inc()
}

func (m *Metrics) IncFrameError() {
	if m == nil {
		return
	}
	m.FrameErrors.Inc()
}

func (m *Metrics) IncDispatched(event string) {
	if m == nil {
		return
	}
	m.EventsDispatched.WithLabelValues(event).Inc()
}

func (m *Metrics) SetQueueDepth(channel, direction string, depth int) {
	if m == nil {
		return
	}
	m.QueueDepth.WithLabelValues(channel, direction).Set(float64(depth))
}
