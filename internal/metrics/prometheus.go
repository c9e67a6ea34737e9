package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the decode gateway
type Metrics struct {
	// Decode metrics
	PayloadsDecoded prometheus.Counter
	DecodeErrors    *prometheus.CounterVec
	PayloadSize     prometheus.Histogram
	RecordsPerType  *prometheus.CounterVec

	// Stream metrics
	StreamSubscribers prometheus.Gauge

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer. Tests
// pass a private registry to avoid duplicate registration across cases.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PayloadsDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "cayenne_payloads_decoded_total",
			Help: "Total number of LPP payloads successfully decoded",
		}),
		DecodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cayenne_decode_errors_total",
			Help: "Total number of decode failures by error kind",
		}, []string{"kind"}),
		PayloadSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cayenne_payload_size_bytes",
			Help:    "Size of submitted LPP payloads in bytes",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10), // 4B to ~2KB
		}),
		RecordsPerType: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cayenne_records_decoded_total",
			Help: "Total number of decoded records by sensor type name",
		}, []string{"type"}),

		StreamSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cayenne_stream_subscribers",
			Help: "Current number of connected WebSocket stream subscribers",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cayenne_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cayenne_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// RecordDecode records a successful decode of a payload.
func (m *Metrics) RecordDecode(payloadBytes int) {
	m.PayloadsDecoded.Inc()
	m.PayloadSize.Observe(float64(payloadBytes))
}

// RecordDecodeError records a failed decode by error kind.
func (m *Metrics) RecordDecodeError(kind string) {
	m.DecodeErrors.WithLabelValues(kind).Inc()
}

// RecordRecord counts one decoded record of the named sensor type.
func (m *Metrics) RecordRecord(typeName string) {
	m.RecordsPerType.WithLabelValues(typeName).Inc()
}

// SubscriberConnected increments the stream subscriber gauge.
func (m *Metrics) SubscriberConnected() {
	m.StreamSubscribers.Inc()
}

// SubscriberDisconnected decrements the stream subscriber gauge.
func (m *Metrics) SubscriberDisconnected() {
	m.StreamSubscribers.Dec()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}
