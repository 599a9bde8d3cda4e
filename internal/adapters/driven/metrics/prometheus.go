package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/philiph/zmxy/internal/core/ports"
)

// PrometheusMetricsRecorder records metrics using Prometheus.
type PrometheusMetricsRecorder struct {
	callsTotal         *prometheus.CounterVec
	callDuration       *prometheus.HistogramVec
	verificationsTotal *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder creates a new Prometheus metrics recorder
// using the default Prometheus registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	return NewPrometheusMetricsRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsRecorderWithRegistry creates a new Prometheus metrics recorder
// with a custom registry. Use this for testing.
func NewPrometheusMetricsRecorderWithRegistry(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	callsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zmxy_calls_total",
		Help: "Total provider calls by method and outcome",
	}, []string{"method", "outcome"})

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zmxy_call_duration_seconds",
		Help:    "Provider call latency including signing and verification",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	verificationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zmxy_signature_verifications_total",
		Help: "Total inbound signature verifications",
	}, []string{"result"})

	reg.MustRegister(
		callsTotal,
		callDuration,
		verificationsTotal,
	)

	return &PrometheusMetricsRecorder{
		callsTotal:         callsTotal,
		callDuration:       callDuration,
		verificationsTotal: verificationsTotal,
	}
}

// RecordCall records a completed business call and its latency.
func (p *PrometheusMetricsRecorder) RecordCall(method, outcome string, duration time.Duration) {
	p.callsTotal.WithLabelValues(method, outcome).Inc()
	p.callDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordVerification records an inbound signature verification result.
func (p *PrometheusMetricsRecorder) RecordVerification(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	p.verificationsTotal.WithLabelValues(result).Inc()
}

// Ensure PrometheusMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
