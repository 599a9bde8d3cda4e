package zmxy

import (
	"github.com/philiph/zmxy/internal/adapters/driven/metrics"
	"github.com/philiph/zmxy/internal/core/ports"
)

// Re-export metrics types
type MetricsRecorder = ports.MetricsRecorder
type PrometheusMetricsRecorder = metrics.PrometheusMetricsRecorder
type NoopMetricsRecorder = metrics.NoopMetricsRecorder

// Re-export metrics constructors
var (
	NewPrometheusMetricsRecorder             = metrics.NewPrometheusMetricsRecorder
	NewPrometheusMetricsRecorderWithRegistry = metrics.NewPrometheusMetricsRecorderWithRegistry
	NewNoopMetricsRecorder                   = metrics.NewNoopMetricsRecorder
)

// Call outcome labels.
const (
	OutcomeSuccess           = ports.OutcomeSuccess
	OutcomeBusinessError     = ports.OutcomeBusinessError
	OutcomeValidationFailed  = ports.OutcomeValidationFailed
	OutcomeKeyInvalid        = ports.OutcomeKeyInvalid
	OutcomeSignatureInvalid  = ports.OutcomeSignatureInvalid
	OutcomeDecryptionFailed  = ports.OutcomeDecryptionFailed
	OutcomeTransportError    = ports.OutcomeTransportError
	OutcomeResponseMalformed = ports.OutcomeResponseMalformed
)
