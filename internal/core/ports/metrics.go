package ports

import "time"

// Call outcomes recorded by MetricsRecorder.
const (
	OutcomeSuccess           = "success"
	OutcomeBusinessError     = "business_error"
	OutcomeValidationFailed  = "validation_failed"
	OutcomeKeyInvalid        = "key_invalid"
	OutcomeSignatureInvalid  = "signature_invalid"
	OutcomeDecryptionFailed  = "decryption_failed"
	OutcomeTransportError    = "transport_error"
	OutcomeResponseMalformed = "response_malformed"
)

// MetricsRecorder is the port interface for recording metrics.
// Implementations are adapters (PrometheusMetricsRecorder for production,
// NoopMetricsRecorder for disabled/testing).
type MetricsRecorder interface {
	// RecordCall records a completed business call and its latency.
	RecordCall(method, outcome string, duration time.Duration)

	// RecordVerification records an inbound signature verification result.
	RecordVerification(valid bool)
}
