package metrics

import (
	"time"

	"github.com/philiph/zmxy/internal/core/ports"
)

// NoopMetricsRecorder is a no-op implementation for when metrics are disabled.
// All methods are safe to call and do nothing.
type NoopMetricsRecorder struct{}

// NewNoopMetricsRecorder creates a new no-op metrics recorder.
func NewNoopMetricsRecorder() *NoopMetricsRecorder {
	return &NoopMetricsRecorder{}
}

// RecordCall is a no-op.
func (n *NoopMetricsRecorder) RecordCall(method, outcome string, duration time.Duration) {}

// RecordVerification is a no-op.
func (n *NoopMetricsRecorder) RecordVerification(valid bool) {}

// Ensure NoopMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*NoopMetricsRecorder)(nil)
