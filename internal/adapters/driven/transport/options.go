package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single round trip when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Option is a functional option for configuring the transport.
type Option func(*options)

type options struct {
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// WithTimeout returns an option that sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient returns an option that sets the underlying HTTP client.
// Used for custom TLS settings and for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithUserAgent returns an option that sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger returns an option that sets the logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
