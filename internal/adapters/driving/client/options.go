package client

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// DefaultEndpoint is the provider's production gateway.
const DefaultEndpoint = "https://zmopenapi.zmxy.com.cn/openapi.do"

// DefaultTimeout bounds a single round trip when the default transport is used.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// Platform is the integrator's registered platform name. It prefixes
	// every transaction id.
	Platform string

	// AppID is the app id assigned by the provider (required).
	AppID string

	// PrivateKey is the integration's RSA private key, PEM encoded (required).
	PrivateKey []byte

	// PublicKey is the provider's RSA public key or certificate, PEM encoded (required).
	PublicKey []byte

	// Endpoint is the gateway URL. Defaults to DefaultEndpoint.
	Endpoint string

	// SignType is "RSA" (SHA-1) or "RSA2" (SHA-256). Defaults to "RSA".
	SignType string

	// EncryptRequest seals the business content for the provider and sends it
	// as the params field instead of biz_content.
	EncryptRequest bool

	// Timeout is the per-request timeout of the default transport.
	// Ignored when Transport is set. Defaults to DefaultTimeout.
	Timeout time.Duration

	// UserAgent is sent by the default transport when set.
	UserAgent string

	// Logger receives call logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics records call outcomes. Defaults to a no-op recorder.
	Metrics ports.MetricsRecorder

	// Transport performs the HTTP round trip. Defaults to a resty transport.
	Transport ports.Transport

	// TransactionIDs generates transaction ids. Defaults to a uuid generator
	// prefixed with Platform.
	TransactionIDs ports.TransactionIDGenerator
}

// SetDefaults fills in unset optional fields.
func (o *Options) SetDefaults() {
	if o.Endpoint == "" {
		o.Endpoint = DefaultEndpoint
	}
	if o.SignType == "" {
		o.SignType = domain.SignTypeRSA
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
}

// Validate checks that the options describe a usable client. Key material is
// parsed later by New.
func (o *Options) Validate() error {
	if o.AppID == "" {
		return domain.ConfigError("app_id is required")
	}
	if len(o.PrivateKey) == 0 {
		return domain.ConfigError("private key is required")
	}
	if len(o.PublicKey) == 0 {
		return domain.ConfigError("provider public key is required")
	}

	u, err := url.Parse(o.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.ConfigError(fmt.Sprintf("endpoint %q is not an absolute URL", o.Endpoint))
	}

	switch o.SignType {
	case domain.SignTypeRSA, domain.SignTypeRSA2:
	default:
		return domain.ConfigError(fmt.Sprintf("sign_type must be %q or %q, got %q",
			domain.SignTypeRSA, domain.SignTypeRSA2, o.SignType))
	}

	if o.Timeout < 0 {
		return domain.ConfigError("timeout must not be negative")
	}
	return nil
}
