package transport

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// RestyTransport sends provider requests with go-resty.
// It is safe for concurrent use.
type RestyTransport struct {
	client *resty.Client
	logger *zap.Logger
}

// NewRestyTransport creates a transport. No retries are configured: a failed
// round trip is reported once. A client passed with WithHTTPClient is copied,
// never modified.
func NewRestyTransport(opts ...Option) *RestyTransport {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}

	var client *resty.Client
	if o.httpClient != nil {
		hc := *o.httpClient
		client = resty.NewWithClient(&hc)
	} else {
		client = resty.New()
	}
	client.SetTimeout(o.timeout).SetRetryCount(0)
	if o.userAgent != "" {
		client.SetHeader("User-Agent", o.userAgent)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestyTransport{client: client, logger: logger}
}

// Do performs the round trip. Errors from the HTTP stack are returned as-is.
func (t *RestyTransport) Do(ctx context.Context, req *domain.OutboundRequest) (*domain.Exchange, error) {
	r := t.client.R().SetContext(ctx)
	if len(req.Form) > 0 {
		r.SetFormDataFromValues(req.Form)
	}

	target := req.URL.String()
	resp, err := r.Execute(req.Method, target)
	if err != nil {
		t.logger.Debug("provider request failed",
			zap.String("method", req.Method),
			zap.String("host", req.URL.Host),
			zap.Error(err))
		return nil, err
	}

	uri := req.URL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		uri = cloneURL(resp.RawResponse.Request.URL)
	}
	t.logger.Debug("provider request completed",
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", resp.Time()))

	return &domain.Exchange{
		Method:     req.Method,
		URI:        uri,
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Ensure RestyTransport implements ports.Transport
var _ ports.Transport = (*RestyTransport)(nil)
