// Package client is the entry point for calling the credit provider. A Client
// signs outbound requests with the integration's key, verifies and decrypts
// responses with the provider's key, and maps the business method catalogue
// onto that transport.
package client

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/adapters/driven/cipher"
	"github.com/philiph/zmxy/internal/adapters/driven/metrics"
	"github.com/philiph/zmxy/internal/adapters/driven/signature"
	"github.com/philiph/zmxy/internal/adapters/driven/transport"
	"github.com/philiph/zmxy/internal/adapters/driven/txid"
	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// Client calls the provider on behalf of one ClientIdentity.
// It is immutable after New and safe for concurrent use.
type Client struct {
	identity       *domain.ClientIdentity
	endpoint       *url.URL
	encryptRequest bool

	signer    ports.Signer
	verifier  ports.Verifier
	cipher    ports.PayloadCipher
	transport ports.Transport
	txids     ports.TransactionIDGenerator
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// New validates opts, parses the key material and builds a Client.
func New(opts Options) (*Client, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	privateKey, err := signature.ParsePrivateKey(opts.PrivateKey)
	if err != nil {
		return nil, err
	}
	publicKey, err := signature.ParsePublicKey(opts.PublicKey)
	if err != nil {
		return nil, err
	}
	identity, err := domain.NewClientIdentity(opts.Platform, opts.AppID, privateKey, publicKey)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	signer, err := signature.NewRSASigner(privateKey, opts.SignType)
	if err != nil {
		return nil, err
	}
	verifier, err := signature.NewRSAVerifierWithLogger(publicKey, opts.SignType, logger)
	if err != nil {
		return nil, err
	}

	endpoint, _ := url.Parse(opts.Endpoint)

	c := &Client{
		identity:       identity,
		endpoint:       endpoint,
		encryptRequest: opts.EncryptRequest,
		signer:         signer,
		verifier:       verifier,
		cipher:         cipher.NewRSACipher(privateKey, publicKey),
		transport:      opts.Transport,
		txids:          opts.TransactionIDs,
		metrics:        opts.Metrics,
		logger:         logger,
	}
	if c.transport == nil {
		tOpts := []transport.Option{transport.WithTimeout(opts.Timeout), transport.WithLogger(logger)}
		if opts.UserAgent != "" {
			tOpts = append(tOpts, transport.WithUserAgent(opts.UserAgent))
		}
		c.transport = transport.NewRestyTransport(tOpts...)
	}
	if c.txids == nil {
		c.txids = txid.NewUUIDGenerator(opts.Platform)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewNoopMetricsRecorder()
	}
	return c, nil
}

// Identity returns the identity the client signs with.
func (c *Client) Identity() *domain.ClientIdentity {
	return c.identity
}

// Endpoint returns a copy of the gateway URL.
func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}
