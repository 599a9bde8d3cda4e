// Package provider is a fake credit provider gateway for tests and local
// runs. It holds its own key pair and a key pair for the integration,
// verifies signed requests, opens sealed params, records every request and
// answers with plain, encrypted, hybrid or tampered envelopes.
package provider

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/philiph/zmxy/internal/adapters/driven/cipher"
	"github.com/philiph/zmxy/internal/adapters/driven/signature"
	"github.com/philiph/zmxy/internal/core/domain"
)

// Mode selects how business responses are wrapped.
type Mode int

const (
	// ModeEncrypted seals the response in RSA block format and signs the ciphertext.
	ModeEncrypted Mode = iota
	// ModeHybrid seals the response with an RSA-wrapped AES key.
	ModeHybrid
	// ModePlain returns the response as unsigned plaintext.
	ModePlain
	// ModePlainSigned returns plaintext with a biz_response_sign.
	ModePlainSigned
	// ModeTampered returns an encrypted response whose signature does not match.
	ModeTampered
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEncrypted:
		return "encrypted"
	case ModeHybrid:
		return "hybrid"
	case ModePlain:
		return "plain"
	case ModePlainSigned:
		return "plain-signed"
	case ModeTampered:
		return "tampered"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeEncrypted, ModeHybrid, ModePlain, ModePlainSigned, ModeTampered} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown response mode %q", s)
}

// Request is one request received by the provider.
type Request struct {
	Method    string
	Query     url.Values
	Params    domain.Params
	Sealed    bool
	SignValid bool
}

// defaultResponses are the business results returned when a method has no
// configured response.
var defaultResponses = map[string]string{
	domain.MethodAntifraudVerify.Name:   `{"success":true,"verify_code":["V_CN_NA","V_PH_NA"]}`,
	domain.MethodAntifraudScore.Name:    `{"success":true,"score":0}`,
	domain.MethodAntifraudRiskList.Name: `{"success":true,"hit":"no","risk_code":[]}`,
	domain.MethodWatchlist.Name:         `{"success":true,"is_matched":false}`,
	domain.MethodCreditScore.Name:       `{"success":true,"zm_score":"680"}`,
	domain.MethodCertInit.Name:          `{"success":true,"biz_no":"ZM201703093000000727200705771480"}`,
	domain.MethodCertQuery.Name:         `{"success":true,"passed":"true","failed_reason":"","identity_info":"","attribute_info":""}`,
}

// Provider is an http.Handler that behaves like the provider gateway.
// It is safe for concurrent use.
type Provider struct {
	key       *rsa.PrivateKey
	clientKey *rsa.PrivateKey

	mu        sync.Mutex
	mode      Mode
	status    int
	responses map[string]string
	requests  []Request
}

// New creates a provider with freshly generated 1024-bit key pairs.
func New() (*Provider, error) {
	return NewWithBits(1024)
}

// NewWithBits creates a provider whose key pairs have the given size.
func NewWithBits(bits int) (*Provider, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate provider key: %w", err)
	}
	clientKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generate client key: %w", err)
	}
	return &Provider{
		key:       key,
		clientKey: clientKey,
		mode:      ModeEncrypted,
		status:    http.StatusOK,
		responses: make(map[string]string),
	}, nil
}

// PublicKeyPEM returns the provider's public key for the client options.
func (p *Provider) PublicKeyPEM() []byte {
	data, _ := signature.EncodePublicKey(&p.key.PublicKey)
	return data
}

// ClientPrivateKeyPEM returns the private key the integration should sign with.
func (p *Provider) ClientPrivateKeyPEM() []byte {
	data, _ := signature.EncodePrivateKey(p.clientKey)
	return data
}

// ClientPublicKey returns the integration's public key.
func (p *Provider) ClientPublicKey() *rsa.PublicKey {
	return &p.clientKey.PublicKey
}

// SetMode changes how subsequent responses are wrapped.
func (p *Provider) SetMode(m Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = m
}

// SetStatus changes the HTTP status of subsequent responses.
func (p *Provider) SetStatus(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = code
}

// Respond sets the business result returned for method. body is encoded as
// JSON unless it already is a string.
func (p *Provider) Respond(method string, body any) error {
	var text string
	switch b := body.(type) {
	case string:
		text = b
	case []byte:
		text = string(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		text = string(data)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses[method] = text
	return nil
}

// Requests returns a copy of the requests received so far.
func (p *Provider) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// LastRequest returns the most recent request.
func (p *Provider) LastRequest() (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return Request{}, false
	}
	return p.requests[len(p.requests)-1], true
}

// OpenIDToken encrypts openID for the integration the way the authorize
// callback delivers it.
func (p *Provider) OpenIDToken(openID string) (string, error) {
	return cipher.EncryptBlocks(&p.clientKey.PublicKey, []byte(openID))
}
