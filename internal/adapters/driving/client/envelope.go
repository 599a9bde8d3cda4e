package client

import (
	"net/http"

	"github.com/philiph/zmxy/internal/core/domain"
)

// envelope canonicalizes and signs params, then wraps them for method.
// The signature always covers the plaintext parameters, also when the
// content itself is sealed for the provider.
func (c *Client) envelope(method string, params domain.Params) (*domain.RequestEnvelope, error) {
	sign, err := c.signer.Sign(domain.Canonicalize(params))
	if err != nil {
		return nil, err
	}

	env := &domain.RequestEnvelope{
		Method:     method,
		AppID:      c.identity.AppID(),
		Charset:    domain.Charset,
		Platform:   domain.ProtocolPlatform,
		Version:    domain.Version,
		SignType:   c.signer.SignType(),
		Sign:       sign,
		BizContent: params.Encode(),
	}
	if c.encryptRequest {
		sealed, err := c.cipher.Encrypt([]byte(env.BizContent))
		if err != nil {
			return nil, err
		}
		env.BizContent = sealed
		env.Encrypted = true
	}
	return env, nil
}

// outbound renders env as a form POST to the endpoint. Header fields travel
// in the query string and the business content in the body.
func (c *Client) outbound(env *domain.RequestEnvelope) *domain.OutboundRequest {
	u := c.Endpoint()
	q := u.Query()
	for k, vs := range env.Query() {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return &domain.OutboundRequest{
		Method: http.MethodPost,
		URL:    u,
		Form:   env.Form(),
	}
}

// redirect builds a signed browser redirect for a method that is not called
// server side.
func (c *Client) redirect(m domain.Method, params domain.Params) (*domain.Redirect, error) {
	if err := m.Check(params); err != nil {
		return nil, err
	}
	env, err := c.envelope(m.Name, params)
	if err != nil {
		return nil, err
	}

	u := c.Endpoint()
	q := u.Query()
	for k, vs := range env.RedirectQuery() {
		q[k] = vs
	}
	u.RawQuery = q.Encode()

	return &domain.Redirect{URL: u.String(), Params: params}, nil
}
