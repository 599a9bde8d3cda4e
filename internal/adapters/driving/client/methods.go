package client

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
)

// AuthorizeURL builds the signed redirect that asks the user to authorize
// credit queries. Pass domain.ChannelH5 as channel for mobile web flows.
func (c *Client) AuthorizeURL(identity domain.AuthIdentity, channel string) (*domain.Redirect, error) {
	return c.AuthorizeURLWithState(identity, channel, "")
}

// AuthorizeURLWithState is AuthorizeURL with an opaque state value that the
// provider echoes back to the callback.
func (c *Client) AuthorizeURLWithState(identity domain.AuthIdentity, channel, state string) (*domain.Redirect, error) {
	req, err := domain.ResolveAuthRequest(identity, channel, state)
	if err != nil {
		return nil, err
	}
	r, err := c.redirect(domain.MethodAuthorize, req.Params())
	if err != nil {
		return nil, err
	}
	r.Auth = req
	c.logger.Debug("authorize url built",
		zap.String("identity_type", req.IdentityType),
		zap.String("auth_code", req.BizParams["auth_code"]))
	return r, nil
}

// CertificationURL builds the signed redirect for the face certification
// page of a previously initialized certification.
func (c *Client) CertificationURL(bizNo, returnURL string) (*domain.Redirect, error) {
	params := domain.Params{"biz_no": bizNo}
	if returnURL != "" {
		params["return_url"] = returnURL
	}
	return c.redirect(domain.MethodCertCertify, params)
}

// OpenID recovers the open id from the encrypted token the provider hands to
// the authorize callback. Tokens holding a JSON object yield its open_id.
func (c *Client) OpenID(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domain.ValidationError("open id token is required")
	}
	plaintext, err := c.cipher.Decrypt(token, "")
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(plaintext))
	if strings.HasPrefix(text, "{") {
		var payload struct {
			OpenID string `json:"open_id"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			return "", domain.MalformedResponseError("open id token payload is not valid JSON", err)
		}
		text = payload.OpenID
	}
	if text == "" {
		return "", domain.MalformedResponseError("open id token carries no open id", nil)
	}
	return text, nil
}

// VerifyIvs checks the person's details against the anti-fraud database.
func (c *Client) VerifyIvs(ctx context.Context, q domain.IvsQuery) (*domain.Call[domain.IvsVerifyResult], error) {
	return call[domain.IvsVerifyResult](ctx, c, domain.MethodAntifraudVerify, q.Params())
}

// IvsScore fetches the anti-fraud score for the person.
func (c *Client) IvsScore(ctx context.Context, q domain.IvsQuery) (*domain.Call[domain.IvsScoreResult], error) {
	return call[domain.IvsScoreResult](ctx, c, domain.MethodAntifraudScore, q.Params())
}

// IvsWatchlist checks the person against the anti-fraud risk list.
func (c *Client) IvsWatchlist(ctx context.Context, q domain.IvsQuery) (*domain.Call[domain.IvsWatchlistResult], error) {
	return call[domain.IvsWatchlistResult](ctx, c, domain.MethodAntifraudRiskList, q.Params())
}

// VerifyWatchlist checks an authorized user against the industry watchlist.
func (c *Client) VerifyWatchlist(ctx context.Context, openID string) (*domain.Call[domain.WatchlistResult], error) {
	return call[domain.WatchlistResult](ctx, c, domain.MethodWatchlist, domain.Params{"open_id": openID})
}

// CreditScore fetches the credit score of an authorized user.
func (c *Client) CreditScore(ctx context.Context, openID string) (*domain.Call[domain.CreditScoreResult], error) {
	return call[domain.CreditScoreResult](ctx, c, domain.MethodCreditScore, domain.Params{"open_id": openID})
}

// InitCertification starts a face certification for name/certNo and returns
// the biz_no that identifies it.
func (c *Client) InitCertification(ctx context.Context, name, certNo string) (*domain.Call[domain.CertInitResult], error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(certNo) == "" {
		return nil, domain.ValidationError("certification requires a name and a certificate number")
	}
	return call[domain.CertInitResult](ctx, c, domain.MethodCertInit, domain.CertInitParams(name, certNo))
}

// QueryCertification fetches the outcome of a face certification.
func (c *Client) QueryCertification(ctx context.Context, bizNo string) (*domain.Call[domain.CertQueryResult], error) {
	return call[domain.CertQueryResult](ctx, c, domain.MethodCertQuery, domain.Params{"biz_no": bizNo})
}

// Invoke calls any signed catalogue method with raw business parameters.
// product_code and transaction_id are filled in from m.
func (c *Client) Invoke(ctx context.Context, m domain.Method, params domain.Params) (*domain.Call[map[string]any], error) {
	return call[map[string]any](ctx, c, m, params)
}
