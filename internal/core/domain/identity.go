package domain

import "crypto/rsa"

// ClientIdentity is the integration's identity towards the provider: the
// platform and app id it was registered under, its own private key and the
// provider's public key. It is immutable after construction and is shared
// read-only by all calls made through a client.
type ClientIdentity struct {
	platform     string
	appID        string
	privateKey   *rsa.PrivateKey
	counterparty *rsa.PublicKey
}

// NewClientIdentity validates and freezes the identity fields.
func NewClientIdentity(platform, appID string, privateKey *rsa.PrivateKey, counterparty *rsa.PublicKey) (*ClientIdentity, error) {
	if appID == "" {
		return nil, ConfigError("app id is required")
	}
	if privateKey == nil {
		return nil, KeyError("private key is required", nil)
	}
	if counterparty == nil {
		return nil, KeyError("provider public key is required", nil)
	}
	return &ClientIdentity{
		platform:     platform,
		appID:        appID,
		privateKey:   privateKey,
		counterparty: counterparty,
	}, nil
}

// Platform returns the integrator's platform name.
func (c *ClientIdentity) Platform() string { return c.platform }

// AppID returns the app id assigned by the provider.
func (c *ClientIdentity) AppID() string { return c.appID }

// PrivateKey returns the integration's own private key.
func (c *ClientIdentity) PrivateKey() *rsa.PrivateKey { return c.privateKey }

// CounterpartyKey returns the provider's public key.
func (c *ClientIdentity) CounterpartyKey() *rsa.PublicKey { return c.counterparty }
