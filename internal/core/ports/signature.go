package ports

// Signer signs canonical parameter strings with the integration's private key.
// This is a port interface - implementations are adapters.
type Signer interface {
	// Sign returns the base64 encoded signature over content.
	// Signing is deterministic for a given key and sign type.
	Sign(content string) (string, error)

	// SignType returns the sign_type value announced in the envelope.
	SignType() string
}

// Verifier checks signatures produced by the provider.
// This is a port interface - implementations are adapters.
//
// Verify never returns an error: a tampered signature, the wrong key and
// malformed base64 are all expected outcomes and simply yield false.
type Verifier interface {
	Verify(content, signature string) bool
}
