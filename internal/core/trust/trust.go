// Package trust gates decryption of provider responses behind signature
// verification. A VerifiedCiphertext can only be obtained from
// VerifyCiphertext, and Open is the only way to decrypt one, so unverified
// ciphertext never reaches the cipher.
package trust

import (
	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// VerifiedCiphertext is an encrypted business response whose signature has
// been checked against the provider's key.
type VerifiedCiphertext struct {
	body         string
	encryptedKey string
	verified     bool
}

// VerifyCiphertext checks env.BizResponseSign over env.BizResponse. It fails
// with a signature error when the signature is missing or does not verify.
// Only biz_response is authenticated: a replaced encrypted_key is not caught
// here and surfaces as a decryption error from Open.
func VerifyCiphertext(v ports.Verifier, env *domain.ResponseEnvelope) (VerifiedCiphertext, error) {
	if env.BizResponseSign == "" {
		return VerifiedCiphertext{}, domain.SignatureError("encrypted response carries no biz_response_sign")
	}
	if !v.Verify(env.BizResponse, env.BizResponseSign) {
		return VerifiedCiphertext{}, domain.SignatureError("biz_response_sign does not match biz_response")
	}
	return VerifiedCiphertext{
		body:         env.BizResponse,
		encryptedKey: env.EncryptedKey,
		verified:     true,
	}, nil
}

// VerifyPlaintext checks the optional signature of a plaintext response.
// A response without biz_response_sign passes unchanged.
func VerifyPlaintext(v ports.Verifier, env *domain.ResponseEnvelope) error {
	if env.BizResponseSign == "" {
		return nil
	}
	if !v.Verify(env.BizResponse, env.BizResponseSign) {
		return domain.SignatureError("biz_response_sign does not match biz_response")
	}
	return nil
}

// Open decrypts the verified body. The zero value refuses to open.
func (c VerifiedCiphertext) Open(cipher ports.PayloadCipher) ([]byte, error) {
	if !c.verified {
		return nil, domain.SignatureError("ciphertext has not been verified")
	}
	return cipher.Decrypt(c.body, c.encryptedKey)
}
