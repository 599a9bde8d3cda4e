package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// hashForSignType maps a sign_type to its digest. RSA is the provider's
// default and uses SHA-1; RSA2 uses SHA-256.
func hashForSignType(signType string) (crypto.Hash, error) {
	switch signType {
	case "", domain.SignTypeRSA:
		return crypto.SHA1, nil
	case domain.SignTypeRSA2:
		return crypto.SHA256, nil
	default:
		return 0, domain.ConfigError(fmt.Sprintf("unsupported sign type %q", signType))
	}
}

func digest(h crypto.Hash, content string) []byte {
	if h == crypto.SHA256 {
		sum := sha256.Sum256([]byte(content))
		return sum[:]
	}
	sum := sha1.Sum([]byte(content))
	return sum[:]
}

// RSASigner produces PKCS#1 v1.5 signatures.
type RSASigner struct {
	key      *rsa.PrivateKey
	hash     crypto.Hash
	signType string
}

// NewRSASigner creates a signer for the given sign type ("RSA" or "RSA2").
func NewRSASigner(key *rsa.PrivateKey, signType string) (*RSASigner, error) {
	if key == nil {
		return nil, domain.KeyError("private key is required", nil)
	}
	if err := key.Validate(); err != nil {
		return nil, domain.KeyError("private key is malformed", err)
	}
	h, err := hashForSignType(signType)
	if err != nil {
		return nil, err
	}
	if signType == "" {
		signType = domain.SignTypeRSA
	}
	return &RSASigner{key: key, hash: h, signType: signType}, nil
}

// Sign returns the base64 signature over content.
func (s *RSASigner) Sign(content string) (string, error) {
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, s.hash, digest(s.hash, content))
	if err != nil {
		return "", domain.KeyError("sign content", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// SignType returns the announced sign_type.
func (s *RSASigner) SignType() string {
	return s.signType
}

// RSAVerifier checks PKCS#1 v1.5 signatures against the provider's key.
type RSAVerifier struct {
	key    *rsa.PublicKey
	hash   crypto.Hash
	logger *zap.Logger
}

// NewRSAVerifier creates a verifier for the given sign type.
func NewRSAVerifier(key *rsa.PublicKey, signType string) (*RSAVerifier, error) {
	return NewRSAVerifierWithLogger(key, signType, nil)
}

// NewRSAVerifierWithLogger creates a verifier that logs rejected signatures
// at debug level.
func NewRSAVerifierWithLogger(key *rsa.PublicKey, signType string, logger *zap.Logger) (*RSAVerifier, error) {
	if key == nil {
		return nil, domain.KeyError("public key is required", nil)
	}
	h, err := hashForSignType(signType)
	if err != nil {
		return nil, err
	}
	return &RSAVerifier{key: key, hash: h, logger: logger}, nil
}

// Verify reports whether signature is a valid base64 signature over content.
func (v *RSAVerifier) Verify(content, signature string) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) == 0 {
		v.debug("signature is not valid base64", err)
		return false
	}
	if err := rsa.VerifyPKCS1v15(v.key, v.hash, digest(v.hash, content), sig); err != nil {
		v.debug("signature rejected", err)
		return false
	}
	return true
}

func (v *RSAVerifier) debug(msg string, err error) {
	if v.logger != nil {
		v.logger.Debug(msg, zap.Error(err))
	}
}

// Ensure implementations satisfy interfaces
var _ ports.Signer = (*RSASigner)(nil)
var _ ports.Verifier = (*RSAVerifier)(nil)
