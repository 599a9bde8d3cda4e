package signature

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"strings"

	"github.com/philiph/zmxy/internal/core/domain"
)

// ParsePrivateKey parses an RSA private key from PEM bytes.
// PKCS#8 and PKCS#1 encodings are accepted, as is a bare base64 body without
// PEM armour (the form the provider's console hands out).
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	der, err := decodeKeyBlock(data)
	if err != nil {
		return nil, domain.KeyError("decode private key", err)
	}

	// Try PKCS8 first (modern format), then PKCS1 (legacy RSA format)
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		rsaKey, err := x509.ParsePKCS1PrivateKey(der)
		if err != nil {
			return nil, domain.KeyError("parse private key", err)
		}
		return rsaKey, nil
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, domain.KeyError("private key is not RSA", nil)
	}
	return rsaKey, nil
}

// ParsePublicKey parses an RSA public key from PEM bytes. PKIX and PKCS#1
// public keys are accepted, and so is an X.509 certificate, whose subject key
// is returned.
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block != nil && block.Type == "CERTIFICATE" {
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, domain.KeyError("parse certificate", err)
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, domain.KeyError("certificate key is not RSA", nil)
		}
		return pub, nil
	}

	der, err := decodeKeyBlock(data)
	if err != nil {
		return nil, domain.KeyError("decode public key", err)
	}

	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		rsaKey, err := x509.ParsePKCS1PublicKey(der)
		if err != nil {
			return nil, domain.KeyError("parse public key", err)
		}
		return rsaKey, nil
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, domain.KeyError("public key is not RSA", nil)
	}
	return rsaKey, nil
}

// decodeKeyBlock returns the DER bytes of the first PEM block, or of the
// whole input if it is unarmoured base64.
func decodeKeyBlock(data []byte) ([]byte, error) {
	if block, _ := pem.Decode(data); block != nil {
		return block.Bytes, nil
	}
	trimmed := strings.Join(strings.Fields(string(data)), "")
	if trimmed == "" {
		return nil, errors.New("empty key material")
	}
	der, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, errors.New("failed to decode PEM block")
	}
	return der, nil
}

// EncodePrivateKey renders key as a PKCS#8 PEM block.
func EncodePrivateKey(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// EncodePublicKey renders key as a PKIX PEM block.
func EncodePublicKey(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
