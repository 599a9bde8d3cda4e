// Package cipher implements the payload cipher used for provider responses,
// open-id tokens and sealed request params.
//
// Two formats are supported. Block format is a base64 sequence of RSA
// PKCS#1 v1.5 blocks, each exactly the key size; plaintext is split into
// chunks of keySize-11 bytes before encryption. Hybrid format carries an
// RSA-wrapped AES key next to an AES-CBC body whose first 16 bytes are the IV
// and whose plaintext is PKCS#7 padded.
package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// pkcs1Overhead is the PKCS#1 v1.5 encryption padding overhead in bytes.
const pkcs1Overhead = 11

// sessionKeySize is the AES key length used for hybrid payloads.
const sessionKeySize = 16

// RSACipher seals payloads for the counterparty and opens payloads addressed
// to the owner of privateKey.
type RSACipher struct {
	privateKey   *rsa.PrivateKey
	counterparty *rsa.PublicKey
}

// NewRSACipher creates a cipher. counterparty may be nil when only
// decryption is needed.
func NewRSACipher(privateKey *rsa.PrivateKey, counterparty *rsa.PublicKey) *RSACipher {
	return &RSACipher{privateKey: privateKey, counterparty: counterparty}
}

// Encrypt seals plaintext in block format under the counterparty key.
func (c *RSACipher) Encrypt(plaintext []byte) (string, error) {
	if c.counterparty == nil {
		return "", domain.KeyError("provider public key is required to encrypt", nil)
	}
	return EncryptBlocks(c.counterparty, plaintext)
}

// Decrypt opens block or hybrid ciphertext with the private key.
func (c *RSACipher) Decrypt(ciphertext, encryptedKey string) ([]byte, error) {
	if c.privateKey == nil {
		return nil, domain.DecryptionError("private key is required to decrypt", nil)
	}
	if encryptedKey == "" {
		return DecryptBlocks(c.privateKey, ciphertext)
	}
	return DecryptHybrid(c.privateKey, ciphertext, encryptedKey)
}

// EncryptBlocks encrypts plaintext in block format.
func EncryptBlocks(pub *rsa.PublicKey, plaintext []byte) (string, error) {
	chunk := pub.Size() - pkcs1Overhead
	if chunk <= 0 {
		return "", domain.KeyError("public key too small", nil)
	}
	var out bytes.Buffer
	for start := 0; ; start += chunk {
		end := min(start+chunk, len(plaintext))
		block, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext[start:end])
		if err != nil {
			return "", fmt.Errorf("encrypt block: %w", err)
		}
		out.Write(block)
		if end >= len(plaintext) {
			break
		}
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// DecryptBlocks decrypts block format ciphertext.
func DecryptBlocks(priv *rsa.PrivateKey, ciphertext string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, domain.DecryptionError("ciphertext is not valid base64", err)
	}
	size := priv.Size()
	if len(raw) == 0 || len(raw)%size != 0 {
		return nil, domain.DecryptionError(
			fmt.Sprintf("ciphertext length %d is not a multiple of the %d byte key size", len(raw), size), nil)
	}

	var out bytes.Buffer
	for start := 0; start < len(raw); start += size {
		plain, err := rsa.DecryptPKCS1v15(nil, priv, raw[start:start+size])
		if err != nil {
			return nil, domain.DecryptionError("decrypt block", err)
		}
		out.Write(plain)
	}
	return out.Bytes(), nil
}

// EncryptHybrid seals plaintext under a fresh AES key that is itself
// RSA-encrypted for pub. It returns the body and the wrapped key.
func EncryptHybrid(pub *rsa.PublicKey, plaintext []byte) (body, encryptedKey string, err error) {
	key := make([]byte, sessionKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", "", fmt.Errorf("generate session key: %w", err)
	}
	wrapped, err := rsa.EncryptPKCS1v15(rand.Reader, pub, key)
	if err != nil {
		return "", "", fmt.Errorf("wrap session key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("generate iv: %w", err)
	}
	gocipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), base64.StdEncoding.EncodeToString(wrapped), nil
}

// DecryptHybrid unwraps the AES key with priv and decrypts the body.
func DecryptHybrid(priv *rsa.PrivateKey, body, encryptedKey string) ([]byte, error) {
	wrapped, err := base64.StdEncoding.DecodeString(encryptedKey)
	if err != nil {
		return nil, domain.DecryptionError("encrypted key is not valid base64", err)
	}
	key, err := rsa.DecryptPKCS1v15(nil, priv, wrapped)
	if err != nil {
		return nil, domain.DecryptionError("unwrap session key", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, domain.DecryptionError("session key has invalid length", err)
	}

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, domain.DecryptionError("ciphertext is not valid base64", err)
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return nil, domain.DecryptionError("ciphertext is not a whole number of AES blocks", nil)
	}
	iv, data := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(data))
	gocipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	out, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, domain.DecryptionError("remove padding", err)
	}
	return out, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

var errBadPadding = errors.New("invalid PKCS#7 padding")

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-n], nil
}

// Ensure RSACipher implements ports.PayloadCipher
var _ ports.PayloadCipher = (*RSACipher)(nil)
