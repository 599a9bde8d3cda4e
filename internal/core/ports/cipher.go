package ports

// PayloadCipher seals payloads for the provider and opens payloads addressed
// to this integration.
type PayloadCipher interface {
	// Encrypt seals plaintext under the provider's public key and returns it
	// base64 encoded.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt opens base64 ciphertext with the integration's private key.
	// When encryptedKey is empty the ciphertext is a sequence of RSA blocks;
	// otherwise encryptedKey holds an RSA-wrapped AES key for the body.
	// Any failure is reported as a decryption error; there is no partial result.
	Decrypt(ciphertext, encryptedKey string) ([]byte, error)
}
