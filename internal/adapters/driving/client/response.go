package client

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
	"github.com/philiph/zmxy/internal/core/trust"
)

// process turns a completed exchange into a verified business result.
// Encrypted bodies are decrypted only after their signature verified.
func (c *Client) process(method string, ex *domain.Exchange) (domain.Result, error) {
	if ex.StatusCode < 200 || ex.StatusCode > 299 {
		return nil, domain.TransportError(ex.StatusCode, method)
	}

	var env domain.ResponseEnvelope
	if err := json.Unmarshal(ex.Body, &env); err != nil {
		return nil, domain.MalformedResponseError("response body is not a valid envelope", err)
	}

	var plaintext []byte
	if env.Encrypted {
		verified, err := trust.VerifyCiphertext(c.verifier, &env)
		c.metrics.RecordVerification(err == nil)
		if err != nil {
			c.logger.Warn("response signature verification failed",
				zap.String("method", method),
				zap.Bool("encrypted", true),
				zap.Error(err))
			return nil, err
		}
		plaintext, err = verified.Open(c.cipher)
		if err != nil {
			c.logger.Error("response decryption failed",
				zap.String("method", method),
				zap.Bool("hybrid", env.EncryptedKey != ""),
				zap.Error(err))
			return nil, err
		}
	} else {
		if env.BizResponseSign != "" {
			err := trust.VerifyPlaintext(c.verifier, &env)
			c.metrics.RecordVerification(err == nil)
			if err != nil {
				c.logger.Warn("response signature verification failed",
					zap.String("method", method),
					zap.Bool("encrypted", false),
					zap.Error(err))
				return nil, err
			}
		}
		plaintext = []byte(env.BizResponse)
	}

	return domain.ParseResult(plaintext)
}

// outcomeOf maps a call error onto its metrics outcome label.
func outcomeOf(err error) string {
	switch domain.CodeOf(err) {
	case domain.ErrCodeValidation:
		return ports.OutcomeValidationFailed
	case domain.ErrCodeKeyInvalid:
		return ports.OutcomeKeyInvalid
	case domain.ErrCodeSignatureInvalid:
		return ports.OutcomeSignatureInvalid
	case domain.ErrCodeDecryptionFailed:
		return ports.OutcomeDecryptionFailed
	case domain.ErrCodeResponseMalformed:
		return ports.OutcomeResponseMalformed
	default:
		return ports.OutcomeTransportError
	}
}
