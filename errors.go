package zmxy

import (
	"github.com/philiph/zmxy/internal/core/domain"
)

// Re-export error types from domain package
type ErrorCode = domain.ErrorCode
type AppError = domain.AppError
type BusinessError = domain.BusinessError

// Re-export error code constants
const (
	ErrCodeConfigMissing     = domain.ErrCodeConfigMissing
	ErrCodeValidation        = domain.ErrCodeValidation
	ErrCodeKeyInvalid        = domain.ErrCodeKeyInvalid
	ErrCodeSignatureInvalid  = domain.ErrCodeSignatureInvalid
	ErrCodeDecryptionFailed  = domain.ErrCodeDecryptionFailed
	ErrCodeTransport         = domain.ErrCodeTransport
	ErrCodeResponseMalformed = domain.ErrCodeResponseMalformed
)

// Re-export error helpers
var (
	CodeOf = domain.CodeOf
	IsCode = domain.IsCode
)

// Re-export error constructors used by callers that validate their own input
var (
	ConfigError     = domain.ConfigError
	ValidationError = domain.ValidationError
)
