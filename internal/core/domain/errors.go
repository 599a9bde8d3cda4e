package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents categorized error types.
// These codes are stable and can be used for programmatic error handling.
type ErrorCode string

const (
	ErrCodeConfigMissing     ErrorCode = "config_missing"
	ErrCodeValidation        ErrorCode = "validation_failed"
	ErrCodeKeyInvalid        ErrorCode = "key_invalid"
	ErrCodeSignatureInvalid  ErrorCode = "signature_invalid"
	ErrCodeDecryptionFailed  ErrorCode = "decryption_failed"
	ErrCodeTransport         ErrorCode = "transport_error"
	ErrCodeResponseMalformed ErrorCode = "response_malformed"
)

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is a structured error with code, message, and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit status used by the command line tool
// when a call fails with this code.
func (c ErrorCode) ExitCode() int {
	switch c {
	case ErrCodeConfigMissing, ErrCodeKeyInvalid:
		return 2
	case ErrCodeValidation:
		return 3
	case ErrCodeSignatureInvalid, ErrCodeDecryptionFailed:
		return 4
	case ErrCodeTransport, ErrCodeResponseMalformed:
		return 5
	default:
		return 1
	}
}

// Title returns a user-friendly title for this error code.
func (c ErrorCode) Title() string {
	switch c {
	case ErrCodeConfigMissing:
		return "Configuration Error"
	case ErrCodeValidation:
		return "Invalid Request"
	case ErrCodeKeyInvalid:
		return "Key Invalid"
	case ErrCodeSignatureInvalid:
		return "Signature Invalid"
	case ErrCodeDecryptionFailed:
		return "Decryption Failed"
	case ErrCodeTransport:
		return "Transport Error"
	case ErrCodeResponseMalformed:
		return "Malformed Response"
	default:
		return "Error"
	}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err (or anything it wraps) is an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ConfigError creates a configuration error.
func ConfigError(message string) *AppError {
	return &AppError{Code: ErrCodeConfigMissing, Message: message}
}

// ValidationError creates an error for caller input that cannot be mapped
// onto a request. It is always raised before any network I/O.
func ValidationError(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// KeyError creates an error for malformed key material.
func KeyError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeKeyInvalid, Message: message, Cause: cause}
}

// SignatureError creates a signature verification error.
func SignatureError(message string) *AppError {
	return &AppError{Code: ErrCodeSignatureInvalid, Message: message}
}

// DecryptionError creates a decryption error with optional cause.
func DecryptionError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeDecryptionFailed, Message: message, Cause: cause}
}

// TransportError creates an error for an HTTP exchange that completed with a
// non-success status.
func TransportError(statusCode int, method string) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: fmt.Sprintf("%s returned HTTP status %d", method, statusCode),
	}
}

// MalformedResponseError creates an error for a response that is not valid JSON.
func MalformedResponseError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeResponseMalformed, Message: message, Cause: cause}
}

// BusinessError is a logical failure reported by the provider in a validly
// delivered response. It is not a Go error: callers branch on it.
type BusinessError struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

// String renders the business error for display.
func (b *BusinessError) String() string {
	return fmt.Sprintf("%s: %s", b.Code, b.Message)
}
