package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// Result is a parsed business response object. A Result is only ever built
// from a response whose signature checks passed.
type Result map[string]any

// ParseResult decodes a business JSON object. Numbers are kept as json.Number
// so that scores and ids survive without float rounding.
func ParseResult(data []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var r Result
	if err := dec.Decode(&r); err != nil {
		return nil, MalformedResponseError("business response is not a JSON object", err)
	}
	if r == nil {
		return nil, MalformedResponseError("business response is empty", nil)
	}
	return r, nil
}

// Success reports whether the provider accepted the request. A response
// without a success field counts as success.
func (r Result) Success() bool {
	switch v := r["success"].(type) {
	case bool:
		return v
	case string:
		return v != "false"
	}
	return true
}

// ErrorCode returns the provider's error_code, if any.
func (r Result) ErrorCode() string { return r.String("error_code") }

// ErrorMessage returns the provider's error_message, if any.
func (r Result) ErrorMessage() string { return r.String("error_message") }

// BusinessError returns the logical failure carried by r, or nil on success.
func (r Result) BusinessError() *BusinessError {
	if r.Success() {
		return nil
	}
	return &BusinessError{Code: r.ErrorCode(), Message: r.ErrorMessage()}
}

// String returns the field as text, or "" if it is absent.
func (r Result) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Decode re-encodes r into the typed value out.
func (r Result) Decode(out any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return MalformedResponseError("business response does not match the expected shape", err)
	}
	return nil
}

// Call is the outcome of one signed business call. Params is the exact
// business mapping that was signed and sent, Request the HTTP exchange, and
// Result the verified response object. Data holds the typed payload when the
// provider reported success; BusinessError is set otherwise.
type Call[T any] struct {
	Params        Params
	Request       *Exchange
	Result        Result
	Data          *T
	BusinessError *BusinessError
}

// Redirect is a signed URL the end user is sent to, together with the
// business fields that went into it.
type Redirect struct {
	URL    string `json:"url"`
	Params Params `json:"params"`

	// Auth is the resolved authorize request. It is set only by the
	// authorize redirect.
	Auth *AuthRequest `json:"auth,omitempty"`
}

// Query parses the redirect URL's query string.
func (r *Redirect) Query() (url.Values, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, err
	}
	return u.Query(), nil
}
