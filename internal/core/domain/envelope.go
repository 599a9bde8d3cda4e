package domain

import (
	"net/url"
)

// Protocol constants carried in every envelope.
const (
	Charset          = "UTF-8"
	Version          = "1.0"
	ProtocolPlatform = "zmop"

	SignTypeRSA  = "RSA"
	SignTypeRSA2 = "RSA2"
)

// Envelope query and form field names.
const (
	FieldMethod     = "method"
	FieldAppID      = "app_id"
	FieldCharset    = "charset"
	FieldPlatform   = "platform"
	FieldVersion    = "version"
	FieldSign       = "sign"
	FieldSignType   = "sign_type"
	FieldBizContent = "biz_content"
	FieldParams     = "params"
)

// Business parameter names shared by every signed call.
const (
	ParamTransactionID = "transaction_id"
	ParamProductCode   = "product_code"
)

// RequestEnvelope is the outer protocol wrapper of an outbound request.
// Sign is computed over the canonical form of the business parameters.
type RequestEnvelope struct {
	Method   string
	AppID    string
	Charset  string
	Platform string
	Version  string
	SignType string
	Sign     string

	// BizContent is the URL-encoded business parameter form.
	BizContent string
	// Encrypted marks BizContent as sealed for the provider; it is then sent
	// as the params field instead of biz_content.
	Encrypted bool
}

// Query renders the envelope header fields as URL query values.
func (e *RequestEnvelope) Query() url.Values {
	q := url.Values{}
	q.Set(FieldMethod, e.Method)
	q.Set(FieldAppID, e.AppID)
	q.Set(FieldCharset, e.Charset)
	q.Set(FieldPlatform, e.Platform)
	q.Set(FieldVersion, e.Version)
	q.Set(FieldSignType, e.SignType)
	q.Set(FieldSign, e.Sign)
	return q
}

// Form renders the business content as form values.
func (e *RequestEnvelope) Form() url.Values {
	f := url.Values{}
	if e.Encrypted {
		f.Set(FieldParams, e.BizContent)
	} else {
		f.Set(FieldBizContent, e.BizContent)
	}
	return f
}

// RedirectQuery merges header and business content for a browser redirect.
func (e *RequestEnvelope) RedirectQuery() url.Values {
	q := e.Query()
	for k, vs := range e.Form() {
		q[k] = vs
	}
	return q
}

// OutboundRequest is what the transport collaborator sends.
type OutboundRequest struct {
	Method string
	URL    *url.URL
	Form   url.Values
}

// Exchange describes a completed HTTP round trip.
type Exchange struct {
	Method     string
	URI        *url.URL
	StatusCode int
	Body       []byte
}

// ResponseSign is the provider's signature over its own envelope.
type ResponseSign struct {
	SignSource string `json:"signSource"`
	SignResult string `json:"signResult"`
}

// ResponseEnvelope is the inbound JSON body. When Encrypted is true,
// BizResponse is ciphertext; otherwise it is a plain JSON string.
type ResponseEnvelope struct {
	Encrypted       bool          `json:"encrypted"`
	Sign            *ResponseSign `json:"sign,omitempty"`
	BizResponseSign string        `json:"biz_response_sign,omitempty"`
	BizResponse     string        `json:"biz_response"`
	// EncryptedKey carries an RSA-wrapped AES session key for hybrid bodies.
	EncryptedKey string `json:"encrypted_key,omitempty"`
}
