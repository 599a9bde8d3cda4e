package domain

import (
	"encoding/json"
	"strings"
)

// CertTypeIdentityCard is the default certificate type for name+certNo identities.
const CertTypeIdentityCard = "IDENTITY_CARD"

// Identity types sent as identity_type.
const (
	IdentityTypeMobile = "1"
	IdentityTypeCert   = "2"
)

// Auth codes sent in biz_params.auth_code.
const (
	AuthCodeH5       = "M_H5"
	AuthCodeMobilePC = "M_MOBILE_APPPC"
	AuthCodeCertPC   = "M_APPPC_CERT"
	ChannelH5        = "h5"
	channelTypeApp   = "app"
	channelTypeAppPC = "apppc"
	certInitBizCode  = "FACE"
	certIdentityType = "CERT_INFO"
)

// AuthIdentity identifies the user being authorized: either Mobile, or Name
// and CertNo. CertType defaults to CertTypeIdentityCard.
type AuthIdentity struct {
	Mobile   string
	Name     string
	CertNo   string
	CertType string
}

// AuthRequest is the resolved set of authorize parameters.
type AuthRequest struct {
	IdentityType  string            `json:"identity_type"`
	IdentityParam map[string]string `json:"identity_param"`
	BizParams     map[string]string `json:"biz_params"`
}

// ResolveAuthRequest maps an identity and channel onto authorize parameters.
// A channel of "h5" always selects the H5 auth code; any other channel
// (including "") selects the PC code for the identity type.
func ResolveAuthRequest(id AuthIdentity, channel, state string) (*AuthRequest, error) {
	req := &AuthRequest{BizParams: map[string]string{}}

	switch {
	case strings.TrimSpace(id.Mobile) != "":
		req.IdentityType = IdentityTypeMobile
		req.IdentityParam = map[string]string{"mobileNo": id.Mobile}
		req.BizParams["auth_code"] = AuthCodeMobilePC
	case strings.TrimSpace(id.Name) != "" && strings.TrimSpace(id.CertNo) != "":
		certType := id.CertType
		if certType == "" {
			certType = CertTypeIdentityCard
		}
		req.IdentityType = IdentityTypeCert
		req.IdentityParam = map[string]string{
			"name":     id.Name,
			"certNo":   id.CertNo,
			"certType": certType,
		}
		req.BizParams["auth_code"] = AuthCodeCertPC
	default:
		return nil, ValidationError("identity requires either a mobile number or a name and certificate number")
	}

	if channel == ChannelH5 {
		req.BizParams["auth_code"] = AuthCodeH5
		req.BizParams["channelType"] = channelTypeApp
	} else {
		req.BizParams["channelType"] = channelTypeAppPC
	}
	if state != "" {
		req.BizParams["state"] = state
	}
	return req, nil
}

// Params renders the request as business parameters. The nested objects are
// JSON encoded, which is how the provider expects them.
func (r *AuthRequest) Params() Params {
	return Params{
		"identity_type":  r.IdentityType,
		"identity_param": mustJSON(r.IdentityParam),
		"biz_params":     mustJSON(r.BizParams),
	}
}

// CertInitParams builds the identity_param and biz_code for a face
// certification of name/certNo.
func CertInitParams(name, certNo string) Params {
	return Params{
		"biz_code": certInitBizCode,
		"identity_param": mustJSON(map[string]string{
			"identity_type": certIdentityType,
			"cert_type":     CertTypeIdentityCard,
			"cert_name":     name,
			"cert_no":       certNo,
		}),
	}
}

// mustJSON encodes a string map. Encoding a map[string]string cannot fail.
func mustJSON(m map[string]string) string {
	data, _ := json.Marshal(m)
	return string(data)
}
