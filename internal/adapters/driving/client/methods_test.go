//go:build unit

package client

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/philiph/zmxy/internal/adapters/driven/cipher"
	"github.com/philiph/zmxy/internal/adapters/driven/signature"
	"github.com/philiph/zmxy/internal/core/domain"
)

// decodeAuth extracts the JSON encoded authorize fields from a redirect.
func decodeAuth(t *testing.T, r *domain.Redirect) (identityType string, identity, biz map[string]string) {
	t.Helper()

	identityType, _ = r.Params.String("identity_type")
	raw, _ := r.Params.String("identity_param")
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		t.Fatalf("identity_param is not JSON: %v", err)
	}
	raw, _ = r.Params.String("biz_params")
	if err := json.Unmarshal([]byte(raw), &biz); err != nil {
		t.Fatalf("biz_params is not JSON: %v", err)
	}
	return identityType, identity, biz
}

// TestAuthorizeURL verifies identity resolution and the redirect target.
func TestAuthorizeURL(t *testing.T) {
	c, p, _ := newTestClient(t, func(o *Options) { o.Endpoint = DefaultEndpoint })
	mobile := domain.AuthIdentity{Mobile: "12345678901"}
	cert := domain.AuthIdentity{Name: "张三", CertNo: "111111111111111111"}

	testCases := []struct {
		name         string
		identity     domain.AuthIdentity
		channel      string
		wantType     string
		wantAuthCode string
	}{
		{"mobile pc", mobile, "", "1", "M_MOBILE_APPPC"},
		{"mobile h5", mobile, "h5", "1", "M_H5"},
		{"name strange", cert, "strange", "2", "M_APPPC_CERT"},
		{"name h5", cert, "h5", "2", "M_H5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := c.AuthorizeURL(tc.identity, tc.channel)
			if err != nil {
				t.Fatalf("AuthorizeURL() returned error: %v", err)
			}
			identityType, identity, biz := decodeAuth(t, r)
			if identityType != tc.wantType {
				t.Errorf("identity_type = %q, want %q", identityType, tc.wantType)
			}
			if biz["auth_code"] != tc.wantAuthCode {
				t.Errorf("auth_code = %q, want %q", biz["auth_code"], tc.wantAuthCode)
			}
			if tc.identity.Mobile != "" && identity["mobileNo"] != tc.identity.Mobile {
				t.Errorf("mobileNo = %q", identity["mobileNo"])
			}
			if tc.identity.Name != "" && identity["certType"] != "IDENTITY_CARD" {
				t.Errorf("certType = %q, want IDENTITY_CARD", identity["certType"])
			}

			u, err := url.Parse(r.URL)
			if err != nil {
				t.Fatalf("url.Parse() returned error: %v", err)
			}
			if u.Scheme != "https" || u.Host != "zmopenapi.zmxy.com.cn" || u.Path != "/openapi.do" {
				t.Errorf("redirect target = %s", u)
			}
			q := u.Query()
			if q.Get("method") != "zhima.auth.info.authorize" {
				t.Errorf("method = %q", q.Get("method"))
			}

			content, err := url.ParseQuery(q.Get("biz_content"))
			if err != nil {
				t.Fatalf("biz_content is not a form: %v", err)
			}
			verifier, _ := signature.NewRSAVerifier(p.ClientPublicKey(), domain.SignTypeRSA)
			if !verifier.Verify(domain.Canonicalize(domain.ParamsFromValues(content)), q.Get("sign")) {
				t.Error("redirect sign does not verify over biz_content")
			}
		})
	}
}

// TestAuthorizeURL_StructuredAuth verifies the resolved request rides on the
// redirect and matches the signed params.
func TestAuthorizeURL_StructuredAuth(t *testing.T) {
	c, _, _ := newTestClient(t, nil)

	r, err := c.AuthorizeURLWithState(domain.AuthIdentity{Mobile: "12345678901"}, "h5", "s1")
	if err != nil {
		t.Fatalf("AuthorizeURLWithState() returned error: %v", err)
	}
	if r.Auth == nil {
		t.Fatal("Redirect.Auth is nil")
	}
	if r.Auth.IdentityParam["mobileNo"] != "12345678901" {
		t.Errorf("Auth.IdentityParam = %v", r.Auth.IdentityParam)
	}
	if r.Auth.BizParams["auth_code"] != "M_H5" || r.Auth.BizParams["state"] != "s1" {
		t.Errorf("Auth.BizParams = %v", r.Auth.BizParams)
	}

	identityType, identity, biz := decodeAuth(t, r)
	if identityType != r.Auth.IdentityType || identity["mobileNo"] != r.Auth.IdentityParam["mobileNo"] || biz["auth_code"] != r.Auth.BizParams["auth_code"] {
		t.Errorf("Auth = %+v does not match signed params", r.Auth)
	}

	cert, err := c.CertificationURL("ZM1", "")
	if err != nil {
		t.Fatalf("CertificationURL() returned error: %v", err)
	}
	if cert.Auth != nil {
		t.Errorf("CertificationURL() Auth = %+v, want nil", cert.Auth)
	}
}

// TestAuthorizeURL_Invalid verifies unmappable identities fail without a URL.
func TestAuthorizeURL_Invalid(t *testing.T) {
	c, _, _ := newTestClient(t, nil)
	r, err := c.AuthorizeURL(domain.AuthIdentity{Name: "张三"}, "h5")
	if !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("AuthorizeURL() error = %v, want validation_failed", err)
	}
	if r != nil {
		t.Errorf("AuthorizeURL() = %+v, want nil", r)
	}
}

// TestAuthorizeURLWithState verifies the state travels in biz_params.
func TestAuthorizeURLWithState(t *testing.T) {
	c, _, _ := newTestClient(t, nil)
	r, err := c.AuthorizeURLWithState(domain.AuthIdentity{Mobile: "12345678901"}, "h5", "order-42")
	if err != nil {
		t.Fatalf("AuthorizeURLWithState() returned error: %v", err)
	}
	_, _, biz := decodeAuth(t, r)
	if biz["state"] != "order-42" || biz["channelType"] != "app" {
		t.Errorf("biz_params = %v", biz)
	}
}

// TestAuthorizeURL_Sealed verifies redirects carry params when encryption is on.
func TestAuthorizeURL_Sealed(t *testing.T) {
	c, _, _ := newTestClient(t, func(o *Options) { o.EncryptRequest = true })

	r, err := c.AuthorizeURL(domain.AuthIdentity{Mobile: "12345678901"}, "")
	if err != nil {
		t.Fatalf("AuthorizeURL() returned error: %v", err)
	}
	u, _ := url.Parse(r.URL)
	if u.Query().Get("params") == "" || u.Query().Get("biz_content") != "" {
		t.Errorf("redirect query = %v, want sealed params only", u.Query())
	}
}

// TestCertificationURL verifies the certify redirect.
func TestCertificationURL(t *testing.T) {
	c, _, _ := newTestClient(t, nil)

	r, err := c.CertificationURL("ZM201703093000000727200705771480", "https://example.com/done")
	if err != nil {
		t.Fatalf("CertificationURL() returned error: %v", err)
	}
	u, _ := url.Parse(r.URL)
	if u.Query().Get("method") != "zhima.customer.certification.certify" {
		t.Errorf("method = %q", u.Query().Get("method"))
	}
	if v, _ := r.Params.String("return_url"); v != "https://example.com/done" {
		t.Errorf("return_url = %q", v)
	}
	if _, ok := r.Params.String("transaction_id"); ok {
		t.Error("redirects must not carry a transaction_id")
	}

	if _, err := c.CertificationURL("", ""); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("CertificationURL(\"\") error = %v, want validation_failed", err)
	}
}

// TestOpenID verifies tokens are decrypted with the integration key.
func TestOpenID(t *testing.T) {
	c, p, _ := newTestClient(t, nil)

	token, err := p.OpenIDToken("268810000007909449496")
	if err != nil {
		t.Fatalf("OpenIDToken() returned error: %v", err)
	}
	got, err := c.OpenID(token)
	if err != nil {
		t.Fatalf("OpenID() returned error: %v", err)
	}
	if got != "268810000007909449496" {
		t.Errorf("OpenID() = %q", got)
	}

	jsonToken, _ := cipher.EncryptBlocks(&c.Identity().PrivateKey().PublicKey, []byte(`{"open_id":"268810000007909449496","success":true}`))
	if got, err := c.OpenID(jsonToken); err != nil || got != "268810000007909449496" {
		t.Errorf("OpenID(json) = %q, %v", got, err)
	}
}

// TestOpenID_Failures verifies bad tokens fail with typed errors.
func TestOpenID_Failures(t *testing.T) {
	c, _, _ := newTestClient(t, nil)
	pub := &c.Identity().PrivateKey().PublicKey
	emptyJSON, _ := cipher.EncryptBlocks(pub, []byte(`{"success":true}`))
	badJSON, _ := cipher.EncryptBlocks(pub, []byte(`{"open_id":`))

	testCases := []struct {
		name  string
		token string
		code  domain.ErrorCode
	}{
		{"empty", "  ", domain.ErrCodeValidation},
		{"not base64", "%%%", domain.ErrCodeDecryptionFailed},
		{"wrong length", strings.Repeat("A", 12), domain.ErrCodeDecryptionFailed},
		{"json without open id", emptyJSON, domain.ErrCodeResponseMalformed},
		{"broken json", badJSON, domain.ErrCodeResponseMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.OpenID(tc.token); !domain.IsCode(err, tc.code) {
				t.Errorf("OpenID() error = %v, want %s", err, tc.code)
			}
		})
	}
}
