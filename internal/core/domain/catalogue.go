package domain

import (
	"encoding/json"
	"fmt"
)

// Method is a declarative description of one provider API method.
// Adding an API method is a matter of adding a record here and a thin
// typed wrapper in the client.
type Method struct {
	// Name is the provider method name sent in the envelope.
	Name string
	// ProductCode identifies the product; empty for redirect-only methods.
	ProductCode string
	// Required lists parameters that must be present and non-empty before the
	// call is sent.
	Required []string
}

// The method catalogue.
var (
	MethodAuthorize = Method{
		Name:     "zhima.auth.info.authorize",
		Required: []string{"identity_type", "identity_param", "biz_params"},
	}
	MethodAntifraudVerify = Method{
		Name:        "zhima.credit.antifraud.verify",
		ProductCode: "w1010100000000002859",
	}
	MethodAntifraudScore = Method{
		Name:        "zhima.credit.antifraud.score.get",
		ProductCode: "w1010100003000001100",
	}
	MethodAntifraudRiskList = Method{
		Name:        "zhima.credit.antifraud.risk.list",
		ProductCode: "w1010100003000001283",
	}
	MethodWatchlist = Method{
		Name:        "zhima.credit.watchlistii.get",
		ProductCode: "w1010100100000000022",
		Required:    []string{"open_id"},
	}
	MethodCreditScore = Method{
		Name:        "zhima.credit.score.get",
		ProductCode: "w1010100100000000001",
		Required:    []string{"open_id"},
	}
	MethodCertInit = Method{
		Name:        "zhima.customer.certification.initialize",
		ProductCode: "w1010100000000002978",
		Required:    []string{"biz_code", "identity_param"},
	}
	MethodCertQuery = Method{
		Name:        "zhima.customer.certification.query",
		ProductCode: "w1010100000000002978",
		Required:    []string{"biz_no"},
	}
	MethodCertCertify = Method{
		Name:     "zhima.customer.certification.certify",
		Required: []string{"biz_no"},
	}
)

// Catalogue lists every known method, keyed by method name.
var Catalogue = map[string]Method{
	MethodAuthorize.Name:         MethodAuthorize,
	MethodAntifraudVerify.Name:   MethodAntifraudVerify,
	MethodAntifraudScore.Name:    MethodAntifraudScore,
	MethodAntifraudRiskList.Name: MethodAntifraudRiskList,
	MethodWatchlist.Name:         MethodWatchlist,
	MethodCreditScore.Name:       MethodCreditScore,
	MethodCertInit.Name:          MethodCertInit,
	MethodCertQuery.Name:         MethodCertQuery,
	MethodCertCertify.Name:       MethodCertCertify,
}

// Signed reports whether the method is a signed POST carrying a product code
// and transaction id, as opposed to a browser redirect.
func (m Method) Signed() bool {
	return m.ProductCode != ""
}

// Check validates params against the method's parameter contract.
func (m Method) Check(params Params) error {
	for _, key := range m.Required {
		if v, ok := params.String(key); !ok || v == "" {
			return ValidationError(fmt.Sprintf("%s requires parameter %q", m.Name, key))
		}
	}
	return nil
}

// IvsQuery identifies the person checked by the anti-fraud methods.
// Empty fields are still sent; the provider decides what is sufficient.
type IvsQuery struct {
	Name     string
	CertNo   string
	CertType string
	Mobile   string
	Email    string
	BankCard string
	Address  string
	IP       string
	Mac      string
	WiFiMac  string
	IMEI     string
	IMSI     string
}

// Params renders q as business parameters. Unset optional fields are nil so
// that they do not take part in signing.
func (q IvsQuery) Params() Params {
	p := Params{
		"name":    q.Name,
		"cert_no": optional(q.CertNo),
		"mobile":  optional(q.Mobile),
	}
	if q.CertNo != "" {
		certType := q.CertType
		if certType == "" {
			certType = CertTypeIdentityCard
		}
		p["cert_type"] = certType
	}
	p["email"] = optional(q.Email)
	p["bank_card"] = optional(q.BankCard)
	p["address"] = optional(q.Address)
	p["ip"] = optional(q.IP)
	p["mac"] = optional(q.Mac)
	p["wifimac"] = optional(q.WiFiMac)
	p["imei"] = optional(q.IMEI)
	p["imsi"] = optional(q.IMSI)
	return p
}

// optional maps "" to nil.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IvsVerifyResult is returned by the anti-fraud verify method.
type IvsVerifyResult struct {
	VerifyCode []string `json:"verify_code"`
}

// IvsScoreResult is returned by the anti-fraud score method.
type IvsScoreResult struct {
	Score int `json:"score"`
}

// IvsWatchlistResult is returned by the anti-fraud risk list method.
type IvsWatchlistResult struct {
	Hit      string   `json:"hit"`
	RiskCode []string `json:"risk_code"`
}

// WatchlistDetail is a single industry watchlist entry.
type WatchlistDetail struct {
	BizCode    string      `json:"biz_code"`
	Code       string      `json:"code"`
	Level      json.Number `json:"level"`
	Type       string      `json:"type"`
	RefreshAt  string      `json:"refresh_time"`
	Settlement bool        `json:"settlement"`
	Status     string      `json:"status"`
	Statement  string      `json:"statement"`
}

// WatchlistResult is returned by the industry watchlist method.
type WatchlistResult struct {
	IsMatched bool              `json:"is_matched"`
	Details   []WatchlistDetail `json:"details"`
}

// CreditScoreResult is returned by the credit score method.
type CreditScoreResult struct {
	ZmScore json.Number `json:"zm_score"`
}

// CertInitResult is returned by certification initialization.
type CertInitResult struct {
	BizNo string `json:"biz_no"`
}

// CertQueryResult is returned by certification query. Passed is kept as the
// provider sends it: the string "true" or "false".
type CertQueryResult struct {
	Passed        string `json:"passed"`
	FailedReason  string `json:"failed_reason"`
	IdentityInfo  string `json:"identity_info"`
	AttributeInfo string `json:"attribute_info"`
}
