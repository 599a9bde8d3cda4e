// Package zmxy is a client for the Zhima credit ("zmxy") open API.
//
// Every outbound request is signed with the integration's RSA key and every
// inbound business payload is signature-verified, and decrypted when the
// provider marks it encrypted, before it is handed to the caller.
//
//	c, err := zmxy.New(zmxy.Options{
//		Platform:   "bmqb",
//		AppID:      "1000980",
//		PrivateKey: appPrivateKeyPEM,
//		PublicKey:  providerPublicKeyPEM,
//	})
//	res, err := c.CreditScore(ctx, openID)
package zmxy

import (
	"github.com/philiph/zmxy/internal/adapters/driving/client"
	"github.com/philiph/zmxy/internal/core/domain"
)

// Client and its options.
type (
	Client  = client.Client
	Options = client.Options
)

// New validates opts, parses the key material and builds a Client.
var New = client.New

// Client defaults.
const (
	DefaultEndpoint = client.DefaultEndpoint
	DefaultTimeout  = client.DefaultTimeout
)

// Re-export request and response types from the domain package.
type (
	Params          = domain.Params
	Result          = domain.Result
	Redirect        = domain.Redirect
	Exchange        = domain.Exchange
	OutboundRequest = domain.OutboundRequest
	ClientIdentity  = domain.ClientIdentity
	Method          = domain.Method
	AuthIdentity    = domain.AuthIdentity
	AuthRequest     = domain.AuthRequest
	IvsQuery        = domain.IvsQuery
)

// Re-export typed business results.
type (
	IvsVerifyResult    = domain.IvsVerifyResult
	IvsScoreResult     = domain.IvsScoreResult
	IvsWatchlistResult = domain.IvsWatchlistResult
	WatchlistDetail    = domain.WatchlistDetail
	WatchlistResult    = domain.WatchlistResult
	CreditScoreResult  = domain.CreditScoreResult
	CertInitResult     = domain.CertInitResult
	CertQueryResult    = domain.CertQueryResult
)

// Call outcomes of each business method.
type (
	IvsVerifyCall    = domain.Call[domain.IvsVerifyResult]
	IvsScoreCall     = domain.Call[domain.IvsScoreResult]
	IvsWatchlistCall = domain.Call[domain.IvsWatchlistResult]
	WatchlistCall    = domain.Call[domain.WatchlistResult]
	CreditScoreCall  = domain.Call[domain.CreditScoreResult]
	CertInitCall     = domain.Call[domain.CertInitResult]
	CertQueryCall    = domain.Call[domain.CertQueryResult]
	RawCall          = domain.Call[map[string]any]
)

// Re-export protocol constants.
const (
	SignTypeRSA          = domain.SignTypeRSA
	SignTypeRSA2         = domain.SignTypeRSA2
	ChannelH5            = domain.ChannelH5
	CertTypeIdentityCard = domain.CertTypeIdentityCard
)

// Re-export the method catalogue.
var (
	MethodAuthorize         = domain.MethodAuthorize
	MethodAntifraudVerify   = domain.MethodAntifraudVerify
	MethodAntifraudScore    = domain.MethodAntifraudScore
	MethodAntifraudRiskList = domain.MethodAntifraudRiskList
	MethodWatchlist         = domain.MethodWatchlist
	MethodCreditScore       = domain.MethodCreditScore
	MethodCertInit          = domain.MethodCertInit
	MethodCertQuery         = domain.MethodCertQuery
	MethodCertCertify       = domain.MethodCertCertify
	Catalogue               = domain.Catalogue
)

// Canonicalize renders params as the exact string that is signed.
var Canonicalize = domain.Canonicalize
