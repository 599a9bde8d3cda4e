package zmxy

import (
	"github.com/philiph/zmxy/internal/adapters/driven/signature"
	"github.com/philiph/zmxy/internal/core/ports"
)

// Re-export signature ports
type Signer = ports.Signer
type Verifier = ports.Verifier

// Re-export key helpers and signature adapters
var (
	ParsePrivateKey  = signature.ParsePrivateKey
	ParsePublicKey   = signature.ParsePublicKey
	EncodePrivateKey = signature.EncodePrivateKey
	EncodePublicKey  = signature.EncodePublicKey
	NewRSASigner     = signature.NewRSASigner
	NewRSAVerifier   = signature.NewRSAVerifier
)
