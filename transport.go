package zmxy

import (
	"github.com/philiph/zmxy/internal/adapters/driven/transport"
	"github.com/philiph/zmxy/internal/adapters/driven/txid"
	"github.com/philiph/zmxy/internal/core/ports"
)

// Re-export transport ports
type Transport = ports.Transport
type TransactionIDGenerator = ports.TransactionIDGenerator

// Re-export the default adapters and their options
type TransportOption = transport.Option

var (
	NewRestyTransport   = transport.NewRestyTransport
	WithTimeout         = transport.WithTimeout
	WithHTTPClient      = transport.WithHTTPClient
	WithUserAgent       = transport.WithUserAgent
	WithTransportLogger = transport.WithLogger
	NewUUIDGenerator    = txid.NewUUIDGenerator
)
