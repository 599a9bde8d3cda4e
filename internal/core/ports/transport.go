package ports

import (
	"context"

	"github.com/philiph/zmxy/internal/core/domain"
)

// Transport performs one HTTP round trip. Errors are returned to the caller
// of the business method unmodified, so implementations should return
// whatever their HTTP stack reports.
type Transport interface {
	Do(ctx context.Context, req *domain.OutboundRequest) (*domain.Exchange, error)
}

// TransactionIDGenerator produces a fresh, unique transaction id per call.
// Implementations must be safe for concurrent use.
type TransactionIDGenerator interface {
	Next() string
}
