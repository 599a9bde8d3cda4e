package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/philiph/zmxy/internal/core/domain"
	"github.com/philiph/zmxy/internal/core/ports"
)

// call performs one signed round trip for m and decodes a successful result
// into T. A business failure is returned on the Call, not as an error.
func call[T any](ctx context.Context, c *Client, m domain.Method, params domain.Params) (*domain.Call[T], error) {
	start := time.Now()
	out, err := roundTrip[T](ctx, c, m, params)

	outcome := ports.OutcomeSuccess
	switch {
	case err != nil:
		outcome = outcomeOf(err)
	case out.BusinessError != nil:
		outcome = ports.OutcomeBusinessError
	}
	elapsed := time.Since(start)
	c.metrics.RecordCall(m.Name, outcome, elapsed)

	fields := []zap.Field{
		zap.String("method", m.Name),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	}
	if out != nil && out.BusinessError != nil {
		fields = append(fields, zap.String("error_code", out.BusinessError.Code))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.logger.Info("provider call completed", fields...)

	return out, err
}

func roundTrip[T any](ctx context.Context, c *Client, m domain.Method, params domain.Params) (*domain.Call[T], error) {
	if !m.Signed() {
		return nil, domain.ValidationError(m.Name + " is a redirect method and cannot be called directly")
	}

	params = params.Clone()
	params[domain.ParamProductCode] = m.ProductCode
	txID := c.txids.Next()
	params[domain.ParamTransactionID] = txID
	if err := m.Check(params); err != nil {
		return nil, err
	}

	env, err := c.envelope(m.Name, params)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("request envelope built",
		zap.String("method", m.Name),
		zap.String("transaction_id", txID),
		zap.Bool("encrypted", env.Encrypted))

	req := c.outbound(env)
	ex, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := c.process(m.Name, ex)
	if err != nil {
		return nil, err
	}

	out := &domain.Call[T]{Params: params, Request: ex, Result: result}
	if be := result.BusinessError(); be != nil {
		out.BusinessError = be
		return out, nil
	}

	var data T
	if err := result.Decode(&data); err != nil {
		return nil, err
	}
	out.Data = &data
	return out, nil
}
