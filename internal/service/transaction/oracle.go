package transaction

import (
	"context"
	"math/big"

	"github.com/mrz1836/conduit/internal/chain"
	"github.com/mrz1836/conduit/internal/chain/evm"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// PoolOracle answers balance and fee queries from an EVM client pool,
// with an optional fallback oracle for chains the pool does not serve.
type PoolOracle struct {
	pool     EvmClientPool
	fallback Oracle
	retry    chain.RetryConfig
}

// NewPoolOracle builds a PoolOracle over the given client pool. The
// fallback oracle may be nil, in which case chains without a pooled
// client report as disconnected.
func NewPoolOracle(pool EvmClientPool, fallback Oracle) *PoolOracle {
	return &PoolOracle{
		pool:     pool,
		fallback: fallback,
		retry:    chain.DefaultRetryConfig(),
	}
}

// GetFreeBalance reports the transferable balance for address on the
// given chain.
func (o *PoolOracle) GetFreeBalance(ctx context.Context, chainSlug, address string) (*big.Int, error) {
	client, ok := o.pool.Client(chainSlug)
	if !ok {
		if o.fallback != nil {
			return o.fallback.GetFreeBalance(ctx, chainSlug, address)
		}
		return nil, conduiterr.WithDetails(conduiterr.ErrChainDisconnected, map[string]string{"chain": chainSlug})
	}

	return chain.RetryWithConfig(ctx, o.retry, func() (*big.Int, error) {
		return client.Balance(ctx, address)
	})
}

// EstimateFee prices the payload as gas price times gas limit,
// estimating the limit when the caller left it unset.
func (o *PoolOracle) EstimateFee(ctx context.Context, chainSlug string, payload *evm.Payload) (*big.Int, error) {
	client, ok := o.pool.Client(chainSlug)
	if !ok {
		if o.fallback != nil {
			return o.fallback.EstimateFee(ctx, chainSlug, payload)
		}
		return nil, conduiterr.WithDetails(conduiterr.ErrChainDisconnected, map[string]string{"chain": chainSlug})
	}

	gasPrice := payload.GasPrice
	if gasPrice == nil || gasPrice.Sign() == 0 {
		price, err := chain.RetryWithConfig(ctx, o.retry, func() (*big.Int, error) {
			return client.GasPrice(ctx)
		})
		if err != nil {
			return nil, err
		}
		gasPrice = price
	}

	gasLimit := payload.GasLimit
	if gasLimit == 0 {
		limit, err := client.EstimateGas(ctx, payload)
		if err != nil {
			return nil, err
		}
		gasLimit = limit
	}

	return new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit)), nil
}

// RateLimitedOracle caps query throughput per chain before delegating.
type RateLimitedOracle struct {
	next    Oracle
	limiter *chain.RateLimiter
}

// NewRateLimitedOracle wraps next with a per-chain rate limiter. A nil
// limiter gets the default limits.
func NewRateLimitedOracle(next Oracle, limiter *chain.RateLimiter) *RateLimitedOracle {
	if limiter == nil {
		limiter = chain.DefaultRateLimiter()
	}
	return &RateLimitedOracle{next: next, limiter: limiter}
}

// GetFreeBalance waits for rate-limit clearance, then delegates.
func (o *RateLimitedOracle) GetFreeBalance(ctx context.Context, chainSlug, address string) (*big.Int, error) {
	if err := o.limiter.Wait(ctx, chainSlug); err != nil {
		return nil, err
	}
	return o.next.GetFreeBalance(ctx, chainSlug, address)
}

// EstimateFee waits for rate-limit clearance, then delegates.
func (o *RateLimitedOracle) EstimateFee(ctx context.Context, chainSlug string, payload *evm.Payload) (*big.Int, error) {
	if err := o.limiter.Wait(ctx, chainSlug); err != nil {
		return nil, err
	}
	return o.next.EstimateFee(ctx, chainSlug, payload)
}
