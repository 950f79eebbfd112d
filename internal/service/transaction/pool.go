package transaction

import "github.com/mrz1836/conduit/internal/chain/evm"

// poolAdapter exposes a concrete evm.Pool through the EvmClientPool
// interface.
type poolAdapter struct {
	pool *evm.Pool
}

// NewEvmClientPool adapts an evm.Pool for service wiring.
func NewEvmClientPool(pool *evm.Pool) EvmClientPool {
	return poolAdapter{pool: pool}
}

func (a poolAdapter) Client(chainSlug string) (EvmClient, bool) {
	client, ok := a.pool.Client(chainSlug)
	if !ok {
		return nil, false
	}
	return client, true
}
