// Package evm models account/nonce (EVM-style) transaction payloads:
// the unsigned transaction body, its canonical hash payload used for
// external signature verification, and signature merge/recovery.
package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Payload is an unsigned account-model transaction. Zero Nonce, nil
// ChainID and empty From are treated as unset and auto-filled by the
// submission pipeline before signing.
type Payload struct {
	From     string
	To       string // empty for contract creation
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int

	// HashPayload is the hex-encoded canonical unsigned-transaction
	// encoding, populated by the pipeline before requesting approval so
	// external signers can verify what they are signing.
	HashPayload string
}

// Clone returns a deep copy of the payload. Records and snapshots hold
// payloads by pointer, so anything that fills fields in must work on
// its own copy.
func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	c := *p
	if p.GasPrice != nil {
		c.GasPrice = new(big.Int).Set(p.GasPrice)
	}
	if p.Value != nil {
		c.Value = new(big.Int).Set(p.Value)
	}
	if p.ChainID != nil {
		c.ChainID = new(big.Int).Set(p.ChainID)
	}
	c.Data = append([]byte(nil), p.Data...)
	return &c
}

// Tx builds the unsigned legacy transaction for this payload.
func (p *Payload) Tx() *types.Transaction {
	value := p.Value
	if value == nil {
		value = new(big.Int)
	}
	gasPrice := p.GasPrice
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}

	var to *common.Address
	if p.To != "" {
		addr := common.HexToAddress(p.To)
		to = &addr
	}

	return types.NewTx(&types.LegacyTx{
		Nonce:    p.Nonce,
		GasPrice: gasPrice,
		Gas:      p.GasLimit,
		To:       to,
		Value:    value,
		Data:     p.Data,
	})
}
