package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

// hashPayload is the canonical unsigned-transaction list:
// [nonce, gasPrice, gasLimit, to, value, data, chainId, 0x00, 0x00].
// The two trailing zero bytes are placeholders for the signature
// components, matching the encoding external signers verify against.
type hashPayload struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       []byte
	Value    *big.Int
	Data     []byte
	ChainID  uint64
	R        []byte
	S        []byte
}

// HashPayload returns the hex-encoded RLP of the canonical unsigned
// transaction. The encoding is a pure function of the payload fields.
func HashPayload(p *Payload) (string, error) {
	var to []byte
	if p.To != "" {
		to = common.HexToAddress(p.To).Bytes()
	}

	var chainID uint64
	if p.ChainID != nil {
		chainID = p.ChainID.Uint64()
	}

	encoded, err := rlp.EncodeToBytes(&hashPayload{
		Nonce:    p.Nonce,
		GasPrice: p.GasPrice,
		GasLimit: p.GasLimit,
		To:       to,
		Value:    p.Value,
		Data:     p.Data,
		ChainID:  chainID,
		R:        []byte{0x00},
		S:        []byte{0x00},
	})
	if err != nil {
		return "", err
	}

	return hexutil.Encode(encoded), nil
}
