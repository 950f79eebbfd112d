package evm

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// signatureLength is the r || s || v encoding produced by secp256k1 signers.
const signatureLength = 65

// MergeSignature applies an externally produced signature to the
// unsigned payload and returns the signed transaction. The signature
// must be 65 bytes (r, s, recovery id) over the EIP-155 signing hash.
func MergeSignature(p *Payload, sig []byte) (*types.Transaction, error) {
	if len(sig) != signatureLength {
		return nil, conduiterr.WithMessage(conduiterr.ErrUnauthorized,
			"signature must be 65 bytes")
	}
	if p.ChainID == nil {
		return nil, conduiterr.WithMessage(conduiterr.ErrUnauthorized,
			"chain id is required to merge a signature")
	}

	signer := types.NewEIP155Signer(p.ChainID)
	return p.Tx().WithSignature(signer, sig)
}

// RecoverSender recovers the address that signed tx.
func RecoverSender(tx *types.Transaction) (string, error) {
	signer := types.NewEIP155Signer(tx.ChainId())
	addr, err := types.Sender(signer, tx)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// EncodeSigned serializes a signed transaction to its raw hex form for
// broadcast.
func EncodeSigned(tx *types.Transaction) (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(raw), nil
}

// DecodeSigned parses a raw hex-encoded signed transaction.
func DecodeSigned(raw string) (*types.Transaction, error) {
	data, err := hexutil.Decode(raw)
	if err != nil {
		return nil, err
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return tx, nil
}
