// Package substrate models balance/extrinsic (Substrate-style)
// transaction payloads. The extrinsic itself is prepared by a chain
// client outside this module; the orchestration core only needs the
// capabilities below to estimate its fee, have it signed remotely, and
// submit it.
package substrate

import (
	"context"
	"math/big"
)

// Extrinsic is a handle to an unsigned extrinsic.
type Extrinsic interface {
	// PaymentInfo returns the estimated partial fee for the given
	// sender, in base units of the chain's native token.
	PaymentInfo(ctx context.Context, address string) (*big.Int, error)

	// SignerPayload returns the bytes a remote signer must sign.
	SignerPayload() []byte

	// WithSignature applies a signature produced over SignerPayload and
	// returns the submittable form of the extrinsic.
	WithSignature(signature []byte) (Submittable, error)
}

// Submittable is a signed extrinsic ready for broadcast.
type Submittable interface {
	// Submit broadcasts the extrinsic and returns its hash once the
	// node accepts it.
	Submit(ctx context.Context) (hash string, err error)

	// WaitFinalized blocks until the extrinsic is included and
	// finalized per the network's semantics.
	WaitFinalized(ctx context.Context) error
}
