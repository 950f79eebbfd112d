package substrate

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/blake2b"
)

// TxHash computes the extrinsic hash for an encoded signed extrinsic:
// hex-encoded blake2b-256 over the SCALE-encoded bytes, the same digest
// substrate nodes report on submission.
func TxHash(encoded []byte) string {
	digest := blake2b.Sum256(encoded)
	return hexutil.Encode(digest[:])
}
