package substrate

import "context"

// Broadcaster is the chain-client surface a signed extrinsic needs to
// reach the network.
type Broadcaster interface {
	// Submit broadcasts the SCALE-encoded signed extrinsic.
	Submit(ctx context.Context, encoded []byte) error

	// WaitFinalized blocks until the extrinsic with the given hash is
	// included and finalized.
	WaitFinalized(ctx context.Context, hash string) error
}

// Signed is the default Submittable: it carries a SCALE-encoded signed
// extrinsic, reports the hash the network will assign it, and
// delegates broadcast to a Broadcaster.
type Signed struct {
	encoded     []byte
	hash        string
	broadcaster Broadcaster
}

// NewSigned wraps an encoded signed extrinsic for submission.
func NewSigned(encoded []byte, broadcaster Broadcaster) *Signed {
	return &Signed{
		encoded:     append([]byte(nil), encoded...),
		hash:        TxHash(encoded),
		broadcaster: broadcaster,
	}
}

// Hash returns the extrinsic hash the network will report.
func (s *Signed) Hash() string {
	return s.hash
}

// Submit broadcasts the extrinsic and returns its hash.
func (s *Signed) Submit(ctx context.Context) (string, error) {
	if err := s.broadcaster.Submit(ctx, s.encoded); err != nil {
		return "", err
	}
	return s.hash, nil
}

// WaitFinalized blocks until the extrinsic is finalized.
func (s *Signed) WaitFinalized(ctx context.Context) error {
	return s.broadcaster.WaitFinalized(ctx, s.hash)
}
