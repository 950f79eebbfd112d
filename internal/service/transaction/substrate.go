package transaction

import (
	"context"

	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// signAndSendSubstrate runs the balance-extrinsic submission pipeline:
// remote signature via the approval gateway, apply, submit, watch.
// Failures before the hash is observed remove the record; afterwards
// the record stays and reaches a terminal FAIL instead.
func (s *Service) signAndSendSubstrate(ctx context.Context, rec *Record) <-chan Event {
	events := make(chan Event, eventBuffer)

	go func() {
		defer close(events)

		ext := rec.Extrinsic

		signature, err := s.gateway.RequestSignature(ctx, rec.ID, rec.URL, rec.Address, ext.SignerPayload())
		if err != nil {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSend, err))
			return
		}

		submittable, err := ext.WithSignature(signature)
		if err != nil {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSend, err))
			return
		}

		hash, err := submittable.Submit(ctx)
		if err != nil {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrSendTransactionFailed, err))
			return
		}
		emitHash(events, rec.ID, hash)

		if err := submittable.WaitFinalized(ctx); err != nil {
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrSendTransactionFailed, err))
			return
		}
		emitSuccess(events, rec.ID, hash)
	}()

	return events
}
