package transaction

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mrz1836/conduit/internal/chain/evm"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// signAndSendEvm runs the account-model submission pipeline: autofill,
// canonical hash payload, user approval, signature handling, broadcast.
// Failures before broadcast remove the record; failures after the hash
// is observed leave it in place to reach a terminal FAIL.
func (s *Service) signAndSendEvm(ctx context.Context, rec *Record) <-chan Event {
	events := make(chan Event, eventBuffer)

	go func() {
		defer close(events)

		// Work on a private copy: the record's payload is shared with
		// published snapshots and only the registry may replace it.
		payload := rec.Evm.Clone()
		info, _ := s.chains.Get(rec.Chain)

		client, ok := s.evmPool.Client(rec.Chain)
		if !ok {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.ErrChainDisconnected)
			return
		}

		// Autofill nonce, chain id and sender before signing.
		if payload.Nonce == 0 {
			nonce, err := client.TransactionCount(ctx, rec.Address)
			if err != nil {
				s.registry.Remove(rec.ID)
				emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSend, err))
				return
			}
			payload.Nonce = nonce
		}
		if payload.ChainID == nil {
			chainID := uint64(1)
			if info != nil && info.EvmChainID != 0 {
				chainID = info.EvmChainID
			}
			payload.ChainID = new(big.Int).SetUint64(chainID)
		}
		if payload.From == "" {
			payload.From = rec.Address
		}

		hashPayload, err := evm.HashPayload(payload)
		if err != nil {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSign, err))
			return
		}
		payload.HashPayload = hashPayload

		s.registry.Update(rec.ID, func(r *Record) {
			r.Evm = payload.Clone()
		})

		pair, _ := s.keyring.Pair(rec.Address)
		isExternal := pair != nil && pair.External

		decision, err := s.gateway.RequestApproval(ctx, rec.ID, rec.URL, ApprovalEvmSendTransaction, payload)
		if err != nil {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSign, err))
			return
		}
		if !decision.IsApproved {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithMessage(conduiterr.ErrUserRejectRequest, "user rejected"))
			return
		}
		if decision.Payload == "" {
			s.registry.Remove(rec.ID)
			emitError(events, rec.ID, conduiterr.WithMessage(conduiterr.ErrUnauthorized, "bad signature"))
			return
		}

		raw := decision.Payload
		if isExternal {
			// Externally managed accounts return a bare signature: merge
			// it with the unsigned payload and require the recovered
			// signer to match the sender.
			raw, err = s.mergeExternalSignature(payload, rec.Address, decision.Payload)
			if err != nil {
				s.registry.Remove(rec.ID)
				emitError(events, rec.ID, conduiterr.From(err))
				return
			}
		}

		hash, err := client.SendRaw(ctx, raw)
		if err != nil {
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrUnableToSend, err))
			return
		}
		emitHash(events, rec.ID, hash)

		if err := client.WaitReceipt(ctx, hash); err != nil {
			emitError(events, rec.ID, conduiterr.WithCause(conduiterr.ErrSendTransactionFailed, err))
			return
		}
		emitSuccess(events, rec.ID, hash)
	}()

	return events
}

// mergeExternalSignature combines an externally produced signature with
// the unsigned payload and verifies the recovered signer matches the
// sender, case-insensitively.
func (s *Service) mergeExternalSignature(payload *evm.Payload, sender, sigHex string) (string, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return "", conduiterr.WithMessage(conduiterr.ErrUnauthorized, "bad signature")
	}

	signed, err := evm.MergeSignature(payload, sig)
	if err != nil {
		return "", conduiterr.WithMessage(conduiterr.ErrUnauthorized, "bad signature")
	}

	recovered, err := evm.RecoverSender(signed)
	if err != nil || !strings.EqualFold(recovered, sender) {
		return "", conduiterr.WithMessage(conduiterr.ErrUnauthorized, "bad signature")
	}

	return evm.EncodeSigned(signed)
}
