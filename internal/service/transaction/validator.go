package transaction

import (
	"context"
	"fmt"
	"math/big"

	"github.com/mrz1836/conduit/internal/chain"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// GeneralValidate runs the full validation sequence over a candidate
// and returns the accumulated result. Checks never short-circuit:
// every failed check appends to the error or warning list so the
// caller sees all problems at once. The only exception is fee
// estimation, which is skipped when no payload was supplied.
func (s *Service) GeneralValidate(ctx context.Context, in *Input) *Response {
	resp := &Response{
		Input:    *in,
		Errors:   append([]*conduiterr.TxError(nil), in.Errors...),
		Warnings: append([]*conduiterr.Warning(nil), in.Warnings...),
	}

	// Duplicate check is advisory here: it accumulates alongside the
	// other checks rather than aborting, so the caller gets the full
	// picture in one pass.
	if s.hasInFlight(in.Address, in.Chain) {
		resp.appendError(conduiterr.ErrDuplicateTransaction)
	}

	if !in.HasPayload() {
		resp.appendError(conduiterr.ErrUnsupported)
	}

	info, chainKnown := s.chains.Get(in.Chain)
	if !chainKnown {
		msg := fmt.Sprintf("can't find network %q", in.Chain)
		if suggestion := s.chains.Suggest(in.Chain); suggestion != "" {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
		}
		resp.appendError(conduiterr.WithMessage(conduiterr.ErrInternal, msg))
	}

	fee := FeeInfo{Value: "0"}
	if chainKnown {
		fee.Decimals = info.Decimals
		fee.Symbol = info.Symbol
	}

	if in.HasPayload() {
		s.estimateFee(ctx, in, resp, &fee)
	}
	resp.EstimateFee = fee

	// Account legitimacy.
	pair, ok := s.keyring.Pair(in.Address)
	switch {
	case !ok:
		resp.appendError(conduiterr.WithMessage(conduiterr.ErrInternal, "can't find account"))
	case pair.ReadOnly:
		resp.appendError(conduiterr.WithMessage(conduiterr.ErrInternal, "this is a read-only account"))
	}

	s.checkBalance(ctx, in, resp, info, fee.Value)

	if in.AdditionalValidator != nil {
		in.AdditionalValidator(ctx, resp)
	}

	return resp
}

// hasInFlight reports whether another transaction for the same
// (address, chain) pair is pending or processing. The read is racy by
// design: mutual exclusion comes from the registry, not the validator.
func (s *Service) hasInFlight(address, chainSlug string) bool {
	for _, rec := range s.registry.ListInFlight() {
		if rec.Address == address && rec.Chain == chainSlug {
			return true
		}
	}
	return false
}

// estimateFee fills fee.Value by the chain family's mechanism: the
// extrinsic's own payment info for the balance-extrinsic model, gas
// price × gas limit via the oracle for the account model.
func (s *Service) estimateFee(ctx context.Context, in *Input, resp *Response, fee *FeeInfo) {
	if in.Extrinsic != nil {
		partialFee, err := in.Extrinsic.PaymentInfo(ctx, in.Address)
		if err != nil {
			resp.appendError(conduiterr.WithCause(
				conduiterr.WithMessage(conduiterr.ErrInternal, "estimating extrinsic fee"), err))
			return
		}
		fee.Value = partialFee.String()
		return
	}

	estimated, err := s.oracle.EstimateFee(ctx, in.Chain, in.Evm)
	if err != nil {
		if conduiterr.Is(err, conduiterr.ErrChainDisconnected) {
			resp.appendError(conduiterr.ErrChainDisconnected)
		} else {
			resp.appendError(conduiterr.WithCause(
				conduiterr.WithMessage(conduiterr.ErrInternal, "estimating fee"), err))
		}
		return
	}
	fee.Value = estimated.String()
}

// checkBalance verifies transfer + fee <= balance on arbitrary-
// precision integers and appends the existential-deposit warning when
// the remainder would drop below the chain's minimum.
func (s *Service) checkBalance(ctx context.Context, in *Input, resp *Response, info *chain.Info, feeValue string) {
	transfer, err := chain.ParseBaseAmount(in.TransferNativeAmount)
	if err != nil {
		resp.appendError(conduiterr.WithMessage(conduiterr.ErrInternal,
			fmt.Sprintf("invalid transfer amount %q", in.TransferNativeAmount)))
		return
	}

	fee, err := chain.ParseBaseAmount(feeValue)
	if err != nil {
		fee = new(big.Int)
	}

	balance, err := s.oracle.GetFreeBalance(ctx, in.Chain, in.Address)
	if err != nil {
		if conduiterr.Is(err, conduiterr.ErrChainDisconnected) {
			resp.appendError(conduiterr.ErrChainDisconnected)
		} else {
			resp.appendError(conduiterr.WithCause(
				conduiterr.WithMessage(conduiterr.ErrInternal, "fetching free balance"), err))
		}
		return
	}

	ed := new(big.Int)
	if info != nil && info.ExistentialDeposit != "" {
		if parsed, edErr := chain.ParseBaseAmount(info.ExistentialDeposit); edErr == nil {
			ed = parsed
		}
	}

	required := new(big.Int).Add(transfer, fee)
	if required.Cmp(balance) > 0 {
		resp.appendError(conduiterr.WithDetails(conduiterr.ErrNotEnoughBalance, map[string]string{
			"required":  required.String(),
			"available": balance.String(),
		}))
		return
	}

	remainder := new(big.Int).Sub(balance, required)
	if remainder.Cmp(ed) < 0 {
		resp.appendWarning(conduiterr.NewWarning(
			conduiterr.WarningNotEnoughExistentialDeposit,
			fmt.Sprintf("remaining balance %s is below the existential deposit %s",
				remainder.String(), ed.String()),
		))
	}
}
