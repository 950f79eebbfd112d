// Package transaction implements the transaction orchestration core:
// validating a candidate transaction, recording it, dispatching it to
// the chain-family signing and broadcast path, and tracking its
// lifecycle to a terminal state while publishing registry snapshots
// for other subsystems.
package transaction

import (
	"context"
	"fmt"

	"github.com/mrz1836/conduit/internal/chain"
	"github.com/mrz1836/conduit/internal/keyring"
	"github.com/mrz1836/conduit/internal/metrics"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// Service orchestrates outbound transactions.
type Service struct {
	chains   *chain.Registry
	oracle   Oracle
	gateway  ApprovalGateway
	notifier Notifier
	keyring  keyring.Keyring
	evmPool  EvmClientPool
	registry *Registry
	logger   LogWriter
}

// Config holds dependencies for the transaction service.
type Config struct {
	Chains   *chain.Registry
	Oracle   Oracle
	Gateway  ApprovalGateway
	Notifier Notifier
	Keyring  keyring.Keyring
	EvmPool  EvmClientPool
	Logger   LogWriter
}

// NewService creates a new transaction service with an empty registry.
func NewService(cfg *Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Service{
		chains:   cfg.Chains,
		oracle:   cfg.Oracle,
		gateway:  cfg.Gateway,
		notifier: cfg.Notifier,
		keyring:  cfg.Keyring,
		evmPool:  cfg.EvmPool,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Handle is the orchestration entry point. It validates the candidate
// and, when nothing blocks, records it and dispatches it to the chain
// family's submission pipeline. The call resolves on the first of
// hash-observed or error; the rest of the lifecycle continues
// asynchronously and is observable through the registry snapshots.
func (s *Service) Handle(ctx context.Context, in *Input) *Response {
	resp := s.GeneralValidate(ctx, in)
	metrics.Global.RecordValidation(resp.Blocked())
	if resp.Blocked() {
		return resp
	}

	rec := s.newRecord(resp)
	resp.ID = rec.ID

	s.registry.Create(rec)
	s.logger.Debug("transaction %s created for %s on %s", rec.ID, rec.Address, rec.Chain)

	events := s.send(ctx, rec)

	for ev := range events {
		if ev.Kind == EventHashObserved {
			resp.ExtrinsicHash = ev.ExtrinsicHash
			break
		}
		if ev.Kind == EventError && len(ev.Errors) > 0 {
			resp.Errors = append(resp.Errors, ev.Errors...)
			break
		}
	}

	return resp
}

// GetTransaction returns the record for id.
func (s *Service) GetTransaction(id string) (*Record, bool) {
	return s.registry.Get(id)
}

// Registry exposes the record store for snapshot subscribers.
func (s *Service) Registry() *Registry {
	return s.registry
}

// send dispatches the record to its chain-family pipeline and mirrors
// the pipeline's events into the registry before forwarding them to
// the caller. The returned channel is buffered so a caller that stops
// reading after the first event never blocks the lifecycle.
func (s *Service) send(ctx context.Context, rec *Record) <-chan Event {
	var pipeline <-chan Event
	if rec.ChainType == chain.FamilySubstrate {
		pipeline = s.signAndSendSubstrate(ctx, rec)
	} else {
		pipeline = s.signAndSendEvm(ctx, rec)
	}

	out := make(chan Event, eventBuffer)
	go func() {
		defer close(out)
		for ev := range pipeline {
			switch ev.Kind {
			case EventHashObserved:
				s.onHashObserved(ev)
			case EventSuccess:
				s.onSuccess(ev)
			case EventError:
				// Every failure carries a chain-agnostic marker in
				// addition to its specific cause.
				failed := ev
				failed.Errors = append(append([]*conduiterr.TxError(nil), ev.Errors...),
					conduiterr.ErrInternal)
				s.onFailed(failed)
			}
			out <- ev
		}
	}()
	return out
}

func (s *Service) onHashObserved(ev Event) {
	s.registry.Update(ev.ID, func(rec *Record) {
		rec.Status = StatusProcessing
		rec.ExtrinsicHash = ev.ExtrinsicHash
	})
	s.logger.Debug("transaction %s submitted with hash %s", ev.ID, ev.ExtrinsicHash)
}

func (s *Service) onSuccess(ev Event) {
	rec, ok := s.registry.Get(ev.ID)
	if !ok {
		return
	}

	s.registry.Update(ev.ID, func(r *Record) {
		r.Status = StatusSuccess
	})
	s.logger.Debug("transaction %s completed with hash %s", ev.ID, rec.ExtrinsicHash)
	metrics.Global.RecordSubmission(false)

	body := fmt.Sprintf("Transaction %s completed", rec.ExtrinsicHash)
	if fee := s.formatFee(rec); fee != "" {
		body = fmt.Sprintf("%s, fee %s", body, fee)
	}

	metrics.Global.RecordNotification()
	s.notifier.Notify("Transaction completed", body, s.transactionLink(ev.ID))
}

func (s *Service) onFailed(ev Event) {
	metrics.Global.RecordSubmission(true)

	rec, ok := s.registry.Get(ev.ID)
	if !ok {
		// Rejected before broadcast; the pipeline already removed it.
		s.logger.Error("transaction %s failed before broadcast: %v", ev.ID, ev.Errors)
		return
	}

	s.registry.Update(ev.ID, func(r *Record) {
		r.Status = StatusFail
		r.Errors = append(r.Errors, ev.Errors...)
	})
	s.logger.Error("transaction %s failed with hash %q: %v", ev.ID, rec.ExtrinsicHash, ev.Errors)

	metrics.Global.RecordNotification()
	s.notifier.Notify("Transaction failed",
		fmt.Sprintf("Transaction %s failed", rec.ExtrinsicHash),
		s.transactionLink(ev.ID))
}

// formatFee renders the record's estimated fee in display units with
// the chain's symbol, or "" when there is nothing meaningful to show.
func (s *Service) formatFee(rec *Record) string {
	fee := rec.EstimateFee
	amount, err := chain.ParseBaseAmount(fee.Value)
	if err != nil || amount.Sign() == 0 {
		return ""
	}

	out := chain.FormatDecimalAmount(amount, fee.Decimals)
	if fee.Symbol != "" {
		out += " " + fee.Symbol
	}
	return out
}

// transactionLink builds the explorer link for a record's hash, or ""
// when the chain has no explorer configured.
func (s *Service) transactionLink(id string) string {
	rec, ok := s.registry.Get(id)
	if !ok {
		return ""
	}
	info, ok := s.chains.Get(rec.Chain)
	if !ok {
		return ""
	}
	return info.TxLink(rec.ExtrinsicHash)
}

// nopLogger discards all output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
