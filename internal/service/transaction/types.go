package transaction

import (
	"context"
	"time"

	"github.com/mrz1836/conduit/internal/chain"
	"github.com/mrz1836/conduit/internal/chain/evm"
	"github.com/mrz1836/conduit/internal/chain/substrate"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// Status is the lifecycle state of a transaction record.
type Status string

// Lifecycle states. Pending and Processing are in-flight; Success and
// Fail are terminal and never transition again.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFail       Status = "fail"
)

// InFlight returns true while the record can still change state.
func (s Status) InFlight() bool {
	return s == StatusPending || s == StatusProcessing
}

// Terminal returns true for states that never transition again.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFail
}

// FeeInfo carries an estimated fee in base units plus the display
// metadata of the chain's native token.
type FeeInfo struct {
	Value    string
	Decimals int
	Symbol   string
}

// Input is a candidate transaction submitted to the orchestration
// entry point. Exactly one of Evm or Extrinsic carries the payload.
type Input struct {
	Address   string
	Chain     string
	ChainType chain.Family

	// URL is the requesting origin; empty for wallet-initiated
	// transactions.
	URL string

	// TransferNativeAmount is the declared native transfer in base
	// units as a decimal string; empty means "0".
	TransferNativeAmount string

	// IgnoreWarnings lets the caller proceed despite non-empty
	// warnings. Errors are never ignorable.
	IgnoreWarnings bool

	Evm       *evm.Payload
	Extrinsic substrate.Extrinsic

	// Data is opaque caller context carried on the record.
	Data any

	// AdditionalValidator, when set, runs after the built-in checks and
	// may append further errors or warnings to the response.
	AdditionalValidator func(ctx context.Context, resp *Response)

	// Pre-seeded errors and warnings from earlier request handling.
	Errors   []*conduiterr.TxError
	Warnings []*conduiterr.Warning
}

// HasPayload returns true when the candidate carries a transaction
// body for either chain family.
func (in *Input) HasPayload() bool {
	return in.Evm != nil || in.Extrinsic != nil
}

// Response is the validation result returned to the caller. It is
// ephemeral: either rejected, or folded into a Record by Handle.
type Response struct {
	Input

	Errors   []*conduiterr.TxError
	Warnings []*conduiterr.Warning

	EstimateFee FeeInfo

	// ExtrinsicHash is populated by Handle once the network accepts
	// the broadcast.
	ExtrinsicHash string

	// ID is the registry id assigned by Handle; empty when the
	// candidate was rejected.
	ID string
}

// Blocked reports whether the response stops the transaction: any
// error always blocks, warnings block unless the caller opted in.
func (r *Response) Blocked() bool {
	return len(r.Errors) > 0 || (len(r.Warnings) > 0 && !r.IgnoreWarnings)
}

func (r *Response) appendError(err *conduiterr.TxError) {
	r.Errors = append(r.Errors, err)
}

func (r *Response) appendWarning(w *conduiterr.Warning) {
	r.Warnings = append(r.Warnings, w)
}

// ErrorResponse builds a rejected response carrying the given errors,
// for failures detected before validation could run.
func ErrorResponse(errs ...*conduiterr.TxError) *Response {
	return &Response{Errors: errs}
}

// Record is one outbound transaction attempt tracked by the registry.
// Records are treated as immutable once published in a snapshot;
// mutation happens only through Registry.Update, which replaces the
// stored record with an updated copy.
type Record struct {
	ID        string
	Address   string
	Chain     string
	ChainType chain.Family
	URL       string

	// IsInternal is true when no external requesting origin is
	// attached (wallet-initiated rather than dApp-initiated).
	IsInternal bool

	Status Status

	// ExtrinsicHash is empty at creation and set exactly once when the
	// network accepts the broadcast.
	ExtrinsicHash string

	Evm       *evm.Payload
	Extrinsic substrate.Extrinsic
	Data      any

	EstimateFee FeeInfo

	Errors   []*conduiterr.TxError
	Warnings []*conduiterr.Warning

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InFlight returns true while the record occupies its (address, chain)
// slot.
func (r *Record) InFlight() bool {
	return r.Status.InFlight()
}

// clone returns a copy with its own error and warning slices and its
// own payload, so stored records can be replaced without mutating
// published snapshots.
func (r *Record) clone() *Record {
	c := *r
	c.Evm = r.Evm.Clone()
	c.Errors = append([]*conduiterr.TxError(nil), r.Errors...)
	c.Warnings = append([]*conduiterr.Warning(nil), r.Warnings...)
	return &c
}
