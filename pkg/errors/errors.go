// Package errors provides structured error handling for Conduit.
// It defines the transaction error taxonomy as sentinel errors plus
// helpers for adding context and detail to them. Errors carry a
// machine-readable code so collaborators can react without string
// matching, and warnings are a separate, never-blocking type.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// TxError is the structured error type for transaction orchestration.
type TxError struct {
	Code    string            // Machine-readable error code
	Message string            // Human-readable message
	Details map[string]string // Additional context
	Cause   error             // Underlying error
}

func (e *TxError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TxError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for TxError. Two TxErrors match when their
// codes match, so wrapped copies still compare equal to the sentinel.
func (e *TxError) Is(target error) bool {
	var t *TxError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Validation-time sentinel errors.
var (
	ErrDuplicateTransaction = &TxError{
		Code:    "DUPLICATE_TRANSACTION",
		Message: "another transaction for this account and chain is in flight",
	}

	ErrUnsupported = &TxError{
		Code:    "UNSUPPORTED",
		Message: "transaction payload is missing or unsupported",
	}

	ErrChainDisconnected = &TxError{
		Code:    "CHAIN_DISCONNECTED",
		Message: "chain RPC endpoint is unreachable",
	}

	ErrNotEnoughBalance = &TxError{
		Code:    "NOT_ENOUGH_BALANCE",
		Message: "balance does not cover transfer amount and fee",
	}

	ErrInternal = &TxError{
		Code:    "INTERNAL_ERROR",
		Message: "internal error",
	}
)

// Submission-time sentinel errors.
var (
	ErrUnauthorized = &TxError{
		Code:    "UNAUTHORIZED",
		Message: "bad signature",
	}

	ErrUserRejectRequest = &TxError{
		Code:    "USER_REJECT_REQUEST",
		Message: "user rejected the request",
	}

	ErrUnableToSign = &TxError{
		Code:    "UNABLE_TO_SIGN",
		Message: "unable to sign transaction",
	}

	ErrUnableToSend = &TxError{
		Code:    "UNABLE_TO_SEND",
		Message: "unable to send transaction",
	}

	ErrSendTransactionFailed = &TxError{
		Code:    "SEND_TRANSACTION_FAILED",
		Message: "transaction failed to send",
	}
)

// Warning codes.
const (
	WarningNotEnoughExistentialDeposit = "NOT_ENOUGH_EXISTENTIAL_DEPOSIT"
)

// Warning is a non-blocking caution attached to a validation result.
type Warning struct {
	Code    string
	Message string
}

func (w *Warning) String() string {
	if w.Message == "" {
		return w.Code
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// NewWarning creates a warning with the given code and message.
func NewWarning(code, message string) *Warning {
	return &Warning{Code: code, Message: message}
}

// New creates a new TxError with the given code and message.
func New(code, message string) *TxError {
	return &TxError{Code: code, Message: message}
}

// WithMessage returns a copy of err carrying a more specific message.
// The code is preserved so errors.Is against the sentinel still holds.
func WithMessage(err *TxError, message string) *TxError {
	return &TxError{
		Code:    err.Code,
		Message: message,
		Details: err.Details,
		Cause:   err.Cause,
	}
}

// WithCause returns a copy of err with cause attached as the underlying error.
func WithCause(err *TxError, cause error) *TxError {
	return &TxError{
		Code:    err.Code,
		Message: err.Message,
		Details: err.Details,
		Cause:   cause,
	}
}

// WithDetails returns a copy of err with the detail map attached.
func WithDetails(err *TxError, details map[string]string) *TxError {
	return &TxError{
		Code:    err.Code,
		Message: err.Message,
		Details: details,
		Cause:   err.Cause,
	}
}

// Wrap wraps an arbitrary error with additional context. If err is
// already a TxError its code survives; otherwise the result carries
// the INTERNAL_ERROR code.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var te *TxError
	if errors.As(err, &te) {
		return &TxError{
			Code:    te.Code,
			Message: fmt.Sprintf("%s: %s", msg, te.Message),
			Details: te.Details,
			Cause:   err,
		}
	}

	return &TxError{
		Code:    ErrInternal.Code,
		Message: msg,
		Cause:   err,
	}
}

// Code returns the error code for an error.
func Code(err error) string {
	var te *TxError
	if errors.As(err, &te) {
		return te.Code
	}
	return ErrInternal.Code
}

// From converts an arbitrary error into a TxError, reusing it when it
// already is one.
func From(err error) *TxError {
	if err == nil {
		return nil
	}
	var te *TxError
	if errors.As(err, &te) {
		return te
	}
	return &TxError{
		Code:    ErrInternal.Code,
		Message: err.Error(),
		Cause:   err,
	}
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
