package transaction

import (
	"context"
	"math/big"

	"github.com/mrz1836/conduit/internal/chain/evm"
)

// Oracle supplies the balance and fee data the validator needs. Both
// calls may fail with a connectivity error; implementations should
// return chain.ErrChainDisconnected-compatible errors (see
// pkg/errors.ErrChainDisconnected) when the chain's RPC endpoint is
// unreachable.
type Oracle interface {
	// GetFreeBalance returns the transferable native-token balance for
	// the address, in base units.
	GetFreeBalance(ctx context.Context, chainSlug, address string) (*big.Int, error)

	// EstimateFee estimates the fee for the pending account-model
	// payload, in base units (gas limit × gas price).
	EstimateFee(ctx context.Context, chainSlug string, payload *evm.Payload) (*big.Int, error)
}

// ApprovalKind tells the gateway what it is presenting for approval.
type ApprovalKind string

// Approval kinds.
const (
	ApprovalEvmSendTransaction ApprovalKind = "evmSendTransaction"
)

// ApprovalDecision is the gateway's resolution of an approval request.
type ApprovalDecision struct {
	IsApproved bool

	// Payload is the signing material returned on approval: a raw
	// signed transaction (hex) for locally managed accounts, or a
	// 65-byte signature (hex) for externally managed accounts.
	Payload string
}

// ApprovalGateway presents pending actions to a human approver. Both
// calls suspend until the approver resolves and resolve exactly once.
type ApprovalGateway interface {
	// RequestApproval asks for approval of a full transaction payload.
	RequestApproval(ctx context.Context, id, url string, kind ApprovalKind, payload any) (*ApprovalDecision, error)

	// RequestSignature asks an external signer for a signature over the
	// unsigned payload bytes on behalf of address.
	RequestSignature(ctx context.Context, id, url, address string, payload []byte) ([]byte, error)
}

// Notifier receives terminal lifecycle notifications. Fire and forget.
type Notifier interface {
	Notify(title, body, link string)
}

// EvmClient is the chain-family RPC surface the account-model pipeline
// and oracle need.
type EvmClient interface {
	// GasPrice returns the current gas price in base units.
	GasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas estimates the gas limit for the payload.
	EstimateGas(ctx context.Context, payload *evm.Payload) (uint64, error)

	// Balance returns the native balance of address in base units.
	Balance(ctx context.Context, address string) (*big.Int, error)

	// TransactionCount returns the sender's current nonce.
	TransactionCount(ctx context.Context, address string) (uint64, error)

	// SendRaw broadcasts a raw signed transaction and returns its hash
	// once the network accepts it.
	SendRaw(ctx context.Context, raw string) (string, error)

	// WaitReceipt blocks until the transaction is mined and returns an
	// error when it reverted or was dropped.
	WaitReceipt(ctx context.Context, hash string) error
}

// EvmClientPool resolves the RPC client for an EVM chain. A missing
// client means the chain is disconnected.
type EvmClientPool interface {
	Client(chainSlug string) (EvmClient, bool)
}

// LogWriter provides logging operations.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
