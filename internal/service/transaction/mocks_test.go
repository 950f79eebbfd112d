package transaction

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/mrz1836/conduit/internal/chain/evm"
	"github.com/mrz1836/conduit/internal/chain/substrate"
)

// mockOracle answers balance and fee queries from function fields.
type mockOracle struct {
	freeBalanceFunc func(ctx context.Context, chainSlug, address string) (*big.Int, error)
	estimateFeeFunc func(ctx context.Context, chainSlug string, payload *evm.Payload) (*big.Int, error)
}

func (m *mockOracle) GetFreeBalance(ctx context.Context, chainSlug, address string) (*big.Int, error) {
	if m.freeBalanceFunc != nil {
		return m.freeBalanceFunc(ctx, chainSlug, address)
	}
	return big.NewInt(1_000_000), nil
}

func (m *mockOracle) EstimateFee(ctx context.Context, chainSlug string, payload *evm.Payload) (*big.Int, error) {
	if m.estimateFeeFunc != nil {
		return m.estimateFeeFunc(ctx, chainSlug, payload)
	}
	return big.NewInt(5), nil
}

// mockGateway resolves approval and signature requests from function
// fields; the defaults approve with an opaque payload.
type mockGateway struct {
	approvalFunc  func(ctx context.Context, id, url string, kind ApprovalKind, payload any) (*ApprovalDecision, error)
	signatureFunc func(ctx context.Context, id, url, address string, payload []byte) ([]byte, error)
}

func (m *mockGateway) RequestApproval(ctx context.Context, id, url string, kind ApprovalKind, payload any) (*ApprovalDecision, error) {
	if m.approvalFunc != nil {
		return m.approvalFunc(ctx, id, url, kind, payload)
	}
	return &ApprovalDecision{IsApproved: true, Payload: "0xsigned"}, nil
}

func (m *mockGateway) RequestSignature(ctx context.Context, id, url, address string, payload []byte) ([]byte, error) {
	if m.signatureFunc != nil {
		return m.signatureFunc(ctx, id, url, address, payload)
	}
	return []byte("signature"), nil
}

// mockNotifier records notifications and signals each one on done so
// tests can wait for the asynchronous tail of a lifecycle.
type mockNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
	done   chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 4)}
}

func (m *mockNotifier) Notify(title, body, link string) {
	m.mu.Lock()
	m.titles = append(m.titles, title)
	m.bodies = append(m.bodies, body)
	m.mu.Unlock()
	m.done <- struct{}{}
}

func (m *mockNotifier) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}

func (m *mockNotifier) Bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bodies...)
}

// mockEvmClient implements EvmClient with function fields; defaults
// model a healthy node.
type mockEvmClient struct {
	gasPriceFunc    func(ctx context.Context) (*big.Int, error)
	estimateGasFunc func(ctx context.Context, payload *evm.Payload) (uint64, error)
	balanceFunc     func(ctx context.Context, address string) (*big.Int, error)
	nonceFunc       func(ctx context.Context, address string) (uint64, error)
	sendRawFunc     func(ctx context.Context, raw string) (string, error)
	waitReceiptFunc func(ctx context.Context, hash string) error
}

func (m *mockEvmClient) GasPrice(ctx context.Context) (*big.Int, error) {
	if m.gasPriceFunc != nil {
		return m.gasPriceFunc(ctx)
	}
	return big.NewInt(2), nil
}

func (m *mockEvmClient) EstimateGas(ctx context.Context, payload *evm.Payload) (uint64, error) {
	if m.estimateGasFunc != nil {
		return m.estimateGasFunc(ctx, payload)
	}
	return 21000, nil
}

func (m *mockEvmClient) Balance(ctx context.Context, address string) (*big.Int, error) {
	if m.balanceFunc != nil {
		return m.balanceFunc(ctx, address)
	}
	return big.NewInt(1_000_000), nil
}

func (m *mockEvmClient) TransactionCount(ctx context.Context, address string) (uint64, error) {
	if m.nonceFunc != nil {
		return m.nonceFunc(ctx, address)
	}
	return 7, nil
}

func (m *mockEvmClient) SendRaw(ctx context.Context, raw string) (string, error) {
	if m.sendRawFunc != nil {
		return m.sendRawFunc(ctx, raw)
	}
	return "0xhash", nil
}

func (m *mockEvmClient) WaitReceipt(ctx context.Context, hash string) error {
	if m.waitReceiptFunc != nil {
		return m.waitReceiptFunc(ctx, hash)
	}
	return nil
}

// mockEvmPool serves a fixed client map.
type mockEvmPool struct {
	clients map[string]EvmClient
}

func (m *mockEvmPool) Client(chainSlug string) (EvmClient, bool) {
	c, ok := m.clients[chainSlug]
	return c, ok
}

// mockExtrinsic and mockSubmittable model a signable balance
// extrinsic with function fields.
type mockExtrinsic struct {
	paymentInfoFunc   func(ctx context.Context, address string) (*big.Int, error)
	signerPayload     []byte
	withSignatureFunc func(sig []byte) (substrate.Submittable, error)
	submittable       *mockSubmittable
}

type mockSubmittable struct {
	submitFunc        func(ctx context.Context) (string, error)
	waitFinalizedFunc func(ctx context.Context) error
}

func (m *mockExtrinsic) PaymentInfo(ctx context.Context, address string) (*big.Int, error) {
	if m.paymentInfoFunc != nil {
		return m.paymentInfoFunc(ctx, address)
	}
	return big.NewInt(10), nil
}

func (m *mockExtrinsic) SignerPayload() []byte {
	if m.signerPayload != nil {
		return m.signerPayload
	}
	return []byte("unsigned")
}

func (m *mockExtrinsic) WithSignature(sig []byte) (substrate.Submittable, error) {
	if m.withSignatureFunc != nil {
		return m.withSignatureFunc(sig)
	}
	if m.submittable != nil {
		return m.submittable, nil
	}
	return &mockSubmittable{}, nil
}

func (m *mockSubmittable) Submit(ctx context.Context) (string, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx)
	}
	return "0xexthash", nil
}

func (m *mockSubmittable) WaitFinalized(ctx context.Context) error {
	if m.waitFinalizedFunc != nil {
		return m.waitFinalizedFunc(ctx)
	}
	return nil
}

var errBoom = errors.New("boom")
