package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signTestPayload signs the payload's transaction with key.
func signTestPayload(t *testing.T, p *Payload, key *ecdsa.PrivateKey) *types.Transaction {
	t.Helper()

	signer := types.NewEIP155Signer(p.ChainID)
	sig, err := crypto.Sign(signer.Hash(p.Tx()).Bytes(), key)
	require.NoError(t, err)

	signed, err := MergeSignature(p, sig)
	require.NoError(t, err)
	return signed
}

// rpcServer is a canned JSON-RPC 2.0 endpoint: each method maps to a
// fixed result, and calls are recorded per method.
type rpcServer struct {
	mu      sync.Mutex
	results map[string]any
	calls   map[string]int
}

func newRPCServer(results map[string]any) *rpcServer {
	return &rpcServer{results: results, calls: make(map[string]int)}
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	result, ok := s.results[req.Method]
	s.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(req.ID)}
	if ok {
		resp["result"] = result
	} else {
		resp["result"] = nil
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *rpcServer) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// emptyBloom is a zeroed 256-byte logs bloom in hex.
var emptyBloom = "0x" + strings.Repeat("0", 512)

func receiptResult(hash string, status string) map[string]any {
	return map[string]any{
		"transactionHash":   hash,
		"transactionIndex":  "0x0",
		"blockHash":         "0x" + strings.Repeat("11", 32),
		"blockNumber":       "0x1",
		"gasUsed":           "0x5208",
		"cumulativeGasUsed": "0x5208",
		"effectiveGasPrice": "0x1",
		"contractAddress":   nil,
		"logs":              []any{},
		"logsBloom":         emptyBloom,
		"type":              "0x0",
		"status":            status,
	}
}

func testClient(t *testing.T, results map[string]any) (*Client, *rpcServer) {
	t.Helper()

	server := newRPCServer(results)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	client, err := Dial(ts.URL, WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, server
}

func TestClientQueries(t *testing.T) {
	t.Parallel()

	client, _ := testClient(t, map[string]any{
		"eth_gasPrice":            "0x3",
		"eth_getBalance":          "0x2a",
		"eth_getTransactionCount": "0x7",
		"eth_estimateGas":         "0x5208",
	})

	ctx := context.Background()
	addr := "0x1111111111111111111111111111111111111111"

	price, err := client.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), price)

	balance, err := client.Balance(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), balance)

	nonce, err := client.TransactionCount(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)

	gas, err := client.EstimateGas(ctx, &Payload{
		From: addr,
		To:   "0x2222222222222222222222222222222222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)
}

func TestClientSendRaw(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	payload := &Payload{
		To:       "0x2222222222222222222222222222222222222222",
		Nonce:    1,
		GasPrice: big.NewInt(1),
		GasLimit: 21000,
		Value:    big.NewInt(100),
		ChainID:  big.NewInt(1),
	}
	signed := signTestPayload(t, payload, key)
	raw, err := EncodeSigned(signed)
	require.NoError(t, err)

	client, server := testClient(t, map[string]any{
		"eth_sendRawTransaction": signed.Hash().Hex(),
	})

	hash, err := client.SendRaw(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash().Hex(), hash)
	assert.Equal(t, 1, server.callCount("eth_sendRawTransaction"))

	_, err = client.SendRaw(context.Background(), "not-hex")
	assert.Error(t, err)
}

func TestClientWaitReceipt(t *testing.T) {
	t.Parallel()

	hash := "0x" + strings.Repeat("22", 32)

	t.Run("mined successfully", func(t *testing.T) {
		t.Parallel()

		client, _ := testClient(t, map[string]any{
			"eth_getTransactionReceipt": receiptResult(hash, "0x1"),
		})

		require.NoError(t, client.WaitReceipt(context.Background(), hash))
	})

	t.Run("reverted", func(t *testing.T) {
		t.Parallel()

		client, _ := testClient(t, map[string]any{
			"eth_getTransactionReceipt": receiptResult(hash, "0x0"),
		})

		err := client.WaitReceipt(context.Background(), hash)
		assert.ErrorIs(t, err, ErrTransactionReverted)
	})

	t.Run("context expires while pending", func(t *testing.T) {
		t.Parallel()

		// No receipt result, so the node keeps answering "not found".
		client, server := testClient(t, map[string]any{})

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := client.WaitReceipt(ctx, hash)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.GreaterOrEqual(t, server.callCount("eth_getTransactionReceipt"), 1)
	})
}

func TestPool(t *testing.T) {
	t.Parallel()

	pool := NewPool()

	_, ok := pool.Client("ethereum")
	assert.False(t, ok)

	client, _ := testClient(t, map[string]any{})
	pool.Add("ethereum", client)

	got, ok := pool.Client("ethereum")
	require.True(t, ok)
	assert.Same(t, client, got)

	pool.Close()
	_, ok = pool.Client("ethereum")
	assert.False(t, ok)
}
