package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// defaultPollInterval paces receipt polling in WaitReceipt.
const defaultPollInterval = 2 * time.Second

// ErrTransactionReverted reports an on-chain execution failure: the
// transaction was mined but its receipt carries a failed status.
var ErrTransactionReverted = errors.New("transaction reverted")

// Client wraps an Ethereum JSON-RPC connection with the query and
// broadcast surface the submission pipeline needs.
type Client struct {
	eth          *ethclient.Client
	pollInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPollInterval sets the receipt polling interval.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// NewClient wraps an existing ethclient connection.
func NewClient(eth *ethclient.Client, opts ...ClientOption) *Client {
	c := &Client{
		eth:          eth,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to an Ethereum JSON-RPC endpoint.
func Dial(rawURL string, opts ...ClientOption) (*Client, error) {
	eth, err := ethclient.Dial(rawURL)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", rawURL, err)
	}
	return NewClient(eth, opts...), nil
}

// Close tears down the underlying connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GasPrice returns the node's suggested gas price.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.eth.SuggestGasPrice(ctx)
}

// EstimateGas estimates the gas limit for the payload.
func (c *Client) EstimateGas(ctx context.Context, payload *Payload) (uint64, error) {
	msg := ethereum.CallMsg{
		From:     common.HexToAddress(payload.From),
		GasPrice: payload.GasPrice,
		Value:    payload.Value,
		Data:     payload.Data,
	}
	if payload.To != "" {
		to := common.HexToAddress(payload.To)
		msg.To = &to
	}
	return c.eth.EstimateGas(ctx, msg)
}

// Balance returns the latest native balance of address.
func (c *Client) Balance(ctx context.Context, address string) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
}

// TransactionCount returns the pending nonce for address.
func (c *Client) TransactionCount(ctx context.Context, address string) (uint64, error) {
	return c.eth.PendingNonceAt(ctx, common.HexToAddress(address))
}

// SendRaw broadcasts a raw signed transaction and returns its hash.
func (c *Client) SendRaw(ctx context.Context, raw string) (string, error) {
	tx, err := DecodeSigned(raw)
	if err != nil {
		return "", fmt.Errorf("decoding raw transaction: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, tx); err != nil {
		return "", err
	}
	return tx.Hash().Hex(), nil
}

// WaitReceipt polls until the transaction is mined and returns an
// error when it reverted or the context expires first.
func (c *Client) WaitReceipt(ctx context.Context, hash string) error {
	txHash := common.HexToHash(hash)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return ErrTransactionReverted
			}
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Pool is a thread-safe set of chain clients keyed by chain slug.
type Pool struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewPool creates an empty client pool.
func NewPool() *Pool {
	return &Pool{clients: make(map[string]*Client)}
}

// Connect dials the endpoint and registers the client under slug,
// replacing any previous client for that slug.
func (p *Pool) Connect(slug, rawURL string, opts ...ClientOption) error {
	client, err := Dial(rawURL, opts...)
	if err != nil {
		return err
	}
	p.Add(slug, client)
	return nil
}

// Add registers a client under slug.
func (p *Pool) Add(slug string, client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients[slug] = client
}

// Client returns the client registered for slug.
func (p *Pool) Client(slug string) (*Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	client, ok := p.clients[slug]
	return client, ok
}

// Close tears down every pooled connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, client := range p.clients {
		client.Close()
	}
	p.clients = make(map[string]*Client)
}
