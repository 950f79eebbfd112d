// Package keyring resolves signing accounts for the transaction
// orchestration core. Private keys are never held here: locally managed
// accounts are signed by the approval gateway, externally managed
// accounts supply signatures from outside the process. The keyring only
// answers "who is this address and how is it managed".
package keyring

import (
	"strings"
	"sync"
)

// Pair describes one known account.
type Pair struct {
	Address string
	Name    string
	// ReadOnly accounts are watch-only and can never originate
	// transactions.
	ReadOnly bool
	// External accounts have their key held outside this process;
	// returned signatures are merged and verified rather than trusted.
	External bool
}

// Keyring resolves an address to its account pair.
type Keyring interface {
	Pair(address string) (*Pair, bool)
}

// Store is an in-memory Keyring implementation. Lookups are
// case-insensitive since EVM addresses appear in mixed checksum casing.
type Store struct {
	mu    sync.RWMutex
	pairs map[string]*Pair
}

// NewStore creates an empty account store.
func NewStore() *Store {
	return &Store{pairs: make(map[string]*Pair)}
}

// Add registers a pair, replacing any existing entry for the address.
func (s *Store) Add(p *Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[normalize(p.Address)] = p
}

// Pair returns the pair registered for address.
func (s *Store) Pair(address string) (*Pair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pairs[normalize(address)]
	return p, ok
}

// Remove deletes the pair registered for address.
func (s *Store) Remove(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs, normalize(address))
}

// Addresses returns the registered addresses in no particular order.
func (s *Store) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addrs := make([]string, 0, len(s.pairs))
	for _, p := range s.pairs {
		addrs = append(addrs, p.Address)
	}
	return addrs
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
