// Package chain provides chain metadata and common utilities shared by
// the transaction orchestration core.
package chain

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Family identifies the transaction model of a chain.
type Family string

// Supported chain families.
const (
	// FamilyEVM is the account/nonce model (gas-priced transactions).
	FamilyEVM Family = "evm"
	// FamilySubstrate is the balance/extrinsic model.
	FamilySubstrate Family = "substrate"
)

// IsValid returns true if the family is a known chain family.
func (f Family) IsValid() bool {
	return f == FamilyEVM || f == FamilySubstrate
}

// String returns the family identifier string.
func (f Family) String() string {
	return string(f)
}

// Info describes one chain well enough for validation, fee display and
// explorer link building. ExistentialDeposit is a base-unit decimal
// string; "0" (or empty) means the chain has no existential deposit.
type Info struct {
	Slug               string
	Name               string
	Family             Family
	Symbol             string
	Decimals           int
	ExistentialDeposit string
	EvmChainID         uint64
	BlockExplorer      string
}

// TxLink builds a block explorer link for the given transaction hash.
// EVM explorers index by transaction, substrate explorers by extrinsic.
// Returns "" when the chain has no explorer configured.
func (i *Info) TxLink(hash string) string {
	if i.BlockExplorer == "" || hash == "" {
		return ""
	}

	base := i.BlockExplorer
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	if i.Family == FamilyEVM {
		return base + "tx/" + hash
	}
	return base + "extrinsic/" + hash
}

// Registry is a lookup table of chain metadata keyed by slug.
type Registry struct {
	mu     sync.RWMutex
	chains map[string]*Info
}

// NewRegistry creates a registry holding the given chains.
func NewRegistry(infos ...*Info) *Registry {
	r := &Registry{chains: make(map[string]*Info, len(infos))}
	for _, info := range infos {
		r.chains[info.Slug] = info
	}
	return r
}

// Register adds or replaces a chain entry.
func (r *Registry) Register(info *Info) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[info.Slug] = info
}

// Get returns the chain info for slug.
func (r *Registry) Get(slug string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.chains[slug]
	return info, ok
}

// Slugs returns all registered slugs, sorted.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.chains))
	for slug := range r.chains {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// maxSuggestDistance bounds how different a slug may be before Suggest
// gives up. Three edits covers the common typo and casing mistakes.
const maxSuggestDistance = 3

// Suggest returns the closest known slug to the given one, or "" when
// nothing is close enough to be a plausible typo.
func (r *Registry) Suggest(slug string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(slug)
	best := ""
	bestDistance := maxSuggestDistance + 1

	for candidate := range r.chains {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if d < bestDistance || (d == bestDistance && candidate < best) {
			best = candidate
			bestDistance = d
		}
	}

	if bestDistance > maxSuggestDistance {
		return ""
	}
	return best
}

// Defaults returns the built-in chain set. Deployments extend or
// override these through configuration.
func Defaults() []*Info {
	return []*Info{
		{
			Slug:          "ethereum",
			Name:          "Ethereum",
			Family:        FamilyEVM,
			Symbol:        "ETH",
			Decimals:      18,
			EvmChainID:    1,
			BlockExplorer: "https://etherscan.io",
		},
		{
			Slug:          "moonbeam",
			Name:          "Moonbeam",
			Family:        FamilyEVM,
			Symbol:        "GLMR",
			Decimals:      18,
			EvmChainID:    1284,
			BlockExplorer: "https://moonbeam.moonscan.io",
		},
		{
			Slug:               "polkadot",
			Name:               "Polkadot",
			Family:             FamilySubstrate,
			Symbol:             "DOT",
			Decimals:           10,
			ExistentialDeposit: "10000000000",
			BlockExplorer:      "https://polkadot.subscan.io",
		},
		{
			Slug:               "kusama",
			Name:               "Kusama",
			Family:             FamilySubstrate,
			Symbol:             "KSM",
			Decimals:           12,
			ExistentialDeposit: "333333333",
			BlockExplorer:      "https://kusama.subscan.io",
		},
		{
			Slug:               "acala",
			Name:               "Acala",
			Family:             FamilySubstrate,
			Symbol:             "ACA",
			Decimals:           12,
			ExistentialDeposit: "100000000000",
			BlockExplorer:      "https://acala.subscan.io",
		},
	}
}
