package keyring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(&Pair{Address: "0xAbC123", Name: "main"})

	p, ok := s.Pair("0xabc123")
	require.True(t, ok)
	assert.Equal(t, "main", p.Name)

	p, ok = s.Pair("0XABC123")
	require.True(t, ok)
	assert.Equal(t, "main", p.Name)

	_, ok = s.Pair("0xother")
	assert.False(t, ok)
}

func TestStoreAddReplaces(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(&Pair{Address: "0xabc", ReadOnly: false})
	s.Add(&Pair{Address: "0xABC", ReadOnly: true})

	p, ok := s.Pair("0xabc")
	require.True(t, ok)
	assert.True(t, p.ReadOnly)
	assert.Len(t, s.Addresses(), 1)
}

func TestStoreRemove(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(&Pair{Address: "0xabc"})
	s.Remove("0xABC")

	_, ok := s.Pair("0xabc")
	assert.False(t, ok)
}

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestFromMnemonic(t *testing.T) {
	t.Parallel()

	first, err := FromMnemonic(testMnemonic, "main", 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.Address, "0x"))
	assert.Len(t, first.Address, 42)
	assert.Equal(t, "main", first.Name)
	assert.False(t, first.ReadOnly)
	assert.False(t, first.External)

	// Derivation is deterministic per (mnemonic, index).
	again, err := FromMnemonic(testMnemonic, "main", 0)
	require.NoError(t, err)
	assert.Equal(t, first.Address, again.Address)

	next, err := FromMnemonic(testMnemonic, "main", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Address, next.Address)
}

func TestFromMnemonicRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := FromMnemonic("not a valid mnemonic", "main", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}
