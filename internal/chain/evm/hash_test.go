package evm

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() *Payload {
	return &Payload{
		From:     "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199",
		To:       "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Nonce:    7,
		GasPrice: big.NewInt(20_000_000_000),
		GasLimit: 21_000,
		Value:    big.NewInt(1_000_000_000_000_000),
		ChainID:  big.NewInt(1),
	}
}

func TestHashPayloadDeterministic(t *testing.T) {
	t.Parallel()

	first, err := HashPayload(samplePayload())
	require.NoError(t, err)
	second, err := HashPayload(samplePayload())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "0x"))
}

func TestHashPayloadSensitiveToFields(t *testing.T) {
	t.Parallel()

	base, err := HashPayload(samplePayload())
	require.NoError(t, err)

	bumped := samplePayload()
	bumped.Nonce++
	changed, err := HashPayload(bumped)
	require.NoError(t, err)

	assert.NotEqual(t, base, changed)
}

func TestHashPayloadHandlesUnsetFields(t *testing.T) {
	t.Parallel()

	// Contract creation with no value and no chain id must still encode.
	p := &Payload{
		From:     "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199",
		GasLimit: 100_000,
		Data:     []byte{0x60, 0x60},
	}

	encoded, err := HashPayload(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "0x"))
}
