package keyring

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// ErrInvalidMnemonic reports a mnemonic that fails BIP-39 validation.
var ErrInvalidMnemonic = conduiterr.New("INVALID_MNEMONIC", "invalid mnemonic phrase")

// derivationPath returns the BIP-44 path for the Ethereum account at
// index: m/44'/60'/0'/0/index.
func derivationPath(index uint32) []uint32 {
	return []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild,
		0,
		index,
	}
}

// FromMnemonic derives the account-model address at the given index
// from a BIP-39 mnemonic and returns it as a locally managed pair. The
// derived private key is discarded; signing happens in the approval
// gateway, not here.
func FromMnemonic(mnemonic, name string, index uint32) (*Pair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("deriving master key: %w", err)
	}

	for _, step := range derivationPath(index) {
		key, err = key.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("deriving child key: %w", err)
		}
	}

	privateKey, err := crypto.ToECDSA(key.Key)
	if err != nil {
		return nil, fmt.Errorf("parsing derived key: %w", err)
	}

	address := crypto.PubkeyToAddress(privateKey.PublicKey)

	return &Pair{
		Address: address.Hex(),
		Name:    name,
	}, nil
}
