package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/conduit/internal/keyring"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
var (
	deriveMnemonic string
	deriveName     string
	deriveIndex    uint32
)

// accountsCmd groups account management commands.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage wallet accounts",
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var accountsDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive an account address from a BIP39 mnemonic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pair, err := keyring.FromMnemonic(deriveMnemonic, deriveName, deriveIndex)
		if err != nil {
			return err
		}
		cmd.Printf("%s\t%s\n", pair.Address, pair.Name)
		return nil
	},
}

func init() {
	accountsDeriveCmd.Flags().StringVar(&deriveMnemonic, "mnemonic", "", "BIP39 mnemonic phrase")
	accountsDeriveCmd.Flags().StringVar(&deriveName, "name", "account", "account display name")
	accountsDeriveCmd.Flags().Uint32Var(&deriveIndex, "index", 0, "derivation index")
	_ = accountsDeriveCmd.MarkFlagRequired("mnemonic")

	accountsCmd.AddCommand(accountsDeriveCmd)
}
