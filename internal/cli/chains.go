package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conduit/internal/chain"
	conduiterr "github.com/mrz1836/conduit/pkg/errors"
)

// chainsCmd groups chain registry inspection commands.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "Inspect configured chains",
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured chains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry := cfg.ChainRegistry()
		for _, slug := range registry.Slugs() {
			info, _ := registry.Get(slug)
			cmd.Printf("%-12s %-10s %s (%d decimals)\n",
				info.Slug, info.Family, info.Symbol, info.Decimals)
		}
		return nil
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show details for one chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := cfg.ChainRegistry()
		info, ok := registry.Get(args[0])
		if !ok {
			msg := fmt.Sprintf("can't find network %q", args[0])
			if suggestion := registry.Suggest(args[0]); suggestion != "" {
				msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
			}
			return conduiterr.WithMessage(conduiterr.ErrInternal, msg)
		}

		cmd.Printf("Slug:       %s\n", info.Slug)
		cmd.Printf("Name:       %s\n", info.Name)
		cmd.Printf("Family:     %s\n", info.Family)
		cmd.Printf("Symbol:     %s (%d decimals)\n", info.Symbol, info.Decimals)
		if info.Family == chain.FamilyEVM {
			cmd.Printf("Chain ID:   %d\n", info.EvmChainID)
		}
		if info.ExistentialDeposit != "" {
			cmd.Printf("Min. balance: %s\n", info.ExistentialDeposit)
		}
		if info.BlockExplorer != "" {
			cmd.Printf("Explorer:   %s\n", info.BlockExplorer)
		}
		return nil
	},
}

func init() {
	chainsCmd.AddCommand(chainsListCmd)
	chainsCmd.AddCommand(chainsShowCmd)
}
