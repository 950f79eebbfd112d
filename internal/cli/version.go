package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/conduit/internal/version"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		cmd.Printf("conduit %s (%s, built %s, %s)\n",
			info.Version, info.Commit, info.Date, info.Platform)
	},
}
