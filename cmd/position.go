package cmd

import (
	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Suspension hardware attachment point positioning",
	Long: `Solve where a span of cable, strung across a line of structures through
suspension hardware of a given length, actually attaches once the
hardware swings to equilibrium under the cable's tension.

Subcommands:
  solve    - Solve attachment points along a structure line`,
}

func init() {
	rootCmd.AddCommand(positionCmd)
}
