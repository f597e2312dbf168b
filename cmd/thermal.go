package cmd

import (
	"github.com/spf13/cobra"
)

var thermalCmd = &cobra.Command{
	Use:   "thermal",
	Short: "Steady-state conductor thermal ratings",
	Long: `Solve a conductor's steady-state current rating for a given allowed
temperature under a specified weather condition.

Subcommands:
  rating   - Solve the steady-state current rating for an allowed temperature`,
}

func init() {
	rootCmd.AddCommand(thermalCmd)
}
