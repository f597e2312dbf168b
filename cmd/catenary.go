package cmd

import (
	"github.com/spf13/cobra"
)

var catenaryCmd = &cobra.Command{
	Use:   "catenary",
	Short: "Catenary shape, length, sag, and tension analysis",
	Long: `Analyze the shape of a cable hung between two supports under its
own weight and, optionally, ice and wind load.

Subcommands:
  analyze  - Compute length, sag, and support tensions for a given span`,
}

func init() {
	rootCmd.AddCommand(catenaryCmd)
}
