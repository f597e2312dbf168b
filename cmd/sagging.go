package cmd

import (
	"github.com/spf13/cobra"
)

var saggingCmd = &cobra.Command{
	Use:   "sagging",
	Short: "Ruling-span field sagging: clipping offsets and sag corrections",
	Long: `Compare a ruling span's clipped (rigidly attached) shape against its
pulleyed (free-running traveling-block) shape, producing the clipping
offset and sag correction each structure's field crew needs.

Subcommands:
  correct  - Solve clipping offsets and sag corrections for a ruling span
  transit  - Aim a surveyor's transit at a catenary's sag point`,
}

func init() {
	rootCmd.AddCommand(saggingCmd)
}
