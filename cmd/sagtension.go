package cmd

import (
	"github.com/spf13/cobra"
)

var sagtensionCmd = &cobra.Command{
	Use:   "sagtension",
	Short: "Reload a cable from one condition to another",
	Long: `Move a strung cable from a reference loaded condition (span, weather,
horizontal tension) to a new weather and temperature condition, solving
for the tension the cable settles at once its unloaded length is held
fixed and it re-stretches elastically and thermally.

Subcommands:
  reload   - Solve the horizontal tension at a new condition
  sagger   - Find the controlling design constraint for a line cable`,
}

func init() {
	rootCmd.AddCommand(sagtensionCmd)
}
