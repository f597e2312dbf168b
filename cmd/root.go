package cmd

import (
	"fmt"
	"os"

	"github.com/catenarytools/sagtension/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sagtension",
	Short: "Sag-tension analysis tool for overhead transmission-line conductors",
	Long: `sagtension - Overhead Transmission-Line Sag-Tension Toolkit

A CLI tool for the sag-tension analysis of overhead transmission-line
conductors: catenary geometry, cable elongation and stretch modeling,
sag-tension reloading between weather conditions, suspension hardware
positioning, field sagging (clipping offsets and transit sighting), and
steady-state thermal ratings.

This tool helps transmission line engineers perform:
  - Catenary shape, length, sag, and tension analysis
  - Sag-tension reloading between initial, creep, and load conditions
  - Suspension insulator swing and attachment point positioning
  - Ruling-span clipping offsets and transit sagging
  - Steady-state conductor thermal ratings`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   sagtension v%-44s║\n", version.Version)
		fmt.Println("  ║   Overhead Transmission-Line Sag-Tension Toolkit          ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the sag-tension analysis of overhead")
		fmt.Println("  transmission-line conductors.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Catenary geometry, sag, and tension analysis")
		fmt.Println("    • Sag-tension reloading between weather conditions")
		fmt.Println("    • Suspension hardware positioning")
		fmt.Println("    • Ruling-span sagging: clipping offsets and transit sighting")
		fmt.Println("    • Steady-state conductor thermal ratings")
		fmt.Println()
		fmt.Println("  Use 'sagtension --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
