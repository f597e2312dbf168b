package cmd

import (
	"fmt"

	"github.com/catenarytools/sagtension/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sagtension",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sagtension v%s\n", version.Version)
		fmt.Println("Overhead Transmission-Line Sag-Tension Toolkit")

		if version.GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", version.GitCommit)
		}
		if version.BuildTime != "unknown" {
			fmt.Printf("Built:  %s\n", version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
