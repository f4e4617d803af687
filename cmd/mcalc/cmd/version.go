package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mCALC/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		for _, name := range []string{"engine", "cli", "server", "history"} {
			fmt.Fprintf(out, "  %-8s %s\n", name, version.ComponentVersion(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
