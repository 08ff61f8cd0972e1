package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dynoslide"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dynoslide",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dynoslide version %s\n", strings.TrimSpace(dynoslide.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
