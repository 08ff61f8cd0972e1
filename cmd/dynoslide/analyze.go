package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dynoslide/internal/cli"
	"github.com/aretw0/dynoslide/internal/presentation/tui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <template.svg>",
	Short: "List the dyno placeholders of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonOut, _ := cmd.Flags().GetBool("json")

		opts := cli.AnalyzeOptions{
			Config: *cfg,
			Path:   args[0],
			JSON:   jsonOut,
			Out:    cmd.OutOrStdout(),
		}
		if !jsonOut {
			opts.Render = tui.RenderFor(os.Stdout)
		}
		return cli.Analyze(opts)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "Print the analysis as JSON")
}
