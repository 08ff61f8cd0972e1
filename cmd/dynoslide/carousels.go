package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dynoslide/internal/cli"
	"github.com/aretw0/dynoslide/internal/presentation/tui"
)

var carouselsCmd = &cobra.Command{
	Use:     "carousels [id]",
	Aliases: []string{"carousel"},
	Short:   "Show stored carousels, or one carousel with its slides",
	Long: `Reads carousels from the configured storage. Only the file and redis
drivers keep carousels between processes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := cli.CarouselOptions{
			Config: *cfg,
			Logger: logger,
			Out:    cmd.OutOrStdout(),
			Render: tui.RenderFor(os.Stdout),
		}
		if len(args) > 0 {
			opts.ID = args[0]
		}
		return cli.ShowCarousels(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(carouselsCmd)
}
