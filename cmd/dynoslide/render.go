package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/dynoslide/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render <template.svg>",
	Short: "Fill a template with values and write the result",
	Long: `Fills a template with the values of a YAML or JSON data file and any
--set overrides, then writes the SVG (or, with --rasterize, the output of the
configured rasterizer) to --out or stdout.`,
	Example: `  dynoslide render flyer.svg --data listing.yaml --out flyer-filled.svg
  dynoslide render flyer.svg --set price='$450,000' --rasterize --out flyer.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, _ := cmd.Flags().GetString("data")
		set, _ := cmd.Flags().GetStringArray("set")
		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetInt("canvas-width")
		rasterize, _ := cmd.Flags().GetBool("rasterize")

		return cli.Render(cmd.Context(), cli.RenderOptions{
			Config:       *cfg,
			Logger:       logger,
			TemplatePath: args[0],
			DataPath:     data,
			Set:          set,
			CanvasWidth:  width,
			Rasterize:    rasterize,
			OutputPath:   out,
			Out:          cmd.OutOrStdout(),
			Err:          cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("data", "d", "", "YAML or JSON file of field values")
	renderCmd.Flags().StringArray("set", nil, "Field override as key=value (repeatable)")
	renderCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().Int("canvas-width", 0, "Canvas width for the overflow wrapper (default render.canvas_width)")
	renderCmd.Flags().Bool("rasterize", false, "Pass the filled document through the configured rasterizer")
}
