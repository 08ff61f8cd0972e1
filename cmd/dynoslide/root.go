package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dynoslide/internal/cli"
	"github.com/aretw0/dynoslide/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dynoslide",
	Short: "dynoslide fills SVG templates and renders them into carousels",
	Long: `dynoslide replaces "dyno." placeholders in SVG templates with listing data,
wraps overflowing text, embeds fitted images and renders carousels of slides.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML configuration file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (debug, info, warn, error)")
}

// loadConfig reads and validates the configuration named by the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	logger, err := cli.CreateLogger(*cfg, level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
