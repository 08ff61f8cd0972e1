package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dynoslide/internal/config"
	"github.com/aretw0/dynoslide/internal/presentation/tui"
	"github.com/aretw0/dynoslide/pkg/dyno"
)

// RenderOptions configures Render.
type RenderOptions struct {
	Config       config.Config
	Logger       *slog.Logger
	TemplatePath string
	// DataPath is a YAML or JSON mapping of field values.
	DataPath string
	// Set holds key=value overrides applied after DataPath.
	Set         []string
	CanvasWidth int
	Rasterize   bool
	OutputPath  string
	Out         io.Writer
	Err         io.Writer
}

// Render fills one template from a data file and writes the document, or
// the rasterized image, to OutputPath or Out.
func Render(ctx context.Context, opts RenderOptions) error {
	doc, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	values, err := loadValues(opts.DataPath, opts.Set)
	if err != nil {
		return err
	}

	cfg := opts.Config
	// One-shot renders never touch shared storage.
	cfg.Storage.Driver = config.DriverMemory
	cfg.Generation.DistributedLock = false
	engine, cleanup, err := createEngine(cfg, opts.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()
	defer func() { _ = engine.Close(ctx) }()

	width := opts.CanvasWidth
	if width <= 0 {
		width = cfg.Render.CanvasWidth
	}
	filled, report, err := engine.Render(ctx, string(doc), values, width)
	for _, line := range tui.ReportLines(report) {
		fmt.Fprintln(opts.Err, line)
	}
	if err != nil {
		return err
	}

	out := []byte(filled)
	if opts.Rasterize {
		if out, err = engine.Pipeline().Rasterize(ctx, filled, 0, 0); err != nil {
			return err
		}
	}

	if opts.OutputPath == "" || opts.OutputPath == "-" {
		_, err = opts.Out.Write(out)
		return err
	}
	if err := os.WriteFile(opts.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSystemMessage(opts.Err, "Wrote %s (%d bytes)", opts.OutputPath, len(out))
	return nil
}

// loadValues merges a data file with key=value overrides.
func loadValues(path string, set []string) (map[string]string, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse data %s: %w", path, err)
		}
	}
	values, err := dyno.DecodeValues(raw)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]string, len(set))
	}
	for _, kv := range set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		values[strings.TrimSpace(k)] = v
	}
	return values, nil
}
