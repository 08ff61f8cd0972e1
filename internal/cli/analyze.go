package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/dynoslide/internal/config"
	"github.com/aretw0/dynoslide/internal/presentation/tui"
	"github.com/aretw0/dynoslide/pkg/dyno"
)

// AnalyzeOptions configures Analyze.
type AnalyzeOptions struct {
	Config config.Config
	Path   string
	JSON   bool
	Out    io.Writer
	// Render post-processes the markdown report; nil writes it verbatim.
	Render func(string) (string, error)
}

// Analyze prints the placeholders of an SVG file.
func Analyze(opts AnalyzeOptions) error {
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	o := dynoOptions(opts.Config)
	analysis, err := dyno.Analyze(string(data), dyno.WithOptions(o))
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	md := tui.FieldsMarkdown(filepath.Base(opts.Path), analysis)
	if opts.Render != nil {
		if md, err = opts.Render(md); err != nil {
			return err
		}
	}
	_, err = io.WriteString(opts.Out, md)
	return err
}
