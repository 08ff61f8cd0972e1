package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/dynoslide/internal/config"
	"github.com/aretw0/dynoslide/internal/presentation/graph"
	"github.com/aretw0/dynoslide/pkg/domain"
)

// CarouselOptions configures ShowCarousels.
type CarouselOptions struct {
	Config config.Config
	Logger *slog.Logger
	// ID selects one carousel; empty lists them all.
	ID     string
	Out    io.Writer
	Render func(string) (string, error)
}

// ShowCarousels prints stored carousels as markdown. A single carousel
// includes its slides and a Mermaid diagram of their states.
func ShowCarousels(ctx context.Context, opts CarouselOptions) error {
	engine, cleanup, err := createEngine(opts.Config, opts.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()
	defer func() { _ = engine.Close(ctx) }()

	var md string
	if opts.ID == "" {
		list, err := engine.Carousels().List(ctx)
		if err != nil {
			return err
		}
		md = carouselsMarkdown(list)
	} else {
		c, err := engine.Carousels().Get(ctx, opts.ID)
		if err != nil {
			return err
		}
		md = carouselMarkdown(c)
	}

	if opts.Render != nil {
		if md, err = opts.Render(md); err != nil {
			return err
		}
	}
	_, err = io.WriteString(opts.Out, md)
	return err
}

func carouselsMarkdown(list []*domain.Carousel) string {
	var sb strings.Builder
	sb.WriteString("# Carousels\n\n")
	if len(list) == 0 {
		sb.WriteString("_No carousels stored._\n")
		return sb.String()
	}
	sb.WriteString("| ID | Name | Status | Slides | Created |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, c := range list {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %d | %s |\n",
			c.ID, c.Name, c.State, len(c.Slides), c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}

func carouselMarkdown(c *domain.Carousel) string {
	var sb strings.Builder
	p := c.Progress()
	fmt.Fprintf(&sb, "# %s\n\n", c.Name)
	fmt.Fprintf(&sb, "- ID: `%s`\n- Status: **%s**\n- Progress: %d/%d completed, %d failed (%d%%)\n",
		c.ID, c.State, p.Completed, p.Total, p.Failed, p.Percentage)
	if c.Error != "" {
		fmt.Fprintf(&sb, "- Error: %s\n", c.Error)
	}

	if len(c.Slides) > 0 {
		sb.WriteString("\n## Slides\n\n| # | Template | Status | Asset |\n|---|---|---|---|\n")
		for _, s := range c.Slides {
			detail := s.URL
			if s.Error != "" {
				detail = s.Error
			}
			fmt.Fprintf(&sb, "| %d | `%s` | %s | %s |\n", s.Number, s.TemplateID, s.State, detail)
		}
	}

	sb.WriteString("\n```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(c))
	sb.WriteString("```\n")
	return sb.String()
}
