package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
)

// FieldsMarkdown renders the placeholders of a template as a markdown table.
func FieldsMarkdown(title string, a dyno.Analysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(a.Placeholders) == 0 {
		sb.WriteString("_No dyno placeholders found._\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%d field(s)\n\n", len(a.Placeholders))
	sb.WriteString("| Field | Kind | Rule | Element | Original |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, name := range a.Fields() {
		p, _ := a.Get(name)
		rule := string(p.Rule)
		if p.Kind == domain.KindImage {
			rule = string(p.Role)
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | `%s` | %s |\n",
			p.FieldName, p.Kind, rule, p.ElementID, cell(p.Original))
	}
	return sb.String()
}

// ReportLines summarizes a substitution report, colored for terminals.
func ReportLines(r dyno.Report) []string {
	p := termenv.ColorProfile()
	var out []string
	if len(r.Applied) > 0 {
		out = append(out, termenv.String("applied: "+strings.Join(r.Applied, ", ")).Foreground(p.Color("#22c55e")).String())
	}
	for _, w := range r.Warnings() {
		out = append(out, termenv.String("warning: "+w).Foreground(p.Color("#f59e0b")).String())
	}
	return out
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}
