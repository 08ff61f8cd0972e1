package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a carousel: one node per
// slide in order, labelled with its template, and styled by slide state:
// - Completed: [Rectangle], green
// - Failed: [/Parallelogram/], red
// - Rendering: ((Circle)), yellow
// - Pending: [Rectangle], unstyled
func GenerateMermaid(c *domain.Carousel) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	root := sanitizeMermaidID("c_" + c.ID)
	sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", root, escapeLabel(c.Name)))

	prev := root
	byState := make(map[domain.SlideState][]string)
	for _, s := range c.Slides {
		id := fmt.Sprintf("%s_s%d", root, s.Number)

		opener, closer := "[", "]"
		switch s.State {
		case domain.SlideFailed:
			opener, closer = "[/", "/]"
		case domain.SlideRendering:
			opener, closer = "((", "))"
		}

		label := fmt.Sprintf("%d: %s", s.Number, escapeLabel(s.TemplateID))
		if n := len(s.Warnings); n > 0 {
			label = fmt.Sprintf("%s <br/> %d warning(s)", label, n)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, id))
		prev = id
		byState[s.State] = append(byState[s.State], id)
	}

	if len(byState) > 0 {
		sb.WriteString("\n    %% State Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef completed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef rendering fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, state := range []domain.SlideState{domain.SlideCompleted, domain.SlideFailed, domain.SlideRendering} {
			if ids := byState[state]; len(ids) > 0 {
				sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), state))
			}
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
