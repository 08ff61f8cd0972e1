package dyno

import (
	"strings"
	"unicode/utf8"

	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// WrapOverflowing splits long text near the right edge of the canvas onto two
// lines. A <text> is wrapped when its anchor x exceeds WrapThreshold of the
// canvas width, its run is longer than WrapMinChars and it has more than two
// words. Elements already laid out over several tspans are left alone.
// It returns the number of wrapped elements.
func (p *Processor) WrapOverflowing(canvasWidth int) int {
	if canvasWidth <= 0 {
		canvasWidth = p.opts.CanvasWidth
	}
	edge := float64(canvasWidth) * p.opts.WrapThreshold

	wrapped := 0
	for _, el := range p.doc.FindAll(func(n *svgdoc.Node) bool { return n.IsElement("text") }) {
		if len(el.ChildElements("tspan")) > 1 {
			continue
		}
		anchor, ok := anchorOf(el)
		if !ok || anchor.X <= edge {
			continue
		}
		content := strings.TrimSpace(el.Text())
		if utf8.RuneCountInString(content) <= p.opts.WrapMinChars {
			continue
		}
		first, second, ok := SplitMidpoint(content)
		if !ok {
			continue
		}
		style := styleAttrs(el)
		el.ReplaceChildren(
			newTspan(anchor.X, anchor.Y, first, style),
			newTspan(anchor.X, anchor.Y+p.opts.LineHeight, second, style),
		)
		wrapped++
	}
	if wrapped > 0 {
		p.opts.Logger.Debug("wrapped overflowing text", "elements", wrapped, "canvas_width", canvasWidth)
	}
	return wrapped
}

// SplitMidpoint splits text at the word-count midpoint. It refuses texts of
// two words or fewer.
func SplitMidpoint(text string) (string, string, bool) {
	words := strings.Fields(text)
	if len(words) <= 2 {
		return "", "", false
	}
	mid := len(words) / 2
	return strings.Join(words[:mid], " "), strings.Join(words[mid:], " "), true
}
