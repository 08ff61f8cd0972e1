package dyno

import (
	"strings"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// SubstituteText rewrites a text placeholder using the rule fixed at analysis.
// An empty value blanks the field. A field the template does not carry
// returns domain.ErrFieldNotPresent and leaves the document untouched.
func (p *Processor) SubstituteText(field, value string) error {
	t, err := p.lookup(field, domain.KindText)
	if err != nil {
		return err
	}
	p.writeText(t, value)
	return nil
}

func (p *Processor) writeText(t *target, value string) {
	value = SanitizeText(value)
	for _, el := range t.nodes {
		anchor, hasAnchor := anchorOf(el)
		switch t.placeholder.Rule {
		case domain.RuleAddress:
			p.writeAddress(el, AddressLines(value), anchor, hasAnchor)
		case domain.RulePaired:
			if !p.writePaired(el, value, anchor, hasAnchor) {
				writePlain(el, value)
			}
		default:
			writePlain(el, value)
		}
	}
}

// AddressLines splits an address on ", " into at most three lines: the first
// part, the middle parts rejoined, and the last part.
func AddressLines(value string) []string {
	parts := strings.Split(value, ", ")
	switch n := len(parts); {
	case n >= 3:
		return []string{parts[0], strings.Join(parts[1:n-1], ", "), parts[n-1]}
	case n == 2:
		return parts
	default:
		return []string{value}
	}
}

// writeAddress fills the existing tspan line slots in order. Unused slots
// are blanked and lines without a slot are dropped. Elements without slots
// get one generated tspan per line.
func (p *Processor) writeAddress(el *svgdoc.Node, lines []string, anchor domain.Point, hasAnchor bool) {
	slots := el.ChildElements("tspan")
	if len(slots) == 0 {
		if !hasAnchor {
			el.SetText(strings.Join(lines, " "))
			return
		}
		style := styleAttrs(el)
		runs := make([]*svgdoc.Node, len(lines))
		for i, line := range lines {
			runs[i] = newTspan(anchor.X, anchor.Y+float64(i)*p.opts.LineHeight, line, style)
		}
		el.ReplaceChildren(runs...)
		return
	}
	for i, slot := range slots {
		if i < len(lines) {
			slot.SetText(lines[i])
		} else {
			slot.SetText("")
		}
	}
}

// writePaired lays out "3 bedroom" as two runs at x and x+offset.
func (p *Processor) writePaired(el *svgdoc.Node, value string, anchor domain.Point, hasAnchor bool) bool {
	number, word, ok := strings.Cut(value, " ")
	if !ok || !hasAnchor {
		return false
	}
	style := styleAttrs(el)
	el.ReplaceChildren(
		newTspan(anchor.X, anchor.Y, number, style),
		newTspan(anchor.X+p.opts.PairedOffset, anchor.Y, word, style),
	)
	return true
}

// writePlain replaces the text run, keeping the first tspan and its attributes.
func writePlain(el *svgdoc.Node, value string) {
	slots := el.ChildElements("tspan")
	if len(slots) == 0 {
		el.SetText(value)
		return
	}
	slots[0].SetText(value)
	el.ReplaceChildren(slots[0])
}

// styleAttrs returns the presentation attributes of the first tspan of el.
func styleAttrs(el *svgdoc.Node) []svgdoc.Attr {
	slots := el.ChildElements("tspan")
	if len(slots) == 0 {
		return nil
	}
	var out []svgdoc.Attr
	for _, a := range slots[0].Attrs {
		switch a.QName() {
		case "x", "y", "dx", "dy", "id":
			continue
		}
		out = append(out, a)
	}
	return out
}

func newTspan(x, y float64, text string, style []svgdoc.Attr) *svgdoc.Node {
	el := svgdoc.NewElement("tspan", "x", formatCoord(x), "y", formatCoord(y))
	el.Attrs = append(el.Attrs, style...)
	el.AppendChild(svgdoc.NewText(text))
	return el
}
