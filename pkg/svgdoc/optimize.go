package svgdoc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// OptimizeOptions tunes Optimize.
type OptimizeOptions struct {
	// Keep protects definitions whose id matches from unused-definition removal.
	Keep func(id string) bool
}

var (
	droppedElements = map[string]bool{"metadata": true, "title": true, "desc": true}
	longDecimal     = regexp.MustCompile(`[+-]?\d+\.\d{3,}`)
	fragmentRef     = regexp.MustCompile(`(?:url\(\s*['"]?#|^#)([^'")\s]+)`)
	cssRef          = regexp.MustCompile(`url\(\s*['"]?#([^'")\s]+)`)
)

// Optimize shrinks a document exported from a design tool in place:
// comments, metadata/title/desc, figma attributes, empty attributes and
// inter-element whitespace are removed, long decimals in geometric attributes
// are rounded to two places, and unreferenced definitions are dropped.
func Optimize(doc *Node, opts OptimizeOptions) {
	prune(doc)
	removeUnusedDefs(doc, opts.Keep)
}

func prune(n *Node) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		switch {
		case c.Type == CommentNode:
			continue
		case c.Type == ElementNode && droppedElements[c.Tag]:
			continue
		case c.Type == TextNode && strings.TrimSpace(c.Data) == "" && !insideText(n):
			continue
		}
		if c.Type == ElementNode {
			c.Attrs = pruneAttrs(c.Attrs)
			prune(c)
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
}

func insideText(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == ElementNode && (p.Tag == "text" || p.Tag == "tspan") {
			return true
		}
	}
	return false
}

func pruneAttrs(attrs []Attr) []Attr {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Value == "" || isFigmaAttr(a) {
			continue
		}
		if roundable(a) {
			a.Value = longDecimal.ReplaceAllStringFunc(a.Value, roundNumber)
		}
		out = append(out, a)
	}
	return out
}

func isFigmaAttr(a Attr) bool {
	return a.Prefix == "figma" ||
		strings.HasPrefix(a.Name, "figma-") ||
		strings.HasPrefix(a.Name, "data-figma-")
}

func roundable(a Attr) bool {
	switch a.Name {
	case "id", "href", "class":
		return false
	}
	return a.Prefix != "xmlns" && a.Name != "xmlns"
}

func roundNumber(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func removeUnusedDefs(doc *Node, keep func(string) bool) {
	used := map[string]bool{}
	doc.Walk(func(n *Node) bool {
		if n.Type == TextNode && n.Parent != nil && n.Parent.IsElement("style") {
			for _, m := range cssRef.FindAllStringSubmatch(n.Data, -1) {
				used[m[1]] = true
			}
			return true
		}
		if n.Type != ElementNode {
			return true
		}
		for _, a := range n.Attrs {
			for _, m := range fragmentRef.FindAllStringSubmatch(a.Value, -1) {
				used[m[1]] = true
			}
		}
		return true
	})
	for _, defs := range doc.FindAll(func(n *Node) bool { return n.IsElement("defs") }) {
		for _, def := range defs.ChildElements("") {
			id := def.ID()
			if id == "" || used[id] || (keep != nil && keep(id)) {
				continue
			}
			defs.RemoveChild(def)
		}
	}
}
