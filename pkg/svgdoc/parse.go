package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRootElement is returned when the input holds no element at all.
var ErrNoRootElement = errors.New("document has no root element")

// Parse builds a tree from SVG markup. The decoder runs in non-strict mode
// with HTML entities enabled, matching what design tools tend to export.
func Parse(src string) (*Node, error) {
	d := xml.NewDecoder(strings.NewReader(src))
	d.Strict = false
	d.Entity = xml.HTMLEntity

	doc := &Node{Type: DocumentNode}
	cur := doc
	for {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{Type: ElementNode, Prefix: t.Name.Space, Tag: t.Name.Local}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Prefix: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			cur.AppendChild(el)
			cur = el
		case xml.EndElement:
			cur = closeElement(cur, t.Name)
		case xml.CharData:
			cur.AppendChild(&Node{Type: TextNode, Data: string(t)})
		case xml.Comment:
			cur.AppendChild(&Node{Type: CommentNode, Data: string(t)})
		case xml.ProcInst:
			cur.AppendChild(&Node{Type: ProcInstNode, Target: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			cur.AppendChild(&Node{Type: DirectiveNode, Data: string(t)})
		}
	}
	if doc.Root() == nil {
		return nil, ErrNoRootElement
	}
	return doc, nil
}

// closeElement pops to the parent of the nearest open element with the name.
// Stray end tags are ignored.
func closeElement(cur *Node, name xml.Name) *Node {
	for n := cur; n != nil && n.Type == ElementNode; n = n.Parent {
		if n.Tag == name.Local && n.Prefix == name.Space {
			return n.Parent
		}
	}
	return cur
}
