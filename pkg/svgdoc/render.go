package svgdoc

import (
	"io"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

// String serializes the subtree rooted at n.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Render(&sb)
	return sb.String()
}

// Render writes the subtree rooted at n. Childless elements are written
// self-closing.
func (n *Node) Render(w io.Writer) error {
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = &stringWriter{w}
	}
	return render(sw, n)
}

type stringWriter struct{ io.Writer }

func (s *stringWriter) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

func render(w io.StringWriter, n *Node) error {
	var parts []string
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			if err := render(w, c); err != nil {
				return err
			}
		}
		return nil
	case TextNode:
		parts = []string{textEscaper.Replace(n.Data)}
	case CommentNode:
		parts = []string{"<!--", n.Data, "-->"}
	case DirectiveNode:
		parts = []string{"<!", n.Data, ">"}
	case ProcInstNode:
		parts = []string{"<?", n.Target}
		if n.Data != "" {
			parts = append(parts, " ", n.Data)
		}
		parts = append(parts, "?>")
	case ElementNode:
		return renderElement(w, n)
	}
	for _, p := range parts {
		if _, err := w.WriteString(p); err != nil {
			return err
		}
	}
	return nil
}

func renderElement(w io.StringWriter, n *Node) error {
	var sb strings.Builder
	name := Attr{Prefix: n.Prefix, Name: n.Tag}.QName()
	sb.WriteString("<")
	sb.WriteString(name)
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.QName())
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Value))
		sb.WriteString(`"`)
	}
	if len(n.Children) == 0 {
		sb.WriteString("/>")
		_, err := w.WriteString(sb.String())
		return err
	}
	sb.WriteString(">")
	if _, err := w.WriteString(sb.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := render(w, c); err != nil {
			return err
		}
	}
	_, err := w.WriteString("</" + name + ">")
	return err
}
