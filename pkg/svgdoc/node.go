package svgdoc

import "strings"

// NodeType identifies the kind of a tree node.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Attr is an attribute with its raw (unresolved) prefix.
type Attr struct {
	Prefix string
	Name   string
	Value  string
}

// QName returns the attribute name as written in the source.
func (a Attr) QName() string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

// Node is one node of the document tree.
type Node struct {
	Type     NodeType
	Prefix   string
	Tag      string
	Attrs    []Attr
	Data     string // text, comment, directive body or processing instruction
	Target   string // processing instruction target
	Children []*Node
	Parent   *Node
}

// NewElement creates a detached element. attrs are qualified name/value pairs.
func NewElement(tag string, attrs ...string) *Node {
	n := &Node{Type: ElementNode}
	n.Prefix, n.Tag = splitQName(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttr(attrs[i], attrs[i+1])
	}
	return n
}

// NewText creates a detached text node.
func NewText(s string) *Node {
	return &Node{Type: TextNode, Data: s}
}

func splitQName(q string) (prefix, local string) {
	if p, l, ok := strings.Cut(q, ":"); ok {
		return p, l
	}
	return "", q
}

// IsElement reports whether n is an element with the given local tag name.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.Tag == tag
}

// Root returns the first element child of a document node, or n itself for elements.
func (n *Node) Root() *Node {
	if n.Type != DocumentNode {
		return n
	}
	for _, c := range n.Children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

func (n *Node) attrIndex(qname string) int {
	prefix, local := splitQName(qname)
	for i, a := range n.Attrs {
		if a.Prefix == prefix && a.Name == local {
			return i
		}
	}
	return -1
}

// Attr returns the value of the attribute with the qualified name.
func (n *Node) Attr(qname string) (string, bool) {
	if i := n.attrIndex(qname); i >= 0 {
		return n.Attrs[i].Value, true
	}
	return "", false
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(qname string) bool {
	return n.attrIndex(qname) >= 0
}

// ID returns the element id, or an empty string.
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// SetAttr updates an existing attribute in place or appends a new one.
func (n *Node) SetAttr(qname, value string) {
	if i := n.attrIndex(qname); i >= 0 {
		n.Attrs[i].Value = value
		return
	}
	prefix, local := splitQName(qname)
	n.Attrs = append(n.Attrs, Attr{Prefix: prefix, Name: local, Value: value})
}

// RemoveAttr deletes the attribute if present.
func (n *Node) RemoveAttr(qname string) {
	if i := n.attrIndex(qname); i >= 0 {
		n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
	}
}

// AppendChild attaches c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// RemoveChild detaches c from n.
func (n *Node) RemoveChild(c *Node) {
	for i, child := range n.Children {
		if child == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.Parent = nil
			return
		}
	}
}

// ReplaceChildren drops every child and attaches the given nodes.
func (n *Node) ReplaceChildren(children ...*Node) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	for _, c := range children {
		n.AppendChild(c)
	}
}

// ChildElements returns the direct element children with the local tag name.
// An empty tag matches every element.
func (n *Node) ChildElements(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode && (tag == "" || c.Tag == tag) {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the concatenated character data of n and its descendants.
func (n *Node) Text() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// FirstText returns the first text run that is not only whitespace.
func (n *Node) FirstText() (*Node, bool) {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Type == TextNode && strings.TrimSpace(c.Data) != "" {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// SetText replaces the children of n with a single text run.
func (n *Node) SetText(s string) {
	n.ReplaceChildren(NewText(s))
}

// Walk visits n and its descendants in document order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the subtree matching pred, in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ElementsByID returns every element carrying the id. Documents exported by
// design tools sometimes repeat ids, so more than one match is possible.
func (n *Node) ElementsByID(id string) []*Node {
	return n.FindAll(func(c *Node) bool {
		return c.Type == ElementNode && c.ID() == id
	})
}

// Clone returns a deep copy of the subtree, detached from any parent.
func (n *Node) Clone() *Node {
	cp := &Node{
		Type:   n.Type,
		Prefix: n.Prefix,
		Tag:    n.Tag,
		Data:   n.Data,
		Target: n.Target,
	}
	if n.Attrs != nil {
		cp.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, c := range n.Children {
		cp.AppendChild(c.Clone())
	}
	return cp
}
