package dyno

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// Analysis is the set of placeholders discovered in a template.
type Analysis struct {
	Placeholders map[string]domain.Placeholder `json:"placeholders"`
}

// Get returns the placeholder of a field. Namespaced keys are accepted.
func (a Analysis) Get(field string) (domain.Placeholder, bool) {
	p, ok := a.Placeholders[domain.NormalizeField(field)]
	return p, ok
}

// Fields returns the field names in lexical order.
func (a Analysis) Fields() []string {
	out := make([]string, 0, len(a.Placeholders))
	for f := range a.Placeholders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ByKind returns the placeholders of one kind ordered by field name.
func (a Analysis) ByKind(kind domain.PlaceholderKind) []domain.Placeholder {
	var out []domain.Placeholder
	for _, f := range a.Fields() {
		if p := a.Placeholders[f]; p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Analyze parses a template and discovers its placeholders.
func Analyze(doc string, opts ...Option) (Analysis, error) {
	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return Analysis{}, err
	}
	return p.Analysis(), nil
}

// target is the resolved node set for one field.
type target struct {
	placeholder domain.Placeholder
	nodes       []*svgdoc.Node
}

func analyzeTree(doc *svgdoc.Node, aliases map[string][]string, logger *slog.Logger) map[string]*target {
	found := map[string]*target{}
	var order []string

	doc.Walk(func(n *svgdoc.Node) bool {
		if n.Type != svgdoc.ElementNode {
			return true
		}
		id := n.ID()
		if !strings.Contains(id, domain.FieldPrefix) {
			return true
		}
		field, ok := domain.FieldFromID(id)
		if !ok {
			return true
		}
		t, seen := found[field]
		if !seen {
			t = &target{placeholder: domain.Placeholder{FieldName: field, ElementID: id, Kind: domain.KindText}}
			found[field] = t
			order = append(order, field)
		}
		t.nodes = append(t.nodes, n)
		return true
	})

	claimed := make(map[string]bool, len(order))
	for _, field := range order {
		if !resolve(doc, found[field], aliases) {
			logger.Debug("placeholder skipped: element holds no text or image", "field", field)
			delete(found, field)
			continue
		}
		claimed[strings.ToLower(field)] = true
	}

	// Templates exported without dyno ids on their images still carry the
	// historical raster ids.
	for field, ids := range aliases {
		if claimed[strings.ToLower(field)] {
			continue
		}
		if nodes := probeAliases(doc, ids); len(nodes) > 0 {
			found[field] = imageTarget(field, nodes[0].ID(), nodes)
		}
	}

	logger.Debug("template analyzed", "fields", len(found))
	return found
}

// resolve fixes the kind of a field. Image wins whenever any element carrying
// the id is, wraps, or is filled with an <image>. Shapes with neither text nor
// image content fall back to the field's alias ids; failing that the field is
// not a placeholder and resolve reports false.
func resolve(doc *svgdoc.Node, t *target, aliases map[string][]string) bool {
	var images []*svgdoc.Node
	var texts []*svgdoc.Node
	var shapes []*svgdoc.Node
	for _, n := range t.nodes {
		switch {
		case n.IsElement("image"):
			images = append(images, n)
		case isTextTag(n):
			texts = append(texts, n)
		default:
			if img := firstDescendant(n, "image"); img != nil {
				images = append(images, img)
			} else if txt := firstDescendant(n, "text"); txt != nil {
				texts = append(texts, txt)
			} else {
				shapes = append(shapes, n)
			}
		}
	}
	if len(images) == 0 && len(texts) == 0 {
		for _, n := range shapes {
			images = append(images, paintImages(doc, n)...)
		}
		if len(images) == 0 {
			images = probeAliases(doc, aliasIDs(aliases, t.placeholder.FieldName))
		}
		if len(images) == 0 {
			return false
		}
	}
	if len(images) > 0 {
		*t = *imageTarget(t.placeholder.FieldName, t.placeholder.ElementID, images)
		return true
	}

	t.nodes = texts
	t.placeholder.Rule = domain.ClassifyText(t.placeholder.FieldName)
	if run, ok := texts[0].FirstText(); ok {
		t.placeholder.Original = strings.TrimSpace(run.Data)
	}
	t.placeholder.Anchor, t.placeholder.HasAnchor = anchorOf(texts[0])
	return true
}

// aliasIDs looks a field up in the alias table ignoring case, since design
// exports write ids like dyno.agentHeadshot.
func aliasIDs(aliases map[string][]string, field string) []string {
	if ids, ok := aliases[field]; ok {
		return ids
	}
	for k, ids := range aliases {
		if strings.EqualFold(k, field) {
			return ids
		}
	}
	return nil
}

// paintImages follows fill="url(#p)" and stroke="url(#p)" to the images a
// pattern draws, either directly or through <use href="#id">.
func paintImages(doc *svgdoc.Node, n *svgdoc.Node) []*svgdoc.Node {
	var out []*svgdoc.Node
	for _, name := range []string{"fill", "stroke"} {
		v, _ := n.Attr(name)
		id, ok := paintRef(v)
		if !ok {
			continue
		}
		for _, ref := range doc.ElementsByID(id) {
			ref.Walk(func(d *svgdoc.Node) bool {
				switch {
				case d.IsElement("image"):
					out = append(out, d)
				case d.IsElement("use"):
					if target := strings.TrimPrefix(hrefOf(d), "#"); target != "" {
						for _, u := range doc.ElementsByID(target) {
							if u.IsElement("image") {
								out = append(out, u)
							}
						}
					}
				}
				return true
			})
		}
	}
	return out
}

func paintRef(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return "", false
	}
	end := strings.IndexByte(v, ')')
	if end < 0 {
		return "", false
	}
	ref := strings.Trim(strings.TrimSpace(v[len("url("):end]), `'"`)
	if !strings.HasPrefix(ref, "#") || len(ref) == 1 {
		return "", false
	}
	return ref[1:], true
}

func imageTarget(field, elementID string, images []*svgdoc.Node) *target {
	p := domain.Placeholder{
		FieldName: field,
		ElementID: elementID,
		Kind:      domain.KindImage,
		Role:      domain.ClassifyImage(field),
		Original:  hrefOf(images[0]),
	}
	return &target{placeholder: p, nodes: images}
}

func probeAliases(doc *svgdoc.Node, ids []string) []*svgdoc.Node {
	for _, id := range ids {
		var out []*svgdoc.Node
		for _, n := range doc.ElementsByID(id) {
			if n.IsElement("image") {
				out = append(out, n)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func isTextTag(n *svgdoc.Node) bool {
	switch n.Tag {
	case "text", "tspan", "textPath":
		return true
	}
	return false
}

func firstDescendant(n *svgdoc.Node, tag string) *svgdoc.Node {
	var found *svgdoc.Node
	for _, c := range n.Children {
		c.Walk(func(d *svgdoc.Node) bool {
			if found != nil {
				return false
			}
			if d.IsElement(tag) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

func hrefOf(n *svgdoc.Node) string {
	if v, ok := n.Attr("href"); ok {
		return v
	}
	v, _ := n.Attr("xlink:href")
	return v
}

// anchorOf reads the x/y position of a text element, falling back to its
// first tspan as design tools usually place coordinates there.
func anchorOf(el *svgdoc.Node) (domain.Point, bool) {
	candidates := []*svgdoc.Node{el}
	candidates = append(candidates, el.ChildElements("tspan")...)
	for _, c := range candidates {
		x, okX := coord(c, "x")
		y, okY := coord(c, "y")
		if okX && okY {
			return domain.Point{X: x, Y: y}, true
		}
	}
	return domain.Point{}, false
}

// coord parses the first value of a coordinate list attribute.
func coord(n *svgdoc.Node, name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
