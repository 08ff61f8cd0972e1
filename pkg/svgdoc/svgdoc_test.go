package svgdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="1080" height="1080">
  <!-- exported -->
  <text id="dyno.price" x="100" y="200"><tspan x="100" y="200">$1,000 &amp; up</tspan></text>
  <image id="dyno.logo" xlink:href="logo.png" width="142" height="56"/>
</svg>`

func TestParse_RoundTrip(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, sample, doc.String())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrNoRootElement)

	_, err = Parse("just text")
	assert.ErrorIs(t, err, ErrNoRootElement)

	_, err = Parse(`<svg><text id="a"`)
	assert.Error(t, err)
}

func TestNode_Lookup(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)

	texts := doc.ElementsByID("dyno.price")
	require.Len(t, texts, 1)
	assert.Equal(t, "$1,000 & up", texts[0].Text())

	run, ok := texts[0].FirstText()
	require.True(t, ok)
	assert.Equal(t, "tspan", run.Parent.Tag)

	img := doc.ElementsByID("dyno.logo")[0]
	href, ok := img.Attr("xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "logo.png", href)
	assert.False(t, img.HasAttr("href"))
}

func TestNode_Mutations(t *testing.T) {
	doc, err := Parse(`<svg><text id="t" x="1">old</text></svg>`)
	require.NoError(t, err)

	text := doc.ElementsByID("t")[0]
	text.SetText("a < b")
	text.SetAttr("x", "2")
	text.SetAttr("y", "3")
	text.RemoveAttr("id")

	assert.Equal(t, `<svg><text x="2" y="3">a &lt; b</text></svg>`, doc.String())
}

func TestNode_CloneIsDeep(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	cp := doc.Clone()
	cp.ElementsByID("dyno.logo")[0].SetAttr("xlink:href", "other.png")

	assert.Equal(t, sample, doc.String())
	assert.NotEqual(t, sample, cp.String())
}

func TestNewElement(t *testing.T) {
	el := NewElement("tspan", "x", "10", "y", "20")
	el.AppendChild(NewText("hi"))
	assert.Equal(t, `<tspan x="10" y="20">hi</tspan>`, el.String())
}

func TestOptimize(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" figma:type="frame">
  <title>Frame 1</title>
  <metadata>junk</metadata>
  <!-- comment -->
  <defs>
    <clipPath id="clip0"><rect width="10.12345" height="4.000"/></clipPath>
    <clipPath id="unused"><rect/></clipPath>
    <image id="dyno.propertyimage" href="a.png"/>
  </defs>
  <g clip-path="url(#clip0)" data-figma-id="1:2" class="">
    <text id="dyno.name" x="766.0049"><tspan> Jane  Doe </tspan></text>
  </g>
</svg>`
	doc, err := Parse(src)
	require.NoError(t, err)

	Optimize(doc, OptimizeOptions{Keep: func(id string) bool { return id == "dyno.propertyimage" }})

	want := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<defs><clipPath id="clip0"><rect width="10.12" height="4"/></clipPath><image id="dyno.propertyimage" href="a.png"/></defs>` +
		`<g clip-path="url(#clip0)"><text id="dyno.name" x="766.00"><tspan> Jane  Doe </tspan></text></g>` +
		`</svg>`
	if diff := cmp.Diff(want, doc.String()); diff != "" {
		t.Errorf("optimized document mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimize_KeepsDefsReferencedFromStyle(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<style>.card { fill: url(#grad0); } .mask { clip-path: url('#clip1'); }</style>` +
		`<defs><linearGradient id="grad0"/><clipPath id="clip1"/><clipPath id="orphan"/></defs>` +
		`<rect class="card"/></svg>`
	doc, err := Parse(src)
	require.NoError(t, err)

	Optimize(doc, OptimizeOptions{})

	var ids []string
	for _, def := range doc.FindAll(func(n *Node) bool { return n.IsElement("defs") })[0].ChildElements("") {
		ids = append(ids, def.ID())
	}
	if diff := cmp.Diff([]string{"grad0", "clip1"}, ids); diff != "" {
		t.Errorf("kept definitions mismatch (-want +got):\n%s", diff)
	}
}
