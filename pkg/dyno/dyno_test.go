package dyno

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="1080" height="1080">` +
	`<text id="dyno.price" x="100" y="200" fill="#fff"><tspan x="100" y="200">$0</tspan></text>` +
	`<text id="dyno.propertyaddress" fill="#fff"><tspan x="766" y="1000.04">Line 1</tspan><tspan x="766" y="1028.04">Line 2</tspan><tspan x="766" y="1056.04">Line 3</tspan></text>` +
	`<text id="dyno.bedrooms" x="50" y="300"><tspan x="50" y="300" font-size="24">0 bedroom</tspan></text>` +
	`<image id="dyno.agentheadshot" xlink:href="placeholder.png" width="100" height="100"/>` +
	`<image id="dyno.logo" href="logo.png"/>` +
	`<text id="caption" x="900" y="50">Open house this weekend only please</text>` +
	`</svg>`

func parse(t *testing.T, doc string) *svgdoc.Node {
	t.Helper()
	n, err := svgdoc.Parse(doc)
	require.NoError(t, err)
	return n
}

func runs(t *testing.T, doc, id string) []*svgdoc.Node {
	t.Helper()
	els := parse(t, doc).ElementsByID(id)
	require.NotEmpty(t, els, "element %s", id)
	return els[0].ChildElements("tspan")
}

func texts(nodes []*svgdoc.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text()
	}
	return out
}

func attr(n *svgdoc.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func pngFetcher(t *testing.T, w, h int) ports.ImageFetcher {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	data := buf.Bytes()
	return ports.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		return data, nil
	})
}

func TestAnalyze_PartitionsKinds(t *testing.T) {
	a, err := Analyze(listing)
	require.NoError(t, err)

	assert.Equal(t, []string{"agentheadshot", "bedrooms", "logo", "price", "propertyaddress"}, a.Fields())

	price, ok := a.Get("dyno.price")
	require.True(t, ok)
	assert.Equal(t, domain.KindText, price.Kind)
	assert.Equal(t, domain.RulePlain, price.Rule)
	assert.Equal(t, "$0", price.Original)
	assert.Equal(t, domain.Point{X: 100, Y: 200}, price.Anchor)

	addr := a.Placeholders["propertyaddress"]
	assert.Equal(t, domain.RuleAddress, addr.Rule)
	assert.Equal(t, domain.Point{X: 766, Y: 1000.04}, addr.Anchor)
	assert.True(t, addr.HasAnchor)

	assert.Equal(t, domain.RulePaired, a.Placeholders["bedrooms"].Rule)

	head := a.Placeholders["agentheadshot"]
	assert.Equal(t, domain.KindImage, head.Kind)
	assert.Equal(t, domain.RoleCover, head.Role)
	assert.Equal(t, "placeholder.png", head.Original)
	assert.Empty(t, head.Rule)

	assert.Equal(t, domain.RoleLogo, a.Placeholders["logo"].Role)
	assert.Len(t, a.ByKind(domain.KindImage), 2)
	assert.Len(t, a.ByKind(domain.KindText), 3)
}

func TestAnalyze_ImageWinsOverText(t *testing.T) {
	doc := `<svg><text id="dyno.photo" x="1" y="1">caption</text><g id="dyno.photo"><image href="a.png"/></g></svg>`
	a, err := Analyze(doc)
	require.NoError(t, err)

	p := a.Placeholders["photo"]
	assert.Equal(t, domain.KindImage, p.Kind)
	assert.Equal(t, domain.RolePhoto, p.Role)
	assert.Equal(t, "a.png", p.Original)
}

func TestAnalyze_SkipsMalformedIDs(t *testing.T) {
	a, err := Analyze(`<svg><text id="dyno.">x</text><text id="price">y</text></svg>`)
	require.NoError(t, err)
	assert.Empty(t, a.Fields())
}

func TestAnalyze_AliasIDs(t *testing.T) {
	doc := `<svg><defs><image id="image0_332_4" href="p.png"/><image id="image1_294_4" href="l.png"/></defs>` +
		`<rect id="dyno.propertyimage" fill="url(#pattern0)"/></svg>`
	a, err := Analyze(doc)
	require.NoError(t, err)

	prop := a.Placeholders["propertyimage"]
	assert.Equal(t, domain.KindImage, prop.Kind)
	assert.Equal(t, "dyno.propertyimage", prop.ElementID)
	assert.Equal(t, "p.png", prop.Original)

	logo := a.Placeholders["logo"]
	assert.Equal(t, domain.KindImage, logo.Kind)
	assert.Equal(t, "image1_294_4", logo.ElementID)
}

const patternHeadshot = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="1080" height="1080">` +
	`<rect id="dyno.agentHeadshot" width="100" height="100" fill="url(#p0)"/>` +
	`<rect id="dyno.border" width="10" height="10" fill="#000"/>` +
	`<defs><pattern id="p0" patternContentUnits="objectBoundingBox" width="1" height="1">` +
	`<use xlink:href="#image2_294_4" transform="scale(0.01)"/></pattern>` +
	`<image id="image2_294_4" width="100" height="100" xlink:href="old"/></defs>` +
	`</svg>`

func TestAnalyze_PatternFilledShape(t *testing.T) {
	a, err := Analyze(patternHeadshot)
	require.NoError(t, err)

	assert.Equal(t, []string{"agentHeadshot"}, a.Fields())
	head := a.Placeholders["agentHeadshot"]
	assert.Equal(t, domain.KindImage, head.Kind)
	assert.Equal(t, domain.RoleCover, head.Role)
	assert.Equal(t, "dyno.agentHeadshot", head.ElementID)
	assert.Equal(t, "old", head.Original)
	assert.Empty(t, head.Rule)
}

func TestAnalyze_CamelCaseAliasLookup(t *testing.T) {
	doc := `<svg><rect id="dyno.agentHeadshot" fill="url(#missing)"/>` +
		`<image id="image2_294_4" href="old.png"/></svg>`
	a, err := Analyze(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"agentHeadshot"}, a.Fields())
	head := a.Placeholders["agentHeadshot"]
	assert.Equal(t, domain.KindImage, head.Kind)
	assert.Equal(t, "old.png", head.Original)
}

func TestFill_PatternFilledShape(t *testing.T) {
	out, report, err := Fill(context.Background(), patternHeadshot,
		map[string]string{"dyno.agentHeadshot": "https://x/y.jpg"},
		WithFetcher(pngFetcher(t, 300, 200)))
	require.NoError(t, err)
	assert.Equal(t, []string{"agentHeadshot"}, report.Applied)
	assert.NoError(t, report.ImageErr())

	root := parse(t, out)
	rect := root.ElementsByID("dyno.agentHeadshot")[0]
	assert.Empty(t, rect.Children)
	assert.NotContains(t, out, "https://x/y.jpg")

	img := root.ElementsByID("image2_294_4")[0]
	decoded := decodeURI(t, attr(img, "xlink:href"))
	assert.Equal(t, image.Pt(100, 100), decoded.Bounds().Size())
}

func TestAnalyze_InvalidDocument(t *testing.T) {
	_, err := Analyze("not svg")
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestAddressLines(t *testing.T) {
	assert.Equal(t, []string{"123 Main St", "Springfield", "IL 62704"}, AddressLines("123 Main St, Springfield, IL 62704"))
	assert.Equal(t, []string{"123 Main St", "Springfield"}, AddressLines("123 Main St, Springfield"))
	assert.Equal(t, []string{"123 Main St"}, AddressLines("123 Main St"))
	assert.Equal(t, []string{"1 Loop", "Unit 4, Cupertino", "CA"}, AddressLines("1 Loop, Unit 4, Cupertino, CA"))
}

func TestSubstituteText_AddressSlots(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"123 Main St, Springfield, IL 62704", []string{"123 Main St", "Springfield", "IL 62704"}},
		{"123 Main St, Springfield", []string{"123 Main St", "Springfield", ""}},
		{"123 Main St", []string{"123 Main St", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			out, err := SubstituteText(listing, "propertyaddress", tt.value)
			require.NoError(t, err)

			slots := runs(t, out, "dyno.propertyaddress")
			assert.Equal(t, tt.want, texts(slots))
			assert.Equal(t, "1028.04", attr(slots[1], "y"))
		})
	}
}

func TestSubstituteText_AddressWithoutSlots(t *testing.T) {
	doc := `<svg><text id="dyno.address" x="10" y="20">old</text></svg>`

	out, err := SubstituteText(doc, "address", "1 Elm St, Austin, TX")
	require.NoError(t, err)

	lines := runs(t, out, "dyno.address")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1 Elm St", "Austin", "TX"}, texts(lines))
	assert.Equal(t, []string{"20", "48", "76"}, []string{attr(lines[0], "y"), attr(lines[1], "y"), attr(lines[2], "y")})
	assert.Equal(t, "10", attr(lines[2], "x"))
}

func TestSubstituteText_AddressDropsLinesWithoutSlot(t *testing.T) {
	doc := `<svg><text id="dyno.address"><tspan x="10" y="20">old</tspan></text></svg>`

	out, err := SubstituteText(doc, "address", "1 Elm St, Austin, TX")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 Elm St"}, texts(runs(t, out, "dyno.address")))
}

func TestSubstituteText_Paired(t *testing.T) {
	out, err := SubstituteText(listing, "bedrooms", "3 bedroom")
	require.NoError(t, err)

	pair := runs(t, out, "dyno.bedrooms")
	require.Len(t, pair, 2)
	assert.Equal(t, []string{"3", "bedroom"}, texts(pair))
	assert.Equal(t, "50", attr(pair[0], "x"))
	assert.Equal(t, "80", attr(pair[1], "x"))
	assert.Equal(t, "300", attr(pair[1], "y"))
	assert.Equal(t, "24", attr(pair[1], "font-size"))
}

func TestSubstituteText_PairedWithoutSpaceFallsBackToPlain(t *testing.T) {
	out, err := SubstituteText(listing, "bedrooms", "Studio")
	require.NoError(t, err)
	assert.Equal(t, []string{"Studio"}, texts(runs(t, out, "dyno.bedrooms")))
}

func TestSubstituteText_PlainKeepsAttributes(t *testing.T) {
	out, err := SubstituteText(listing, "dyno.price", "$1,250,000")
	require.NoError(t, err)
	assert.Contains(t, out, `<text id="dyno.price" x="100" y="200" fill="#fff"><tspan x="100" y="200">$1,250,000</tspan></text>`)
}

func TestSubstituteText_EmptyBlanks(t *testing.T) {
	out, err := SubstituteText(listing, "price", "")
	require.NoError(t, err)
	assert.Contains(t, out, `<tspan x="100" y="200"></tspan>`)
}

func TestSubstituteText_AbsentIsIdentity(t *testing.T) {
	out, err := SubstituteText(listing, "nothere", "x")
	assert.ErrorIs(t, err, domain.ErrFieldNotPresent)
	assert.Equal(t, listing, out)
}

func TestSubstituteText_NeverTouchesImages(t *testing.T) {
	out, err := SubstituteText(listing, "logo", "ACME")
	assert.ErrorIs(t, err, domain.ErrFieldNotPresent)
	assert.Equal(t, listing, out)
}

func TestSubstituteText_RepeatedIDs(t *testing.T) {
	doc := `<svg><text id="dyno.name">a</text><text id="dyno.name">b</text></svg>`
	out, err := SubstituteText(doc, "name", "Jane")
	require.NoError(t, err)
	assert.Equal(t, `<svg><text id="dyno.name">Jane</text><text id="dyno.name">Jane</text></svg>`, out)
}

func decodeURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestSubstituteImage_CoverHeadshot(t *testing.T) {
	out, err := SubstituteImage(context.Background(), listing, "agentheadshot", "face.png", WithFetcher(pngFetcher(t, 320, 180)))
	require.NoError(t, err)

	el := parse(t, out).ElementsByID("dyno.agentheadshot")[0]
	assert.False(t, el.HasAttr("href"))
	img := decodeURI(t, attr(el, "xlink:href"))
	assert.Equal(t, image.Pt(100, 100), img.Bounds().Size())
}

func TestSubstituteImage_LogoContain(t *testing.T) {
	out, err := SubstituteImage(context.Background(), listing, "logo", "logo.png", WithFetcher(pngFetcher(t, 40, 30)))
	require.NoError(t, err)

	el := parse(t, out).ElementsByID("dyno.logo")[0]
	assert.False(t, el.HasAttr("xlink:href"))
	img := decodeURI(t, attr(el, "href"))
	assert.Equal(t, image.Pt(40, 30), img.Bounds().Size())
}

func TestSubstituteImage_AliasFallback(t *testing.T) {
	doc := `<svg><image id="image0_294_4" width="800" height="600" href="old.png"/></svg>`
	out, err := SubstituteImage(context.Background(), doc, "propertyimage", "house.png", WithFetcher(pngFetcher(t, 1600, 1200)))
	require.NoError(t, err)

	el := parse(t, out).ElementsByID("image0_294_4")[0]
	img := decodeURI(t, attr(el, "href"))
	assert.Equal(t, image.Pt(800, 600), img.Bounds().Size())
}

func TestSubstituteImage_SoftFailures(t *testing.T) {
	failing := ports.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		return nil, errors.New("connection refused")
	})
	out, err := SubstituteImage(context.Background(), listing, "logo", "http://x/logo.png", WithFetcher(failing))
	assert.ErrorIs(t, err, domain.ErrImageFetchFailed)
	assert.Equal(t, listing, out)

	garbage := ports.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		return []byte("<html>"), nil
	})
	out, err = SubstituteImage(context.Background(), listing, "logo", "logo.png", WithFetcher(garbage))
	assert.ErrorIs(t, err, domain.ErrImageDecodeFailed)
	assert.Equal(t, listing, out)

	_, err = SubstituteImage(context.Background(), listing, "logo", "logo.png")
	assert.ErrorIs(t, err, domain.ErrImageFetchFailed)

	out, err = SubstituteImage(context.Background(), listing, "price", "logo.png", WithFetcher(pngFetcher(t, 1, 1)))
	assert.ErrorIs(t, err, domain.ErrFieldNotPresent)
	assert.Equal(t, listing, out)
}

func TestWrapOverflowing(t *testing.T) {
	out, err := WrapOverflowing(listing, 1080)
	require.NoError(t, err)

	lines := runs(t, out, "caption")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Open house this", "weekend only please"}, texts(lines))
	assert.Equal(t, "50", attr(lines[0], "y"))
	assert.Equal(t, "78", attr(lines[1], "y"))
	assert.Equal(t, "900", attr(lines[1], "x"))
}

func TestWrapOverflowing_Thresholds(t *testing.T) {
	tests := map[string]string{
		"left of edge":   `<svg><text x="864" y="10">Open house this weekend only please</text></svg>`,
		"short text":     `<svg><text x="900" y="10">Open house today</text></svg>`,
		"two long words": `<svg><text x="900" y="10">Supercalifragilistic Expialidocious</text></svg>`,
		"already split":  `<svg><text x="900" y="10"><tspan>Open house this</tspan><tspan>weekend only please</tspan></text></svg>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := WrapOverflowing(doc, 1080)
			require.NoError(t, err)
			assert.Equal(t, doc, out)
		})
	}
}

func TestWrapOverflowing_CanvasWidth(t *testing.T) {
	doc := `<svg><text x="500" y="10">Open house this weekend only please</text></svg>`
	out, err := WrapOverflowing(doc, 600)
	require.NoError(t, err)
	assert.NotEqual(t, doc, out)
}

func TestProcessor_Apply(t *testing.T) {
	failing := ports.FetcherFunc(func(ctx context.Context, source string) ([]byte, error) {
		return nil, errors.New("timeout")
	})
	p, err := NewProcessor(listing, WithFetcher(failing))
	require.NoError(t, err)

	report := p.Apply(context.Background(), map[string]string{
		"dyno.price":    "$900,000",
		"bedrooms":      "4 bedroom",
		"unknown_field": "ignored",
		"logo":          "https://example.com/logo.png",
	})

	assert.Equal(t, []string{"bedrooms", "price"}, report.Applied)
	assert.Equal(t, []string{"unknown_field"}, report.Skipped)
	require.Len(t, report.Images, 1)
	assert.Equal(t, "logo", report.Images[0].Field)
	assert.ErrorIs(t, report.ImageErr(), domain.ErrImageFetchFailed)
	assert.Len(t, report.Warnings(), 2)

	out := p.String()
	assert.Contains(t, out, "$900,000")
	assert.Contains(t, out, `href="logo.png"`)
}

func TestFill(t *testing.T) {
	out, report, err := Fill(context.Background(), listing, map[string]string{"price": "$1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"price"}, report.Applied)
	assert.Contains(t, out, ">$1<")
	assert.Len(t, runs(t, out, "caption"), 2)
}
