package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dynoslide/pkg/adapters/memory"
	"github.com/aretw0/dynoslide/pkg/catalog"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/observability"
	"github.com/aretw0/dynoslide/pkg/pipeline"
)

const cardSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="1080" height="1080">` +
	`<text id="dyno.price" x="40" y="80"><tspan x="40" y="80">$0</tspan></text>` +
	`<text id="dyno.bedrooms" x="40" y="160">0 bd</text>` +
	`</svg>`

type fixture struct {
	handler  http.Handler
	orch     *pipeline.Orchestrator
	catalog  *catalog.Catalog
	assets   *memory.AssetStore
	streams  *StreamManager
	template string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	templates := memory.NewTemplateStore()
	assets := memory.NewAssetStore("http://test")
	p := pipeline.NewPipeline(templates, assets, memory.PassthroughRasterizer{})
	streams := NewStreamManager()
	metrics := observability.NewMetrics()
	orch := pipeline.NewOrchestrator(p, memory.NewCarouselStore(),
		pipeline.WithHooks(streams.Hooks()),
		pipeline.WithHooks(metrics.Hooks()),
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = orch.Close(ctx)
	})
	cat := catalog.New(templates, catalog.WithPipeline(p))

	res, err := cat.Import(context.Background(), catalog.ImportRequest{Name: "Card - Main", Category: "open-house", SVG: cardSVG})
	require.NoError(t, err)

	opts = append([]Option{WithStreams(streams), WithMetrics(metrics.Handler()), WithVersion("1.2.3\n")}, opts...)
	h, err := NewServer(cat, orch, assets, opts...).Handler()
	require.NoError(t, err)
	return &fixture{handler: h, orch: orch, catalog: cat, assets: assets, streams: streams, template: res.Template.ID}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthInfoSpec(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	info := decode[map[string]string](t, f.do(t, http.MethodGet, "/info", nil))
	assert.Equal(t, "dynoslide", info["app"])
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	rec = f.do(t, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRoutesMatchSpec(t *testing.T) {
	f := newFixture(t)

	generated, err := GetSwagger()
	require.NoError(t, err)
	source, err := openapi3.NewLoader().LoadFromData(specYAML)
	require.NoError(t, err)

	operations := func(doc *openapi3.T) []string {
		var out []string
		for path, item := range doc.Paths.Map() {
			for method := range item.Operations() {
				out = append(out, method+" "+path)
			}
		}
		sort.Strings(out)
		return out
	}
	want := operations(source)
	require.Equal(t, want, operations(generated), "api.gen.go is stale, run go generate")

	routes, ok := f.handler.(chi.Routes)
	require.True(t, ok)
	var mounted []string
	require.NoError(t, chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		mounted = append(mounted, method+" "+route)
		return nil
	}))
	for _, op := range want {
		assert.Contains(t, mounted, op)
	}
}

func TestErrorBody(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"missing template", http.MethodGet, "/templates/missing", http.StatusNotFound},
		{"missing carousel", http.MethodGet, "/carousels/missing/status", http.StatusNotFound},
		{"bad enum", http.MethodGet, "/templates?template_type=poster", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, nil)
			assert.Equal(t, tt.status, rec.Code)
			body := decode[ErrorResponse](t, rec)
			require.NotNil(t, body.Error)
			assert.NotEmpty(t, *body.Error)
		})
	}
}

func TestCORS(t *testing.T) {
	f := newFixture(t, WithCORSOrigins([]string{"https://app.example.com"}))

	req := httptest.NewRequest(http.MethodOptions, "/templates", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTemplates(t *testing.T) {
	f := newFixture(t)

	list := decode[struct {
		Templates []domain.Template `json:"templates"`
		Total     int               `json:"total"`
	}](t, f.do(t, http.MethodGet, "/templates?category=open-house", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, f.template, list.Templates[0].ID)
	assert.Empty(t, list.Templates[0].SVG)
	assert.NotEmpty(t, list.Templates[0].PreviewURL)

	rec := f.do(t, http.MethodGet, "/templates?template_type=poster", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	tpl := decode[domain.Template](t, f.do(t, http.MethodGet, "/templates/"+f.template, nil))
	assert.Contains(t, tpl.SVG, "dyno.price")

	rec = f.do(t, http.MethodGet, "/templates/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "template not found")

	fields := decode[struct {
		Fields []domain.Placeholder `json:"fields"`
	}](t, f.do(t, http.MethodGet, "/templates/"+f.template+"/fields", nil))
	require.Len(t, fields.Fields, 2)
	assert.Equal(t, "bedrooms", fields.Fields[0].FieldName)
	assert.Equal(t, domain.RulePaired, fields.Fields[0].Rule)
	assert.Equal(t, "price", fields.Fields[1].FieldName)

	stats := decode[catalog.Stats](t, f.do(t, http.MethodGet, "/templates/stats", nil))
	assert.Equal(t, 1, stats.Total)

	rec = f.do(t, http.MethodGet, "/templates/categories", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"open-house"`)

	rec = f.do(t, http.MethodGet, "/templates/sets", nil)
	assert.JSONEq(t, `{"carousel_templates":[],"total":0}`, rec.Body.String())

	name := "Card - Photo"
	updated := decode[domain.Template](t, f.do(t, http.MethodPut, "/templates/"+f.template, catalog.UpdateRequest{Name: &name}))
	assert.Equal(t, name, updated.Name)

	rec = f.do(t, http.MethodPost, "/templates/"+f.template+"/preview", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/templates/"+f.template, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/templates/"+f.template, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportTemplate(t *testing.T) {
	f := newFixture(t)

	t.Run("json", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/templates", map[string]string{
			"name":          "Sold - Photo",
			"category":      "sold",
			"template_type": "photo",
			"svg_content":   "<svg><!-- c --><text id=\"dyno.price\">$1</text></svg>",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		res := decode[catalog.ImportResult](t, rec)
		assert.True(t, strings.HasPrefix(res.Template.ID, "sold-photo-"))
		assert.NotContains(t, res.Template.SVG, "<!--")
	})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "Upload"))
		require.NoError(t, mw.WriteField("category", "lease"))
		part, err := mw.CreateFormFile("file", "flyer.svg")
		require.NoError(t, err)
		_, _ = part.Write([]byte(cardSVG))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/templates", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "lease", decode[catalog.ImportResult](t, rec).Template.Category)
	})

	t.Run("wrong extension", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "Upload"))
		part, err := mw.CreateFormFile("file", "flyer.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/templates", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/templates", map[string]string{"name": "x", "svg_content": "<html/>"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = f.do(t, http.MethodPost, "/templates", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCarouselLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/carousels", map[string]any{
		"name": "Listing",
		"slides": []map[string]any{
			{"template_id": f.template, "replacements": map[string]any{"price": 450000, "bedrooms": "3 bd"}},
			{"templateId": "missing-template", "replacements": map[string]any{}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[domain.Carousel](t, rec)
	assert.Equal(t, domain.CarouselCreated, c.State)
	assert.Equal(t, domain.DefaultCanvasWidth, c.CanvasWidth)
	require.Len(t, c.Slides, 2)
	assert.Equal(t, "450000", c.Slides[0].Values["price"])

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/slides", map[string]any{"template_id": f.template})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, decode[domain.Slide](t, rec).Number)

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/generate", nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	gen := decode[generateResponse](t, rec)
	assert.True(t, gen.Started)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := f.orch.Wait(ctx, c.ID)
	require.NoError(t, err)

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/generate", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	gen = decode[generateResponse](t, rec)
	assert.False(t, gen.Started)
	assert.Equal(t, domain.CarouselCompleted, gen.State)

	st := decode[domain.Status](t, f.do(t, http.MethodGet, "/carousels/"+c.ID+"/status", nil))
	assert.Equal(t, domain.Progress{Completed: 2, Failed: 1, Total: 3, Percentage: 100}, st.Progress)

	slides := decode[struct {
		Slides []domain.Slide `json:"slides"`
		Total  int            `json:"total_slides"`
	}](t, f.do(t, http.MethodGet, "/carousels/"+c.ID+"/slides", nil))
	require.Equal(t, 3, slides.Total)
	assert.Equal(t, domain.SlideFailed, slides.Slides[1].State)

	asset := strings.TrimPrefix(slides.Slides[0].URL, "http://test")
	rec = f.do(t, http.MethodGet, asset, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "450000")

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/slides", map[string]any{"template_id": f.template})
	assert.Equal(t, http.StatusConflict, rec.Code)

	list := decode[struct {
		Total int `json:"total"`
	}](t, f.do(t, http.MethodGet, "/carousels", nil))
	assert.Equal(t, 1, list.Total)

	rec = f.do(t, http.MethodGet, "/carousels/"+c.ID+"/events", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event: status")
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)

	rec = f.do(t, http.MethodDelete, "/carousels/"+c.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/carousels/"+c.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCarouselErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/carousels", map[string]any{"canvas_width": 1080})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")

	rec = f.do(t, http.MethodPost, "/carousels", map[string]any{"name": "x", "slides": []map[string]any{{"replacements": map[string]any{}}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slide 1")

	rec = f.do(t, http.MethodPost, "/carousels", map[string]any{"name": "Empty"})
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[domain.Carousel](t, rec)

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/generate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/carousels/nope/status", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/assets/nope.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateWithBodySlides(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/carousels", map[string]any{"name": "Legacy flow", "canvas_width": 1200})
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[domain.Carousel](t, rec)

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/generate", map[string]any{
		"slides": []map[string]any{{"templateId": f.template, "replacements": map[string]any{"price": "$1"}}},
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	gen := decode[generateResponse](t, rec)
	assert.True(t, gen.Started)
	assert.Equal(t, 1, gen.Progress.Total)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := f.orch.Wait(ctx, c.ID)
	require.NoError(t, err)

	rec = f.do(t, http.MethodPost, "/carousels/"+c.ID+"/generate", map[string]any{
		"slides": []map[string]any{{"templateId": f.template, "replacements": map[string]any{"price": "$2"}}},
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	gen = decode[generateResponse](t, rec)
	assert.False(t, gen.Started)
	assert.Equal(t, domain.CarouselCompleted, gen.State)
	assert.Equal(t, 1, gen.Progress.Total)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("c1")

	sm.Broadcast("c1", domain.EventSlideDone, map[string]int{"slide_number": 1})
	sm.Broadcast("c2", domain.EventSlideDone, map[string]int{"slide_number": 9})

	ev := <-ch
	assert.Equal(t, domain.EventSlideDone, ev.Type)
	assert.JSONEq(t, `{"slide_number":1}`, string(ev.Data))

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Empty(t, sm.subscribers)
}
