// Package catalog manages the template library: import with sanitizing and
// optimization, lookup, search, carousel sets and previews.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
	"github.com/aretw0/dynoslide/pkg/pipeline"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// DefaultMaxSize is the largest accepted template document.
const DefaultMaxSize = 25 << 20

// DefaultCategory is assigned when an import names none.
const DefaultCategory = "general"

// ErrTemplateTooLarge is returned when a document exceeds the size limit.
var ErrTemplateTooLarge = errors.New("template exceeds size limit")

// Catalog is the template library service.
type Catalog struct {
	store    ports.TemplateStore
	pipeline *pipeline.Pipeline
	aliases  map[string][]string
	maxSize  int
	policy   *bluemonday.Policy
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithLogger configures a logger for the Catalog.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPipeline enables preview rendering.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(c *Catalog) {
		c.pipeline = p
	}
}

// WithMaxSize overrides DefaultMaxSize.
func WithMaxSize(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithAliases sets the alternate image ids protected from optimization.
func WithAliases(aliases map[string][]string) Option {
	return func(c *Catalog) {
		c.aliases = aliases
	}
}

// New creates a Catalog over a template store.
func New(store ports.TemplateStore, opts ...Option) *Catalog {
	c := &Catalog{
		store:   store,
		aliases: dyno.DefaultAliases(),
		maxSize: DefaultMaxSize,
		policy:  bluemonday.StrictPolicy(),
		logger:  logging.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImportRequest describes a new template.
type ImportRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"template_type"`
	SVG      string `json:"svg_content"`
}

// ImportResult reports the stored template and the optimization gain.
type ImportResult struct {
	Template      *domain.Template `json:"template"`
	OriginalSize  int              `json:"original_size"`
	OptimizedSize int              `json:"optimized_size"`
}

// Import validates, sanitizes and optimizes a document and stores it.
// A failing preview is logged and does not fail the import.
func (c *Catalog) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	name := c.clean(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidTemplate)
	}
	typ, err := templateType(req.Type)
	if err != nil {
		return nil, err
	}
	category := slug(c.clean(req.Category))
	if category == "" {
		category = DefaultCategory
	}

	svg, err := c.optimize(req.SVG)
	if err != nil {
		return nil, err
	}

	now := c.now()
	tpl := &domain.Template{
		ID:        fmt.Sprintf("%s-%s-%s", category, typ, uuid.NewString()[:8]),
		Name:      name,
		Category:  category,
		Type:      typ,
		SVG:       svg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.refreshPreview(ctx, tpl)

	if err := c.store.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	c.logger.Info("template imported",
		"template_id", tpl.ID,
		"original_size", len(req.SVG),
		"optimized_size", len(svg),
	)
	return &ImportResult{Template: tpl, OriginalSize: len(req.SVG), OptimizedSize: len(svg)}, nil
}

// UpdateRequest changes the fields that are set.
type UpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Type     *string `json:"template_type,omitempty"`
	SVG      *string `json:"svg_content,omitempty"`
}

// Update modifies metadata and optionally replaces the document, which
// regenerates the preview. The id never changes.
func (c *Catalog) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Template, error) {
	tpl, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := c.clean(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidTemplate)
		}
		tpl.Name = name
	}
	if req.Category != nil {
		if tpl.Category = slug(c.clean(*req.Category)); tpl.Category == "" {
			tpl.Category = DefaultCategory
		}
	}
	if req.Type != nil {
		if tpl.Type, err = templateType(*req.Type); err != nil {
			return nil, err
		}
	}
	if req.SVG != nil {
		if tpl.SVG, err = c.optimize(*req.SVG); err != nil {
			return nil, err
		}
		c.refreshPreview(ctx, tpl)
	}
	tpl.UpdatedAt = c.now()

	if err := c.store.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return tpl, nil
}

// Delete removes a template.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return lookupErr(err)
	}
	c.logger.Info("template deleted", "template_id", id)
	return nil
}

// Get returns one template including its document.
func (c *Catalog) Get(ctx context.Context, id string) (*domain.Template, error) {
	tpl, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err)
	}
	return tpl, nil
}

// Fields analyzes the placeholders of a stored template.
func (c *Catalog) Fields(ctx context.Context, id string) (dyno.Analysis, error) {
	tpl, err := c.Get(ctx, id)
	if err != nil {
		return dyno.Analysis{}, err
	}
	return dyno.Analyze(tpl.SVG, dyno.WithAliases(c.aliases), dyno.WithLogger(c.logger))
}

func (c *Catalog) optimize(src string) (string, error) {
	if len(src) > c.maxSize {
		return "", fmt.Errorf("%w: %d bytes, maximum %d", ErrTemplateTooLarge, len(src), c.maxSize)
	}
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%w: empty document", domain.ErrInvalidTemplate)
	}
	doc, err := svgdoc.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTemplate, err)
	}
	if root := doc.Root(); root == nil || root.Tag != "svg" {
		return "", fmt.Errorf("%w: root element is not svg", domain.ErrInvalidTemplate)
	}

	keep := make(map[string]bool)
	for _, ids := range c.aliases {
		for _, id := range ids {
			keep[id] = true
		}
	}
	svgdoc.Optimize(doc, svgdoc.OptimizeOptions{
		Keep: func(id string) bool {
			return keep[id] || strings.Contains(id, domain.FieldPrefix)
		},
	})
	return doc.String(), nil
}

// clean strips markup and collapses whitespace.
func (c *Catalog) clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(c.policy.Sanitize(s))), " ")
}

func templateType(s string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "":
		return domain.TemplateTypeMain, nil
	case domain.TemplateTypeMain, domain.TemplateTypePhoto:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown template type %q", domain.ErrInvalidTemplate, s)
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func lookupErr(err error) error {
	if errors.Is(err, domain.ErrTemplateNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}

func sortTemplates(list []*domain.Template) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
