package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
	"github.com/aretw0/dynoslide/pkg/ports"
)

// ImageFailurePolicy decides what an image fetch or decode failure does to a slide.
type ImageFailurePolicy string

const (
	// FailSlide marks the slide failed.
	FailSlide ImageFailurePolicy = "fail-slide"
	// SoftImages keeps the template image and records a warning.
	SoftImages ImageFailurePolicy = "soft"
)

// ParsePolicy maps a configuration value to a policy; unknown values select FailSlide.
func ParsePolicy(s string) ImageFailurePolicy {
	if ImageFailurePolicy(s) == SoftImages {
		return SoftImages
	}
	return FailSlide
}

// Pipeline renders single slides. It is safe for concurrent use.
type Pipeline struct {
	templates  ports.TemplateStore
	assets     ports.AssetStore
	rasterizer ports.Rasterizer

	dynoOpts     []dyno.Option
	policy       ImageFailurePolicy
	rasterWidth  int
	rasterHeight int
	logger       *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithDynoOptions forwards options to every Processor the pipeline creates.
func WithDynoOptions(opts ...dyno.Option) PipelineOption {
	return func(p *Pipeline) {
		p.dynoOpts = append(p.dynoOpts, opts...)
	}
}

// WithImagePolicy sets the image failure policy. Default FailSlide.
func WithImagePolicy(policy ImageFailurePolicy) PipelineOption {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithRasterSize sets the width and height hints passed to the rasterizer.
// Zero leaves the dimension to the document.
func WithRasterSize(width, height int) PipelineOption {
	return func(p *Pipeline) {
		p.rasterWidth, p.rasterHeight = width, height
	}
}

// WithPipelineLogger configures a logger for the Pipeline.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline wires the stores and the rasterizer.
func NewPipeline(templates ports.TemplateStore, assets ports.AssetStore, rasterizer ports.Rasterizer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		templates:  templates,
		assets:     assets,
		rasterizer: rasterizer,
		policy:     FailSlide,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one rendered slide.
type Result struct {
	Asset    domain.AssetRef
	URL      string
	Warnings []string
}

// Fill substitutes values into svg and wraps overflowing text.
// Under FailSlide an image failure is returned as an error along with the report.
func (p *Pipeline) Fill(ctx context.Context, svg string, values map[string]string, canvasWidth int) (string, dyno.Report, error) {
	opts := append([]dyno.Option{dyno.WithLogger(p.logger)}, p.dynoOpts...)
	proc, err := dyno.NewProcessor(svg, opts...)
	if err != nil {
		return "", dyno.Report{}, err
	}

	report := proc.Apply(ctx, values)
	if p.policy == FailSlide && len(report.Images) > 0 {
		return "", report, report.ImageErr()
	}
	if canvasWidth <= 0 {
		canvasWidth = domain.DefaultCanvasWidth
	}
	if n := proc.WrapOverflowing(canvasWidth); n > 0 {
		p.logger.Debug("wrapped overflowing text", "elements", n)
	}
	return proc.String(), report, nil
}

// Compose loads a template and fills it.
func (p *Pipeline) Compose(ctx context.Context, templateID string, values map[string]string, canvasWidth int) (string, dyno.Report, error) {
	tpl, err := p.templates.Get(ctx, templateID)
	if err != nil {
		return "", dyno.Report{}, storageErr(err)
	}
	return p.Fill(ctx, tpl.SVG, values, canvasWidth)
}

// Rasterize hands a filled document to the rasterizer.
func (p *Pipeline) Rasterize(ctx context.Context, document string, width, height int) ([]byte, error) {
	if width == 0 && height == 0 {
		width, height = p.rasterWidth, p.rasterHeight
	}
	data, err := p.rasterizer.Render(ctx, document, width, height)
	if err != nil {
		if errors.Is(err, domain.ErrRasterizationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRasterizationFailed, err)
	}
	return data, nil
}

// RenderSlide runs the whole chain for one slide and stores the raster.
// Warnings are populated even when an error is returned.
func (p *Pipeline) RenderSlide(ctx context.Context, carouselID string, slide domain.Slide, canvasWidth int) (Result, error) {
	doc, report, err := p.Compose(ctx, slide.TemplateID, slide.Values, canvasWidth)
	res := Result{Warnings: report.Warnings()}
	if err != nil {
		return res, err
	}

	data, err := p.Rasterize(ctx, doc, 0, 0)
	if err != nil {
		return res, err
	}

	ref, err := p.assets.Save(ctx, carouselID, slide.Number, data)
	if err != nil {
		return res, storageErr(err)
	}
	res.Asset = ref
	res.URL = p.assets.URLFor(ref)
	return res, nil
}

// DynoOptions returns the substitution options the pipeline applies, for
// callers that analyze documents outside a render.
func (p *Pipeline) DynoOptions() []dyno.Option {
	return append([]dyno.Option{dyno.WithLogger(p.logger)}, p.dynoOpts...)
}

// Assets exposes the asset store, e.g. for previews.
func (p *Pipeline) Assets() ports.AssetStore {
	return p.assets
}

// storageErr passes domain errors through and wraps anything else as a store failure.
func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrCarouselNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrCarouselLocked),
		errors.Is(err, domain.ErrNoSlides),
		errors.Is(err, domain.ErrStorage),
		errors.Is(err, ErrClosed):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
}
