package dynoslide

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/dynoslide/internal/adapters/file"
	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/adapters/fetch"
	loamAdapter "github.com/aretw0/dynoslide/pkg/adapters/loam"
	"github.com/aretw0/dynoslide/pkg/adapters/memory"
	"github.com/aretw0/dynoslide/pkg/catalog"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
	"github.com/aretw0/dynoslide/pkg/pipeline"
	"github.com/aretw0/dynoslide/pkg/ports"
)

// DefaultBaseURL prefixes asset URLs when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// Engine is the high-level entry point for the dynoslide library.
// It wires the substitution pipeline, the carousel orchestrator and the
// template catalog over a set of stores.
type Engine struct {
	templates  ports.TemplateStore
	carousels  ports.CarouselStore
	assets     ports.AssetStore
	rasterizer ports.Rasterizer
	fetcher    ports.ImageFetcher
	locker     ports.DistributedLocker
	lockTTL    time.Duration
	hooks      domain.GenerationHooks
	dynoOpts   []dyno.Option
	policy     pipeline.ImageFailurePolicy
	maxRuns    int
	rasterW    int
	rasterH    int
	baseURL    string
	logger     *slog.Logger

	pipeline     *pipeline.Pipeline
	orchestrator *pipeline.Orchestrator
	catalog      *catalog.Catalog
	Name         string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTemplateStore replaces the default template store.
func WithTemplateStore(s ports.TemplateStore) Option {
	return func(e *Engine) {
		e.templates = s
	}
}

// WithCarouselStore replaces the default carousel store.
func WithCarouselStore(s ports.CarouselStore) Option {
	return func(e *Engine) {
		e.carousels = s
	}
}

// WithAssetStore replaces the default asset store.
func WithAssetStore(s ports.AssetStore) Option {
	return func(e *Engine) {
		e.assets = s
	}
}

// WithRasterizer sets the rasterization backend (default: passthrough SVG).
func WithRasterizer(r ports.Rasterizer) Option {
	return func(e *Engine) {
		e.rasterizer = r
	}
}

// WithFetcher sets the image source resolver used by image substitution.
func WithFetcher(f ports.ImageFetcher) Option {
	return func(e *Engine) {
		e.fetcher = f
	}
}

// WithLocker enables distributed locking of carousel transitions.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// WithGenerationHooks registers observability hooks.
func WithGenerationHooks(hooks domain.GenerationHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithDynoOptions appends substitution options (aliases, line height, image config).
func WithDynoOptions(opts ...dyno.Option) Option {
	return func(e *Engine) {
		e.dynoOpts = append(e.dynoOpts, opts...)
	}
}

// WithImagePolicy selects how image failures affect a slide.
func WithImagePolicy(p pipeline.ImageFailurePolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithMaxConcurrent bounds concurrent generation runs.
func WithMaxConcurrent(n int) Option {
	return func(e *Engine) {
		e.maxRuns = n
	}
}

// WithRasterSize sets the output size hints passed to the rasterizer.
func WithRasterSize(width, height int) Option {
	return func(e *Engine) {
		e.rasterW, e.rasterH = width, height
	}
}

// WithBaseURL sets the public prefix of default asset URLs.
func WithBaseURL(u string) Option {
	return func(e *Engine) {
		e.baseURL = u
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. With a dataDir, templates, carousels and assets
// persist under it; without one, and unless stores are injected, everything
// lives in memory.
func New(dataDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		baseURL: DefaultBaseURL,
		policy:  pipeline.FailSlide,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if dataDir != "" {
		absPath, err := filepath.Abs(dataDir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.logger = eng.logger.With("data_dir", eng.Name)

		if eng.templates == nil {
			templates, err := loamAdapter.Open(filepath.Join(absPath, "templates"), eng.logger)
			if err != nil {
				return nil, err
			}
			eng.templates = templates
		}
		if eng.carousels == nil {
			eng.carousels = file.NewCarouselStore(filepath.Join(absPath, "carousels"))
		}
		if eng.assets == nil {
			eng.assets = file.NewAssetStore(filepath.Join(absPath, "assets"), eng.baseURL)
		}
	}

	if eng.templates == nil {
		eng.templates = memory.NewTemplateStore()
	}
	if eng.carousels == nil {
		eng.carousels = memory.NewCarouselStore()
	}
	if eng.assets == nil {
		eng.assets = memory.NewAssetStore(eng.baseURL)
	}
	if eng.rasterizer == nil {
		eng.rasterizer = memory.PassthroughRasterizer{}
	}
	if eng.fetcher == nil {
		eng.fetcher = fetch.New(fetch.WithLogger(eng.logger))
	}

	dynoOpts := append([]dyno.Option{dyno.WithFetcher(eng.fetcher)}, eng.dynoOpts...)
	eng.pipeline = pipeline.NewPipeline(eng.templates, eng.assets, eng.rasterizer,
		pipeline.WithDynoOptions(dynoOpts...),
		pipeline.WithImagePolicy(eng.policy),
		pipeline.WithRasterSize(eng.rasterW, eng.rasterH),
		pipeline.WithPipelineLogger(eng.logger),
	)

	orchOpts := []pipeline.Option{
		pipeline.WithLogger(eng.logger),
		pipeline.WithHooks(eng.hooks),
		pipeline.WithMaxConcurrent(eng.maxRuns),
	}
	if eng.locker != nil {
		orchOpts = append(orchOpts, pipeline.WithLocker(eng.locker), pipeline.WithLockTTL(eng.lockTTL))
	}
	eng.orchestrator = pipeline.NewOrchestrator(eng.pipeline, eng.carousels, orchOpts...)
	eng.catalog = catalog.New(eng.templates,
		catalog.WithPipeline(eng.pipeline),
		catalog.WithLogger(eng.logger),
	)

	return eng, nil
}

// Analyze discovers the placeholders of a document with the engine's options.
func (e *Engine) Analyze(doc string) (dyno.Analysis, error) {
	return dyno.Analyze(doc, e.pipeline.DynoOptions()...)
}

// Render fills a document with values and wraps overflowing text.
// Image failures are returned as an error under the fail-slide policy.
func (e *Engine) Render(ctx context.Context, doc string, values map[string]string, canvasWidth int) (string, dyno.Report, error) {
	return e.pipeline.Fill(ctx, doc, values, canvasWidth)
}

// Catalog returns the template catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Carousels returns the generation orchestrator.
func (e *Engine) Carousels() *pipeline.Orchestrator {
	return e.orchestrator
}

// Pipeline returns the substitution pipeline.
func (e *Engine) Pipeline() *pipeline.Pipeline {
	return e.pipeline
}

// Assets returns the asset store rendered slides are written to.
func (e *Engine) Assets() ports.AssetStore {
	return e.assets
}

// Close stops accepting generation runs and waits for running ones.
func (e *Engine) Close(ctx context.Context) error {
	return e.orchestrator.Close(ctx)
}
