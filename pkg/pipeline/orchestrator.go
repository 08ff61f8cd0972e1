package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/aretw0/dynoslide/pkg/session"
)

// DefaultMaxConcurrent bounds concurrently generating carousels.
const DefaultMaxConcurrent = 4

// ErrClosed is returned by Generate after Close.
var ErrClosed = errors.New("orchestrator is closed")

// Orchestrator manages carousels and their generation runs.
type Orchestrator struct {
	pipeline *Pipeline
	store    ports.CarouselStore
	sessions *session.Manager

	sem     *semaphore.Weighted
	hooks   domain.GenerationHooks
	locker  ports.DistributedLocker
	lockTTL time.Duration
	maxRuns int64
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	closed  bool
	running map[string]chan struct{}
	wg      sync.WaitGroup
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger configures a logger for the Orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks. Repeated calls merge.
func WithHooks(h domain.GenerationHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = o.hooks.Merge(h)
	}
}

// WithLocker serializes Generate across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(o *Orchestrator) {
		o.locker = locker
	}
}

// WithLockTTL sets how long a distributed lock is held before it expires.
func WithLockTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.lockTTL = ttl
	}
}

// WithMaxConcurrent bounds concurrently generating carousels.
func WithMaxConcurrent(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxRuns = int64(n)
		}
	}
}

// NewOrchestrator creates an Orchestrator over a pipeline and a carousel store.
func NewOrchestrator(p *Pipeline, store ports.CarouselStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		pipeline: p,
		store:    store,
		maxRuns:  DefaultMaxConcurrent,
		logger:   logging.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
		running:  make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.sem = semaphore.NewWeighted(o.maxRuns)
	sessOpts := []session.Option{session.WithLogger(o.logger)}
	if o.locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(o.locker))
	}
	if o.lockTTL > 0 {
		sessOpts = append(sessOpts, session.WithLockTTL(o.lockTTL))
	}
	o.sessions = session.NewManager(store, sessOpts...)
	return o
}

// Pipeline returns the slide pipeline.
func (o *Orchestrator) Pipeline() *Pipeline {
	return o.pipeline
}

// Create registers an empty carousel in the created state.
func (o *Orchestrator) Create(ctx context.Context, name string, canvasWidth int) (*domain.Carousel, error) {
	if canvasWidth <= 0 {
		canvasWidth = domain.DefaultCanvasWidth
	}
	now := o.now()
	c := &domain.Carousel{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		CanvasWidth: canvasWidth,
		State:       domain.CarouselCreated,
		Slides:      []domain.Slide{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := o.store.Create(ctx, c); err != nil {
		return nil, storageErr(err)
	}
	o.logger.Info("carousel created", "carousel_id", c.ID, "name", c.Name)
	return c.Clone(), nil
}

// AddSlide appends a pending slide. Slides can only be added before generation.
func (o *Orchestrator) AddSlide(ctx context.Context, carouselID, templateID string, values map[string]string) (domain.Slide, error) {
	var slide domain.Slide
	err := o.sessions.Transition(ctx, carouselID, func(ctx context.Context, c *domain.Carousel) error {
		if c.State != domain.CarouselCreated {
			return fmt.Errorf("%w: carousel is %s", domain.ErrCarouselLocked, c.State)
		}
		slide = domain.Slide{
			Number:     len(c.Slides) + 1,
			TemplateID: templateID,
			Values:     values,
			State:      domain.SlidePending,
			UpdatedAt:  o.now(),
		}
		slide = slide.Clone()
		return o.store.AddSlide(ctx, carouselID, slide)
	})
	if err != nil {
		return domain.Slide{}, storageErr(err)
	}
	return slide, nil
}

// Generate starts the generation run and returns immediately. started is false
// when the carousel was already generating or finished; the current status is
// returned either way.
func (o *Orchestrator) Generate(ctx context.Context, carouselID string) (domain.Status, bool, error) {
	var (
		status  domain.Status
		started bool
	)
	err := o.sessions.Transition(ctx, carouselID, func(ctx context.Context, c *domain.Carousel) error {
		if c.State != domain.CarouselCreated {
			status = c.Status()
			return nil
		}
		if len(c.Slides) == 0 {
			return domain.ErrNoSlides
		}

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.closed {
			return ErrClosed
		}
		if err := o.store.UpdateStatus(ctx, carouselID, domain.CarouselGenerating, ""); err != nil {
			return err
		}
		domain.ApplyStatus(c, domain.CarouselGenerating, "", o.now())
		status = c.Status()
		started = true

		done := make(chan struct{})
		o.running[carouselID] = done
		o.wg.Add(1)
		go o.run(context.WithoutCancel(ctx), carouselID, done)
		return nil
	})
	if err != nil {
		return domain.Status{}, false, storageErr(err)
	}
	if started {
		o.logger.Info("generation started", "carousel_id", carouselID, "slides", status.Progress.Total)
	}
	return status, started, nil
}

// Status reads the polling view. It never waits on a running generation.
func (o *Orchestrator) Status(ctx context.Context, carouselID string) (domain.Status, error) {
	c, err := o.store.Get(ctx, carouselID)
	if err != nil {
		return domain.Status{}, storageErr(err)
	}
	return c.Status(), nil
}

// Get returns the full carousel.
func (o *Orchestrator) Get(ctx context.Context, carouselID string) (*domain.Carousel, error) {
	c, err := o.store.Get(ctx, carouselID)
	if err != nil {
		return nil, storageErr(err)
	}
	return c, nil
}

// List returns every carousel, newest first.
func (o *Orchestrator) List(ctx context.Context) ([]*domain.Carousel, error) {
	list, err := o.store.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

// Slides returns the slides of a carousel ordered by number.
func (o *Orchestrator) Slides(ctx context.Context, carouselID string) ([]domain.Slide, error) {
	slides, err := o.store.ListSlides(ctx, carouselID)
	if err != nil {
		return nil, storageErr(err)
	}
	return slides, nil
}

// Delete removes a carousel that is not generating.
func (o *Orchestrator) Delete(ctx context.Context, carouselID string) error {
	err := o.sessions.Transition(ctx, carouselID, func(ctx context.Context, c *domain.Carousel) error {
		if c.State == domain.CarouselGenerating {
			return fmt.Errorf("%w: carousel is generating", domain.ErrCarouselLocked)
		}
		return o.store.Delete(ctx, carouselID)
	})
	return storageErr(err)
}

// Wait blocks until the run of the carousel finishes, or ctx is done, and
// returns the status at that point. Carousels without a run return immediately.
func (o *Orchestrator) Wait(ctx context.Context, carouselID string) (domain.Status, error) {
	o.mu.Lock()
	done, ok := o.running[carouselID]
	o.mu.Unlock()
	if ok {
		select {
		case <-done:
		case <-ctx.Done():
			return domain.Status{}, ctx.Err()
		}
	}
	return o.Status(ctx, carouselID)
}

// Close stops accepting runs and waits for in-flight ones until ctx is done.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) run(ctx context.Context, carouselID string, done chan struct{}) {
	logger := o.logger.With("carousel_id", carouselID)
	defer func() {
		o.mu.Lock()
		delete(o.running, carouselID)
		o.mu.Unlock()
		close(done)
		o.wg.Done()
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("generation panicked", "panic", r)
			o.finish(ctx, carouselID, domain.CarouselFailed, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := o.sem.Acquire(ctx, 1); err != nil {
		o.finish(ctx, carouselID, domain.CarouselFailed, err.Error())
		return
	}
	defer o.sem.Release(1)

	c, err := o.store.Get(ctx, carouselID)
	if err != nil {
		logger.Error("failed to load carousel", "err", err)
		o.finish(ctx, carouselID, domain.CarouselFailed, err.Error())
		return
	}

	start := time.Now()
	o.emitCarousel(ctx, o.hooks.OnCarouselStart, domain.EventCarouselStart, c, 0)

	for _, slide := range c.Slides {
		if slide.State.Terminal() {
			continue
		}
		o.renderSlide(ctx, logger, c, slide)
	}

	c, err = o.store.Get(ctx, carouselID)
	if err != nil {
		logger.Error("failed to reload carousel", "err", err)
		o.finish(ctx, carouselID, domain.CarouselFailed, err.Error())
		return
	}

	progress := c.Progress()
	state, reason := domain.CarouselCompleted, ""
	if progress.Total > 0 && progress.Completed == 0 {
		state = domain.CarouselFailed
		reason = fmt.Sprintf("all %d slides failed", progress.Total)
	}
	o.finish(ctx, carouselID, state, reason)
	domain.ApplyStatus(c, state, reason, o.now())

	logger.Info("generation finished",
		"status", state,
		"completed", progress.Completed,
		"failed", progress.Failed,
		"duration", time.Since(start),
	)
	o.emitCarousel(ctx, o.hooks.OnCarouselDone, domain.EventCarouselDone, c, time.Since(start))
}

func (o *Orchestrator) renderSlide(ctx context.Context, logger *slog.Logger, c *domain.Carousel, slide domain.Slide) {
	start := time.Now()
	slide.State = domain.SlideRendering
	slide.UpdatedAt = o.now()
	if err := o.store.UpdateSlide(ctx, c.ID, slide); err != nil {
		logger.Warn("failed to mark slide rendering", "slide", slide.Number, "err", err)
	}
	o.emitSlide(ctx, o.hooks.OnSlideStart, domain.EventSlideStart, c.ID, slide, 0)

	res, err := o.pipeline.RenderSlide(ctx, c.ID, slide, c.CanvasWidth)
	slide.Warnings = res.Warnings
	if err != nil {
		slide.State = domain.SlideFailed
		slide.Error = err.Error()
		logger.Warn("slide failed", "slide", slide.Number, "template_id", slide.TemplateID, "err", err)
	} else {
		slide.State = domain.SlideCompleted
		slide.Asset = res.Asset
		slide.URL = res.URL
		slide.Error = ""
		logger.Debug("slide completed", "slide", slide.Number, "asset", res.Asset)
	}
	slide.UpdatedAt = o.now()
	if err := o.store.UpdateSlide(ctx, c.ID, slide); err != nil {
		logger.Error("failed to record slide outcome", "slide", slide.Number, "err", err)
	}
	o.emitSlide(ctx, o.hooks.OnSlideDone, domain.EventSlideDone, c.ID, slide, time.Since(start))
}

func (o *Orchestrator) finish(ctx context.Context, carouselID string, state domain.CarouselState, reason string) {
	if err := o.store.UpdateStatus(ctx, carouselID, state, reason); err != nil {
		o.logger.Error("failed to record carousel outcome", "carousel_id", carouselID, "status", state, "err", err)
	}
}

func (o *Orchestrator) emitCarousel(ctx context.Context, fn func(context.Context, *domain.CarouselEvent), typ domain.EventType, c *domain.Carousel, d time.Duration) {
	if fn == nil {
		return
	}
	fn(ctx, &domain.CarouselEvent{
		EventBase: domain.EventBase{Timestamp: o.now(), Type: typ, CarouselID: c.ID},
		State:     c.State,
		Progress:  c.Progress(),
		Duration:  d,
	})
}

func (o *Orchestrator) emitSlide(ctx context.Context, fn func(context.Context, *domain.SlideEvent), typ domain.EventType, carouselID string, s domain.Slide, d time.Duration) {
	if fn == nil {
		return
	}
	fn(ctx, &domain.SlideEvent{
		EventBase:   domain.EventBase{Timestamp: o.now(), Type: typ, CarouselID: carouselID},
		SlideNumber: s.Number,
		TemplateID:  s.TemplateID,
		State:       s.State,
		Error:       s.Error,
		Warnings:    s.Warnings,
		Duration:    d,
	})
}
