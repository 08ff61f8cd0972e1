package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dynoslide/pkg/adapters/memory"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/pipeline"
	"github.com/aretw0/dynoslide/pkg/ports"
)

func newOrchestrator(t *testing.T, raster ports.Rasterizer, opts ...pipeline.Option) (*pipeline.Orchestrator, *memory.CarouselStore) {
	t.Helper()
	p, _ := newPipeline(t, raster)
	store := memory.NewCarouselStore()
	o := pipeline.NewOrchestrator(p, store, opts...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.Close(ctx)
	})
	return o, store
}

func waitDone(t *testing.T, o *pipeline.Orchestrator, id string) domain.Status {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := o.Wait(ctx, id)
	require.NoError(t, err)
	return st
}

func TestOrchestrator_PartialFailureCompletes(t *testing.T) {
	o, _ := newOrchestrator(t, memory.PassthroughRasterizer{})
	ctx := context.Background()

	c, err := o.Create(ctx, "Listing", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCanvasWidth, c.CanvasWidth)

	_, err = o.AddSlide(ctx, c.ID, "card", map[string]string{"price": "$1"})
	require.NoError(t, err)
	_, err = o.AddSlide(ctx, c.ID, "missing-template", nil)
	require.NoError(t, err)
	third, err := o.AddSlide(ctx, c.ID, "card", map[string]string{"price": "$3"})
	require.NoError(t, err)
	assert.Equal(t, 3, third.Number)

	st, started, err := o.Generate(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, domain.CarouselGenerating, st.State)

	st = waitDone(t, o, c.ID)
	assert.Equal(t, domain.CarouselCompleted, st.State)
	assert.Equal(t, domain.Progress{Completed: 2, Failed: 1, Total: 3, Percentage: 100}, st.Progress)
	assert.NotNil(t, st.CompletedAt)

	slides, err := o.Slides(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, slides, 3)
	assert.Equal(t, domain.SlideCompleted, slides[0].State)
	assert.NotEmpty(t, slides[0].URL)
	assert.Equal(t, domain.SlideFailed, slides[1].State)
	assert.Contains(t, slides[1].Error, domain.ErrTemplateNotFound.Error())
	assert.Equal(t, domain.SlideCompleted, slides[2].State)
}

func TestOrchestrator_ImageFetchFailureFailsOnlyThatSlide(t *testing.T) {
	p, _ := newPipeline(t, memory.PassthroughRasterizer{}, pipeline.WithImagePolicy(pipeline.FailSlide))
	o := pipeline.NewOrchestrator(p, memory.NewCarouselStore())
	t.Cleanup(func() { _ = o.Close(context.Background()) })
	ctx := context.Background()

	c, err := o.Create(ctx, "Open House", 1080)
	require.NoError(t, err)
	for _, logo := range []string{"logo.png", "missing.png", "logo.png"} {
		_, err = o.AddSlide(ctx, c.ID, "card", map[string]string{"price": "$1", "logo": logo})
		require.NoError(t, err)
	}

	_, started, err := o.Generate(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, started)

	st := waitDone(t, o, c.ID)
	assert.Equal(t, domain.CarouselCompleted, st.State)
	assert.Equal(t, domain.Progress{Completed: 2, Failed: 1, Total: 3, Percentage: 100}, st.Progress)

	slides, err := o.Slides(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, slides, 3)
	assert.Equal(t, domain.SlideCompleted, slides[0].State)
	assert.Equal(t, domain.SlideFailed, slides[1].State)
	assert.Contains(t, slides[1].Error, domain.ErrImageFetchFailed.Error())
	assert.Empty(t, slides[1].URL)
	assert.Equal(t, domain.SlideCompleted, slides[2].State)
}

func TestOrchestrator_AllFailed(t *testing.T) {
	broken := ports.RasterizerFunc(func(context.Context, string, int, int) ([]byte, error) {
		return nil, errors.New("no renderer")
	})
	o, _ := newOrchestrator(t, broken)
	ctx := context.Background()

	c, err := o.Create(ctx, "Broken", 1080)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = o.AddSlide(ctx, c.ID, "card", nil)
		require.NoError(t, err)
	}

	_, _, err = o.Generate(ctx, c.ID)
	require.NoError(t, err)

	st := waitDone(t, o, c.ID)
	assert.Equal(t, domain.CarouselFailed, st.State)
	assert.Equal(t, "all 2 slides failed", st.Error)
	assert.Equal(t, 2, st.Progress.Failed)
}

func TestOrchestrator_GenerateIsIdempotent(t *testing.T) {
	release := make(chan struct{})
	var renders atomic.Int32
	slow := ports.RasterizerFunc(func(_ context.Context, doc string, _, _ int) ([]byte, error) {
		renders.Add(1)
		<-release
		return []byte(doc), nil
	})
	o, _ := newOrchestrator(t, slow)
	ctx := context.Background()

	c, err := o.Create(ctx, "Once", 1080)
	require.NoError(t, err)
	_, err = o.AddSlide(ctx, c.ID, "card", nil)
	require.NoError(t, err)

	var startedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, started, err := o.Generate(ctx, c.ID)
			assert.NoError(t, err)
			assert.Equal(t, domain.CarouselGenerating, st.State)
			if started {
				startedCount.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), startedCount.Load())

	st, err := o.Status(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CarouselGenerating, st.State)

	close(release)
	st = waitDone(t, o, c.ID)
	assert.Equal(t, domain.CarouselCompleted, st.State)
	assert.Equal(t, int32(1), renders.Load())

	st, started, err := o.Generate(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, started, "terminal carousels do not rerun")
	assert.Equal(t, domain.CarouselCompleted, st.State)
}

func TestOrchestrator_RunOutlivesRequestContext(t *testing.T) {
	o, _ := newOrchestrator(t, memory.PassthroughRasterizer{})
	c, err := o.Create(context.Background(), "Detached", 1080)
	require.NoError(t, err)
	_, err = o.AddSlide(context.Background(), c.ID, "card", nil)
	require.NoError(t, err)

	reqCtx, cancel := context.WithCancel(context.Background())
	_, started, err := o.Generate(reqCtx, c.ID)
	cancel()
	require.NoError(t, err)
	require.True(t, started)

	st := waitDone(t, o, c.ID)
	assert.Equal(t, domain.CarouselCompleted, st.State)
}

func TestOrchestrator_Errors(t *testing.T) {
	o, _ := newOrchestrator(t, memory.PassthroughRasterizer{})
	ctx := context.Background()

	_, _, err := o.Generate(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrCarouselNotFound)

	_, err = o.Status(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrCarouselNotFound)

	c, err := o.Create(ctx, "Empty", 1080)
	require.NoError(t, err)
	_, _, err = o.Generate(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNoSlides)

	_, err = o.AddSlide(ctx, c.ID, "card", nil)
	require.NoError(t, err)
	_, _, err = o.Generate(ctx, c.ID)
	require.NoError(t, err)
	waitDone(t, o, c.ID)

	_, err = o.AddSlide(ctx, c.ID, "card", nil)
	assert.ErrorIs(t, err, domain.ErrCarouselLocked)

	require.NoError(t, o.Delete(ctx, c.ID))
	_, err = o.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
}

func TestOrchestrator_Hooks(t *testing.T) {
	var mu sync.Mutex
	var events []domain.EventType
	record := func(typ domain.EventType) {
		mu.Lock()
		events = append(events, typ)
		mu.Unlock()
	}
	var final *domain.CarouselEvent
	hooks := domain.GenerationHooks{
		OnCarouselStart: func(_ context.Context, e *domain.CarouselEvent) { record(e.Type) },
		OnCarouselDone: func(_ context.Context, e *domain.CarouselEvent) {
			record(e.Type)
			final = e
		},
		OnSlideStart: func(_ context.Context, e *domain.SlideEvent) { record(e.Type) },
		OnSlideDone:  func(_ context.Context, e *domain.SlideEvent) { record(e.Type) },
	}
	o, _ := newOrchestrator(t, memory.PassthroughRasterizer{}, pipeline.WithHooks(hooks))
	ctx := context.Background()

	c, err := o.Create(ctx, "Hooks", 1080)
	require.NoError(t, err)
	_, err = o.AddSlide(ctx, c.ID, "card", nil)
	require.NoError(t, err)
	_, _, err = o.Generate(ctx, c.ID)
	require.NoError(t, err)
	waitDone(t, o, c.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EventType{
		domain.EventCarouselStart,
		domain.EventSlideStart,
		domain.EventSlideDone,
		domain.EventCarouselDone,
	}, events)
	require.NotNil(t, final)
	assert.Equal(t, domain.CarouselCompleted, final.State)
	assert.Equal(t, 1, final.Progress.Completed)
}

func TestOrchestrator_CloseRejectsNewRuns(t *testing.T) {
	o, _ := newOrchestrator(t, memory.PassthroughRasterizer{})
	ctx := context.Background()
	c, err := o.Create(ctx, "Late", 1080)
	require.NoError(t, err)
	_, err = o.AddSlide(ctx, c.ID, "card", nil)
	require.NoError(t, err)

	require.NoError(t, o.Close(ctx))
	_, _, err = o.Generate(ctx, c.ID)
	assert.ErrorIs(t, err, pipeline.ErrClosed)

	st, err := o.Status(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CarouselCreated, st.State)
}
