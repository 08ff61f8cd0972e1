package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// CarouselStore implements ports.CarouselStore in memory.
// Safe for concurrent use.
type CarouselStore struct {
	data map[string]*domain.Carousel
	mu   sync.RWMutex
}

// NewCarouselStore creates a new in-memory carousel store.
func NewCarouselStore() *CarouselStore {
	return &CarouselStore{
		data: make(map[string]*domain.Carousel),
	}
}

// Create persists a copy of the carousel.
func (s *CarouselStore) Create(ctx context.Context, c *domain.Carousel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c.ID] = c.Clone()
	return nil
}

// Get returns a copy so callers can't mutate store state directly by pointer.
func (s *CarouselStore) Get(ctx context.Context, id string) (*domain.Carousel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[id]
	if !ok {
		return nil, domain.ErrCarouselNotFound
	}
	return c.Clone(), nil
}

// List returns every carousel, newest first.
func (s *CarouselStore) List(ctx context.Context) ([]*domain.Carousel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Carousel, 0, len(s.data))
	for _, c := range s.data {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AddSlide appends a slide and keeps slides ordered by number.
func (s *CarouselStore) AddSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(id, func(c *domain.Carousel) {
		c.Slides = append(c.Slides, slide.Clone())
		sort.SliceStable(c.Slides, func(i, j int) bool { return c.Slides[i].Number < c.Slides[j].Number })
	})
}

// UpdateSlide replaces the slide with the same number.
func (s *CarouselStore) UpdateSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(id, func(c *domain.Carousel) {
		for i := range c.Slides {
			if c.Slides[i].Number == slide.Number {
				c.Slides[i] = slide.Clone()
				return
			}
		}
	})
}

// UpdateStatus sets the aggregate state.
func (s *CarouselStore) UpdateStatus(ctx context.Context, id string, state domain.CarouselState, reason string) error {
	return s.mutate(id, func(c *domain.Carousel) {
		domain.ApplyStatus(c, state, reason, time.Now().UTC())
	})
}

// ListSlides returns copies of the slides ordered by number.
func (s *CarouselStore) ListSlides(ctx context.Context, id string) ([]domain.Slide, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Slides, nil
}

// Delete removes the carousel.
func (s *CarouselStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *CarouselStore) mutate(id string, fn func(*domain.Carousel)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[id]
	if !ok {
		return domain.ErrCarouselNotFound
	}
	fn(c)
	c.UpdatedAt = time.Now().UTC()
	return nil
}
