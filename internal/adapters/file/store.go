package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// CarouselStore implements ports.CarouselStore using the local filesystem.
// It stores each carousel, slides included, as a JSON file in a configured directory.
type CarouselStore struct {
	BasePath string

	mu sync.Mutex // Serializes read-modify-write cycles
}

// NewCarouselStore creates a new CarouselStore with the given base path.
// If basePath is empty, it defaults to ".dynoslide/carousels".
func NewCarouselStore(basePath string) *CarouselStore {
	if basePath == "" {
		basePath = filepath.Join(".dynoslide", "carousels")
	}
	return &CarouselStore{BasePath: basePath}
}

func (s *CarouselStore) path(id string) (string, error) {
	if err := checkName(id); err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Create persists a new carousel file.
func (s *CarouselStore) Create(ctx context.Context, c *domain.Carousel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(c)
}

func (s *CarouselStore) write(c *domain.Carousel) error {
	if err := checkName(c.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal carousel: %w", err)
	}
	return writeAtomic(s.BasePath, c.ID+".json", data)
}

func (s *CarouselStore) read(id string) (*domain.Carousel, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCarouselNotFound
		}
		return nil, fmt.Errorf("failed to read carousel file: %w", err)
	}
	var c domain.Carousel
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal carousel: %w", err)
	}
	return &c, nil
}

// Get loads the carousel from its JSON file.
func (s *CarouselStore) Get(ctx context.Context, id string) (*domain.Carousel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// List returns every carousel in the directory, newest first.
func (s *CarouselStore) List(ctx context.Context) ([]*domain.Carousel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Carousel{}, nil
		}
		return nil, fmt.Errorf("failed to list carousels: %w", err)
	}

	var out []*domain.Carousel
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		c, err := s.read(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *CarouselStore) mutate(id string, fn func(*domain.Carousel)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read(id)
	if err != nil {
		return err
	}
	fn(c)
	c.UpdatedAt = time.Now().UTC()
	return s.write(c)
}

// AddSlide appends a slide, keeping slides ordered by number.
func (s *CarouselStore) AddSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(id, func(c *domain.Carousel) {
		c.Slides = append(c.Slides, slide)
		sort.SliceStable(c.Slides, func(i, j int) bool { return c.Slides[i].Number < c.Slides[j].Number })
	})
}

// UpdateSlide replaces the slide with the same number.
func (s *CarouselStore) UpdateSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(id, func(c *domain.Carousel) {
		for i := range c.Slides {
			if c.Slides[i].Number == slide.Number {
				c.Slides[i] = slide
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

// ListSlides returns the slides ordered by number.
func (s *CarouselStore) ListSlides(ctx context.Context, id string) ([]domain.Slide, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Slides, nil
}

// Delete removes the carousel file.
func (s *CarouselStore) Delete(ctx context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete carousel file: %w", err)
	}
	return nil
}
