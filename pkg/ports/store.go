package ports

import (
	"context"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// TemplateStore defines the interface for template persistence.
type TemplateStore interface {
	// Get returns the template or domain.ErrTemplateNotFound.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// Save creates or replaces a template.
	Save(ctx context.Context, tpl *domain.Template) error

	// List returns every template ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.Template, error)

	// Delete removes a template. Returns domain.ErrTemplateNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// CarouselStore defines the interface for persisting carousels and their slides.
type CarouselStore interface {
	// Create persists a new carousel.
	Create(ctx context.Context, c *domain.Carousel) error

	// Get returns a snapshot of the carousel or domain.ErrCarouselNotFound.
	Get(ctx context.Context, id string) (*domain.Carousel, error)

	// List returns every carousel, newest first.
	List(ctx context.Context) ([]*domain.Carousel, error)

	// AddSlide appends a slide to the carousel.
	AddSlide(ctx context.Context, id string, slide domain.Slide) error

	// UpdateSlide replaces the slide with the same number.
	UpdateSlide(ctx context.Context, id string, slide domain.Slide) error

	// UpdateStatus sets the aggregate state and error message.
	// Terminal states also stamp CompletedAt.
	UpdateStatus(ctx context.Context, id string, state domain.CarouselState, reason string) error

	// ListSlides returns the slides ordered by number.
	ListSlides(ctx context.Context, id string) ([]domain.Slide, error)

	// Delete removes the carousel.
	Delete(ctx context.Context, id string) error
}

// AssetStore stores rendered slides.
type AssetStore interface {
	// Save stores the raster for a slide and returns its reference.
	Save(ctx context.Context, carouselID string, slideNumber int, data []byte) (domain.AssetRef, error)

	// URLFor resolves the public URL of an asset.
	URLFor(ref domain.AssetRef) string

	// Open reads an asset back. Returns domain.ErrAssetNotFound if absent.
	Open(ctx context.Context, ref domain.AssetRef) ([]byte, error)
}
