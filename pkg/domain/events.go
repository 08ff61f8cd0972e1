package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCarouselStart EventType = "carousel_start"
	EventCarouselDone  EventType = "carousel_done"
	EventSlideStart    EventType = "slide_start"
	EventSlideDone     EventType = "slide_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	CarouselID string    `json:"carousel_id"`
}

// CarouselEvent is emitted when a generation run starts or finishes.
type CarouselEvent struct {
	EventBase
	State    CarouselState `json:"state"`
	Progress Progress      `json:"progress"`
	Duration time.Duration `json:"duration,omitempty"`
}

// SlideEvent is emitted around each slide.
type SlideEvent struct {
	EventBase
	SlideNumber int           `json:"slide_number"`
	TemplateID  string        `json:"template_id"`
	State       SlideState    `json:"state"`
	Error       string        `json:"error,omitempty"`
	Warnings    []string      `json:"warnings,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// GenerationHooks defines callbacks for orchestrator observability.
type GenerationHooks struct {
	OnCarouselStart func(context.Context, *CarouselEvent)
	OnCarouselDone  func(context.Context, *CarouselEvent)
	OnSlideStart    func(context.Context, *SlideEvent)
	OnSlideDone     func(context.Context, *SlideEvent)
}

// Merge returns hooks that call h first and then other.
func (h GenerationHooks) Merge(other GenerationHooks) GenerationHooks {
	return GenerationHooks{
		OnCarouselStart: chain(h.OnCarouselStart, other.OnCarouselStart),
		OnCarouselDone:  chain(h.OnCarouselDone, other.OnCarouselDone),
		OnSlideStart:    chain(h.OnSlideStart, other.OnSlideStart),
		OnSlideDone:     chain(h.OnSlideDone, other.OnSlideDone),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
