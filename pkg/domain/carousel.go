package domain

import "time"

// CarouselState is the aggregate lifecycle of a carousel.
type CarouselState string

const (
	CarouselCreated    CarouselState = "created"
	CarouselGenerating CarouselState = "generating"
	CarouselCompleted  CarouselState = "completed"
	CarouselFailed     CarouselState = "failed"
)

// Terminal reports whether no further generation happens from this state.
func (s CarouselState) Terminal() bool {
	return s == CarouselCompleted || s == CarouselFailed
}

// SlideState is the lifecycle of a single slide.
type SlideState string

const (
	SlidePending   SlideState = "pending"
	SlideRendering SlideState = "rendering"
	SlideCompleted SlideState = "completed"
	SlideFailed    SlideState = "failed"
)

// Terminal reports whether the slide has finished processing.
func (s SlideState) Terminal() bool {
	return s == SlideCompleted || s == SlideFailed
}

// DefaultCanvasWidth is the width assumed by the overflow wrapper.
const DefaultCanvasWidth = 1080

// AssetRef identifies a stored raster.
type AssetRef string

// Slide is one rendered output unit within a carousel.
type Slide struct {
	Number     int               `json:"slide_number"`
	TemplateID string            `json:"template_id"`
	Values     map[string]string `json:"replacements,omitempty"`
	State      SlideState        `json:"status"`
	Asset      AssetRef          `json:"asset,omitempty"`
	URL        string            `json:"url,omitempty"`
	Error      string            `json:"error,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Carousel is an ordered batch of slides sharing a generation lifecycle.
type Carousel struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	CanvasWidth int           `json:"canvas_width"`
	State       CarouselState `json:"status"`
	Slides      []Slide       `json:"slides"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Clone returns a deep copy so stores never share slices with callers.
func (c *Carousel) Clone() *Carousel {
	cp := *c
	cp.Slides = make([]Slide, len(c.Slides))
	for i, s := range c.Slides {
		cp.Slides[i] = s.Clone()
	}
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	if s.Values != nil {
		values := make(map[string]string, len(s.Values))
		for k, v := range s.Values {
			values[k] = v
		}
		s.Values = values
	}
	if s.Warnings != nil {
		s.Warnings = append([]string(nil), s.Warnings...)
	}
	return s
}

// Progress summarizes slide outcomes.
type Progress struct {
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Progress counts slides by terminal state.
func (c *Carousel) Progress() Progress {
	p := Progress{Total: len(c.Slides)}
	for _, s := range c.Slides {
		switch s.State {
		case SlideCompleted:
			p.Completed++
		case SlideFailed:
			p.Failed++
		}
	}
	if p.Total > 0 {
		p.Percentage = (p.Completed + p.Failed) * 100 / p.Total
	}
	return p
}

// Status is the polling view of a carousel.
type Status struct {
	CarouselID  string        `json:"carousel_id"`
	State       CarouselState `json:"status"`
	Progress    Progress      `json:"progress"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Status builds the polling view.
func (c *Carousel) Status() Status {
	return Status{
		CarouselID:  c.ID,
		State:       c.State,
		Progress:    c.Progress(),
		Error:       c.Error,
		CreatedAt:   c.CreatedAt,
		CompletedAt: c.CompletedAt,
	}
}

// ApplyStatus sets the aggregate state. Terminal states stamp CompletedAt.
func ApplyStatus(c *Carousel, state CarouselState, reason string, now time.Time) {
	c.State = state
	c.Error = reason
	c.UpdatedAt = now
	if state.Terminal() {
		c.CompletedAt = &now
	} else {
		c.CompletedAt = nil
	}
}
