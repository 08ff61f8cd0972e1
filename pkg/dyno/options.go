package dyno

import (
	"log/slog"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/imagefit"
	"github.com/aretw0/dynoslide/pkg/ports"
)

// Options holds the layout constants and collaborators of a Processor.
type Options struct {
	CanvasWidth   int
	LineHeight    float64
	PairedOffset  float64
	WrapThreshold float64 // Fraction of the canvas width past which text may wrap
	WrapMinChars  int

	// Aliases maps a field to element ids probed when its dyno element is absent.
	Aliases map[string][]string

	Images  imagefit.Config
	Fetcher ports.ImageFetcher
	Logger  *slog.Logger
}

// DefaultAliases returns the alternate element ids exported by older templates.
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"propertyimage": {"image0_294_4", "image0_332_4"},
		"logo":          {"image1_294_4"},
		"agentheadshot": {"image2_294_4"},
	}
}

// DefaultOptions returns the compatibility defaults.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:   domain.DefaultCanvasWidth,
		LineHeight:    28,
		PairedOffset:  30,
		WrapThreshold: 0.8,
		WrapMinChars:  20,
		Aliases:       DefaultAliases(),
		Images:        imagefit.DefaultConfig(),
		Logger:        logging.NewNop(),
	}
}

// Option configures a Processor.
type Option func(*Options)

// WithLogger configures a logger for the Processor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithFetcher sets the image source reader used by SubstituteImage.
func WithFetcher(f ports.ImageFetcher) Option {
	return func(o *Options) {
		o.Fetcher = f
	}
}

// WithImageConfig overrides the image fit targets.
func WithImageConfig(cfg imagefit.Config) Option {
	return func(o *Options) {
		o.Images = cfg
	}
}

// WithAliases replaces the alternate element ids table.
func WithAliases(aliases map[string][]string) Option {
	return func(o *Options) {
		o.Aliases = aliases
	}
}

// WithCanvasWidth sets the width used by the overflow wrapper.
func WithCanvasWidth(w int) Option {
	return func(o *Options) {
		if w > 0 {
			o.CanvasWidth = w
		}
	}
}

// WithLineHeight sets the vertical distance between generated lines.
func WithLineHeight(h float64) Option {
	return func(o *Options) {
		if h > 0 {
			o.LineHeight = h
		}
	}
}

// WithOptions replaces every option at once, e.g. from configuration.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		logger, fetcher := o.Logger, o.Fetcher
		*o = opts
		if o.Logger == nil {
			o.Logger = logger
		}
		if o.Fetcher == nil {
			o.Fetcher = fetcher
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
