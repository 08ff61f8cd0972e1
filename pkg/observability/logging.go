package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// LogHooks writes one structured record per lifecycle event.
func LogHooks(logger *slog.Logger) domain.GenerationHooks {
	return domain.GenerationHooks{
		OnCarouselStart: func(ctx context.Context, e *domain.CarouselEvent) {
			logger.InfoContext(ctx, "carousel_start",
				"carousel_id", e.CarouselID,
				"slides", e.Progress.Total,
			)
		},
		OnCarouselDone: func(ctx context.Context, e *domain.CarouselEvent) {
			logger.InfoContext(ctx, "carousel_done",
				"carousel_id", e.CarouselID,
				"status", e.State,
				"completed", e.Progress.Completed,
				"failed", e.Progress.Failed,
				"duration", e.Duration,
			)
		},
		OnSlideStart: func(ctx context.Context, e *domain.SlideEvent) {
			logger.DebugContext(ctx, "slide_start",
				"carousel_id", e.CarouselID,
				"slide", e.SlideNumber,
				"template_id", e.TemplateID,
			)
		},
		OnSlideDone: func(ctx context.Context, e *domain.SlideEvent) {
			level := slog.LevelInfo
			if e.State == domain.SlideFailed {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "slide_done",
				"carousel_id", e.CarouselID,
				"slide", e.SlideNumber,
				"template_id", e.TemplateID,
				"status", e.State,
				"warnings", len(e.Warnings),
				"err", e.Error,
				"duration", e.Duration,
			)
		},
	}
}
