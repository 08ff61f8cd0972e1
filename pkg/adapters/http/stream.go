package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// streamEvent is one server-sent event.
type streamEvent struct {
	Type domain.EventType
	Data []byte
}

// StreamManager fans generation events out to SSE subscribers per carousel.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- streamEvent]struct{} // CarouselID -> Set of Channels
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- streamEvent]struct{}),
	}
}

// Subscribe registers a buffered channel for a carousel. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(carouselID string) (<-chan streamEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan streamEvent, 16)
	if _, ok := sm.subscribers[carouselID]; !ok {
		sm.subscribers[carouselID] = make(map[chan<- streamEvent]struct{})
	}
	sm.subscribers[carouselID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[carouselID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, carouselID)
			}
		}
	}
}

// Broadcast delivers an event without blocking; slow subscribers lose it.
func (sm *StreamManager) Broadcast(carouselID string, typ domain.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("SSE: event encode failed", "carousel_id", carouselID, "err", err)
		return
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subscribers[carouselID] {
		select {
		case ch <- streamEvent{Type: typ, Data: data}:
		default:
			slog.Warn("SSE: Client buffer full, dropping message", "carousel_id", carouselID)
		}
	}
}

// Hooks forwards orchestrator events to subscribers.
func (sm *StreamManager) Hooks() domain.GenerationHooks {
	return domain.GenerationHooks{
		OnCarouselStart: func(_ context.Context, e *domain.CarouselEvent) {
			sm.Broadcast(e.CarouselID, e.Type, e)
		},
		OnCarouselDone: func(_ context.Context, e *domain.CarouselEvent) {
			sm.Broadcast(e.CarouselID, e.Type, e)
		},
		OnSlideStart: func(_ context.Context, e *domain.SlideEvent) {
			sm.Broadcast(e.CarouselID, e.Type, e)
		},
		OnSlideDone: func(_ context.Context, e *domain.SlideEvent) {
			sm.Broadcast(e.CarouselID, e.Type, e)
		},
	}
}

// CarouselEvents streams generation events until the run finishes or the
// client disconnects. A carousel that is not generating gets its status and
// the stream ends.
func (s *Server) CarouselEvents(w http.ResponseWriter, r *http.Request, id CarouselID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Subscribe before reading the status so no event between the two is lost.
	ch, cancel := s.streams.Subscribe(id)
	defer cancel()

	status, err := s.carousels.Status(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	data, _ := json.Marshal(status)
	fmt.Fprintf(w, "event: status\ndata: %s\n\n", data)
	flusher.Flush()
	if status.State != domain.CarouselGenerating {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "carousel_id", id)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, ev.Data)
			flusher.Flush()
			if ev.Type == domain.EventCarouselDone {
				return
			}
		}
	}
}
