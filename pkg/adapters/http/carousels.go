package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
)

type slideInput struct {
	TemplateID string `json:"template_id"`
	// LegacyTemplateID accepts the camelCase key older clients send.
	LegacyTemplateID string `json:"templateId"`
	Replacements     any    `json:"replacements"`
}

func (in slideInput) decode() (string, map[string]string, error) {
	id := in.TemplateID
	if id == "" {
		id = in.LegacyTemplateID
	}
	if id == "" {
		return "", nil, fmt.Errorf("%w: template_id is required", errBadRequest)
	}
	values, err := dyno.DecodeValues(in.Replacements)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return id, values, nil
}

type createCarouselRequest struct {
	Name        string       `json:"name"`
	CanvasWidth int          `json:"canvas_width"`
	Slides      []slideInput `json:"slides"`
	Generate    bool         `json:"generate"`
}

type carouselSummary struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	State       domain.CarouselState `json:"status"`
	SlidesCount int                  `json:"slides_count"`
	CreatedAt   time.Time            `json:"created_at"`
}

type generateResponse struct {
	domain.Status
	Started bool `json:"started"`
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return bodyErr(err)
	}
	return nil
}

func (s *Server) ListCarousels(w http.ResponseWriter, r *http.Request) {
	list, err := s.carousels.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]carouselSummary, len(list))
	for i, c := range list {
		out[i] = carouselSummary{ID: c.ID, Name: c.Name, State: c.State, SlidesCount: len(c.Slides), CreatedAt: c.CreatedAt}
	}
	writeJSON(w, http.StatusOK, map[string]any{"carousels": out, "total": len(out)})
}

func (s *Server) CreateCarousel(w http.ResponseWriter, r *http.Request) {
	var req createCarouselRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: missing request body", errBadRequest)
		}
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, r, fmt.Errorf("%w: missing required field: name", errBadRequest))
		return
	}
	if req.CanvasWidth < 0 {
		s.writeError(w, r, fmt.Errorf("%w: canvas_width must be positive", errBadRequest))
		return
	}
	type pending struct {
		templateID string
		values     map[string]string
	}
	slides := make([]pending, 0, len(req.Slides))
	for i, in := range req.Slides {
		id, values, err := in.decode()
		if err != nil {
			s.writeError(w, r, fmt.Errorf("slide %d: %w", i+1, err))
			return
		}
		slides = append(slides, pending{id, values})
	}

	ctx := r.Context()
	c, err := s.carousels.Create(ctx, req.Name, req.CanvasWidth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, p := range slides {
		if _, err := s.carousels.AddSlide(ctx, c.ID, p.templateID, p.values); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Generate {
		if _, _, err := s.carousels.Generate(ctx, c.ID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if c, err = s.carousels.Get(ctx, c.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/carousels/"+c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) GetCarousel(w http.ResponseWriter, r *http.Request, carouselId CarouselID) {
	c, err := s.carousels.Get(r.Context(), carouselId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) DeleteCarousel(w http.ResponseWriter, r *http.Request, carouselId CarouselID) {
	if err := s.carousels.Delete(r.Context(), carouselId); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListSlides(w http.ResponseWriter, r *http.Request, carouselId CarouselID) {
	slides, err := s.carousels.Slides(r.Context(), carouselId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"carousel_id": carouselId, "slides": slides, "total_slides": len(slides)})
}

func (s *Server) AddSlide(w http.ResponseWriter, r *http.Request, carouselId CarouselID) {
	var in slideInput
	if err := s.decodeBody(w, r, &in); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: missing request body", errBadRequest)
		}
		s.writeError(w, r, err)
		return
	}
	templateID, values, err := in.decode()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	slide, err := s.carousels.AddSlide(r.Context(), carouselId, templateID, values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, slide)
}

// GenerateCarousel appends the slides of an optional body, then starts the run.
// A carousel that has already left the created state keeps its slides and the
// current status is reported.
func (s *Server) GenerateCarousel(w http.ResponseWriter, r *http.Request, id CarouselID) {
	var body struct {
		Slides []slideInput `json:"slides"`
	}
	if err := s.decodeBody(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	if len(body.Slides) > 0 {
		current, err := s.carousels.Status(ctx, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if current.State != domain.CarouselCreated {
			s.logger.Debug("generate body ignored, carousel already started", "carousel_id", id, "status", current.State)
			body.Slides = nil
		}
	}
	for i, in := range body.Slides {
		templateID, values, err := in.decode()
		if err != nil {
			s.writeError(w, r, fmt.Errorf("slide %d: %w", i+1, err))
			return
		}
		if _, err := s.carousels.AddSlide(ctx, id, templateID, values); err != nil {
			if errors.Is(err, domain.ErrCarouselLocked) {
				break
			}
			s.writeError(w, r, err)
			return
		}
	}

	status, started, err := s.carousels.Generate(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, generateResponse{Status: status, Started: started})
}

func (s *Server) CarouselStatus(w http.ResponseWriter, r *http.Request, carouselId CarouselID) {
	status, err := s.carousels.Status(r.Context(), carouselId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request, ref string) {
	data, err := s.assets.Open(r.Context(), domain.AssetRef(ref))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_, contentType := domain.AssetKind(data)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}
