package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aretw0/dynoslide/pkg/catalog"
	"github.com/aretw0/dynoslide/pkg/domain"
)

// ListTemplates handles GET /templates.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request, params ListTemplatesParams) {
	filter := catalog.Filter{
		Category: deref(params.Category),
		Query:    deref(params.Q),
	}
	if params.TemplateType != nil {
		filter.Type = string(*params.TemplateType)
	}
	list, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": list, "total": len(list)})
}

// ImportTemplate handles POST /templates.
func (s *Server) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeImport(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.catalog.Import(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// decodeImport accepts a JSON body or a multipart form with a "file" part.
func (s *Server) decodeImport(w http.ResponseWriter, r *http.Request) (catalog.ImportRequest, error) {
	var req catalog.ImportRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	// Room for the form fields around the document; the catalog enforces the document limit.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)

	if mediaType != "multipart/form-data" {
		var body ImportTemplateJSONRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return req, bodyErr(err)
		}
		req.Name = body.Name
		req.Category = deref(body.Category)
		if body.TemplateType != nil {
			req.Type = string(*body.TemplateType)
		}
		req.SVG = body.SvgContent
		return req, nil
	}

	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return req, bodyErr(err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("%w: no file provided", errBadRequest)
	}
	defer file.Close()
	if !strings.EqualFold(filepath.Ext(header.Filename), ".svg") {
		return req, fmt.Errorf("%w: only SVG files are allowed", errBadRequest)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return req, bodyErr(err)
	}
	req.Name = r.FormValue("name")
	req.Category = r.FormValue("category")
	req.Type = r.FormValue("template_type")
	req.SVG = string(data)
	return req, nil
}

func bodyErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request body over %d bytes", catalog.ErrTemplateTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) TemplateStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) ListTemplateSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.catalog.Sets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sets == nil {
		sets = []catalog.Set{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"carousel_templates": sets, "total": len(sets)})
}

func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request, templateId TemplateID) {
	tpl, err := s.catalog.Get(r.Context(), templateId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) UpdateTemplate(w http.ResponseWriter, r *http.Request, templateId TemplateID) {
	var req catalog.UpdateRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, bodyErr(err))
		return
	}
	tpl, err := s.catalog.Update(r.Context(), templateId, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) DeleteTemplate(w http.ResponseWriter, r *http.Request, templateId TemplateID) {
	if err := s.catalog.Delete(r.Context(), templateId); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) TemplateFields(w http.ResponseWriter, r *http.Request, templateId TemplateID) {
	analysis, err := s.catalog.Fields(r.Context(), templateId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fields := make([]domain.Placeholder, 0, len(analysis.Placeholders))
	for _, name := range analysis.Fields() {
		p, _ := analysis.Get(name)
		fields = append(fields, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"template_id": templateId, "fields": fields})
}

func (s *Server) RenderPreview(w http.ResponseWriter, r *http.Request, templateId TemplateID) {
	tpl, err := s.catalog.Preview(r.Context(), templateId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl.Summary())
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
