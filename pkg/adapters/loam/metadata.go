package loam

import (
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// TemplateMetadata is the frontmatter of a stored template. The SVG document
// is the body of the file.
type TemplateMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Type       string    `json:"template_type,omitempty"`
	PreviewURL string    `json:"preview_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func metadataOf(tpl *domain.Template) TemplateMetadata {
	return TemplateMetadata{
		ID:         tpl.ID,
		Name:       tpl.Name,
		Category:   tpl.Category,
		Type:       tpl.Type,
		PreviewURL: tpl.PreviewURL,
		CreatedAt:  tpl.CreatedAt,
		UpdatedAt:  tpl.UpdatedAt,
	}
}

func (m TemplateMetadata) template(id, svg string) *domain.Template {
	if m.ID != "" {
		id = m.ID
	}
	return &domain.Template{
		ID:         id,
		Name:       m.Name,
		Category:   m.Category,
		Type:       m.Type,
		SVG:        svg,
		PreviewURL: m.PreviewURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
