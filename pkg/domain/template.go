package domain

import "time"

// Template types used by the catalog to pair carousel sets.
const (
	TemplateTypeMain  = "main"
	TemplateTypePhoto = "photo"
)

// Template is a stored SVG document plus catalog metadata.
type Template struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Category   string    `json:"category" yaml:"category"`
	Type       string    `json:"template_type" yaml:"template_type"`
	SVG        string    `json:"svg_content,omitempty" yaml:"-"`
	PreviewURL string    `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

// Summary returns a copy without the document body.
func (t Template) Summary() Template {
	t.SVG = ""
	return t
}
