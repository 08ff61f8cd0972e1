package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// Preview raster size hints.
const (
	PreviewWidth  = 400
	PreviewHeight = 300
)

// ErrPreviewDisabled is returned when the catalog has no pipeline.
var ErrPreviewDisabled = errors.New("preview rendering is not configured")

// DemoValues fills the common listing fields for previews.
func DemoValues() map[string]string {
	return map[string]string{
		"date":          "JUNE 15 2024",
		"time":          "2PM - 5PM",
		"price":         "$2,850,000",
		"address":       "123 Luxury Lane, Beverly Hills, CA 90210",
		"bedrooms":      "3 bedroom",
		"bathrooms":     "2 bathroom",
		"agent_name":    "Sarah Johnson",
		"agent_phone":   "+1 (310) 555-0123",
		"agent_email":   "sarah.johnson@luxuryrealty.com",
		"features":      "Pool, 3-car garage, wine cellar, marble floors",
		"property_type": "Single Family Home",
	}
}

// Preview renders a stored template with demo data, stores the raster and
// records its URL on the template.
func (c *Catalog) Preview(ctx context.Context, id string) (*domain.Template, error) {
	tpl, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := c.renderPreview(ctx, tpl)
	if err != nil {
		return nil, err
	}
	tpl.PreviewURL = url
	tpl.UpdatedAt = c.now()
	if err := c.store.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return tpl, nil
}

// refreshPreview is best effort: failures are logged and the old URL kept.
func (c *Catalog) refreshPreview(ctx context.Context, tpl *domain.Template) {
	if c.pipeline == nil {
		return
	}
	url, err := c.renderPreview(ctx, tpl)
	if err != nil {
		c.logger.Warn("preview failed", "template_id", tpl.ID, "err", err)
		return
	}
	tpl.PreviewURL = url
}

func (c *Catalog) renderPreview(ctx context.Context, tpl *domain.Template) (string, error) {
	if c.pipeline == nil {
		return "", ErrPreviewDisabled
	}
	doc, _, err := c.pipeline.Fill(ctx, tpl.SVG, DemoValues(), domain.DefaultCanvasWidth)
	if err != nil {
		return "", err
	}
	data, err := c.pipeline.Rasterize(ctx, doc, PreviewWidth, PreviewHeight)
	if err != nil {
		return "", err
	}
	assets := c.pipeline.Assets()
	ref, err := assets.Save(ctx, "preview-"+tpl.ID, 0, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return assets.URLFor(ref), nil
}
