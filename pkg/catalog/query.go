package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// Filter narrows List. Zero values match everything.
type Filter struct {
	Category string
	Type     string
	// Query ranks templates by fuzzy match against name, category and id.
	Query string
}

type templateSource []*domain.Template

func (s templateSource) String(i int) string {
	return s[i].Name + " " + s[i].Category + " " + s[i].ID
}

func (s templateSource) Len() int { return len(s) }

// List returns template summaries (no document body). Without a query the
// order is newest first; with one it is best match first.
func (c *Catalog) List(ctx context.Context, f Filter) ([]domain.Template, error) {
	all, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	category := slug(f.Category)
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	filtered := make(templateSource, 0, len(all))
	for _, t := range all {
		if category != "" && t.Category != category {
			continue
		}
		if typ != "" && t.Type != typ {
			continue
		}
		filtered = append(filtered, t)
	}
	sortTemplates(filtered)

	if q := strings.TrimSpace(f.Query); q != "" {
		matches := fuzzy.FindFrom(q, filtered)
		ranked := make(templateSource, len(matches))
		for i, m := range matches {
			ranked[i] = filtered[m.Index]
		}
		filtered = ranked
	}

	out := make([]domain.Template, len(filtered))
	for i, t := range filtered {
		out[i] = t.Summary()
	}
	return out, nil
}

// CategoryCount is one entry of Categories.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns the categories in use, alphabetically.
func (c *Catalog) Categories(ctx context.Context) ([]CategoryCount, error) {
	stats, err := c.Stats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryCount, 0, len(stats.Categories))
	for name, n := range stats.Categories {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Stats counts templates per category and type.
type Stats struct {
	Total      int            `json:"total_templates"`
	Categories map[string]int `json:"categories"`
	Types      map[string]int `json:"template_types"`
}

// Stats summarizes the library.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	all, err := c.store.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	s := Stats{Total: len(all), Categories: map[string]int{}, Types: map[string]int{}}
	for _, t := range all {
		s.Categories[t.Category]++
		s.Types[t.Type]++
	}
	return s, nil
}

// Set pairs a main and a photo template sharing a base name.
type Set struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	MainTemplateID  string    `json:"main_template_id"`
	PhotoTemplateID string    `json:"photo_template_id"`
	MainPreviewURL  string    `json:"main_preview_url,omitempty"`
	PhotoPreviewURL string    `json:"photo_preview_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BaseName strips a trailing " - Main" or " - Photo" from a template name.
func BaseName(name string) string {
	for _, suffix := range []string{" - Main", " - Photo"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// Sets returns the complete carousel sets, ordered by name.
func (c *Catalog) Sets(ctx context.Context) ([]Set, error) {
	all, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	// Oldest first so the earliest template of each type wins a base name.
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	type pair struct{ main, photo *domain.Template }
	groups := make(map[string]*pair)
	for _, t := range all {
		base := BaseName(t.Name)
		g, ok := groups[base]
		if !ok {
			g = &pair{}
			groups[base] = g
		}
		switch t.Type {
		case domain.TemplateTypeMain:
			if g.main == nil {
				g.main = t
			}
		case domain.TemplateTypePhoto:
			if g.photo == nil {
				g.photo = t
			}
		}
	}

	var out []Set
	for base, g := range groups {
		if g.main == nil || g.photo == nil {
			continue
		}
		out = append(out, Set{
			ID:              fmt.Sprintf("carousel-%s-%s", g.main.ID, g.photo.ID),
			Name:            base,
			Category:        g.main.Category,
			MainTemplateID:  g.main.ID,
			PhotoTemplateID: g.photo.ID,
			MainPreviewURL:  g.main.PreviewURL,
			PhotoPreviewURL: g.photo.PreviewURL,
			CreatedAt:       g.main.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
