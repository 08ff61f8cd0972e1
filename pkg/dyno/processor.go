package dyno

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// Processor owns a working copy of one template. It is not safe for
// concurrent use; create one per slide.
type Processor struct {
	opts    Options
	doc     *svgdoc.Node
	targets map[string]*target
}

// NewProcessor parses src and analyzes its placeholders.
func NewProcessor(src string, opts ...Option) (*Processor, error) {
	o := buildOptions(opts)
	doc, err := svgdoc.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTemplate, err)
	}
	return &Processor{
		opts:    o,
		doc:     doc,
		targets: analyzeTree(doc, o.Aliases, o.Logger),
	}, nil
}

// Analysis returns the placeholders discovered at construction.
func (p *Processor) Analysis() Analysis {
	a := Analysis{Placeholders: make(map[string]domain.Placeholder, len(p.targets))}
	for field, t := range p.targets {
		a.Placeholders[field] = t.placeholder
	}
	return a
}

// String serializes the working copy.
func (p *Processor) String() string {
	return p.doc.String()
}

// FieldError records a soft failure for one field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Report summarizes an Apply call.
type Report struct {
	Applied []string      `json:"applied"`
	Skipped []string      `json:"skipped,omitempty"` // Keys with no placeholder in the template
	Images  []*FieldError `json:"-"`                 // Image fetch or decode failures
}

// Warnings renders every soft failure as a message suitable for a slide record.
func (r Report) Warnings() []string {
	var out []string
	for _, f := range r.Skipped {
		out = append(out, fmt.Sprintf("%s: %v", f, domain.ErrFieldNotPresent))
	}
	for _, e := range r.Images {
		out = append(out, e.Error())
	}
	return out
}

// ImageErr joins the image failures, or returns nil.
func (r Report) ImageErr() error {
	errs := make([]error, len(r.Images))
	for i, e := range r.Images {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Apply substitutes every value: text placeholders first, then images.
// Keys may be namespaced. Keys with no placeholder are reported as skipped.
func (p *Processor) Apply(ctx context.Context, values map[string]string) Report {
	normalized := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		normalized[domain.NormalizeField(k)] = values[k]
	}

	fields := make([]string, 0, len(normalized))
	for f := range normalized {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var r Report
	var images []string
	for _, field := range fields {
		t, ok := p.targets[field]
		switch {
		case !ok:
			p.opts.Logger.Debug("field not present", "field", field)
			r.Skipped = append(r.Skipped, field)
		case t.placeholder.Kind == domain.KindImage:
			images = append(images, field)
		default:
			p.writeText(t, normalized[field])
			r.Applied = append(r.Applied, field)
		}
	}
	for _, field := range images {
		if err := p.SubstituteImage(ctx, field, normalized[field]); err != nil {
			r.Images = append(r.Images, &FieldError{Field: field, Err: err})
			continue
		}
		r.Applied = append(r.Applied, field)
	}
	return r
}

func (p *Processor) lookup(field string, kind domain.PlaceholderKind) (*target, error) {
	name := domain.NormalizeField(field)
	t, ok := p.targets[name]
	if !ok {
		p.opts.Logger.Debug("field not present", "field", name)
		return nil, fmt.Errorf("%w: %s", domain.ErrFieldNotPresent, name)
	}
	if t.placeholder.Kind != kind {
		return nil, fmt.Errorf("%w: %s is an %s placeholder", domain.ErrFieldNotPresent, name, t.placeholder.Kind)
	}
	return t, nil
}
