package dyno

import (
	"context"
)

// SubstituteText returns doc with one text field rewritten. When the field is
// absent the identical input string is returned with domain.ErrFieldNotPresent.
func SubstituteText(doc, field, value string, opts ...Option) (string, error) {
	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return doc, err
	}
	if err := p.SubstituteText(field, value); err != nil {
		return doc, err
	}
	return p.String(), nil
}

// SubstituteImage returns doc with one image field embedded. On failure the
// identical input string is returned with the soft error.
func SubstituteImage(ctx context.Context, doc, field, source string, opts ...Option) (string, error) {
	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return doc, err
	}
	if err := p.SubstituteImage(ctx, field, source); err != nil {
		return doc, err
	}
	return p.String(), nil
}

// WrapOverflowing returns doc with overflowing text split onto two lines.
// A document with nothing to wrap is returned unchanged.
func WrapOverflowing(doc string, canvasWidth int, opts ...Option) (string, error) {
	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return doc, err
	}
	if p.WrapOverflowing(canvasWidth) == 0 {
		return doc, nil
	}
	return p.String(), nil
}

// Fill applies every value and the overflow wrapper in one pass.
func Fill(ctx context.Context, doc string, values map[string]string, opts ...Option) (string, Report, error) {
	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return doc, Report{}, err
	}
	report := p.Apply(ctx, values)
	p.WrapOverflowing(p.opts.CanvasWidth)
	return p.String(), report, nil
}
