package dyno

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/svgdoc"
)

// SubstituteImage fetches source, fits it by the placeholder role and embeds
// it as a JPEG data URI. Failures are soft: the document is left unchanged and
// the error wraps domain.ErrImageFetchFailed or domain.ErrImageDecodeFailed.
// An empty source blanks the image reference.
func (p *Processor) SubstituteImage(ctx context.Context, field, source string) error {
	t, err := p.lookup(field, domain.KindImage)
	if err != nil {
		return err
	}
	if source == "" {
		setHref(t.nodes, "")
		return nil
	}
	if p.opts.Fetcher == nil {
		return fmt.Errorf("%w: no image fetcher configured", domain.ErrImageFetchFailed)
	}

	data, err := p.opts.Fetcher.Fetch(ctx, source)
	if err != nil {
		if !errors.Is(err, domain.ErrImageFetchFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrImageFetchFailed, err)
		}
		p.opts.Logger.Warn("image fetch failed", "field", t.placeholder.FieldName, "err", err)
		return err
	}

	res, err := p.opts.Images.Process(data, t.placeholder.Role)
	if err != nil {
		p.opts.Logger.Warn("image decode failed", "field", t.placeholder.FieldName, "err", err)
		return err
	}
	setHref(t.nodes, res.URI)
	p.opts.Logger.Debug("image embedded",
		"field", t.placeholder.FieldName,
		"role", t.placeholder.Role,
		"width", res.Width,
		"height", res.Height,
	)
	return nil
}

// setHref writes every source attribute the element already uses, or href.
func setHref(nodes []*svgdoc.Node, uri string) {
	for _, n := range nodes {
		xlink, plain := n.HasAttr("xlink:href"), n.HasAttr("href")
		if xlink {
			n.SetAttr("xlink:href", uri)
		}
		if plain || !xlink {
			n.SetAttr("href", uri)
		}
	}
}
