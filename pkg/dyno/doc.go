/*
Package dyno fills SVG templates whose placeholder elements carry the "dyno." id prefix.

A Processor owns a parsed working copy of one template. It discovers the
placeholders once (Analyze), then applies text rules, image embedding and the
overflow wrapper as addressed edits on the tree:

	p, err := dyno.NewProcessor(svg, dyno.WithFetcher(fetcher))
	report := p.Apply(ctx, map[string]string{"price": "$1,250,000"})
	p.WrapOverflowing(1080)
	out := p.String()

Text placeholders are tagged with a rule at analysis time:

  - address: up to three comma-separated lines written into the element's line slots.
  - paired: number and word laid out at a fixed horizontal offset (bedrooms, bathrooms).
  - plain: the text run is replaced verbatim.

Image placeholders are tagged with a fit role (cover, logo, photo) and receive
an inline JPEG data URI.
*/
package dyno
