package ports

import "context"

// Rasterizer converts a finished SVG document into raster bytes.
// Width and height are hints; zero means "use the document size".
type Rasterizer interface {
	Render(ctx context.Context, document string, width, height int) ([]byte, error)
}

// ImageFetcher reads the raw bytes of an image source: a local path,
// a data URI or an http(s) URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, document string, width, height int) ([]byte, error)

// Render calls f.
func (f RasterizerFunc) Render(ctx context.Context, document string, width, height int) ([]byte, error) {
	return f(ctx, document, width, height)
}

// FetcherFunc adapts a function to the ImageFetcher interface.
type FetcherFunc func(ctx context.Context, source string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f(ctx, source)
}
