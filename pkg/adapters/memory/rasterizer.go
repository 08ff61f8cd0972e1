package memory

import (
	"context"
)

// PassthroughRasterizer returns the finished document itself instead of pixels.
// It stands in for a real renderer in development and tests.
type PassthroughRasterizer struct{}

// Render returns the document bytes.
func (PassthroughRasterizer) Render(ctx context.Context, document string, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(document), nil
}
