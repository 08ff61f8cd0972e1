// Package imagefit normalizes raster images for inline embedding.
//
// Images are decoded, flattened onto an opaque white canvas, fitted by role
// (cover crop or contain) and re-encoded as JPEG.
package imagefit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"math"

	"github.com/aretw0/dynoslide/pkg/domain"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Box is a bounding box in pixels.
type Box struct {
	W int `koanf:"width"`
	H int `koanf:"height"`
}

// Config holds the fit targets per role.
type Config struct {
	CoverSize int `koanf:"cover_size"`
	Logo      Box `koanf:"logo"`
	Photo     Box `koanf:"photo"`
	Quality   int `koanf:"quality"`
}

// DefaultConfig returns the historical fit targets.
func DefaultConfig() Config {
	return Config{
		CoverSize: 100,
		Logo:      Box{W: 142, H: 56},
		Photo:     Box{W: 800, H: 600},
		Quality:   90,
	}
}

// Decode reads any registered raster format.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrImageDecodeFailed, err)
	}
	return img, format, nil
}

// Flatten composites img over white and returns an opaque canvas at the origin.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Cover scales uniformly until the smaller side reaches size, then crops the
// center to an exact size x size square.
func Cover(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// Contain scales img down to fit inside box keeping its aspect ratio.
// Images already inside the box are copied unchanged.
func Contain(img image.Image, box Box) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := math.Min(1, math.Min(float64(box.W)/float64(w), float64(box.H)/float64(h)))
	nw := clamp(int(math.Round(float64(w)*scale)), 1, min(w, box.W))
	nh := clamp(int(math.Round(float64(h)*scale)), 1, min(h, box.H))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	if nw == w && nh == h {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Fit applies the policy of the role.
func (c Config) Fit(img image.Image, role domain.ImageRole) *image.RGBA {
	switch role {
	case domain.RoleCover:
		return Cover(img, c.CoverSize)
	case domain.RoleLogo:
		return Contain(img, c.Logo)
	default:
		return Contain(img, c.Photo)
	}
}

// EncodeJPEG encodes img at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI embeds data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Result is a processed image ready for embedding.
type Result struct {
	URI    string
	Width  int
	Height int
}

// Process runs decode, flatten, fit and encode for one source image.
func (c Config) Process(data []byte, role domain.ImageRole) (Result, error) {
	img, _, err := Decode(data)
	if err != nil {
		return Result{}, err
	}
	fitted := c.Fit(Flatten(img), role)
	encoded, err := EncodeJPEG(fitted, c.Quality)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrImageDecodeFailed, err)
	}
	b := fitted.Bounds()
	return Result{URI: DataURI("image/jpeg", encoded), Width: b.Dx(), Height: b.Dy()}, nil
}
