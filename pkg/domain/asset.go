package domain

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
)

// AssetName is the stored name of a slide raster: carousel_<id>_slide_<n>.<ext>.
func AssetName(carouselID string, slideNumber int, data []byte) AssetRef {
	ext, _ := AssetKind(data)
	return AssetRef(fmt.Sprintf("carousel_%s_slide_%d%s", carouselID, slideNumber, ext))
}

// AssetKind derives the file extension and content type of rasterizer output.
// Rasterizers return bare bytes, so the stores sniff them.
func AssetKind(data []byte) (ext, contentType string) {
	ct := http.DetectContentType(data)
	switch {
	case ct == "image/png":
		return ".png", ct
	case ct == "image/jpeg":
		return ".jpg", ct
	case ct == "image/gif":
		return ".gif", ct
	case ct == "image/webp":
		return ".webp", ct
	case bytes.Contains(data[:min(len(data), 1024)], []byte("<svg")):
		return ".svg", "image/svg+xml"
	case strings.HasPrefix(ct, "text/xml"):
		return ".svg", "image/svg+xml"
	}
	return ".bin", "application/octet-stream"
}
