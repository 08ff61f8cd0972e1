package domain

import "errors"

// ErrTemplateNotFound is returned when a template ID cannot be found in the store.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidTemplate is returned when a document cannot be parsed as SVG.
var ErrInvalidTemplate = errors.New("invalid template")

// ErrFieldNotPresent is a soft failure: the template has no placeholder for the field.
var ErrFieldNotPresent = errors.New("field not present in template")

// ErrImageFetchFailed is a soft failure: the image source could not be read.
var ErrImageFetchFailed = errors.New("image fetch failed")

// ErrImageDecodeFailed is a soft failure: the image bytes are not a supported raster.
var ErrImageDecodeFailed = errors.New("image decode failed")

// ErrRasterizationFailed is fatal for the slide being rendered.
var ErrRasterizationFailed = errors.New("rasterization failed")

// ErrStorage wraps persistence failures surfaced at the request boundary.
var ErrStorage = errors.New("storage error")

// ErrCarouselNotFound is returned when a carousel ID cannot be found in the store.
var ErrCarouselNotFound = errors.New("carousel not found")

// ErrNoSlides is returned when generation is requested for an empty carousel.
var ErrNoSlides = errors.New("carousel has no slides")

// ErrCarouselLocked is returned when slides are added after generation began.
var ErrCarouselLocked = errors.New("carousel is no longer editable")

// ErrAssetNotFound is returned when an asset reference cannot be resolved.
var ErrAssetNotFound = errors.New("asset not found")
