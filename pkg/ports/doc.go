/*
Package ports defines the driven ports (interfaces) for the dynoslide engine.

These interfaces decouple the substitution pipeline from external implementations,
allowing the orchestrator to work with various storage backends, rasterizers and
image sources.

# Key Interfaces

  - TemplateStore: Loads and persists SVG templates.
  - CarouselStore: Persists carousels and their slides.
  - AssetStore: Stores rendered slide rasters and resolves their URLs.
  - Rasterizer: Converts a finished document into pixels.
  - ImageFetcher: Reads image sources (paths, data URIs, URLs).
  - DistributedLocker: Provides distributed locking for carousel state transitions.
*/
package ports
