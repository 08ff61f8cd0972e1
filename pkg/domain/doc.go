/*
Package domain contains the core domain models for the dynoslide engine.

It defines the entities of the template substitution pipeline and the carousel
lifecycle. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Template: A stored SVG document with catalog metadata.
  - Placeholder: A substitutable element discovered in a template (Text or Image).
  - Slide: One rendered output unit, bound to one template and one data record.
  - Carousel: An ordered batch of slides sharing a generation lifecycle.
*/
package domain
