/*
Package pipeline renders slides and drives carousel generation.

A Pipeline turns one slide (template id plus field values) into a stored raster:
load template, analyze, substitute text, substitute images, wrap overflowing
text, rasterize, save the asset.

An Orchestrator owns the carousel lifecycle:

	created -> generating -> completed | failed

Generate moves a carousel into generating and starts one goroutine for it. The
goroutine renders the slides in order; a failing slide is recorded and the run
moves on. The carousel fails only when every slide failed. Runs are detached from
the caller's context and bounded by a weighted semaphore shared by all carousels.
*/
package pipeline
