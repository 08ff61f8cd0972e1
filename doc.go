/*
Package dynoslide fills SVG templates with listing data and renders them into
carousels of slide images.

Templates mark their variable parts with element ids in the "dyno." namespace:
a text element with id "dyno.price" is replaced by the "price" value, and an
image element with id "dyno.agentHeadshot" receives the fetched image, fitted
to the element's box. Address fields spread across their tspan lines, paired
fields such as bedrooms keep the number and its word at a fixed offset, and text
that overflows the canvas is wrapped onto a second line.

# Concept

An Engine wires three services over pluggable stores:

  - the Pipeline substitutes values into one document and rasterizes it,
  - the Orchestrator runs carousels slide by slide in the background,
  - the Catalog imports, optimizes and previews templates.

The stores, rasterizer, image fetcher and distributed locker are ports (see
package ports) with in-memory, file, Redis and process-backed adapters.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/dynoslide"
	)

	func main() {
		eng, err := dynoslide.New("./data")
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()
		defer eng.Close(ctx)

		out, report, err := eng.Render(ctx, svg, map[string]string{
			"price":           "$450,000",
			"propertyAddress": "12 Oak Ave, Springfield, IL",
		}, 1080)
		if err != nil {
			log.Fatal(err)
		}
		log.Println(report.Applied, len(out))
	}
*/
package dynoslide
