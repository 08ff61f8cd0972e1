package dynoslide_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/dynoslide"
	"github.com/aretw0/dynoslide/pkg/catalog"
)

const listingSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="1080" height="1080">` +
	`<text id="dyno.price" x="40" y="80">$0</text>` +
	`<text id="dyno.bedrooms" x="40" y="160"><tspan x="40" y="160">0</tspan><tspan x="70" y="160">bd</tspan></text>` +
	`</svg>`

// ExampleEngine_Render fills a document in memory without storing anything.
func ExampleEngine_Render() {
	eng, err := dynoslide.New("")
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	defer eng.Close(ctx)

	analysis, err := eng.Analyze(listingSVG)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("fields:", strings.Join(analysis.Fields(), ", "))

	out, report, err := eng.Render(ctx, listingSVG, map[string]string{
		"dyno.price": "$450,000",
		"bedrooms":   "4 bd",
		"garage":     "2",
	}, 1080)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("applied:", report.Applied)
	fmt.Println("skipped:", report.Skipped)
	fmt.Println(strings.Contains(out, "$450,000"))

	// Output:
	// fields: bedrooms, price
	// applied: [bedrooms price]
	// skipped: [garage]
	// true
}

// ExampleEngine_Carousels imports a template and generates a one-slide carousel.
func ExampleEngine_Carousels() {
	eng, err := dynoslide.New("", dynoslide.WithBaseURL("https://cdn.example.com"))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	defer eng.Close(ctx)

	imported, err := eng.Catalog().Import(ctx, catalog.ImportRequest{
		Name:     "Just Listed - Main",
		Category: "Just Listed",
		SVG:      listingSVG,
	})
	if err != nil {
		log.Fatal(err)
	}

	c, err := eng.Carousels().Create(ctx, "12 Oak Ave", 0)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := eng.Carousels().AddSlide(ctx, c.ID, imported.Template.ID, map[string]string{"price": "$450,000"}); err != nil {
		log.Fatal(err)
	}
	if _, _, err := eng.Carousels().Generate(ctx, c.ID); err != nil {
		log.Fatal(err)
	}
	status, err := eng.Carousels().Wait(ctx, c.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(status.State, status.Progress.Completed, status.Progress.Total)

	// Output:
	// completed 1 1
}
