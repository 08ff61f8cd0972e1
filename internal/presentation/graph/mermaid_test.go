package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/dynoslide/internal/presentation/graph"
	"github.com/aretw0/dynoslide/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		carousel    *domain.Carousel
		contains    []string
		notContains []string
	}{
		{
			name:     "Empty Carousel",
			carousel: &domain.Carousel{ID: "abc-1", Name: "Open \"House\""},
			contains: []string{
				"graph LR",
				"c_abc_1[\"Open 'House'\"]",
			},
			notContains: []string{"classDef"},
		},
		{
			name: "Slide Shapes",
			carousel: &domain.Carousel{ID: "c1", Name: "Listing", Slides: []domain.Slide{
				{Number: 1, TemplateID: "sold-main", State: domain.SlideCompleted},
				{Number: 2, TemplateID: "sold-photo", State: domain.SlideFailed},
				{Number: 3, TemplateID: "lease-main", State: domain.SlideRendering},
				{Number: 4, TemplateID: "lease-photo", State: domain.SlidePending, Warnings: []string{"w"}},
			}},
			contains: []string{
				"c_c1_s1[\"1: sold-main\"]",
				"c_c1_s2[/\"2: sold-photo\"/]",
				"c_c1_s3((\"3: lease-main\"))",
				"c_c1_s4[\"4: lease-photo <br/> 1 warning(s)\"]",
				"c_c1 --> c_c1_s1",
				"c_c1_s3 --> c_c1_s4",
			},
		},
		{
			name: "State Classes",
			carousel: &domain.Carousel{ID: "c2", Slides: []domain.Slide{
				{Number: 1, State: domain.SlideCompleted},
				{Number: 2, State: domain.SlideCompleted},
				{Number: 3, State: domain.SlideFailed},
			}},
			contains: []string{
				"class c_c2_s1,c_c2_s2 completed;",
				"class c_c2_s3 failed;",
			},
			notContains: []string{"rendering;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.carousel)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() unexpectedly contains %q\nGot:\n%s", unwanted, got)
				}
			}
		})
	}
}
