package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFieldFromID(t *testing.T) {
	tests := []struct {
		id    string
		field string
		ok    bool
	}{
		{"dyno.price", "price", true},
		{"text-dyno.agentName", "agentName", true},
		{"dyno.", "", false},
		{"price", "", false},
	}
	for _, tt := range tests {
		field, ok := FieldFromID(tt.id)
		assert.Equal(t, tt.ok, ok, tt.id)
		assert.Equal(t, tt.field, field, tt.id)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, RuleAddress, ClassifyText("propertyAddress"))
	assert.Equal(t, RulePaired, ClassifyText("bedrooms"))
	assert.Equal(t, RulePaired, ClassifyText("Bathrooms"))
	assert.Equal(t, RulePlain, ClassifyText("price"))

	assert.Equal(t, RoleCover, ClassifyImage("agentheadshot"))
	assert.Equal(t, RoleCover, ClassifyImage("avatar"))
	assert.Equal(t, RoleLogo, ClassifyImage("brokerLogo"))
	assert.Equal(t, RolePhoto, ClassifyImage("propertyimage"))
}

func TestCarousel_Progress(t *testing.T) {
	c := &Carousel{Slides: []Slide{
		{Number: 1, State: SlideCompleted},
		{Number: 2, State: SlideFailed},
		{Number: 3, State: SlidePending},
		{Number: 4, State: SlideCompleted},
	}}
	assert.Equal(t, Progress{Completed: 2, Failed: 1, Total: 4, Percentage: 75}, c.Progress())
	assert.Equal(t, Progress{}, (&Carousel{}).Progress())
}

func TestApplyStatus(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &Carousel{}

	ApplyStatus(c, CarouselGenerating, "", now)
	assert.Nil(t, c.CompletedAt)

	ApplyStatus(c, CarouselCompleted, "", now)
	assert.Equal(t, &now, c.CompletedAt)
	assert.True(t, c.State.Terminal())
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, AssetRef("carousel_x_slide_1.png"), AssetName("x", 1, []byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, AssetRef("carousel_x_slide_2.svg"), AssetName("x", 2, []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)))
	assert.Equal(t, AssetRef("carousel_x_slide_3.jpg"), AssetName("x", 3, []byte("\xff\xd8\xff\xe0")))
}

func TestCarousel_CloneIsDeep(t *testing.T) {
	c := &Carousel{Slides: []Slide{{Number: 1, Values: map[string]string{"a": "1"}, Warnings: []string{"w"}}}}
	cp := c.Clone()
	cp.Slides[0].Values["a"] = "2"
	cp.Slides[0].Warnings[0] = "x"
	assert.Equal(t, "1", c.Slides[0].Values["a"])
	assert.Equal(t, "w", c.Slides[0].Warnings[0])
}

func TestGenerationHooks_Merge(t *testing.T) {
	var calls []string
	a := GenerationHooks{OnSlideDone: func(_ context.Context, e *SlideEvent) { calls = append(calls, "a") }}
	b := GenerationHooks{OnSlideDone: func(_ context.Context, e *SlideEvent) { calls = append(calls, "b") }}

	merged := a.Merge(b)
	merged.OnSlideDone(context.Background(), &SlideEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Nil(t, merged.OnCarouselStart)
}
