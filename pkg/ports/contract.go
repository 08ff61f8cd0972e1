package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTemplateStoreContract runs a suite of tests to verify that a TemplateStore
// implementation adheres to the defined interface contract.
func RunTemplateStoreContract(t *testing.T, store TemplateStore) {
	ctx := context.Background()
	id := "contract-template-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Save and Get", func(t *testing.T) {
		tpl := &domain.Template{
			ID:        id,
			Name:      "Open House",
			Category:  "open-house",
			Type:      domain.TemplateTypeMain,
			SVG:       `<svg><text id="dyno.price">$1</text></svg>`,
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, store.Save(ctx, tpl))

		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tpl.Name, loaded.Name)
		assert.Equal(t, tpl.Category, loaded.Category)
		assert.Equal(t, tpl.Type, loaded.Type)
		assert.Equal(t, tpl.SVG, loaded.SVG)
		assert.True(t, tpl.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+id)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := &domain.Template{ID: id + "-2", Name: "Second", SVG: "<svg/>", CreatedAt: now.Add(time.Second)}
		require.NoError(t, store.Save(ctx, other))
		defer func() { _ = store.Delete(ctx, other.ID) }()

		list, err := store.List(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, tpl := range list {
			ids = append(ids, tpl.ID)
		}
		assert.Contains(t, ids, id)
		assert.Contains(t, ids, other.ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))
		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
		assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrTemplateNotFound)
	})
}

// RunCarouselStoreContract runs a suite of tests to verify that a CarouselStore
// implementation adheres to the defined interface contract.
func RunCarouselStoreContract(t *testing.T, store CarouselStore) {
	ctx := context.Background()
	id := "contract-carousel-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Create and Get", func(t *testing.T) {
		c := &domain.Carousel{
			ID:          id,
			Name:        "Listing",
			CanvasWidth: domain.DefaultCanvasWidth,
			State:       domain.CarouselCreated,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, store.Create(ctx, c))

		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Listing", loaded.Name)
		assert.Equal(t, domain.CarouselCreated, loaded.State)
		assert.Empty(t, loaded.Slides)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+id)
		assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
	})

	t.Run("Slides", func(t *testing.T) {
		for _, n := range []int{2, 1} {
			require.NoError(t, store.AddSlide(ctx, id, domain.Slide{
				Number:     n,
				TemplateID: "tpl",
				Values:     map[string]string{"price": "$1"},
				State:      domain.SlidePending,
			}))
		}

		slides, err := store.ListSlides(ctx, id)
		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, 1, slides[0].Number)
		assert.Equal(t, 2, slides[1].Number)
		assert.Equal(t, "$1", slides[0].Values["price"])

		done := slides[1]
		done.State = domain.SlideCompleted
		done.Asset = "asset-2"
		require.NoError(t, store.UpdateSlide(ctx, id, done))

		slides, err = store.ListSlides(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.SlideCompleted, slides[1].State)
		assert.Equal(t, domain.AssetRef("asset-2"), slides[1].Asset)

		assert.ErrorIs(t, store.AddSlide(ctx, "missing-"+id, domain.Slide{Number: 1}), domain.ErrCarouselNotFound)
		_, err = store.ListSlides(ctx, "missing-"+id)
		assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
	})

	t.Run("Snapshots are isolated", func(t *testing.T) {
		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		loaded.Slides[0].Values["price"] = "mutated"

		again, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "$1", again.Slides[0].Values["price"])
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, store.UpdateStatus(ctx, id, domain.CarouselGenerating, ""))
		loaded, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.CarouselGenerating, loaded.State)
		assert.Nil(t, loaded.CompletedAt)

		require.NoError(t, store.UpdateStatus(ctx, id, domain.CarouselFailed, "all slides failed"))
		loaded, err = store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.CarouselFailed, loaded.State)
		assert.Equal(t, "all slides failed", loaded.Error)
		assert.NotNil(t, loaded.CompletedAt)

		assert.ErrorIs(t, store.UpdateStatus(ctx, "missing-"+id, domain.CarouselFailed, ""), domain.ErrCarouselNotFound)
	})

	t.Run("List", func(t *testing.T) {
		list, err := store.List(ctx)
		require.NoError(t, err)
		found := false
		for _, c := range list {
			if c.ID == id {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))
		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
	})
}

// RunAssetStoreContract verifies that an AssetStore round-trips slide rasters.
func RunAssetStoreContract(t *testing.T, store AssetStore) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n\x1a\n fake raster")

	ref, err := store.Save(ctx, "carousel-1", 3, png)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
	assert.NotEmpty(t, store.URLFor(ref))

	data, err := store.Open(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, png, data)

	_, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}
