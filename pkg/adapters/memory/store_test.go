package memory

import (
	"context"
	"testing"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarouselStore_Contract(t *testing.T) {
	ports.RunCarouselStoreContract(t, NewCarouselStore())
}

func TestTemplateStore_Contract(t *testing.T) {
	ports.RunTemplateStoreContract(t, NewTemplateStore())
}

func TestAssetStore_Contract(t *testing.T) {
	ports.RunAssetStoreContract(t, NewAssetStore("http://localhost:8080"))
}

func TestAssetStore_Naming(t *testing.T) {
	s := NewAssetStore("http://localhost:8080/")
	ref, err := s.Save(context.Background(), "abc", 2, []byte("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, err)

	assert.Equal(t, domain.AssetRef("carousel_abc_slide_2.png"), ref)
	assert.Equal(t, "http://localhost:8080/assets/carousel_abc_slide_2.png", s.URLFor(ref))
}

func TestPassthroughRasterizer(t *testing.T) {
	var r ports.Rasterizer = PassthroughRasterizer{}
	out, err := r.Render(context.Background(), "<svg/>", 400, 300)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(out))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, "<svg/>", 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
