package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// AssetStore implements ports.AssetStore on a local directory.
type AssetStore struct {
	Dir     string
	BaseURL string
}

// NewAssetStore creates a store writing to dir and serving URLs under baseURL.
func NewAssetStore(dir, baseURL string) *AssetStore {
	if dir == "" {
		dir = filepath.Join(".dynoslide", "assets")
	}
	return &AssetStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes the raster atomically.
func (s *AssetStore) Save(ctx context.Context, carouselID string, slideNumber int, data []byte) (domain.AssetRef, error) {
	ref := domain.AssetName(carouselID, slideNumber, data)
	if err := checkName(string(ref)); err != nil {
		return "", err
	}
	if err := writeAtomic(s.Dir, string(ref), data); err != nil {
		return "", err
	}
	return ref, nil
}

// URLFor returns the public URL of the asset.
func (s *AssetStore) URLFor(ref domain.AssetRef) string {
	return fmt.Sprintf("%s/assets/%s", s.BaseURL, ref)
}

// Open reads the asset file.
func (s *AssetStore) Open(ctx context.Context, ref domain.AssetRef) ([]byte, error) {
	if err := checkName(string(ref)); err != nil {
		return nil, domain.ErrAssetNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, string(ref)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}
