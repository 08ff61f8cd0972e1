package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// AssetStore implements ports.AssetStore in memory.
type AssetStore struct {
	baseURL string
	data    map[domain.AssetRef][]byte
	mu      sync.RWMutex
}

// NewAssetStore creates an asset store whose URLs are rooted at baseURL.
func NewAssetStore(baseURL string) *AssetStore {
	return &AssetStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		data:    make(map[domain.AssetRef][]byte),
	}
}

// Save stores a copy of data under the slide asset name.
func (s *AssetStore) Save(ctx context.Context, carouselID string, slideNumber int, data []byte) (domain.AssetRef, error) {
	ref := domain.AssetName(carouselID, slideNumber, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ref] = append([]byte(nil), data...)
	return ref, nil
}

// URLFor returns the public URL of the asset.
func (s *AssetStore) URLFor(ref domain.AssetRef) string {
	return fmt.Sprintf("%s/assets/%s", s.baseURL, ref)
}

// Open returns a copy of the stored bytes.
func (s *AssetStore) Open(ctx context.Context, ref domain.AssetRef) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[ref]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return append([]byte(nil), data...), nil
}
