package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/dynoslide/pkg/domain"
)

// TemplateStore implements ports.TemplateStore in memory.
type TemplateStore struct {
	data map[string]domain.Template
	mu   sync.RWMutex
}

// NewTemplateStore creates a store pre-loaded with the given templates.
func NewTemplateStore(seed ...domain.Template) *TemplateStore {
	s := &TemplateStore{data: make(map[string]domain.Template, len(seed))}
	for _, t := range seed {
		s.data[t.ID] = t
	}
	return s
}

// Get returns a copy of the template.
func (s *TemplateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &t, nil
}

// Save creates or replaces a template.
func (s *TemplateStore) Save(ctx context.Context, tpl *domain.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[tpl.ID] = *tpl
	return nil
}

// List returns every template, newest first.
func (s *TemplateStore) List(ctx context.Context) ([]*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Template, 0, len(s.data))
	for _, t := range s.data {
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a template.
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(s.data, id)
	return nil
}
