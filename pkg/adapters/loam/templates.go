package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/loam"
)

// TemplateStore implements ports.TemplateStore on a Loam vault.
// Each template is a Markdown document: catalog metadata in the frontmatter,
// the SVG as the body.
type TemplateStore struct {
	Repo *loam.TypedRepository[TemplateMetadata]

	mu sync.RWMutex
}

// NewTemplateStore wraps an already initialized typed repository.
func NewTemplateStore(repo *loam.TypedRepository[TemplateMetadata]) *TemplateStore {
	return &TemplateStore{Repo: repo}
}

// Open initializes a gitless vault at dir, creating it if needed.
func Open(dir string, logger *slog.Logger) (*TemplateStore, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	repo, err := loam.Init(dir,
		loam.WithVersioning(false),
		loam.WithAutoInit(true),
		loam.WithDevSafety(false),
		loam.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return NewTemplateStore(loam.NewTypedRepository[TemplateMetadata](repo)), nil
}

func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") || strings.HasPrefix(id, ".") {
		return fmt.Errorf("invalid id %q", id)
	}
	return nil
}

// Get loads a template. Missing documents map to domain.ErrTemplateNotFound.
func (s *TemplateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, id)
}

func (s *TemplateStore) get(ctx context.Context, id string) (*domain.Template, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return doc.Data.template(doc.ID, doc.Content), nil
}

// Save writes the template document, replacing any previous version.
func (s *TemplateStore) Save(ctx context.Context, tpl *domain.Template) error {
	if err := checkID(tpl.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &loam.DocumentModel[TemplateMetadata]{
		ID:      tpl.ID,
		Content: tpl.SVG,
		Data:    metadataOf(tpl),
	}
	if err := s.Repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("loam save failed for %s: %w", tpl.ID, err)
	}
	return nil
}

// List returns template summaries, newest first. Documents are not loaded.
func (s *TemplateStore) List(ctx context.Context) ([]*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	out := make([]*domain.Template, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Data.template(doc.ID, ""))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes a template document.
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Loam reports a missing document with an untyped error.
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("loam delete failed for %s: %w", id, err)
	}
	return nil
}
