package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// maxTxRetries bounds optimistic-locking retries on concurrent slide updates.
const maxTxRetries = 10

// Store implements ports.CarouselStore using Redis.
// Each carousel is one JSON value; an index ZSET tracks live ids.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for carousels.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for carousels.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "dynoslide:carousel:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Create persists the carousel and indexes it.
func (s *Store) Create(ctx context.Context, c *domain.Carousel) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal carousel: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(c.ID), data, s.ttl)

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: c.ID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get loads the carousel.
func (s *Store) Get(ctx context.Context, id string) (*domain.Carousel, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCarouselNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return decode(val)
}

func decode(val []byte) (*domain.Carousel, error) {
	var c domain.Carousel
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal carousel: %w", err)
	}
	return &c, nil
}

// List returns live carousels, newest first.
// Expired entries are pruned from the index lazily.
func (s *Store) List(ctx context.Context) ([]*domain.Carousel, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired carousels: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list carousels: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Carousel{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load carousels: %w", err)
	}

	out := make([]*domain.Carousel, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // Expired between ZRANGE and MGET
		}
		c, err := decode([]byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// mutate applies fn under WATCH so concurrent writers never lose updates.
func (s *Store) mutate(ctx context.Context, id string, fn func(*domain.Carousel)) error {
	key := s.key(id)
	txf := func(tx *backend.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, backend.Nil) {
				return domain.ErrCarouselNotFound
			}
			return fmt.Errorf("failed to get from redis: %w", err)
		}
		c, err := decode(val)
		if err != nil {
			return err
		}
		fn(c)
		c.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal carousel: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, backend.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, backend.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("carousel %s: too many concurrent updates", id)
}

// AddSlide appends a slide, keeping slides ordered by number.
func (s *Store) AddSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(ctx, id, func(c *domain.Carousel) {
		c.Slides = append(c.Slides, slide)
		sort.SliceStable(c.Slides, func(i, j int) bool { return c.Slides[i].Number < c.Slides[j].Number })
	})
}

// UpdateSlide replaces the slide with the same number.
func (s *Store) UpdateSlide(ctx context.Context, id string, slide domain.Slide) error {
	return s.mutate(ctx, id, func(c *domain.Carousel) {
		for i := range c.Slides {
			if c.Slides[i].Number == slide.Number {
				c.Slides[i] = slide
				return
			}
		}
	})
}

// UpdateStatus sets the aggregate state.
func (s *Store) UpdateStatus(ctx context.Context, id string, state domain.CarouselState, reason string) error {
	return s.mutate(ctx, id, func(c *domain.Carousel) {
		domain.ApplyStatus(c, state, reason, time.Now().UTC())
	})
}

// ListSlides returns the slides ordered by number.
func (s *Store) ListSlides(ctx context.Context, id string) ([]domain.Slide, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Slides, nil
}

// Delete removes the carousel and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
