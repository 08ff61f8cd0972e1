package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/dynoslide/pkg/adapters/redis"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunCarouselStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second), redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Carousel{ID: "c-ttl", State: domain.CarouselCreated}))
	assert.True(t, mr.Exists("test:c-ttl"))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Updates keep the original expiry.
	require.NoError(t, store.AddSlide(ctx, "c-ttl", domain.Slide{Number: 1}))
	assert.Greater(t, mr.TTL("test:c-ttl"), time.Duration(0))

	mr.FastForward(2 * time.Second)
	_, err = store.Get(ctx, "c-ttl")
	assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
}

func TestRedisStore_ConcurrentSlideUpdates(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Carousel{ID: "c1", State: domain.CarouselCreated}))

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.AddSlide(ctx, "c1", domain.Slide{Number: n}))
		}(i)
	}
	wg.Wait()

	slides, err := store.ListSlides(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, slides, 5)
	for i, s := range slides {
		assert.Equal(t, i+1, s.Number)
	}
}
