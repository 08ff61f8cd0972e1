package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/dynoslide/pkg/adapters/memory"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/aretw0/dynoslide/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_TransitionIsSerialized(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCarouselStore()
	require.NoError(t, store.Create(ctx, &domain.Carousel{ID: "c1", State: domain.CarouselCreated}))
	mgr := session.NewManager(store)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.Transition(ctx, "c1", func(ctx context.Context, c *domain.Carousel) error {
				if c.State != domain.CarouselCreated {
					return nil
				}
				time.Sleep(time.Millisecond)
				winners.Add(1)
				return mgr.Store().UpdateStatus(ctx, "c1", domain.CarouselGenerating, "")
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load(), "exactly one caller should observe the created state")
}

func TestManager_TransitionNotFound(t *testing.T) {
	mgr := session.NewManager(memory.NewCarouselStore())
	err := mgr.Transition(context.Background(), "missing", func(context.Context, *domain.Carousel) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrCarouselNotFound)
}

type recordingLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked int
	fail     error
}

func (l *recordingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.mu.Unlock()
	return func(context.Context) error {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := session.NewManager(memory.NewCarouselStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))

	ran := false
	require.NoError(t, mgr.WithLock(context.Background(), "c1", func(context.Context) error {
		ran = true
		return nil
	}))

	assert.True(t, ran)
	assert.Equal(t, []string{"c1"}, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
}

func TestManager_DistributedLockerFailure(t *testing.T) {
	locker := &recordingLocker{fail: errors.New("held elsewhere")}
	mgr := session.NewManager(memory.NewCarouselStore(), session.WithLocker(locker))

	err := mgr.WithLock(context.Background(), "c1", func(context.Context) error {
		t.Fatal("fn must not run without the lock")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrCarouselLocked)
}
