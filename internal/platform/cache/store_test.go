package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "leaderboard", nil
	}

	const viewers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(viewers)
	errCh := make(chan error, viewers)

	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "leaderboard:t1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "leaderboard" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
			t.Fatalf("GetOrLoad %d: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	boom := errors.New("feed down")
	failing := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	}

	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error again, got %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("a failed load must not populate the cache: %d calls", got)
	}
}

func TestStore_ExpiredEntryIsReloaded(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Millisecond)
	store.Set(context.Background(), "k", "stale")

	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expired entry must not be served")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "tournament:t1:leaderboard", 1)
	store.Set(context.Background(), "tournament:t1:bracket", 2)
	store.Set(context.Background(), "tournament:t2:leaderboard", 3)

	store.DeletePrefix(context.Background(), "tournament:t1:")

	if _, ok := store.Get(context.Background(), "tournament:t1:leaderboard"); ok {
		t.Fatalf("prefixed entry must be gone")
	}
	if _, ok := store.Get(context.Background(), "tournament:t2:leaderboard"); !ok {
		t.Fatalf("unrelated entry must survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
