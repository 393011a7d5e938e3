package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quizdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func countingLoader(calls *int32, value cachedThing, err error) func(ctx context.Context) (interface{}, error) {
	return func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(calls, 1)
		if err != nil {
			return nil, err
		}
		return value, nil
	}
}

func TestResponseCache_Hit(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Get", ctx, "k").Return(`{"name":"cached","count":3}`, nil)

	var calls int32
	var got cachedThing
	require.NoError(t, rc.Fetch(ctx, "k", time.Minute, &got, countingLoader(&calls, cachedThing{}, nil)))

	assert.Equal(t, cachedThing{Name: "cached", Count: 3}, got)
	assert.Zero(t, calls)
	mc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResponseCache_MissLoadsAndStores(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Get", ctx, "k").Return("", domain.ErrCacheMiss)
	mc.On("Set", mock.Anything, "k", `{"name":"fresh","count":1}`, time.Minute).Return(nil)

	var calls int32
	var got cachedThing
	require.NoError(t, rc.Fetch(ctx, "k", time.Minute, &got, countingLoader(&calls, cachedThing{Name: "fresh", Count: 1}, nil)))

	assert.Equal(t, "fresh", got.Name)
	assert.EqualValues(t, 1, calls)
	mc.AssertExpectations(t)
}

func TestResponseCache_CorruptEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Get", ctx, "k").Return(`{"name":`, nil)
	mc.On("Delete", ctx, []string{"k"}).Return(nil)
	mc.On("Set", mock.Anything, "k", mock.AnythingOfType("string"), time.Minute).Return(nil)

	var calls int32
	var got cachedThing
	require.NoError(t, rc.Fetch(ctx, "k", time.Minute, &got, countingLoader(&calls, cachedThing{Name: "fresh"}, nil)))

	assert.Equal(t, "fresh", got.Name)
	assert.EqualValues(t, 1, calls)
	mc.AssertExpectations(t)
}

func TestResponseCache_CacheFailuresDoNotFailReads(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Get", ctx, "k").Return("", errors.New("redis down"))
	mc.On("Set", mock.Anything, "k", mock.AnythingOfType("string"), time.Minute).Return(errors.New("redis down"))

	var calls int32
	var got cachedThing
	require.NoError(t, rc.Fetch(ctx, "k", time.Minute, &got, countingLoader(&calls, cachedThing{Name: "fresh"}, nil)))
	assert.Equal(t, "fresh", got.Name)
}

func TestResponseCache_LoadErrorIsReturnedAndNotCached(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Get", ctx, "k").Return("", domain.ErrCacheMiss)

	var calls int32
	var got cachedThing
	loadErr := domain.NewQuizNotFoundError("q1")
	err := rc.Fetch(ctx, "k", time.Minute, &got, countingLoader(&calls, cachedThing{}, loadErr))

	assert.Equal(t, loadErr, err)
	mc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResponseCache_NilCache(t *testing.T) {
	rc := NewResponseCache(nil)

	var calls int32
	var got cachedThing
	require.NoError(t, rc.Fetch(context.Background(), "k", time.Minute, &got, countingLoader(&calls, cachedThing{Name: "x"}, nil)))
	assert.Equal(t, "x", got.Name)

	rc.Invalidate(context.Background(), "k")
}

func TestResponseCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	rc := NewResponseCache(nil)
	release := make(chan struct{})
	var calls int32

	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return cachedThing{Name: "shared"}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]cachedThing, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, rc.Fetch(context.Background(), "k", time.Minute, &results[i], load))
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls)
	for _, r := range results {
		assert.Equal(t, "shared", r.Name)
	}
}

func TestResponseCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	mc := new(MockCache)
	rc := NewResponseCache(mc)
	mc.On("Delete", ctx, []string{"a", "b"}).Return(errors.New("redis down"))

	rc.Invalidate(ctx, "a", "b")
	rc.Invalidate(ctx)
	mc.AssertNumberOfCalls(t, "Delete", 1)
}

func TestResponseCache_CancelledLeaderDoesNotFailFollowers(t *testing.T) {
	rc := NewResponseCache(nil)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	load := func(ctx context.Context) (interface{}, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return cachedThing{Name: "shared"}, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderDone := make(chan error, 1)
	go func() {
		var got cachedThing
		leaderDone <- rc.Fetch(leaderCtx, "k", time.Minute, &got, load)
	}()
	<-started

	followerDone := make(chan error, 1)
	var follower cachedThing
	go func() {
		followerDone <- rc.Fetch(context.Background(), "k", time.Minute, &follower, load)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)

	require.NoError(t, <-followerDone)
	assert.Equal(t, "shared", follower.Name)
	assert.NoError(t, <-leaderDone)
}
