package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
	results func(query string) ([]model.FoodCandidate, error)
}

func (f *countingFetcher) Search(_ context.Context, query string) ([]model.FoodCandidate, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.results != nil {
		return f.results(query)
	}
	return candidates(query), nil
}

func newTestSession(t *testing.T, fetchers map[string]Fetcher, opts ...Option) *Session {
	t.Helper()
	cache, err := NewCache(DefaultCacheSize)
	require.NoError(t, err)
	opts = append([]Option{WithDebounce(5 * time.Millisecond)}, opts...)
	s, err := NewSession(cache, fetchers, "generic", opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSessionCachesResults(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{}
	s := newTestSession(t, map[string]Fetcher{"generic": f})

	snap := s.Input("apple")
	assert.Equal(t, StateDebouncing, snap.State)
	s.Wait()
	snap = s.Snapshot()
	assert.Equal(t, StateDone, snap.State)
	require.Len(t, snap.Results, 1)

	snap = s.Input("  Apple")
	assert.Equal(t, StateDone, snap.State, "cache hit resolves synchronously")
	assert.True(t, snap.Open)
	s.Wait()
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestSessionBelowMinimumIsIdle(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{}
	s := newTestSession(t, map[string]Fetcher{"generic": f})

	s.Input("ap")
	s.Wait()
	require.True(t, s.Snapshot().Open)

	snap := s.Input("a")
	assert.Equal(t, StateIdle, snap.State)
	assert.False(t, snap.Open)
	assert.Empty(t, snap.Results)
	s.Wait()
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestSessionDebounceResetsOnKeystroke(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{}
	s := newTestSession(t, map[string]Fetcher{"generic": f}, WithDebounce(50*time.Millisecond))

	for _, q := range []string{"ba", "ban", "bana", "banana"} {
		s.Input(q)
	}
	s.Wait()
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, []string{"banana"}, f.queries)
	assert.Equal(t, "banana", s.Snapshot().Results[0].Name)
}

func TestSessionDropsStaleResponses(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	f := FetcherFunc(func(_ context.Context, query string) ([]model.FoodCandidate, error) {
		if query == "slow query" {
			close(started)
			<-release
			return candidates("slow result"), nil
		}
		return candidates("fast result"), nil
	})
	var mu sync.Mutex
	var seen []string
	s := newTestSession(t, map[string]Fetcher{"generic": f}, WithOnChange(func(snap Snapshot) {
		if snap.State != StateDone {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for _, r := range snap.Results {
			seen = append(seen, r.Name)
		}
	}))

	s.Input("slow query")
	<-started
	s.Input("fast query")
	require.Eventually(t, func() bool { return s.Snapshot().State == StateDone }, time.Second, time.Millisecond)
	close(release)
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "fast query", snap.Query)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "fast result", snap.Results[0].Name)
	mu.Lock()
	assert.Equal(t, []string{"fast result"}, seen)
	mu.Unlock()
}

func TestSessionErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("status 503")
	f := &countingFetcher{results: func(string) ([]model.FoodCandidate, error) { return nil, boom }}
	s := newTestSession(t, map[string]Fetcher{"generic": f})

	s.Input("lentils")
	s.Wait()
	snap := s.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.ErrorIs(t, snap.Err, boom)
	assert.Empty(t, snap.Results)

	s.Input("lentils")
	s.Wait()
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSessionCapsResults(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{results: func(q string) ([]model.FoodCandidate, error) {
		out := make([]model.FoodCandidate, 0, 12)
		for i := 0; i < 12; i++ {
			out = append(out, model.FoodCandidate{Name: fmt.Sprintf("%s %d", q, i)})
		}
		return out, nil
	}}
	s := newTestSession(t, map[string]Fetcher{"generic": f})

	s.Input("rice")
	s.Wait()
	assert.Len(t, s.Snapshot().Results, DefaultMaxResults)
	cached, ok := s.cache.Get("generic", "rice")
	require.True(t, ok)
	assert.Len(t, cached, DefaultMaxResults)
}

func TestSessionModeSwitch(t *testing.T) {
	t.Parallel()

	generic := &countingFetcher{}
	off := &countingFetcher{}
	s := newTestSession(t, map[string]Fetcher{"generic": generic, "off": off})

	s.Input("yogurt")
	s.Wait()
	require.NoError(t, s.SetMode("off"))
	snap := s.Snapshot()
	assert.Equal(t, StateDebouncing, snap.State, "current query is searched again in the new mode")
	assert.False(t, snap.Open)
	assert.Equal(t, "yogurt", snap.Query)
	s.Wait()
	snap = s.Snapshot()
	assert.Equal(t, StateDone, snap.State)
	assert.Equal(t, "off", snap.Mode)
	assert.Equal(t, int32(1), off.calls.Load())

	require.NoError(t, s.SetMode("generic"))
	snap = s.Snapshot()
	assert.Equal(t, StateDone, snap.State, "switching back resolves from the generic cache")
	assert.True(t, snap.Open)
	s.Wait()
	assert.Equal(t, int32(1), generic.calls.Load())
	assert.Equal(t, int32(1), off.calls.Load())

	s.Input("y")
	require.NoError(t, s.SetMode("off"))
	assert.Equal(t, StateIdle, s.Snapshot().State)
	s.Wait()
	assert.Equal(t, int32(1), off.calls.Load())

	assert.ErrorIs(t, s.SetMode("barcode"), ErrUnknownMode)
}

func TestNewSessionValidates(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(1)
	require.NoError(t, err)
	_, err = NewSession(cache, map[string]Fetcher{}, "generic")
	assert.ErrorIs(t, err, ErrUnknownMode)
	_, err = NewSession(nil, map[string]Fetcher{"generic": &countingFetcher{}}, "generic")
	assert.Error(t, err)
}

func TestSessionHonoursMinCharsAndMaxResults(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{results: func(string) ([]model.FoodCandidate, error) {
		return candidates("a", "b", "c", "d", "e"), nil
	}}
	s := newTestSession(t, map[string]Fetcher{"generic": f}, WithMinChars(4), WithMaxResults(2))

	snap := s.Input("app")
	assert.Equal(t, StateIdle, snap.State)
	s.Wait()
	assert.Equal(t, int32(0), f.calls.Load())

	s.Input("apple")
	s.Wait()
	snap = s.Snapshot()
	assert.Equal(t, StateDone, snap.State)
	assert.Len(t, snap.Results, 2)
}
