package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultDebounce   = 300 * time.Millisecond
	DefaultMinChars   = 2
	DefaultMaxResults = 8
)

var ErrUnknownMode = errors.New("unknown search mode")

type Fetcher interface {
	Search(ctx context.Context, query string) ([]model.FoodCandidate, error)
}

type FetcherFunc func(ctx context.Context, query string) ([]model.FoodCandidate, error)

func (f FetcherFunc) Search(ctx context.Context, query string) ([]model.FoodCandidate, error) {
	return f(ctx, query)
}

type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateLoading    State = "loading"
	StateDone       State = "done"
	StateError      State = "error"
)

type Snapshot struct {
	State   State
	Mode    string
	Query   string
	Results []model.FoodCandidate
	Err     error
	Open    bool
}

type Option func(*Session)

func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

func WithMinChars(n int) Option {
	return func(s *Session) { s.minChars = n }
}

func WithMaxResults(n int) Option {
	return func(s *Session) { s.maxResults = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOnChange registers a callback invoked after every state change. It runs
// outside the session lock, possibly on a timer goroutine.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Session) { s.onChange = fn }
}

// task is one debounced search. Cancelling it stops the timer if it has not
// fired and invalidates its sequence number so a late response is dropped.
type task struct {
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// Session drives one search box: debounce, cache lookup, dispatch and
// stale-response suppression.
type Session struct {
	cache    *Cache
	fetchers map[string]Fetcher
	logger   *zap.Logger
	onChange func(Snapshot)

	debounce   time.Duration
	minChars   int
	maxResults int

	mu      sync.Mutex
	wg      sync.WaitGroup
	seq     uint64
	pending *task
	snap    Snapshot
}

func NewSession(cache *Cache, fetchers map[string]Fetcher, mode string, opts ...Option) (*Session, error) {
	if cache == nil {
		return nil, fmt.Errorf("search cache is required")
	}
	s := &Session{
		cache:      cache,
		fetchers:   fetchers,
		logger:     zap.NewNop(),
		debounce:   DefaultDebounce,
		minChars:   DefaultMinChars,
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := fetchers[mode]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	s.snap = Snapshot{State: StateIdle, Mode: mode}
	return s, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySnapLocked()
}

// SetMode switches provider and searches the current query again in the new
// mode. Results from the previous mode are never shown.
func (s *Session) SetMode(mode string) error {
	s.mu.Lock()
	if _, ok := s.fetchers[mode]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	s.cancelPendingLocked()
	s.snap = Snapshot{Mode: mode, Query: s.snap.Query}
	s.dispatchLocked()
	snap := s.copySnapLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// Input records a new query. Cache hits resolve before Input returns;
// everything else is dispatched after the debounce delay.
func (s *Session) Input(query string) Snapshot {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.snap = Snapshot{Mode: s.snap.Mode, Query: query}
	s.dispatchLocked()
	snap := s.copySnapLocked()
	s.mu.Unlock()
	s.notify(snap)
	return snap
}

// dispatchLocked resolves s.snap.Query in s.snap.Mode from the cache or
// schedules a fetch. s.snap must already be reset.
func (s *Session) dispatchLocked() {
	mode := s.snap.Mode
	q := strings.TrimSpace(s.snap.Query)
	if len([]rune(q)) < s.minChars {
		s.snap.State = StateIdle
		return
	}
	if cached, ok := s.cache.Get(mode, q); ok {
		s.logger.Debug("search cache hit", zap.String("mode", mode), zap.String("query", q))
		s.snap.State = StateDone
		s.snap.Results = cached
		s.snap.Open = true
		return
	}
	s.snap.State = StateDebouncing
	s.schedule(mode, q)
}

// Wait blocks until no debounced or in-flight search remains.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close abandons any pending search.
func (s *Session) Close() {
	s.mu.Lock()
	s.cancelPendingLocked()
	s.mu.Unlock()
}

func (s *Session) schedule(mode, query string) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{seq: s.seq, cancel: cancel}
	s.pending = t
	s.wg.Add(1)
	t.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.run(ctx, t, mode, query)
	})
}

func (s *Session) cancelPendingLocked() {
	s.seq++
	if s.pending == nil {
		return
	}
	if s.pending.timer != nil && s.pending.timer.Stop() {
		s.wg.Done()
	}
	s.pending.cancel()
	s.pending = nil
}

func (s *Session) run(ctx context.Context, t *task, mode, query string) {
	s.mu.Lock()
	if t.seq != s.seq {
		s.mu.Unlock()
		return
	}
	fetcher := s.fetchers[mode]
	s.snap.State = StateLoading
	s.snap.Results = nil
	s.snap.Open = true
	snap := s.copySnapLocked()
	s.mu.Unlock()
	s.notify(snap)

	s.logger.Debug("search dispatched", zap.String("mode", mode), zap.String("query", query), zap.Uint64("seq", t.seq))
	results, err := fetcher.Search(ctx, query)

	s.mu.Lock()
	if t.seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug("stale search response dropped", zap.String("query", query), zap.Uint64("seq", t.seq))
		return
	}
	s.pending = nil
	t.cancel()
	if err != nil {
		s.logger.Debug("search failed", zap.String("mode", mode), zap.String("query", query), zap.Error(err))
		s.snap.State = StateError
		s.snap.Err = err
		s.snap.Results = []model.FoodCandidate{}
	} else {
		if len(results) > s.maxResults {
			results = results[:s.maxResults]
		}
		s.cache.Put(mode, query, results)
		s.snap.State = StateDone
		s.snap.Results = append([]model.FoodCandidate{}, results...)
	}
	snap = s.copySnapLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Session) copySnapLocked() Snapshot {
	out := s.snap
	if s.snap.Results != nil {
		out.Results = append([]model.FoodCandidate(nil), s.snap.Results...)
	}
	return out
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
