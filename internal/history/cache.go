// Package history answers "has this learner already finished this game in this season?"
// from a read-through cache in front of the completion store. Answers gate the UI's
// "already done" state only; the store stays the source of truth.
package history

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/notify"
)

// Loader reads one aggregate entry. A nil aggregate with a nil error means "never played".
type Loader interface {
	LoadGameAggregate(ctx context.Context, learnerID string, season aggregation.Season, gameID string) (*aggregation.GameAggregate, error)
}

// Key identifies one cache entry.
type Key struct {
	LearnerID string
	GameID    string
	Season    aggregation.Season
}

// State is the lifecycle of a cache entry.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateStale
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is a point-in-time copy of a cache entry.
type Entry struct {
	Key        Key
	State      State
	Completed  bool
	FetchedAt  time.Time
	Generation uint64
	Pending    bool
}

// Options tunes the cache. Zero fields fall back to DefaultOptions.
type Options struct {
	// Debounce coalesces bursts of refresh requests for one key; only the last one runs.
	Debounce time.Duration

	// SettleDelay is how long InvalidateAfter waits before invalidating, giving the
	// store time to reflect a write.
	SettleDelay time.Duration

	// FetchTimeout bounds a single store read.
	FetchTimeout time.Duration

	// Capacity is the maximum number of entries kept (LRU eviction).
	Capacity int
}

func DefaultOptions() Options {
	return Options{
		Debounce:     100 * time.Millisecond,
		SettleDelay:  750 * time.Millisecond,
		FetchTimeout: 5 * time.Second,
		Capacity:     10000,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Debounce <= 0 {
		o.Debounce = d.Debounce
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = d.SettleDelay
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = d.FetchTimeout
	}
	if o.Capacity <= 0 {
		o.Capacity = d.Capacity
	}
	return o
}

type entry struct {
	key        Key
	state      State
	completed  bool
	fetchedAt  time.Time
	generation uint64
	pending    bool
}

// Cache is the per-(learner, game, season) completion cache. Entries move through
// uninitialized -> loading -> ready -> stale -> loading. Every refresh request stamps the
// entry with a new value from a cache-wide generation counter; a debounce timer or store
// result carrying an older generation is dropped on arrival.
type Cache struct {
	loader Loader
	opts   Options

	mu      sync.Mutex
	gen     uint64
	entries map[Key]*list.Element
	order   *list.List // front = most recently used
	closed  bool

	nowFn func() time.Time
}

func NewCache(loader Loader, opts Options) *Cache {
	if loader == nil {
		panic("history: loader must not be nil")
	}
	return &Cache{
		loader:  loader,
		opts:    opts.withDefaults(),
		entries: make(map[Key]*list.Element),
		order:   list.New(),
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// Query returns whether the learner has completed the game in the season. It never blocks
// on the store: a ready entry answers directly, anything else answers with the best-known
// prior value (false if never loaded) and schedules a refresh.
func (c *Cache) Query(learnerID, gameID string, season aggregation.Season) bool {
	if learnerID == "" || gameID == "" {
		return false
	}
	key := Key{LearnerID: learnerID, GameID: gameID, Season: season}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	e := c.getOrCreateLocked(key)
	if e.state == StateReady {
		return e.completed
	}
	if !e.pending && e.state != StateLoading {
		c.requestLocked(e)
	}
	return e.completed
}

// Invalidate marks the entry stale and schedules a re-read. Unknown keys are ignored;
// they load on their next Query.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	elem, ok := c.entries[key]
	if !ok {
		return
	}
	c.order.MoveToFront(elem)
	e := elem.Value.(*entry)
	if e.state != StateUninitialized {
		e.state = StateStale
	}
	c.requestLocked(e)
}

// InvalidateAfter invalidates key once delay has passed. delay <= 0 uses SettleDelay.
func (c *Cache) InvalidateAfter(key Key, delay time.Duration) {
	if delay <= 0 {
		delay = c.opts.SettleDelay
	}
	time.AfterFunc(delay, func() { c.Invalidate(key) })
}

// Refresh handles an identity or season change: every known entry of learnerID in season
// becomes stale and is re-requested. An empty season refreshes all of the learner's
// seasons. Returns the number of entries scheduled.
func (c *Cache) Refresh(learnerID string, season aggregation.Season) int {
	if learnerID == "" {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0
	}
	n := 0
	for key, elem := range c.entries {
		if key.LearnerID != learnerID || (season != "" && key.Season != season) {
			continue
		}
		e := elem.Value.(*entry)
		if e.state != StateUninitialized {
			e.state = StateStale
		}
		c.requestLocked(e)
		n++
	}
	slog.Debug("[History] Refresh requested", "learner_id", learnerID, "season", season, "entries", n)
	return n
}

// Listen subscribes the cache to bus; each invalidation is applied after SettleDelay.
func (c *Cache) Listen(ctx context.Context, bus notify.Bus) error {
	return bus.Subscribe(ctx, func(inv notify.Invalidation) {
		c.InvalidateAfter(Key{LearnerID: inv.LearnerID, GameID: inv.GameID, Season: inv.Season}, 0)
	})
}

// Snapshot returns a copy of the entry for key.
func (c *Cache) Snapshot(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	e := elem.Value.(*entry)
	return Entry{
		Key:        e.key,
		State:      e.state,
		Completed:  e.completed,
		FetchedAt:  e.fetchedAt,
		Generation: e.generation,
		Pending:    e.pending,
	}, true
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close stops all future refreshes. Timers already armed fire into a no-op.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Cache) getOrCreateLocked(key Key) *entry {
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry)
	}

	if c.order.Len() >= c.opts.Capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*entry).key)
			c.order.Remove(oldest)
		}
	}

	e := &entry{key: key, state: StateUninitialized}
	c.entries[key] = c.order.PushFront(e)
	return e
}

// requestLocked stamps e with a new generation and arms the debounce timer. Earlier timers
// for e are left running and find a generation mismatch when they fire.
func (c *Cache) requestLocked(e *entry) {
	c.gen++
	e.generation = c.gen
	e.pending = true

	key, gen := e.key, e.generation
	time.AfterFunc(c.opts.Debounce, func() { c.fire(key, gen) })
}

func (c *Cache) fire(key Key, gen uint64) {
	c.mu.Lock()
	e, ok := c.currentLocked(key, gen)
	if !ok {
		c.mu.Unlock()
		return
	}
	e.pending = false
	e.state = StateLoading
	c.mu.Unlock()

	c.fetch(e, gen)
}

func (c *Cache) fetch(e *entry, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.FetchTimeout)
	defer cancel()

	agg, err := c.loader.LoadGameAggregate(ctx, e.key.LearnerID, e.key.Season, e.key.GameID)
	completed := err == nil && agg != nil && agg.Completed > 0

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.currentLocked(e.key, gen)
	if !ok || current != e {
		slog.Debug("[History] Discarding superseded result", "learner_id", e.key.LearnerID, "game_id", e.key.GameID, "season", e.key.Season, "generation", gen)
		return
	}

	if err != nil {
		slog.Warn("[History] Fetch failed, reporting not completed",
			"error", err,
			"learner_id", e.key.LearnerID,
			"game_id", e.key.GameID,
			"season", e.key.Season)
	}
	e.completed = completed
	e.state = StateReady
	e.fetchedAt = c.nowFn()
}

// currentLocked returns the live entry for key if gen is still its latest generation.
// Evicted entries and superseded generations report false.
func (c *Cache) currentLocked(key Key, gen uint64) (*entry, bool) {
	if c.closed {
		return nil, false
	}
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if e.generation != gen {
		return nil, false
	}
	return e, true
}
