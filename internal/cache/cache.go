package cache

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/cache/model"
	"github.com/peakline/relcache/internal/persist"
)

// Stats is an immutable snapshot of cache effectiveness.
type Stats struct {
	Hits          int64
	Misses        int64
	Evictions     int64
	Size          int
	Efficiency    float64 // hit percentage; 0 until the first request
	LastCleanupAt time.Time
}

type Cacher interface {
	Get(key string) (value any, ok bool)
	Set(key string, value any, ttl time.Duration, tags ...string)
	Invalidate(key string) bool
	InvalidateByTag(tag string) int
	InvalidateByPattern(re *regexp.Regexp) int
	Clear()
	Sweep() (removed int)
	Len() int
	Stats() Stats
	OnStatsUpdate(fn func(Stats)) (unsubscribe func())
	Destroy()
}

// Cache is the entry table plus stats. Every public operation runs to
// completion under one mutex, so operations are atomic with respect to each
// other; listeners are invoked after the lock is released.
type Cache struct {
	cfg        *config.Cache
	logger     *slog.Logger
	store      persist.Store
	persistent bool

	mu            sync.Mutex
	entries       map[string]*model.Entry
	seq           uint64
	lastCleanupAt time.Time
	listeners     map[uint64]func(Stats)
	nextListener  uint64

	counters *counters
}

func New(cfg *config.Cache, logger *slog.Logger, store persist.Store) *Cache {
	c := &Cache{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		persistent: cfg.Persistence.Enabled(),
		entries:    make(map[string]*model.Entry),
		listeners:  make(map[uint64]func(Stats)),
		counters:   newCounters(),
	}
	c.restore()
	return c
}

func (c *Cache) Get(key string) (value any, ok bool) {
	now := time.Now()
	c.mu.Lock()
	e, found := c.entries[key]
	switch {
	case !found:
		c.counters.misses.Add(1)
	case e.IsExpired(now):
		delete(c.entries, key)
		c.counters.misses.Add(1)
	default:
		e.Touch(now)
		c.counters.hits.Add(1)
		value, ok = decodeValue(c.logger, e.Data), true
	}
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	emit(ls, st)
	return value, ok
}

// Set writes or overwrites an entry. A non-positive ttl means the configured
// default. Expired entries are swept and the table is evicted back within
// MaxEntries before the write is persisted.
func (c *Cache) Set(key string, value any, ttl time.Duration, tags ...string) {
	if ttl <= 0 {
		ttl = c.cfg.DB.DefaultTTL
	}
	data := encodeValue(c.cfg.Compression, c.logger, value)

	c.mu.Lock()
	c.sweepLocked(time.Now())
	c.seq++
	c.entries[key] = model.NewEntry(data, ttl, slices.Clone(tags), c.seq)
	c.evictLocked()
	c.persistLocked()
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	emit(ls, st)
}

func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	_, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		c.persistLocked()
	}
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	if ok {
		emit(ls, st)
	}
	return ok
}

func (c *Cache) InvalidateByTag(tag string) int {
	return c.invalidateWhere(func(key string, e *model.Entry) bool {
		return e.HasTag(tag)
	})
}

func (c *Cache) InvalidateByPattern(re *regexp.Regexp) int {
	return c.invalidateWhere(func(key string, _ *model.Entry) bool {
		return re.MatchString(key)
	})
}

// Clear removes all entries, zeroes the stats and drops the persisted
// snapshot.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*model.Entry)
	c.counters.reset()
	c.lastCleanupAt = time.Time{}
	c.clearStoreLocked()
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	emit(ls, st)
}

// Sweep removes every expired entry and records the cleanup time. Called
// periodically by the background sweeper and before every Set.
func (c *Cache) Sweep() (removed int) {
	c.mu.Lock()
	removed = c.sweepLocked(time.Now())
	if removed > 0 {
		c.persistLocked()
	}
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	if removed > 0 {
		emit(ls, st)
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

// OnStatsUpdate registers a listener invoked with a stats snapshot after every
// stats-affecting operation. The returned function deregisters it.
func (c *Cache) OnStatsUpdate(fn func(Stats)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Destroy wipes the table, the persisted snapshot and all listeners. Safe to
// call more than once.
func (c *Cache) Destroy() {
	c.mu.Lock()
	c.entries = make(map[string]*model.Entry)
	c.listeners = make(map[uint64]func(Stats))
	c.counters.reset()
	c.lastCleanupAt = time.Time{}
	c.clearStoreLocked()
	c.mu.Unlock()
}

/**
 * Private API.
 */

func (c *Cache) invalidateWhere(match func(key string, e *model.Entry) bool) int {
	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if match(key, e) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.persistLocked()
	}
	st, ls := c.snapshotLocked()
	c.mu.Unlock()

	if removed > 0 {
		emit(ls, st)
	}
	return removed
}

func (c *Cache) sweepLocked(now time.Time) (removed int) {
	for key, e := range c.entries {
		if e.IsExpired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	c.lastCleanupAt = now
	return removed
}

// evictLocked trims the table back to MaxEntries, oldest access first. Ties on
// LastAccessedAt fall back to insertion order, which keeps the sort
// deterministic.
func (c *Cache) evictLocked() {
	over := len(c.entries) - c.cfg.DB.MaxEntries
	if over <= 0 {
		return
	}

	type victim struct {
		key   string
		entry *model.Entry
	}
	all := make([]victim, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, victim{key: key, entry: e})
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].entry, all[j].entry
		if !a.LastAccessedAt.Equal(b.LastAccessedAt) {
			return a.LastAccessedAt.Before(b.LastAccessedAt)
		}
		return a.Seq < b.Seq
	})

	for _, v := range all[:over] {
		delete(c.entries, v.key)
	}
	c.counters.evictions.Add(int64(over))
}

// persistLocked serializes the whole table to the backing store. Failures are
// logged and swallowed: the cache keeps operating memory-only.
func (c *Cache) persistLocked() {
	if !c.persistent {
		return
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Warn("cache snapshot serialization failed", "error", err)
		return
	}
	if err = c.store.Save(data); err != nil {
		c.logger.Warn("cache snapshot write failed", "error", err)
	}
}

func (c *Cache) clearStoreLocked() {
	if !c.persistent {
		return
	}
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("cache snapshot clear failed", "error", err)
	}
}

// restore loads the persisted table at construction time, silently dropping
// entries that expired while the process was down. Malformed snapshots leave
// the cache empty.
func (c *Cache) restore() {
	if !c.persistent {
		return
	}
	data, found, err := c.store.Load()
	if err != nil {
		c.logger.Warn("cache snapshot load failed, starting empty", "error", err)
		return
	}
	if !found {
		return
	}

	var entries map[string]*model.Entry
	if err = json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("cache snapshot is malformed, starting empty", "error", err)
		return
	}

	now := time.Now()
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if e := entries[key]; !e.IsExpired(now) {
			c.seq++
			e.Seq = c.seq
			c.entries[key] = e
		}
	}
	c.logger.Info("cache snapshot restored", "entries", len(c.entries), "dropped", len(entries)-len(c.entries))
}

func (c *Cache) statsLocked() Stats {
	hits, misses, evictions := c.counters.snapshot()
	var efficiency float64
	if total := hits + misses; total > 0 {
		efficiency = float64(hits) / float64(total) * 100
	}
	return Stats{
		Hits:          hits,
		Misses:        misses,
		Evictions:     evictions,
		Size:          len(c.entries),
		Efficiency:    efficiency,
		LastCleanupAt: c.lastCleanupAt,
	}
}

func (c *Cache) snapshotLocked() (Stats, []func(Stats)) {
	st := c.statsLocked()
	if len(c.listeners) == 0 {
		return st, nil
	}
	ls := make([]func(Stats), 0, len(c.listeners))
	for _, fn := range c.listeners {
		ls = append(ls, fn)
	}
	return st, ls
}

func emit(listeners []func(Stats), st Stats) {
	for _, fn := range listeners {
		fn(st)
	}
}
