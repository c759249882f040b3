package telemetry

import (
	"github.com/peakline/relcache/internal/cache"
	"github.com/peakline/relcache/internal/sweeper"
)

type sampler struct {
	cache   cache.Cacher
	sweeper sweeper.Sweeper
}

func newSampler(c cache.Cacher, s sweeper.Sweeper) sampler {
	return sampler{cache: c, sweeper: s}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	hits      uint64
	misses    uint64
	evictions uint64

	sweepScans   uint64
	sweepRemoved uint64
}

func (s sampler) snapshot() snapshot {
	st := s.cache.Stats()
	scans, removed := s.sweeper.SweeperMetrics()

	return snapshot{
		hits:      uint64(max(st.Hits, 0)),
		misses:    uint64(max(st.Misses, 0)),
		evictions: uint64(max(st.Evictions, 0)),

		sweepScans:   uint64(max(scans, 0)),
		sweepRemoved: uint64(max(removed, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:      delta(prev.hits, cur.hits),
		misses:    delta(prev.misses, cur.misses),
		evictions: delta(prev.evictions, cur.evictions),

		sweepScans:   delta(prev.sweepScans, cur.sweepScans),
		sweepRemoved: delta(prev.sweepRemoved, cur.sweepRemoved),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
