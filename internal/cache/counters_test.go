package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountersSnapshot(t *testing.T) {
	c := newCounters()
	c.hits.Add(3)
	c.misses.Add(2)
	c.evictions.Add(1)

	hits, misses, evictions := c.snapshot()
	require.Equal(t, int64(3), hits)
	require.Equal(t, int64(2), misses)
	require.Equal(t, int64(1), evictions)
}

func TestCountersReset(t *testing.T) {
	c := newCounters()
	c.hits.Add(3)
	c.misses.Add(2)
	c.evictions.Add(1)

	c.reset()
	hits, misses, evictions := c.snapshot()
	require.Zero(t, hits)
	require.Zero(t, misses)
	require.Zero(t, evictions)
}
