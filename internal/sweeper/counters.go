package sweeper

import "sync/atomic"

type sweeperCounters struct {
	scans   atomic.Int64
	removed atomic.Int64
}

func newSweeperCounters() *sweeperCounters {
	return &sweeperCounters{}
}

func (c *sweeperCounters) snapshot() (scans, removed int64) {
	return c.scans.Load(), c.removed.Load()
}
