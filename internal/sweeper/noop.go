package sweeper

// NoOpSweeper is used when the background sweep is disabled; expired entries
// are still removed lazily on read and before every write.
type NoOpSweeper struct{}

func (s *NoOpSweeper) SweeperMetrics() (scans, removed int64) { return 0, 0 }
func (s *NoOpSweeper) Close() error                           { return nil }
