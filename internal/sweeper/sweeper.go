package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/cache"
)

type Sweeper interface {
	SweeperMetrics() (scans, removed int64)
	Close() error
}

// Worker runs the recurring expiry sweep: a single ticker, one goroutine,
// never re-entrant. Close cancels it.
type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.CleanupCfg
	logger   *slog.Logger
	cache    cache.Cacher
	counters *sweeperCounters
}

func New(
	ctx context.Context,
	cfg *config.CleanupCfg,
	logger *slog.Logger,
	cache cache.Cacher,
) Sweeper {
	if !cfg.Enabled() {
		return &NoOpSweeper{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Worker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		counters: newSweeperCounters(),
	}).run()
}

func (w *Worker) SweeperMetrics() (scans, removed int64) {
	return w.counters.snapshot()
}

func (w *Worker) Close() error {
	w.cancel()
	return nil
}

func (w *Worker) run() *Worker {
	w.logger.Info("sweeper is running", "interval", w.cfg.Interval.String())

	go func() {
		defer w.logger.Info("sweeper is stopped")

		ticker := time.NewTicker(w.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.counters.scans.Add(1)
				if removed := w.cache.Sweep(); removed > 0 {
					w.counters.removed.Add(int64(removed))
				}
			}
		}
	}()

	return w
}
