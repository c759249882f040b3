package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/cache"
	"github.com/peakline/relcache/internal/sweeper"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs periodically reports cache effectiveness so operators can watch a
// migration run warm up without wiring a stats listener themselves.
type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Cache
	logger   *slog.Logger
	cache    cache.Cacher
	sweeper  sweeper.Sweeper
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.Cache,
	logger *slog.Logger,
	cache cache.Cacher,
	sweeper sweeper.Sweeper,
	interval time.Duration,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		sweeper:  sweeper,
		interval: interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg != nil && l.cfg.DB.IsTelemetryLogsEnabled {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	s := newSampler(l.cache, l.sweeper)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}
			st := l.cache.Stats()

			l.logger.Info("storage",
				append(common,
					"entries", st.Size,
					"max_entries", l.cfg.DB.MaxEntries,
					"hits", int64(d.hits),
					"misses", int64(d.misses),
					"evictions", int64(d.evictions),
					"efficiency_pct", st.Efficiency,
				)...,
			)

			if l.cfg.Cleanup.Enabled() {
				l.logger.Info("sweeper",
					append(common,
						"scans", int64(d.sweepScans),
						"removed", int64(d.sweepRemoved),
					)...,
				)
			}
		}
	}
}
