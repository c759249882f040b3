package relcache

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/cache"
	"github.com/peakline/relcache/internal/persist"
	"github.com/peakline/relcache/internal/source"
	"github.com/peakline/relcache/internal/sweeper"
	"github.com/peakline/relcache/internal/telemetry"
)

// Stats is re-exported for stats listeners.
type Stats = cache.Stats

type RelCache interface {
	cache.Cacher
	sweeper.Sweeper
	telemetry.Logger
	io.Closer
}

type Cache struct {
	cache.Cacher
	sweeper.Sweeper
	telemetry.Logger
	cfg    *config.Cache
	logger *slog.Logger
	source source.Source
	cls    context.CancelFunc
	closed atomic.Bool
}

// New builds a cache from the given configuration. src backs the typed
// accessors and may be nil for a plain key-value cache. Construction is the
// only place state is wired together; there is no package-level instance.
func New(ctx context.Context, cfg *config.Cache, logger *slog.Logger, src source.Source) *Cache {
	cfg.AdjustConfig()
	ctx, cancel := context.WithCancel(ctx)

	var store persist.Store = persist.NoOp{}
	if cfg.Persistence.Enabled() {
		store = persist.NewFileStore(cfg.Persistence)
	}

	cacher := cache.New(cfg, logger, store)
	sweep := sweeper.New(ctx, cfg.Cleanup, logger, cacher)
	telemeter := telemetry.New(ctx, cfg, logger, cacher, sweep, cfg.DB.TelemetryLogsInterval)

	return &Cache{
		cls:     cancel,
		cfg:     cfg,
		logger:  logger,
		source:  src,
		Cacher:  cacher,
		Sweeper: sweep,
		Logger:  telemeter,
	}
}

// Close cancels the background workers, wipes the table and the persisted
// snapshot, and drops all stats listeners. Idempotent.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.cls()
	c.Cacher.Destroy()
	return nil
}
