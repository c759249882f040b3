package config

import "time"

// Default returns the library defaults: 5m TTL, 500 entries, 60s sweep,
// compression and telemetry on, no persistence.
func Default() *Cache {
	c := &Cache{
		DB: DBCfg{
			DefaultTTL:             DefaultTTL,
			MaxEntries:             DefaultMaxEntries,
			IsTelemetryLogsEnabled: true,
			TelemetryLogsInterval:  DefaultTelemetryLogsInterval,
		},
		Cleanup:     &CleanupCfg{Interval: DefaultCleanupInterval},
		Compression: &CompressionCfg{ThresholdBytes: DefaultCompressionThreshold},
	}
	c.AdjustConfig()
	return c
}

// Migration returns the configuration of the deployed company_id backfill
// instance: longer TTL and a larger table, since migration runs touch the
// same owners repeatedly, plus a gzip snapshot so an interrupted run resumes
// warm.
func Migration(dumpDir string) *Cache {
	c := Default()
	c.DB.DefaultTTL = 10 * time.Minute
	c.DB.MaxEntries = 1000
	c.Cleanup = &CleanupCfg{Interval: 2 * time.Minute}
	if dumpDir != "" {
		c.Persistence = &PersistenceCfg{Dir: dumpDir, Name: "relcache", Gzip: true}
	}
	c.AdjustConfig()
	return c
}
