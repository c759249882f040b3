package config

import "time"

// Library defaults. The migration tooling overrides these, see Migration().
const (
	DefaultTTL                   = 5 * time.Minute
	DefaultMaxEntries            = 500
	DefaultCleanupInterval       = time.Minute
	DefaultCompressionThreshold  = 1000
	DefaultTelemetryLogsInterval = 5 * time.Second
)

// Cache groups configuration of all cache subsystems.
// Optional subsystems can be disabled by setting them to nil.
type Cache struct {
	DB DBCfg `yaml:"db"`

	// Cleanup configures the recurring background sweep that removes
	// expired entries. If nil, expired entries are only removed lazily
	// (on read and before every write).
	Cleanup *CleanupCfg `yaml:"cleanup"`

	// Compression configures the size-based serialization envelope for
	// large cached values. If nil, values are stored as given.
	Compression *CompressionCfg `yaml:"compression"`

	// Persistence configures durable snapshots of the entry table.
	// If nil, the cache is memory-only and starts empty.
	Persistence *PersistenceCfg `yaml:"persistence"`

	// Accessors maps each related-entity kind to the collection, owner
	// field and field whitelist used by the typed cache-aside accessors.
	Accessors AccessorsCfg `yaml:"accessors"`
}

type DBCfg struct {
	// DefaultTTL is applied to entries created without an explicit TTL.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// MaxEntries is a soft capacity: once a write pushes the table past
	// it, least-recently-accessed entries are evicted back down to the
	// limit.
	MaxEntries int `yaml:"max_entries"`

	IsTelemetryLogsEnabled bool          `yaml:"stat_logs_enabled"`
	TelemetryLogsInterval  time.Duration `yaml:"stat_logs_interval"`
}

type CleanupCfg struct {
	// Interval is the period of the background expiry sweep.
	Interval time.Duration `yaml:"interval"`
}

func (cfg *CleanupCfg) Enabled() bool {
	return cfg != nil
}

type CompressionCfg struct {
	// ThresholdBytes is the JSON-serialized size above which a value is
	// stored as a string envelope instead of the raw structure.
	ThresholdBytes int `yaml:"threshold"`
}

func (cfg *CompressionCfg) Enabled() bool {
	return cfg != nil
}
