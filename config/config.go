package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AdjustConfig normalizes a loaded configuration: it fills the documented
// defaults for zero-valued DB fields and for every accessor kind that was not
// declared explicitly. Safe to call more than once.
func (cfg *Cache) AdjustConfig() {
	if cfg.DB.DefaultTTL <= 0 {
		cfg.DB.DefaultTTL = DefaultTTL
	}
	if cfg.DB.MaxEntries <= 0 {
		cfg.DB.MaxEntries = DefaultMaxEntries
	}
	if cfg.DB.TelemetryLogsInterval <= 0 {
		cfg.DB.TelemetryLogsInterval = DefaultTelemetryLogsInterval
	}

	if cfg.Cleanup.Enabled() && cfg.Cleanup.Interval <= 0 {
		cfg.Cleanup.Interval = DefaultCleanupInterval
	}

	if cfg.Compression.Enabled() && cfg.Compression.ThresholdBytes <= 0 {
		cfg.Compression.ThresholdBytes = DefaultCompressionThreshold
	}

	cfg.Accessors.applyDefaults()
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
