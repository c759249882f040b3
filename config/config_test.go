package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	const yml = `
db:
  default_ttl: 10m
  max_entries: 1000
  stat_logs_enabled: true
  stat_logs_interval: 5s
cleanup:
  interval: 2m
compression:
  threshold: 1000
persistence:
  dir: /tmp/relcache
  name: relcache
  gzip: true
accessors:
  products:
    collection: listings
    owner_field: seller_id
`
	path := filepath.Join(t.TempDir(), "relcache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 10*time.Minute, cfg.DB.DefaultTTL)
	require.Equal(t, 1000, cfg.DB.MaxEntries)
	require.Equal(t, 2*time.Minute, cfg.Cleanup.Interval)
	require.True(t, cfg.Persistence.Gzip)

	// explicit accessor settings survive, the rest is defaulted
	require.Equal(t, "listings", cfg.Accessors.Products.Collection)
	require.Equal(t, "seller_id", cfg.Accessors.Products.OwnerField)
	require.NotEmpty(t, cfg.Accessors.Products.Fields)
	require.Equal(t, "users", cfg.Accessors.User.Collection)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestAdjustConfigDefaults(t *testing.T) {
	cfg := &Cache{
		Cleanup:     &CleanupCfg{},
		Compression: &CompressionCfg{},
	}
	cfg.AdjustConfig()

	require.Equal(t, DefaultTTL, cfg.DB.DefaultTTL)
	require.Equal(t, DefaultMaxEntries, cfg.DB.MaxEntries)
	require.Equal(t, DefaultCleanupInterval, cfg.Cleanup.Interval)
	require.Equal(t, DefaultCompressionThreshold, cfg.Compression.ThresholdBytes)
}

func TestNilSubsystemsStayDisabled(t *testing.T) {
	cfg := &Cache{}
	cfg.AdjustConfig()

	require.False(t, cfg.Cleanup.Enabled())
	require.False(t, cfg.Compression.Enabled())
	require.False(t, cfg.Persistence.Enabled())
}

func TestMigrationPreset(t *testing.T) {
	cfg := Migration("/tmp/relcache")

	require.Equal(t, 10*time.Minute, cfg.DB.DefaultTTL)
	require.Equal(t, 1000, cfg.DB.MaxEntries)
	require.Equal(t, 2*time.Minute, cfg.Cleanup.Interval)
	require.True(t, cfg.Persistence.Enabled())
	require.True(t, cfg.Persistence.Gzip)

	bare := Migration("")
	require.False(t, bare.Persistence.Enabled())
}
