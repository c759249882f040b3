package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/persist"
)

func persistentCfg(dir string) *config.Cache {
	cfg := testCfg()
	cfg.Persistence = &config.PersistenceCfg{Dir: dir, Name: "relcache"}
	return cfg
}

func TestRestoreAcrossInstances(t *testing.T) {
	cfg := persistentCfg(t.TempDir())
	store := persist.NewFileStore(cfg.Persistence)

	first := New(cfg, testLogger(), store)
	first.Set("user:42", map[string]any{"id": "42", "company_id": "C1"}, 0, "user", "company")
	first.Set("gone", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	second := New(cfg, testLogger(), persist.NewFileStore(cfg.Persistence))
	require.Equal(t, 1, second.Len())

	v, ok := second.Get("user:42")
	require.True(t, ok)
	require.Equal(t, map[string]any{"id": "42", "company_id": "C1"}, v)

	// tags survive the round trip
	require.Equal(t, 1, second.InvalidateByTag("company"))
}

func TestRestoreMalformedSnapshot(t *testing.T) {
	cfg := persistentCfg(t.TempDir())
	path := filepath.Join(cfg.Persistence.Dir, "relcache.snapshot")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := New(cfg, testLogger(), persist.NewFileStore(cfg.Persistence))
	require.Zero(t, c.Len())

	// degraded mode still operates
	c.Set("k", "v", 0)
	_, ok := c.Get("k")
	require.True(t, ok)
}

func TestClearDropsSnapshot(t *testing.T) {
	cfg := persistentCfg(t.TempDir())
	c := New(cfg, testLogger(), persist.NewFileStore(cfg.Persistence))
	c.Set("k", "v", 0)

	path := filepath.Join(cfg.Persistence.Dir, "relcache.snapshot")
	_, err := os.Stat(path)
	require.NoError(t, err)

	c.Clear()
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
