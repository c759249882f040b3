package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peakline/relcache/config"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(&config.PersistenceCfg{Dir: t.TempDir(), Name: "relcache"})

	_, found, err := store.Load()
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Save([]byte(`{"k":"v"}`)))

	data, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`{"k":"v"}`), data)
}

func TestFileStoreGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(&config.PersistenceCfg{Dir: dir, Name: "relcache", Gzip: true})

	require.NoError(t, store.Save([]byte(`{"k":"v"}`)))

	_, err := os.Stat(filepath.Join(dir, "relcache.snapshot.gz"))
	require.NoError(t, err)

	data, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`{"k":"v"}`), data)
}

func TestFileStoreSkipsUnchangedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(&config.PersistenceCfg{Dir: dir, Name: "relcache"})
	path := filepath.Join(dir, "relcache.snapshot")

	require.NoError(t, store.Save([]byte("same")))

	// scribble over the file; an identical Save must not rewrite it
	require.NoError(t, os.WriteFile(path, []byte("scribble"), 0o644))
	require.NoError(t, store.Save([]byte("same")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("scribble"), data)

	// a different payload does
	require.NoError(t, store.Save([]byte("other")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("other"), data)
}

func TestFileStoreClear(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(&config.PersistenceCfg{Dir: dir, Name: "relcache"})

	require.NoError(t, store.Save([]byte("x")))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear()) // already gone

	_, found, err := store.Load()
	require.NoError(t, err)
	require.False(t, found)
}

func TestNoOpStore(t *testing.T) {
	store := NoOp{}

	require.NoError(t, store.Save([]byte("x")))
	_, found, err := store.Load()
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, store.Clear())
}
