package persist

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/shared/bytes"
)

// FileStore keeps the snapshot in a single file, written atomically through a
// temp file and rename. The cache snapshots on every mutation, so Save keeps
// an xxh3 fingerprint of the last written payload and skips rewrites of an
// unchanged table.
type FileStore struct {
	cfg      *config.PersistenceCfg
	lastHash uint64
}

func NewFileStore(cfg *config.PersistenceCfg) *FileStore {
	return &FileStore{cfg: cfg}
}

func (s *FileStore) Load() ([]byte, bool, error) {
	start := time.Now()

	f, err := os.Open(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if s.cfg.Gzip {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, false, fmt.Errorf("gzip open snapshot: %w", err)
		}
		defer gzr.Close()
		reader = gzr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	s.lastHash = xxh3.Hash(data)

	log.Info().
		Str("size", bytes.FmtMem(uint64(len(data)))).
		Str("elapsed", time.Since(start).String()).
		Msg("snapshot restored")

	return data, true, nil
}

func (s *FileStore) Save(snapshot []byte) error {
	hash := xxh3.Hash(snapshot)
	if hash == s.lastHash {
		return nil
	}
	start := time.Now()

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	name := s.path()
	tmp := name + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	var (
		writer io.Writer = f
		gw     *gzip.Writer
	)
	if s.cfg.Gzip {
		gw = gzip.NewWriter(f)
		writer = gw
	}
	if _, err = writer.Write(snapshot); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if gw != nil {
		if err = gw.Close(); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return fmt.Errorf("gzip close snapshot: %w", err)
		}
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err = os.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	s.lastHash = hash

	log.Debug().
		Str("size", bytes.FmtMem(uint64(len(snapshot)))).
		Str("elapsed", time.Since(start).String()).
		Msg("snapshot written")

	return nil
}

func (s *FileStore) Clear() error {
	s.lastHash = 0
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) path() string {
	ext := ".snapshot"
	if s.cfg.Gzip {
		ext += ".gz"
	}
	return filepath.Join(s.cfg.Dir, s.cfg.Name+ext)
}
