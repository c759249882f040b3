package help

import (
	"time"

	"github.com/peakline/relcache/config"
)

func Cfg() *config.Cache {
	c := &config.Cache{
		DB: config.DBCfg{
			DefaultTTL: 5 * time.Minute,
			MaxEntries: 500,
		},
		Cleanup:     &config.CleanupCfg{Interval: time.Minute},
		Compression: &config.CompressionCfg{ThresholdBytes: 1000},
	}
	c.AdjustConfig()
	return c
}

func PersistentCfg(dir string) *config.Cache {
	c := Cfg()
	c.Persistence = &config.PersistenceCfg{Dir: dir, Name: "relcache"}
	return c
}

func ShortTTLCfg() *config.Cache {
	c := Cfg()
	c.DB.DefaultTTL = 5 * time.Millisecond
	c.Cleanup = &config.CleanupCfg{Interval: 10 * time.Millisecond}
	return c
}

func TinyCapacityCfg() *config.Cache {
	c := Cfg()
	c.DB.MaxEntries = 2
	return c
}
