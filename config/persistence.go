package config

type PersistenceCfg struct {
	// Dir specifies the directory where cache snapshots are stored.
	// It is created on the first write if missing.
	Dir string `yaml:"dir"`

	// Name defines the base name of the snapshot file. The final file
	// name may include extensions depending on configuration
	// (e.g., ".gz" when Gzip is enabled).
	Name string `yaml:"name"`

	// Gzip enables gzip compression for snapshot files.
	Gzip bool `yaml:"gzip"`
}

func (cfg *PersistenceCfg) Enabled() bool {
	return cfg != nil
}
