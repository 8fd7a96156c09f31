package main

import (
	"os"

	"github.com/alecthomas/units"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional -config YAML file's shape: every field
// mirrors a command-line flag. main applies it after flag parsing, so a
// field set in the file overrides that flag's value, including a value
// passed explicitly on the command line.
type fileConfig struct {
	Schema   string `yaml:"schema"`
	Rows     int    `yaml:"rows"`
	Batch    int    `yaml:"batch"`
	Width    uint   `yaml:"width"`
	Workers  int    `yaml:"workers"`
	Seed     int64  `yaml:"seed"`
	PoolSize string `yaml:"pool_size"` // human units, e.g. "64MiB"
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyConfig overwrites each flag variable with the config file's value
// when the file sets it (a zero value in the YAML means "leave the flag's
// default alone" -- this CLI has no user-facing way to request an actual
// zero rows/batch/width, so the ambiguity is harmless).
func applyConfig(cfg *fileConfig, schema *string, rows, batch *int, width *uint, workers *int, seed *int64, poolSize *string) {
	if cfg.Schema != "" {
		*schema = cfg.Schema
	}
	if cfg.Rows != 0 {
		*rows = cfg.Rows
	}
	if cfg.Batch != 0 {
		*batch = cfg.Batch
	}
	if cfg.Width != 0 {
		*width = cfg.Width
	}
	if cfg.Workers != 0 {
		*workers = cfg.Workers
	}
	if cfg.Seed != 0 {
		*seed = cfg.Seed
	}
	if cfg.PoolSize != "" {
		*poolSize = cfg.PoolSize
	}
}

// parsePoolSize turns a human-readable size ("64MiB", "1GB") into bytes,
// the way the teacher's CLI flags accept for buffer-pool sizing.
func parsePoolSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := units.ParseStrictBytes(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
