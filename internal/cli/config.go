package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds generation defaults loadable from a TOML file. Command-line
// flags override anything set here.
type Config struct {
	Tiers   []int `toml:"tiers"`
	Seed    int64 `toml:"seed"`
	Workers int   `toml:"workers"`
}

// loadConfig reads a TOML config file and validates its values.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, k := range cfg.Tiers {
		if k < 0 {
			return cfg, fmt.Errorf("parse config %s: negative tier %d", path, k)
		}
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("parse config %s: negative workers %d", path, cfg.Workers)
	}
	return cfg, nil
}
