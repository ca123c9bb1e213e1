package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional yaml configuration file.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`
	Store    struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	cfg := Config{LogLevel: "info", Workers: 1}
	cfg.Store.Path = "logicdiag.db"
	return cfg
}

// LoadConfig reads the yaml config at path, falling back to defaults when
// path is empty. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
