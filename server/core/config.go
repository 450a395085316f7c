package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration, loadable from a YAML file with CLI
// flag overrides applied on top.
type Config struct {
	Port     uint   `yaml:"port"`
	TickRate int    `yaml:"tickRate"`
	Name     string `yaml:"name"`
	// Version is the required client version; empty accepts any.
	Version string `yaml:"version"`

	Arena     string `yaml:"arena"`
	ArenasDir string `yaml:"arenasDir"`

	MaxPlayers int `yaml:"maxPlayers"`

	// InputRate bounds PlayerInput messages per client per second;
	// InputBurst is the token bucket depth. A well-behaved client sends at
	// most ~60/s (every tick while controls keep changing).
	InputRate  float64 `yaml:"inputRate"`
	InputBurst int     `yaml:"inputBurst"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Port:       7373,
		TickRate:   20,
		Name:       "Spellarena Server",
		Arena:      "arena01",
		ArenasDir:  "assets/arenas",
		MaxPlayers: 16,
		InputRate:  90,
		InputBurst: 30,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.TickRate <= 0 || cfg.TickRate > 60 {
		return cfg, fmt.Errorf("tickRate must be in 1..60, got %d", cfg.TickRate)
	}
	if cfg.MaxPlayers <= 0 {
		return cfg, fmt.Errorf("maxPlayers must be positive, got %d", cfg.MaxPlayers)
	}
	return cfg, nil
}
