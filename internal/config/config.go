// Package config loads the TOML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Combat  CombatConfig  `toml:"combat"`
	Sight   SightConfig   `toml:"sight"`
	Logging LoggingConfig `toml:"logging"`
	Server  ServerConfig  `toml:"server"`
	RunLog  RunLogConfig  `toml:"runlog"`
}

type GameConfig struct {
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	Depth          int    `toml:"depth"`
	BeingsPerFloor int    `toml:"beings_per_floor"`
	ItemsPerFloor  int    `toml:"items_per_floor"`
	Seed           string `toml:"seed"`      // empty = time based
	Templates      string `toml:"templates"` // empty = built-in templates
}

type CombatConfig struct {
	Damage string `toml:"damage"` // "flat" or "random"
}

type SightConfig struct {
	PlayerRadius int `toml:"player_radius"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ServerConfig struct {
	Addr    string `toml:"addr"`
	HostKey string `toml:"host_key"`
}

type RunLogConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	g := c.Game
	if g.Width < 10 || g.Height < 10 {
		return fmt.Errorf("map must be at least 10x10, got %dx%d", g.Width, g.Height)
	}
	if g.Depth < 1 {
		return fmt.Errorf("depth must be positive, got %d", g.Depth)
	}
	if g.BeingsPerFloor < 0 || g.ItemsPerFloor < 0 {
		return fmt.Errorf("per-floor counts must not be negative")
	}
	switch c.Combat.Damage {
	case "", "flat", "random":
	default:
		return fmt.Errorf("unknown damage policy %q", c.Combat.Damage)
	}
	return nil
}

// SeedValue turns the configured seed phrase into a PRNG seed. The same phrase
// always gives the same dungeon; an empty phrase uses the clock.
func (g GameConfig) SeedValue() int64 {
	if g.Seed == "" {
		return time.Now().UnixNano()
	}
	return int64(xxhash.Sum64String(g.Seed))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Width:          100,
			Height:         64,
			Depth:          6,
			BeingsPerFloor: 15,
			ItemsPerFloor:  15,
		},
		Combat: CombatConfig{
			Damage: "flat",
		},
		Sight: SightConfig{
			PlayerRadius: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:    ":2222",
			HostKey: "server_host_key",
		},
		RunLog: RunLogConfig{
			Enabled: true,
		},
	}
}
