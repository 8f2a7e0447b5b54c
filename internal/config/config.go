// Package config loads run settings from a TOML file layered over defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/talgya/antcolony/internal/agents"
	"github.com/talgya/antcolony/internal/engine"
	"github.com/talgya/antcolony/internal/persistence"
	"github.com/talgya/antcolony/internal/world"
)

// ErrInvalidRun reports run settings that cannot be played.
var ErrInvalidRun = errors.New("invalid run config")

// Config is the whole settings file.
type Config struct {
	World  world.Config  `toml:"world"`
	Policy agents.Config `toml:"policy"`
	Run    RunConfig     `toml:"run"`
	Path   string        `toml:"-"` // File the settings came from, empty for defaults
}

// RunConfig controls the comparison run and its outputs.
type RunConfig struct {
	Episodes       int      `toml:"episodes"`
	Teams          []string `toml:"teams"`
	SeedMultiplier int64    `toml:"seed_multiplier"`
	DBPath         string   `toml:"db_path"`
	ReportPath     string   `toml:"report_path"` // Empty = no spreadsheet
	Addr           string   `toml:"addr"`        // Empty = no HTTP status server
	IntervalMS     int      `toml:"interval_ms"` // Pause between ticks
	LogLevel       string   `toml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		World:  world.DefaultConfig(),
		Policy: agents.DefaultConfig(),
		Run: RunConfig{
			Episodes:       100,
			Teams:          append([]string(nil), agents.AllTeams...),
			SeedMultiplier: 1,
			DBPath:         persistence.MemoryPath,
			LogLevel:       "info",
		},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	resolved, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", resolved, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("unknown config keys ignored", "path", resolved, "keys", undecoded)
	}
	cfg.Path = resolved
	return cfg, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	trimmed := strings.TrimPrefix(path, "~")
	trimmed = strings.TrimPrefix(trimmed, "/")
	return filepath.Join(home, trimmed), nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	switch {
	case c.Run.Episodes < 1:
		return fmt.Errorf("%w: episodes must be positive", ErrInvalidRun)
	case len(c.Run.Teams) == 0:
		return fmt.Errorf("%w: no teams", ErrInvalidRun)
	case c.Run.IntervalMS < 0:
		return fmt.Errorf("%w: negative interval", ErrInvalidRun)
	case c.Policy.LoadedAnt != c.World.CoCarryLoad:
		return fmt.Errorf("%w: policy loaded_ant %d must equal world co_carry_load %d",
			ErrInvalidRun, c.Policy.LoadedAnt, c.World.CoCarryLoad)
	}
	for _, team := range c.Run.Teams {
		if _, err := agents.TeamKinds(team, c.World.Agents); err != nil {
			return err
		}
	}
	return nil
}

// Plan turns the settings into an engine plan.
func (c Config) Plan() engine.Plan {
	return engine.Plan{
		World:          c.World,
		Policy:         c.Policy,
		Teams:          c.Run.Teams,
		Episodes:       c.Run.Episodes,
		SeedMultiplier: c.Run.SeedMultiplier,
	}
}

// Interval is the pause between ticks.
func (c Config) Interval() time.Duration {
	return time.Duration(c.Run.IntervalMS) * time.Millisecond
}

// Level maps log_level to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.Run.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
