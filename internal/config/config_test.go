package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/antcolony/internal/agents"
	"github.com/talgya/antcolony/internal/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "antsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":memory:", cfg.Run.DBPath)
	assert.Equal(t, agents.AllTeams, cfg.Run.Teams)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
[world]
width = 10
height = 12
agents = 2
placement = "clustered"

[policy]
explore_steps = 3

[run]
episodes = 7
teams = ["role", "reactive"]
seed_multiplier = 42
interval_ms = 25
log_level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)

	assert.Equal(t, 10, cfg.World.Width)
	assert.Equal(t, 12, cfg.World.Height)
	assert.Equal(t, 2, cfg.World.Agents)
	assert.Equal(t, world.PlacementClustered, cfg.World.Placement)
	// Untouched keys keep their defaults.
	assert.Equal(t, world.DefaultConfig().FoodPheromone, cfg.World.FoodPheromone)
	assert.Equal(t, 3, cfg.Policy.ExploreSteps)
	assert.Equal(t, agents.DefaultConfig().StorageCritical, cfg.Policy.StorageCritical)

	assert.Equal(t, 7, cfg.Run.Episodes)
	assert.Equal(t, []string{"role", "reactive"}, cfg.Run.Teams)
	assert.Equal(t, 25*time.Millisecond, cfg.Interval())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	require.NoError(t, cfg.Validate())

	plan := cfg.Plan()
	assert.Equal(t, int64(84), plan.Seed(1))
	assert.Equal(t, 7, plan.Episodes)
	assert.Equal(t, cfg.World, plan.World)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "[world\nwidth = "))
	assert.Error(t, err)
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "ants.toml"), []byte("[run]\nepisodes = 3\n"), 0o644))

	cfg, err := Load("~/ants.toml")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Episodes)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Run.Episodes = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRun)

	cfg = Default()
	cfg.Run.Teams = []string{"swarm"}
	assert.ErrorIs(t, cfg.Validate(), agents.ErrUnknownTeam)

	cfg = Default()
	cfg.World.Width = 0
	assert.ErrorIs(t, cfg.Validate(), world.ErrInvalidConfig)

	cfg = Default()
	cfg.Policy.ExploreSteps = 0
	assert.ErrorIs(t, cfg.Validate(), agents.ErrInvalidConfig)

	// Ants only recognise a loaded neighbour by the world's carry load.
	cfg = Default()
	cfg.World.CoCarryLoad = 3
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRun)
	cfg.Policy.LoadedAnt = 3
	assert.NoError(t, cfg.Validate())
}

func TestLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	cfg.Run.LogLevel = "WARN"
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	cfg.Run.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
