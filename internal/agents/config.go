package agents

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for thresholds no policy can work with.
var ErrInvalidConfig = errors.New("invalid policy config")

// Potentials used by role assignment when nothing useful is in view.
const (
	NoLoadedAntPotential = -100
	NoFoodpilePotential  = -50
)

// Config holds the policy tuning constants.
type Config struct {
	IntensePheromone     int `toml:"intense_pheromone"`     // Start following above this
	InterestingPheromone int `toml:"interesting_pheromone"` // Keep following above this
	ExploreSteps         int `toml:"explore_steps"`         // Ticks before turning while exploring
	StorageLow           int `toml:"storage_low"`
	StorageCritical      int `toml:"storage_critical"`
	RoleAssignPeriod     int `toml:"role_assign_period"`
	LoadedAnt            int `toml:"loaded_ant"` // Carried amount that marks an ant worth helping
}

// DefaultConfig returns the tuning the team comparisons were run with.
func DefaultConfig() Config {
	return Config{
		IntensePheromone:     5,
		InterestingPheromone: 10,
		ExploreSteps:         5,
		StorageLow:           100,
		StorageCritical:      50,
		RoleAssignPeriod:     1,
		LoadedAnt:            2,
	}
}

// Validate rejects unusable tuning.
func (c Config) Validate() error {
	switch {
	case c.IntensePheromone < 0 || c.InterestingPheromone < 0:
		return fmt.Errorf("%w: negative pheromone threshold", ErrInvalidConfig)
	case c.ExploreSteps < 1:
		return fmt.Errorf("%w: explore_steps must be positive", ErrInvalidConfig)
	case c.RoleAssignPeriod < 1:
		return fmt.Errorf("%w: role_assign_period must be positive", ErrInvalidConfig)
	case c.LoadedAnt < 1:
		return fmt.Errorf("%w: loaded_ant must be positive", ErrInvalidConfig)
	case c.StorageCritical > c.StorageLow:
		return fmt.Errorf("%w: storage_critical %d above storage_low %d", ErrInvalidConfig, c.StorageCritical, c.StorageLow)
	}
	return nil
}
