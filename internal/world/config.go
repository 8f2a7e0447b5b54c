package world

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot describe a playable world.
var ErrInvalidConfig = errors.New("invalid world config")

// Placement strategies for foodpiles.
const (
	PlacementUniform   = "uniform"
	PlacementClustered = "clustered"
)

// Config holds every tunable of the environment.
type Config struct {
	Width          int   `toml:"width"`
	Height         int   `toml:"height"`
	Agents         int   `toml:"agents"`
	FullObservable bool  `toml:"full_observable"`
	MaxSteps       int   `toml:"max_steps"`
	Seed           int64 `toml:"seed"` // 0 = caller supplies a fresh seed

	// Rewards.
	Penalty               float64 `toml:"penalty"`   // DROP_FOOD with empty hands
	StepCost              float64 `toml:"step_cost"` // Applied to every agent every tick
	FoodpileCaptureReward float64 `toml:"foodpile_capture_reward"`
	ColonyDepositReward   float64 `toml:"colony_deposit_reward"`

	// Foodpiles.
	Foodpiles           int     `toml:"foodpiles"`
	MinFoodpileCapacity int     `toml:"min_foodpile_capacity"` // Inclusive, even
	MaxFoodpileCapacity int     `toml:"max_foodpile_capacity"` // Exclusive
	FoodpileDecrement   int     `toml:"foodpile_decrement"`
	Placement           string  `toml:"placement"`
	ClusterThreshold    float64 `toml:"cluster_threshold"` // Noise level a clustered foodpile cell must exceed

	// CoCarryLoad is the carried amount of an ant holding food. Cooperative
	// transfer matches ants carrying exactly this amount.
	CoCarryLoad int `toml:"co_carry_load"`

	// Colonies.
	Colonies             int `toml:"colonies"`
	InitialColonyStorage int `toml:"initial_colony_storage"`
	ColonyDecay          int `toml:"colony_decay"`
	DepositMultiplier    int `toml:"deposit_multiplier"`

	// Pheromones.
	FoodPheromone   int `toml:"food_pheromone"`
	EvaporationRate int `toml:"evaporation_rate"`
}

// DefaultConfig returns the four-ant setup used for team comparisons.
func DefaultConfig() Config {
	return Config{
		Width:    16,
		Height:   16,
		Agents:   4,
		MaxSteps: 100,

		Penalty:               -0.5,
		StepCost:              -0.01,
		FoodpileCaptureReward: 5,
		ColonyDepositReward:   10,

		Foodpiles:           4,
		MinFoodpileCapacity: 4,
		MaxFoodpileCapacity: 8,
		FoodpileDecrement:   2,
		Placement:           PlacementUniform,
		ClusterThreshold:    0.6,
		CoCarryLoad:         2,

		Colonies:             1,
		InitialColonyStorage: 100,
		ColonyDecay:          1,
		DepositMultiplier:    10,

		FoodPheromone:   50,
		EvaporationRate: 2,
	}
}

// SmallTestConfig returns a single-ant 10x10 world for rapid iteration.
func SmallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	cfg.Agents = 1
	cfg.Foodpiles = 3
	cfg.EvaporationRate = 1
	cfg.Seed = 42
	return cfg
}

// Validate rejects configurations the resolver cannot run.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Agents < 1:
		return fmt.Errorf("%w: need at least one agent", ErrInvalidConfig)
	case c.Colonies < 1:
		return fmt.Errorf("%w: need at least one colony", ErrInvalidConfig)
	case c.Foodpiles < 0:
		return fmt.Errorf("%w: negative foodpile count", ErrInvalidConfig)
	case c.Agents+c.Foodpiles+c.Colonies > c.Width*c.Height:
		return fmt.Errorf("%w: %d entities do not fit a %dx%d grid",
			ErrInvalidConfig, c.Agents+c.Foodpiles+c.Colonies, c.Width, c.Height)
	case c.MaxSteps < 1:
		return fmt.Errorf("%w: max_steps must be positive", ErrInvalidConfig)
	case c.MinFoodpileCapacity < 1 || c.MaxFoodpileCapacity < c.MinFoodpileCapacity:
		return fmt.Errorf("%w: foodpile capacity range [%d, %d)",
			ErrInvalidConfig, c.MinFoodpileCapacity, c.MaxFoodpileCapacity)
	case c.MinFoodpileCapacity%2 != 0:
		return fmt.Errorf("%w: min_foodpile_capacity %d is odd", ErrInvalidConfig, c.MinFoodpileCapacity)
	case c.FoodpileDecrement < 1:
		return fmt.Errorf("%w: foodpile_decrement must be positive", ErrInvalidConfig)
	case c.CoCarryLoad < 1:
		return fmt.Errorf("%w: co_carry_load must be positive", ErrInvalidConfig)
	case c.InitialColonyStorage <= ColonyFloor:
		return fmt.Errorf("%w: initial colony storage must exceed %d", ErrInvalidConfig, ColonyFloor)
	case c.ColonyDecay < 0 || c.EvaporationRate < 0 || c.DepositMultiplier < 0:
		return fmt.Errorf("%w: negative rate", ErrInvalidConfig)
	case c.FoodPheromone < 1:
		return fmt.Errorf("%w: food_pheromone must be positive", ErrInvalidConfig)
	case c.Placement != PlacementUniform && c.Placement != PlacementClustered:
		return fmt.Errorf("%w: unknown placement %q", ErrInvalidConfig, c.Placement)
	}
	return nil
}

// ActionSpace returns the number of valid action codes. Cooperative transfer
// only exists when there is more than one ant.
func (c Config) ActionSpace() int {
	if c.Agents > 1 {
		return NumActions
	}
	return NumActions - 1
}
