package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/talgya/antcolony/internal/entropy"
)

// Episode lifecycle errors.
var (
	ErrNotReset    = errors.New("world not reset")
	ErrEpisodeDone = errors.New("episode already terminated")
	ErrBadLayout   = errors.New("invalid layout")
)

// AgentState is the world-owned state of one ant. Carried is 0 when empty
// handed and Config.CoCarryLoad when holding food.
type AgentState struct {
	ID      int   `json:"id"`
	Pos     Coord `json:"pos"`
	Carried int   `json:"carried"`
}

// World is the complete environment state for one episode.
type World struct {
	cfg        Config
	grid       *Grid
	pheromones *PheromoneField
	agents     []AgentState
	foodpiles  []Foodpile
	colonies   []Colony
	heat       []int

	tick  int
	ready bool
	done  bool

	seed int64
	rng  *rand.Rand
}

// New validates cfg and builds an empty world. Call Reset or ResetWithLayout
// before stepping.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:        cfg,
		grid:       NewGrid(cfg.Width, cfg.Height),
		pheromones: NewPheromoneField(cfg.Width, cfg.Height, cfg.EvaporationRate),
		heat:       make([]int, cfg.Width*cfg.Height),
	}
	w.Seed(entropy.SeedOr(cfg.Seed))
	return w, nil
}

// Seed reseeds the placement RNG. The next Reset reproduces the same map for
// the same seed.
func (w *World) Seed(seed int64) {
	w.seed = seed
	w.rng = rand.New(rand.NewSource(seed))
}

// Reset starts a new episode with random placement and returns the initial
// observations.
func (w *World) Reset() ([]Observation, error) {
	scratch := NewGrid(w.cfg.Width, w.cfg.Height)
	layout, err := newPlacer(scratch, w.rng, w.cfg, w.seed).place(w.cfg)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return w.ResetWithLayout(layout)
}

// ResetWithLayout starts a new episode with fixed positions. The layout must
// hold exactly Config.Agents agents and at least one colony.
func (w *World) ResetWithLayout(l Layout) ([]Observation, error) {
	if err := w.checkLayout(l); err != nil {
		return nil, err
	}

	w.grid.Clear()
	w.pheromones.Reset()
	for i := range w.heat {
		w.heat[i] = 0
	}
	w.tick = 0
	w.done = false

	w.agents = make([]AgentState, len(l.Agents))
	for i, c := range l.Agents {
		w.agents[i] = AgentState{ID: i, Pos: c}
		w.grid.Set(c, Cell{Kind: CellAgent, ID: i})
	}
	w.foodpiles = make([]Foodpile, len(l.Foodpiles))
	for i, f := range l.Foodpiles {
		w.foodpiles[i] = Foodpile{ID: i, Pos: f.Pos, Capacity: f.Capacity, InitialCapacity: f.Capacity}
		w.grid.Set(f.Pos, Cell{Kind: CellFoodpile, ID: i})
	}
	w.colonies = make([]Colony, len(l.Colonies))
	for i, c := range l.Colonies {
		w.colonies[i] = Colony{ID: i, Pos: c, Storage: w.cfg.InitialColonyStorage}
		w.grid.Set(c, Cell{Kind: CellColony, ID: i})
	}

	w.ready = true
	return w.Observations(), nil
}

func (w *World) checkLayout(l Layout) error {
	if len(l.Agents) != w.cfg.Agents {
		return fmt.Errorf("%w: %d agents, config wants %d", ErrBadLayout, len(l.Agents), w.cfg.Agents)
	}
	if len(l.Colonies) == 0 {
		return fmt.Errorf("%w: no colony", ErrBadLayout)
	}
	seen := make(map[Coord]bool)
	check := func(what string, c Coord) error {
		if !w.grid.InBounds(c) {
			return fmt.Errorf("%w: %s at %s out of bounds", ErrBadLayout, what, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s at %s overlaps", ErrBadLayout, what, c)
		}
		seen[c] = true
		return nil
	}
	for _, c := range l.Agents {
		if err := check("agent", c); err != nil {
			return err
		}
	}
	for _, f := range l.Foodpiles {
		if err := check("foodpile", f.Pos); err != nil {
			return err
		}
		if f.Capacity < 1 {
			return fmt.Errorf("%w: foodpile at %s has capacity %d", ErrBadLayout, f.Pos, f.Capacity)
		}
	}
	for _, c := range l.Colonies {
		if err := check("colony", c); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the world configuration.
func (w *World) Config() Config { return w.cfg }

// ActionSpace returns the number of valid action codes.
func (w *World) ActionSpace() int { return w.cfg.ActionSpace() }

// Tick returns the number of resolved steps in the current episode.
func (w *World) Tick() int { return w.tick }

// Done reports whether the current episode has terminated.
func (w *World) Done() bool { return w.done }

// Grid exposes the occupancy grid. Callers must not mutate it.
func (w *World) Grid() *Grid { return w.grid }

// Pheromones exposes the pheromone field. Callers must not mutate it.
func (w *World) Pheromones() *PheromoneField { return w.pheromones }

// Agents returns a copy of every agent's state.
func (w *World) Agents() []AgentState {
	return append([]AgentState(nil), w.agents...)
}

// Foodpiles returns a copy of every foodpile.
func (w *World) Foodpiles() []Foodpile {
	return append([]Foodpile(nil), w.foodpiles...)
}

// Colonies returns a copy of every colony.
func (w *World) Colonies() []Colony {
	return append([]Colony(nil), w.colonies...)
}

// ColonyStorage returns the storage of the first colony.
func (w *World) ColonyStorage() int {
	if len(w.colonies) == 0 {
		return 0
	}
	return w.colonies[0].Storage
}

// FoodpilesDone reports whether every foodpile is depleted.
func (w *World) FoodpilesDone() bool {
	for i := range w.foodpiles {
		if !w.foodpiles[i].Depleted {
			return false
		}
	}
	return true
}

// Heat returns the visitation count at c.
func (w *World) Heat(c Coord) int {
	if !w.grid.InBounds(c) {
		return 0
	}
	return w.heat[w.grid.index(c)]
}
