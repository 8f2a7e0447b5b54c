package world

import (
	"errors"
	"fmt"
	"log/slog"
)

// Step errors. A rejected step leaves the world untouched.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrActionCount   = errors.New("wrong number of actions")
)

// Info carries episode-level facts alongside each step.
type Info struct {
	FoodpilesDone bool `json:"foodpiles_done"`
	ColonyStorage int  `json:"colony_storage"`
}

// StepResult is everything an agent team needs after one tick.
type StepResult struct {
	Observations []Observation
	Rewards      []float64
	Dones        []bool
	Info         Info
}

// Step resolves one tick for every agent at once. actions[i] belongs to
// agent i. Effects apply in a fixed order: costs, heat map, evaporation,
// food transfer, movement, foodpile collection, colony deposit and decay,
// termination.
func (w *World) Step(actions []Action) (StepResult, error) {
	if !w.ready {
		return StepResult{}, ErrNotReset
	}
	if w.done {
		return StepResult{}, ErrEpisodeDone
	}
	if len(actions) != len(w.agents) {
		return StepResult{}, fmt.Errorf("%w: got %d, want %d", ErrActionCount, len(actions), len(w.agents))
	}
	space := w.ActionSpace()
	for i, a := range actions {
		if int(a) >= space {
			return StepResult{}, fmt.Errorf("%w: agent %d chose %d (action space %d)", ErrUnknownAction, i, a, space)
		}
	}

	rewards := w.chargeCosts(actions)

	for _, a := range w.agents {
		w.heat[w.grid.index(a.Pos)]++
	}

	w.pheromones.Evaporate(w.grid)
	w.transferFood(actions)
	w.move(actions)
	w.collectFood(actions, rewards)
	w.depositFood(actions, rewards)
	for i := range w.colonies {
		w.colonies[i].Decay(w.cfg.ColonyDecay)
	}

	w.tick++
	w.done = w.terminated()

	dones := make([]bool, len(w.agents))
	for i := range dones {
		dones[i] = w.done
	}
	if w.done {
		slog.Debug("episode terminated",
			"tick", w.tick,
			"storage", w.ColonyStorage(),
			"foodpiles_done", w.FoodpilesDone(),
		)
	}

	return StepResult{
		Observations: w.Observations(),
		Rewards:      rewards,
		Dones:        dones,
		Info: Info{
			FoodpilesDone: w.FoodpilesDone(),
			ColonyStorage: w.ColonyStorage(),
		},
	}, nil
}

// chargeCosts applies the per-step cost and the empty-handed drop penalty.
func (w *World) chargeCosts(actions []Action) []float64 {
	rewards := make([]float64, len(w.agents))
	for i, a := range actions {
		rewards[i] = w.cfg.StepCost
		if a == ActionDropFood && w.agents[i].Carried == 0 {
			rewards[i] += w.cfg.Penalty
		}
	}
	return rewards
}

// transferFood lets an empty-handed ant share the load of a loaded neighbour.
// Both end up holding CoCarryLoad.
func (w *World) transferFood(actions []Action) {
	load := w.cfg.CoCarryLoad
	for i := range w.agents {
		me := &w.agents[i]
		if actions[i] != ActionCollectFoodFromAnt || me.Carried != 0 {
			continue
		}
		for _, j := range w.grid.NeighborAgents(me.Pos) {
			if w.agents[j].Carried == load {
				me.Carried = load
				break
			}
		}
	}
}

func (w *World) move(actions []Action) {
	for i := range w.agents {
		a := actions[i]
		ag := &w.agents[i]
		if !a.IsMove() || (a.LaysPheromone() && ag.Carried == 0) {
			continue
		}
		target := ag.Pos.Add(a.Offset())
		if !w.grid.Walkable(target) {
			continue
		}
		from := ag.Pos
		w.grid.Set(from, Cell{Kind: CellEmpty})
		if a.LaysPheromone() {
			w.pheromones.Deposit(from, w.cfg.FoodPheromone)
			w.grid.Set(from, Cell{Kind: CellPheromone})
		}
		w.grid.Set(target, Cell{Kind: CellAgent, ID: i})
		ag.Pos = target
	}
}

// collectFood serves at most one ant per foodpile, the lowest adjacent id that
// asked to collect with empty hands.
func (w *World) collectFood(actions []Action, rewards []float64) {
	for f := range w.foodpiles {
		pile := &w.foodpiles[f]
		if pile.Depleted {
			continue
		}
		for _, j := range w.grid.NeighborAgents(pile.Pos) {
			if actions[j] != ActionCollectFood || w.agents[j].Carried != 0 {
				continue
			}
			if pile.Collect(w.cfg.FoodpileDecrement) {
				w.grid.Set(pile.Pos, Cell{Kind: CellEmpty})
			}
			rewards[j] += w.cfg.FoodpileCaptureReward
			w.agents[j].Carried = w.cfg.CoCarryLoad
			break
		}
	}
}

// depositFood serves at most one loaded ant per colony.
func (w *World) depositFood(actions []Action, rewards []float64) {
	for c := range w.colonies {
		col := &w.colonies[c]
		for _, j := range w.grid.NeighborAgents(col.Pos) {
			if actions[j] != ActionDropFood || w.agents[j].Carried == 0 {
				continue
			}
			col.Deposit(w.agents[j].Carried, w.cfg.DepositMultiplier)
			rewards[j] += w.cfg.ColonyDepositReward
			w.agents[j].Carried = 0
			break
		}
	}
}

func (w *World) terminated() bool {
	if w.tick >= w.cfg.MaxSteps {
		return true
	}
	for i := range w.colonies {
		if w.colonies[i].AtFloor() {
			return true
		}
	}
	if !w.FoodpilesDone() {
		return false
	}
	for _, a := range w.agents {
		if a.Carried != 0 {
			return false
		}
	}
	return true
}
