package agents

import "github.com/talgya/antcolony/internal/world"

// Percept is an observation decoded into named fields.
type Percept struct {
	Pos        world.Coord
	Colony     world.Coord
	Foodpiles  world.Window
	Pheromones world.Window
	Others     world.Window
	Storage    int
	Carried    int
}

// Perceive decodes obs for ant id. Fully observable vectors are sliced down
// to the ant's own block.
func Perceive(obs world.Observation, id AgentID) Percept {
	if len(obs) > world.ObsLen {
		obs = obs.Block(int(id))
	}
	others := obs.OtherAgents()
	others[world.CenterIndex] = 0
	return Percept{
		Pos:        obs.Position(),
		Colony:     obs.ColonyPos(),
		Foodpiles:  obs.Foodpiles(),
		Pheromones: obs.Pheromones(),
		Others:     others,
		Storage:    obs.ColonyStorage(),
		Carried:    obs[world.ObsHasFood],
	}
}

// HasFood reports whether the ant carries anything.
func (p Percept) HasFood() bool {
	return p.Carried != 0
}

// FoodpileVisible reports whether any foodpile is in view.
func (p Percept) FoodpileVisible() bool {
	return p.Foodpiles.Any()
}
