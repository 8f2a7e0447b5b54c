package world

// Observation vector layout. Windows are egocentric ViewSize x ViewSize
// flattenings; out-of-bounds cells read 0.
const (
	ObsAgentX        = 0
	ObsAgentY        = 1
	ObsColonyX       = 2
	ObsColonyY       = 3
	ObsFoodpiles     = 4 // Remaining capacity per visible foodpile
	ObsPheromones    = ObsFoodpiles + WindowCells
	ObsColonyStorage = ObsPheromones + WindowCells
	ObsHasFood       = ObsColonyStorage + 1
	ObsOtherAgents   = ObsHasFood + 1 // Carried amount of each visible agent
	ObsLen           = ObsOtherAgents + WindowCells
)

// Observation is one agent's view of the world, laid out per the Obs*
// offsets. In fully observable worlds it is the concatenation of every
// agent's vector.
type Observation []int

// Block returns the i-th agent's vector of a concatenated observation.
func (o Observation) Block(i int) Observation {
	return o[i*ObsLen : (i+1)*ObsLen]
}

// Position returns the observing agent's coordinate.
func (o Observation) Position() Coord {
	return Coord{X: o[ObsAgentX], Y: o[ObsAgentY]}
}

// ColonyPos returns the home colony's coordinate.
func (o Observation) ColonyPos() Coord {
	return Coord{X: o[ObsColonyX], Y: o[ObsColonyY]}
}

// Foodpiles copies the foodpile window.
func (o Observation) Foodpiles() Window {
	return o.window(ObsFoodpiles)
}

// Pheromones copies the pheromone window.
func (o Observation) Pheromones() Window {
	return o.window(ObsPheromones)
}

// OtherAgents copies the other-agents window.
func (o Observation) OtherAgents() Window {
	return o.window(ObsOtherAgents)
}

// ColonyStorage returns the visible colony's storage, 0 when out of view.
func (o Observation) ColonyStorage() int {
	return o[ObsColonyStorage]
}

// HasFood reports whether the observing agent carries food.
func (o Observation) HasFood() bool {
	return o[ObsHasFood] != 0
}

func (o Observation) window(offset int) Window {
	var w Window
	copy(w[:], o[offset:offset+WindowCells])
	return w
}

// Observations encodes the current state for every agent.
func (w *World) Observations() []Observation {
	own := make([]Observation, len(w.agents))
	for i := range w.agents {
		own[i] = w.observe(i)
	}
	if !w.cfg.FullObservable {
		return own
	}

	joint := make(Observation, 0, len(own)*ObsLen)
	for _, o := range own {
		joint = append(joint, o...)
	}
	out := make([]Observation, len(own))
	for i := range out {
		out[i] = append(Observation(nil), joint...)
	}
	return out
}

func (w *World) observe(i int) Observation {
	me := w.agents[i]
	obs := make(Observation, ObsLen)
	obs[ObsAgentX] = me.Pos.X
	obs[ObsAgentY] = me.Pos.Y
	if len(w.colonies) > 0 {
		obs[ObsColonyX] = w.colonies[0].Pos.X
		obs[ObsColonyY] = w.colonies[0].Pos.Y
	}
	obs[ObsHasFood] = me.Carried

	for k := 0; k < WindowCells; k++ {
		c := IndexToGlobal(me.Pos, k)
		switch cell := w.grid.Get(c); cell.Kind {
		case CellFoodpile:
			obs[ObsFoodpiles+k] = w.foodpiles[cell.ID].Capacity
		case CellPheromone:
			obs[ObsPheromones+k] = w.pheromones.Read(c)
		case CellAgent:
			if cell.ID != i {
				obs[ObsOtherAgents+k] = w.agents[cell.ID].Carried
			}
		}
	}
	// Lowest colony id wins when several are in view.
	for _, col := range w.colonies {
		if InWindow(me.Pos, col.Pos) {
			obs[ObsColonyStorage] = col.Storage
			break
		}
	}
	return obs
}
