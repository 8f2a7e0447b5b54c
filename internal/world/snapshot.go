package world

// Snapshot is a read-only copy of the world for renderers and the status API.
type Snapshot struct {
	Tick       int          `json:"tick"`
	Done       bool         `json:"done"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Agents     []AgentState `json:"agents"`
	Foodpiles  []Foodpile   `json:"foodpiles"`
	Colonies   []Colony     `json:"colonies"`
	Pheromones [][]int      `json:"pheromones"` // Row-major intensity
	HeatMap    [][]int      `json:"heat_map"`   // Row-major visit counts
}

// Snapshot copies the current state. The result shares no memory with w.
func (w *World) Snapshot() Snapshot {
	heat := make([][]int, w.cfg.Height)
	for y := range heat {
		heat[y] = append([]int(nil), w.heat[y*w.cfg.Width:(y+1)*w.cfg.Width]...)
	}
	return Snapshot{
		Tick:       w.tick,
		Done:       w.done,
		Width:      w.cfg.Width,
		Height:     w.cfg.Height,
		Agents:     w.Agents(),
		Foodpiles:  w.Foodpiles(),
		Colonies:   w.Colonies(),
		Pheromones: w.pheromones.Rows(),
		HeatMap:    heat,
	}
}

// TotalStorage sums colony storage.
func (s Snapshot) TotalStorage() int {
	total := 0
	for _, c := range s.Colonies {
		total += c.Storage
	}
	return total
}

// RemainingFood sums foodpile capacity that has not been collected.
func (s Snapshot) RemainingFood() int {
	total := 0
	for _, f := range s.Foodpiles {
		if !f.Depleted {
			total += f.Capacity
		}
	}
	return total
}
