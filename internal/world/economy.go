package world

// ColonyFloor is the lowest storage a colony can hold. Reaching it ends the
// episode. Observations use 0 for "no colony in view", so a visible colony
// always reads at least 1.
const ColonyFloor = 1

// Foodpile is a depletable food source fixed on the grid.
type Foodpile struct {
	ID              int   `json:"id"`
	Pos             Coord `json:"pos"`
	Capacity        int   `json:"capacity"`
	InitialCapacity int   `json:"initial_capacity"`
	Depleted        bool  `json:"depleted"`
}

// Collect removes one collect unit from the pile and reports whether the pile
// is now depleted. Collecting from a depleted pile is a no-op.
func (f *Foodpile) Collect(decrement int) bool {
	if f.Depleted {
		return true
	}
	f.Capacity -= decrement
	if f.Capacity < 1 {
		f.Depleted = true
	}
	return f.Depleted
}

// Colony is the deposit sink. Its storage decays every tick.
type Colony struct {
	ID      int   `json:"id"`
	Pos     Coord `json:"pos"`
	Storage int   `json:"storage"`
}

// Deposit adds carried food to storage and returns the amount added.
func (c *Colony) Deposit(carried, multiplier int) int {
	added := carried * multiplier
	c.Storage += added
	return added
}

// Decay lowers storage by unit while it is above the floor, never below it.
func (c *Colony) Decay(unit int) {
	if c.Storage <= ColonyFloor {
		return
	}
	c.Storage -= unit
	if c.Storage < ColonyFloor {
		c.Storage = ColonyFloor
	}
}

// AtFloor reports whether the colony has starved.
func (c *Colony) AtFloor() bool {
	return c.Storage <= ColonyFloor
}
