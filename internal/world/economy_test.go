package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodpileDepletes(t *testing.T) {
	f := Foodpile{Capacity: 4, InitialCapacity: 4}
	assert.False(t, f.Collect(2))
	assert.Equal(t, 2, f.Capacity)
	assert.True(t, f.Collect(2))
	assert.True(t, f.Depleted)
	// A depleted pile stays put.
	assert.True(t, f.Collect(2))
	assert.Equal(t, 0, f.Capacity)
}

func TestFoodpileDepletesOnUnevenCapacity(t *testing.T) {
	// ceil(5/2) = 3 collects.
	f := Foodpile{Capacity: 5, InitialCapacity: 5}
	assert.False(t, f.Collect(2))
	assert.False(t, f.Collect(2))
	assert.Equal(t, 1, f.Capacity)
	assert.True(t, f.Collect(2))
	assert.True(t, f.Depleted)
}

func TestColonyDecayFloor(t *testing.T) {
	c := Colony{Storage: 3}
	c.Decay(5)
	assert.Equal(t, ColonyFloor, c.Storage)
	assert.True(t, c.AtFloor())
	c.Decay(1)
	assert.Equal(t, ColonyFloor, c.Storage)
}

func TestColonyDeposit(t *testing.T) {
	c := Colony{Storage: 50}
	assert.Equal(t, 20, c.Deposit(2, 10))
	assert.Equal(t, 70, c.Storage)
	assert.False(t, c.AtFloor())
}

func TestPheromoneEvaporation(t *testing.T) {
	g := NewGrid(3, 3)
	p := NewPheromoneField(3, 3, 2)

	trail := Coord{X: 0, Y: 0}
	occupied := Coord{X: 1, Y: 1}
	p.Deposit(trail, 3)
	g.Set(trail, Cell{Kind: CellPheromone})
	p.Deposit(occupied, 1)
	g.Set(occupied, Cell{Kind: CellAgent, ID: 0})

	p.Evaporate(g)
	assert.Equal(t, 1, p.Read(trail))
	assert.Equal(t, CellPheromone, g.Get(trail).Kind)
	assert.Equal(t, 0, p.Read(occupied))
	assert.Equal(t, CellAgent, g.Get(occupied).Kind)

	p.Evaporate(g)
	assert.Equal(t, 0, p.Read(trail))
	assert.Equal(t, CellEmpty, g.Get(trail).Kind)
}

func TestEvaporationClearsEmptyPheromoneTag(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPheromoneField(2, 2, 1)
	c := Coord{X: 1, Y: 1}
	g.Set(c, Cell{Kind: CellPheromone})

	p.Evaporate(g)
	assert.Equal(t, CellEmpty, g.Get(c).Kind)
}

func TestPheromoneDepositStacks(t *testing.T) {
	p := NewPheromoneField(2, 2, 1)
	c := Coord{X: 1, Y: 0}
	p.Deposit(c, 50)
	p.Deposit(c, 50)
	assert.Equal(t, 100, p.Read(c))
	assert.Equal(t, [][]int{{0, 100}, {0, 0}}, p.Rows())
	assert.Equal(t, 0, p.Read(Coord{X: 5, Y: 5}))

	p.Reset()
	assert.Equal(t, 0, p.Read(c))
}

func TestGridNeighborAgentsSorted(t *testing.T) {
	g := NewGrid(3, 3)
	center := Coord{X: 1, Y: 1}
	g.Set(Coord{X: 1, Y: 2}, Cell{Kind: CellAgent, ID: 3})
	g.Set(Coord{X: 0, Y: 1}, Cell{Kind: CellAgent, ID: 1})
	g.Set(Coord{X: 2, Y: 1}, Cell{Kind: CellAgent, ID: 2})
	g.Set(Coord{X: 1, Y: 0}, Cell{Kind: CellFoodpile, ID: 0})
	assert.Equal(t, []int{1, 2, 3}, g.NeighborAgents(center))
	assert.False(t, g.Walkable(Coord{X: 1, Y: 0}))
	assert.True(t, g.Walkable(center))
	assert.False(t, g.Walkable(Coord{X: -1, Y: 0}))
}
