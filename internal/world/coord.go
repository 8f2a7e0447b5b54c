// Package world provides the grid, resource economy, pheromone field and the
// turn resolver for the ant colony simulation.
// Coordinates are (x, y) with x growing right and y growing down.
package world

import "fmt"

// Coord represents a cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns the offset from o to c.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Orthogonal neighbor offsets, in action order: down, left, up, right.
var (
	OffsetDown  = Coord{X: 0, Y: 1}
	OffsetLeft  = Coord{X: -1, Y: 0}
	OffsetUp    = Coord{X: 0, Y: -1}
	OffsetRight = Coord{X: 1, Y: 0}
)

// NeighborDirections lists the four orthogonal offsets.
var NeighborDirections = [4]Coord{OffsetDown, OffsetLeft, OffsetUp, OffsetRight}

// Neighbors returns the four orthogonally adjacent coordinates.
// Results may lie outside the grid.
func (c Coord) Neighbors() [4]Coord {
	var result [4]Coord
	for i, dir := range NeighborDirections {
		result[i] = c.Add(dir)
	}
	return result
}

// Manhattan returns the city-block distance between two coordinates.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Adjacent reports whether b is one orthogonal step away from a.
func Adjacent(a, b Coord) bool {
	return Manhattan(a, b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
