package world

import "fmt"

// CellKind tags what occupies a grid cell.
type CellKind uint8

const (
	CellEmpty     CellKind = iota
	CellAgent                  // Ant standing here (ID = agent index)
	CellFoodpile               // Depletable food source (ID = foodpile index)
	CellColony                 // Deposit sink (ID = colony index)
	CellPheromone              // Marked ground; intensity lives in PheromoneField
)

// Cell is a tagged grid cell. ID is meaningful only for agent, foodpile and
// colony cells.
type Cell struct {
	Kind CellKind `json:"kind"`
	ID   int      `json:"id"`
}

// Grid holds the occupancy tag of every cell in a flat row-major array.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid creates an all-empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds returns true if the coordinate lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Get returns the cell at c. Out-of-bounds coordinates read as empty.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{}
	}
	return g.cells[g.index(c)]
}

// Set tags the cell at c. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if !g.InBounds(c) {
		return
	}
	g.cells[g.index(c)] = cell
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Walkable reports whether an agent may step onto c.
func (g *Grid) Walkable(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	k := g.cells[g.index(c)].Kind
	return k == CellEmpty || k == CellPheromone
}

// Vacant reports whether c is on the grid and completely empty.
func (g *Grid) Vacant(c Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)].Kind == CellEmpty
}

// NeighborAgents returns the ids of agents orthogonally adjacent to c in
// ascending order.
func (g *Grid) NeighborAgents(c Coord) []int {
	var ids []int
	for _, n := range c.Neighbors() {
		if cell := g.Get(n); cell.Kind == CellAgent {
			ids = insertSorted(ids, cell.ID)
		}
	}
	return ids
}

// CellCount returns the total number of cells in the grid.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.Width, g.Height)
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Width + c.X
}

func (g *Grid) coord(i int) Coord {
	return Coord{X: i % g.Width, Y: i / g.Width}
}

func insertSorted(ids []int, id int) []int {
	i := len(ids)
	for i > 0 && ids[i-1] > id {
		i--
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
