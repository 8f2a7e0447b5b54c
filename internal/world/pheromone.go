package world

// PheromoneField stores an integer intensity per cell, independent of the
// cell's occupancy tag so that trails survive under standing agents.
type PheromoneField struct {
	width     int
	intensity []int
	rate      int
}

// NewPheromoneField creates a zeroed field evaporating by rate each tick.
func NewPheromoneField(width, height, rate int) *PheromoneField {
	return &PheromoneField{
		width:     width,
		intensity: make([]int, width*height),
		rate:      rate,
	}
}

// Read returns the intensity at c.
func (p *PheromoneField) Read(c Coord) int {
	i, ok := p.index(c)
	if !ok {
		return 0
	}
	return p.intensity[i]
}

// Deposit adds amount to the intensity at c. Deposits stack without a cap.
func (p *PheromoneField) Deposit(c Coord, amount int) {
	if i, ok := p.index(c); ok {
		p.intensity[i] += amount
	}
}

// Evaporate lowers every positive intensity by the evaporation rate, clamped
// at zero. Pheromone-tagged cells at zero lose their tag; a cell holding an
// agent keeps the agent tag.
func (p *PheromoneField) Evaporate(g *Grid) {
	for i, v := range p.intensity {
		if v > 0 {
			v -= p.rate
			if v < 0 {
				v = 0
			}
			p.intensity[i] = v
		}
		if v == 0 {
			c := g.coord(i)
			if g.Get(c).Kind == CellPheromone {
				g.Set(c, Cell{Kind: CellEmpty})
			}
		}
	}
}

// Reset zeroes the field.
func (p *PheromoneField) Reset() {
	for i := range p.intensity {
		p.intensity[i] = 0
	}
}

// Rows returns a row-major copy of the field for rendering.
func (p *PheromoneField) Rows() [][]int {
	height := len(p.intensity) / p.width
	rows := make([][]int, height)
	for y := range rows {
		rows[y] = append([]int(nil), p.intensity[y*p.width:(y+1)*p.width]...)
	}
	return rows
}

func (p *PheromoneField) index(c Coord) (int, bool) {
	height := len(p.intensity) / p.width
	if c.X < 0 || c.X >= p.width || c.Y < 0 || c.Y >= height {
		return 0, false
	}
	return c.Y*p.width + c.X, true
}
