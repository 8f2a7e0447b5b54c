package world

import (
	"errors"
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrNoVacancy is returned when no legal cell remains for an entity.
var ErrNoVacancy = errors.New("no vacant cell")

// Layout fixes every entity position for a deterministic reset.
type Layout struct {
	Agents    []Coord
	Foodpiles []FoodpileSpec
	Colonies  []Coord
}

// FoodpileSpec places one foodpile with a given capacity.
type FoodpileSpec struct {
	Pos      Coord
	Capacity int
}

// placer draws positions for a fresh episode. Uniform placement picks any
// legal cell; clustered placement samples layered simplex noise so foodpiles
// gather in patches.
type placer struct {
	grid  *Grid
	rng   *rand.Rand
	noise []float64 // Per-cell noise level, nil for uniform placement
	limit float64
}

func newPlacer(g *Grid, rng *rand.Rand, cfg Config, seed int64) *placer {
	p := &placer{grid: g, rng: rng, limit: cfg.ClusterThreshold}
	if cfg.Placement == PlacementClustered {
		p.noise = noiseField(g, seed)
	}
	return p
}

// noiseField samples normalized octave noise at every cell.
func noiseField(g *Grid, seed int64) []float64 {
	n := opensimplex.NewNormalized(seed)
	field := make([]float64, g.CellCount())
	for i := range field {
		c := g.coord(i)
		field[i] = octaveNoise(n, float64(c.X), float64(c.Y), 3, 0.15, 0.5)
	}
	return field
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// spacious reports whether c is vacant and has no agent orthogonally next to it.
func (p *placer) spacious(c Coord) bool {
	return p.grid.Vacant(c) && len(p.grid.NeighborAgents(c)) == 0
}

// candidates lists cells passing keep, in row-major order.
func (p *placer) candidates(keep func(i int, c Coord) bool) []Coord {
	var out []Coord
	for i := 0; i < p.grid.CellCount(); i++ {
		c := p.grid.coord(i)
		if keep(i, c) {
			out = append(out, c)
		}
	}
	return out
}

// pick chooses a spacious cell, relaxing to any vacant cell when crowded.
func (p *placer) pick() (Coord, error) {
	cells := p.candidates(func(_ int, c Coord) bool { return p.spacious(c) })
	if len(cells) == 0 {
		cells = p.candidates(func(_ int, c Coord) bool { return p.grid.Vacant(c) })
	}
	if len(cells) == 0 {
		return Coord{}, ErrNoVacancy
	}
	return cells[p.rng.Intn(len(cells))], nil
}

// pickFoodpile prefers cells above the noise threshold when clustering.
func (p *placer) pickFoodpile() (Coord, error) {
	if p.noise != nil {
		cells := p.candidates(func(i int, c Coord) bool {
			return p.noise[i] > p.limit && p.spacious(c)
		})
		if len(cells) > 0 {
			return cells[p.rng.Intn(len(cells))], nil
		}
	}
	return p.pick()
}

// capacity draws an even-stepped capacity in [lo, hi).
func (p *placer) capacity(lo, hi int) int {
	steps := (hi - lo + 1) / 2
	if steps < 1 {
		return lo
	}
	return lo + 2*p.rng.Intn(steps)
}

// place populates a cleared grid with agents, then foodpiles, then colonies.
func (p *placer) place(cfg Config) (Layout, error) {
	var l Layout
	for i := 0; i < cfg.Agents; i++ {
		c, err := p.pick()
		if err != nil {
			return l, fmt.Errorf("place agent %d: %w", i, err)
		}
		p.grid.Set(c, Cell{Kind: CellAgent, ID: i})
		l.Agents = append(l.Agents, c)
	}
	for i := 0; i < cfg.Foodpiles; i++ {
		c, err := p.pickFoodpile()
		if err != nil {
			return l, fmt.Errorf("place foodpile %d: %w", i, err)
		}
		p.grid.Set(c, Cell{Kind: CellFoodpile, ID: i})
		l.Foodpiles = append(l.Foodpiles, FoodpileSpec{
			Pos:      c,
			Capacity: p.capacity(cfg.MinFoodpileCapacity, cfg.MaxFoodpileCapacity),
		})
	}
	for i := 0; i < cfg.Colonies; i++ {
		c, err := p.pick()
		if err != nil {
			return l, fmt.Errorf("place colony %d: %w", i, err)
		}
		p.grid.Set(c, Cell{Kind: CellColony, ID: i})
		l.Colonies = append(l.Colonies, c)
	}
	return l, nil
}
