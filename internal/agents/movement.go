// Shared movement capabilities: heading toward a target, exploring, trail
// following and obstacle avoidance.
package agents

import (
	"math/rand"

	"github.com/talgya/antcolony/internal/world"
)

// mind is the scratch state of one decision.
type mind struct {
	p     Percept
	mem   Memory
	cfg   Config
	space int
	rng   *rand.Rand
}

// directionTo closes the larger axis gap toward target; equal gaps are broken
// by a coin flip. lay selects the pheromone-laying variant.
func (m *mind) directionTo(target world.Coord, lay bool) world.Action {
	d := target.Sub(m.p.Pos)
	ax, ay := abs(d.X), abs(d.Y)
	var a world.Action
	switch {
	case ax > ay:
		a = horizontal(d.X)
	case ax < ay:
		a = vertical(d.Y)
	case m.rng.Float64() > 0.5:
		a = horizontal(d.X)
	default:
		a = vertical(d.Y)
	}
	return a.WithPheromone(lay)
}

func horizontal(dx int) world.Action {
	switch {
	case dx > 0:
		return world.ActionRight
	case dx < 0:
		return world.ActionLeft
	default:
		return world.ActionStay
	}
}

func vertical(dy int) world.Action {
	switch {
	case dy > 0:
		return world.ActionDown
	case dy < 0:
		return world.ActionUp
	default:
		return world.ActionStay
	}
}

// reached reports whether target is the ant's cell or orthogonally adjacent.
func (m *mind) reached(target world.Coord) bool {
	return world.Manhattan(m.p.Pos, target) <= 1
}

// closest returns the nearest window cell accepted by keep. The lowest index
// wins among equally distant cells.
func (m *mind) closest(w *world.Window, keep func(v int) bool) (world.Coord, bool) {
	best, bestDist, found := world.Coord{}, 0, false
	for i, v := range w {
		if i == world.CenterIndex || !keep(v) {
			continue
		}
		c := world.IndexToGlobal(m.p.Pos, i)
		if d := world.Manhattan(m.p.Pos, c); !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

func (m *mind) closestFoodpile() (world.Coord, bool) {
	return m.closest(&m.p.Foodpiles, func(v int) bool { return v != 0 })
}

func (m *mind) closestLoadedAnt() (world.Coord, bool) {
	return m.closest(&m.p.Others, func(v int) bool { return v == m.cfg.LoadedAnt })
}

// explore keeps a direction for ExploreSteps ticks, then turns left or right
// of it, never straight back.
func (m *mind) explore() world.Action {
	dir := m.mem.ExploreAction.WithPheromone(false)
	switch {
	case m.mem.ExploreSteps == 0 || dir > world.ActionRight:
		dir = world.Action(m.rng.Intn(4))
	case m.mem.ExploreSteps >= m.cfg.ExploreSteps:
		turn := world.Action(1)
		if m.rng.Intn(2) == 1 {
			turn = 3
		}
		dir = (dir + turn) % 4
		m.mem.ExploreSteps = 0
	}
	m.mem.ExploreAction = dir
	m.mem.ExploreSteps++
	return dir.WithPheromone(m.p.HasFood())
}

// intenseVisible reports whether any visible pheromone is worth following.
func (m *mind) intenseVisible() bool {
	for _, v := range m.p.Pheromones {
		if v > m.cfg.IntensePheromone {
			return true
		}
	}
	return false
}

// mostIntense returns the strongest visible pheromone cell.
func (m *mind) mostIntense() world.Coord {
	best := 0
	for i, v := range m.p.Pheromones {
		if v > m.p.Pheromones[best] {
			best = i
		}
	}
	return world.IndexToGlobal(m.p.Pos, best)
}

type trailOutcome uint8

const (
	trailFollowing trailOutcome = iota
	trailFaded                  // No pheromone around the promising cell
	trailExhausted              // Pheromone left, none of it interesting
)

// followTrail heads for the promising cell. Once next to it (diagonals
// included) it picks the interesting neighbour farthest from the colony as the
// next promising cell.
func (m *mind) followTrail() (world.Action, trailOutcome) {
	d := m.mem.Promising.Sub(m.p.Pos)
	ax, ay := abs(d.X), abs(d.Y)
	if ax+ay == 1 || (ax == 1 && ay == 1) {
		var (
			next    world.Coord
			maxDist int
			scented bool
		)
		for _, n := range m.mem.Promising.Neighbors() {
			v := m.p.Pheromones.At(m.p.Pos, n)
			if v != 0 {
				scented = true
			}
			if dist := world.Manhattan(m.p.Colony, n); dist > maxDist && v > m.cfg.InterestingPheromone {
				next, maxDist = n, dist
			}
		}
		if !scented {
			m.mem.dropTrail()
			return m.explore(), trailFaded
		}
		if maxDist == 0 {
			m.mem.dropTrail()
			return m.explore(), trailExhausted
		}
		m.mem.setPromising(next)
	}

	m.mem.FollowingTrail = true
	a := m.directionTo(m.mem.Promising, false)
	if a == world.ActionStay {
		a = m.explore()
	}
	return a, trailFollowing
}

// startTrail begins following the most intense visible pheromone.
func (m *mind) startTrail() (world.Action, trailOutcome) {
	m.mem.setPromising(m.mostIntense())
	return m.followTrail()
}

// blocked reports whether c holds a foodpile, the colony or a loaded ant.
func (m *mind) blocked(c world.Coord) bool {
	return m.p.Foodpiles.At(m.p.Pos, c) != 0 ||
		c == m.p.Colony ||
		m.p.Others.At(m.p.Pos, c) != 0
}

// avoidObstacles turns a move that would bump into a visible obstacle to a
// random perpendicular direction, keeping the pheromone flag.
func (m *mind) avoidObstacles(a world.Action) world.Action {
	if !a.IsMove() || !m.blocked(m.p.Pos.Add(a.Offset())) {
		return a
	}
	lay := a.LaysPheromone()
	var alt world.Action
	switch a.WithPheromone(false) {
	case world.ActionDown, world.ActionUp:
		alt = world.ActionLeft
		if m.rng.Intn(2) == 1 {
			alt = world.ActionRight
		}
	default:
		alt = world.ActionDown
		if m.rng.Intn(2) == 1 {
			alt = world.ActionUp
		}
	}
	return alt.WithPheromone(lay)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
