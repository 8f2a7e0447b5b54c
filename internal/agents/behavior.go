// Ant behavior: every tick an ant reads its percept and memory and picks one
// action. Policies share the movement capabilities in movement.go and differ
// only in how they prioritise them.
package agents

import (
	"math/rand"

	"github.com/talgya/antcolony/internal/world"
)

// Decide picks the action for one tick. mem is not modified; the updated
// memory is returned. space is the world's action space size.
func Decide(kind PolicyKind, p Percept, mem Memory, cfg Config, space int, rng *rand.Rand) (world.Action, Memory) {
	m := &mind{p: p, mem: mem, cfg: cfg, space: space, rng: rng}
	var a world.Action
	switch kind {
	case PolicyReactive:
		a = m.reactive()
	case PolicyDeliberative:
		a = m.deliberative()
	case PolicyRole:
		a = m.role()
	default:
		a = m.random()
	}
	return a, m.mem
}

// random picks uniformly over the action space.
func (m *mind) random() world.Action {
	return world.Action(m.rng.Intn(m.space))
}

// reactive runs a fixed priority cascade: deliver food, fetch visible food,
// follow a trail, pick up a strong scent, wander.
func (m *mind) reactive() world.Action {
	var a world.Action
	switch {
	case m.p.HasFood():
		m.mem.dropTrail()
		if m.reached(m.p.Colony) {
			a = world.ActionDropFood
		} else {
			a = m.directionTo(m.p.Colony, true)
		}

	case m.p.FoodpileVisible():
		m.mem.dropTrail()
		a, _ = m.fetchFood()

	case m.mem.FollowingTrail:
		a, _ = m.followTrail()

	case m.intenseVisible():
		a, _ = m.startTrail()

	default:
		a = m.explore()
	}
	return m.avoidObstacles(a)
}

// fetchFood heads for the nearest visible foodpile and collects once there.
// The second result is true when the ant is collecting.
func (m *mind) fetchFood() (world.Action, bool) {
	target, _ := m.closestFoodpile()
	if m.reached(target) {
		return world.ActionCollectFood, true
	}
	return m.directionTo(target, false), false
}
