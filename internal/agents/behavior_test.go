package agents

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/antcolony/internal/world"
)

var (
	here    = world.Coord{X: 5, Y: 5}
	farAway = world.Coord{X: 40, Y: 40}
)

func put(w *world.Window, at world.Coord, v int) {
	w[world.GlobalToIndex(here, at)] = v
}

func decide(kind PolicyKind, p Percept, mem Memory) (world.Action, Memory) {
	return Decide(kind, p, mem, DefaultConfig(), world.NumActions, rand.New(rand.NewSource(1)))
}

func TestReactiveDeliversFood(t *testing.T) {
	p := Percept{Pos: here, Colony: world.Coord{X: 5, Y: 6}, Carried: 2}
	a, _ := decide(PolicyReactive, p, Memory{})
	assert.Equal(t, world.ActionDropFood, a)

	p.Colony = world.Coord{X: 9, Y: 5}
	a, mem := decide(PolicyReactive, p, Memory{FollowingTrail: true, HasPromising: true})
	assert.Equal(t, world.ActionRightPheromone, a)
	assert.False(t, mem.FollowingTrail)
}

func TestReactiveFetchesNearestFoodpile(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	put(&p.Foodpiles, world.Coord{X: 7, Y: 7}, 4)
	put(&p.Foodpiles, world.Coord{X: 5, Y: 3}, 6)
	a, _ := decide(PolicyReactive, p, Memory{})
	assert.Equal(t, world.ActionUp, a)

	p = Percept{Pos: here, Colony: farAway}
	put(&p.Foodpiles, world.Coord{X: 5, Y: 6}, 4)
	a, _ = decide(PolicyReactive, p, Memory{})
	assert.Equal(t, world.ActionCollectFood, a)
}

func TestExploreKeepsHeadingThenTurns(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	rng := rand.New(rand.NewSource(3))
	mem := Memory{}
	var actions []world.Action
	for i := 0; i < 6; i++ {
		var a world.Action
		a, mem = Decide(PolicyReactive, p, mem, DefaultConfig(), world.NumActions, rng)
		actions = append(actions, a)
	}
	for _, a := range actions[:5] {
		assert.Equal(t, actions[0], a)
	}
	first, turned := actions[0].Offset(), actions[5].Offset()
	assert.True(t, actions[5].IsMove())
	assert.False(t, actions[5].LaysPheromone())
	assert.Zero(t, first.X*turned.X+first.Y*turned.Y, "turn must be perpendicular")
}

func TestExploreLaysPheromoneWhenCarrying(t *testing.T) {
	m := &mind{p: Percept{Pos: here, Carried: 2}, cfg: DefaultConfig(), rng: rand.New(rand.NewSource(1))}
	a := m.explore()
	assert.True(t, a.LaysPheromone())
	assert.LessOrEqual(t, m.mem.ExploreAction, world.ActionRight)
	assert.Equal(t, 1, m.mem.ExploreSteps)
}

func TestReactiveStartsTrail(t *testing.T) {
	p := Percept{Pos: here, Colony: world.Coord{X: 0, Y: 5}}
	put(&p.Pheromones, world.Coord{X: 6, Y: 5}, 50)
	put(&p.Pheromones, world.Coord{X: 7, Y: 5}, 30)

	a, mem := decide(PolicyReactive, p, Memory{})
	assert.True(t, mem.FollowingTrail)
	assert.Equal(t, world.Coord{X: 7, Y: 5}, mem.Promising)
	assert.Equal(t, world.ActionRight, a)
}

func TestTrailFadesWithoutScent(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	mem := Memory{FollowingTrail: true, HasPromising: true, Promising: world.Coord{X: 6, Y: 5}}
	a, mem := decide(PolicyReactive, p, mem)
	assert.False(t, mem.FollowingTrail)
	assert.False(t, mem.HasPromising)
	assert.True(t, a.IsMove())
	assert.Equal(t, 1, mem.ExploreSteps)
}

func TestTrailExhaustedTurnsDesireToExplore(t *testing.T) {
	p := Percept{Pos: here, Colony: world.Coord{X: 0, Y: 5}, Storage: 60}
	put(&p.Pheromones, world.Coord{X: 7, Y: 5}, 5)
	mem := Memory{
		Desire:         DesireFindFoodpile,
		FollowingTrail: true,
		HasPromising:   true,
		Promising:      world.Coord{X: 6, Y: 5},
	}
	_, mem = decide(PolicyDeliberative, p, mem)
	assert.Equal(t, DesireExplore, mem.Desire)
	assert.False(t, mem.FollowingTrail)
}

func TestTrailMovesTowardDistantPromisingCell(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	mem := Memory{FollowingTrail: true, HasPromising: true, Promising: world.Coord{X: 5, Y: 2}}
	a, mem := decide(PolicyReactive, p, mem)
	assert.Equal(t, world.ActionUp, a)
	assert.Equal(t, world.Coord{X: 5, Y: 2}, mem.Promising)
}

func TestDeliberativeDesires(t *testing.T) {
	colony := world.Coord{X: 5, Y: 6}

	// Empty handed and away from home: go home first.
	a, mem := decide(PolicyDeliberative, Percept{Pos: here, Colony: world.Coord{X: 5, Y: 9}}, Memory{})
	assert.Equal(t, DesireGoToColony, mem.Desire)
	assert.Equal(t, world.ActionDown, a)

	// Home with food: drop it and pick a new desire next tick.
	a, mem = decide(PolicyDeliberative, Percept{Pos: here, Colony: colony, Carried: 2, Storage: 80}, Memory{})
	assert.Equal(t, world.ActionDropFood, a)
	assert.Equal(t, DesireNone, mem.Desire)

	// Home, storage low: forage.
	a, mem = decide(PolicyDeliberative, Percept{Pos: here, Colony: colony, Storage: 60}, Memory{})
	assert.Equal(t, DesireFindFoodpile, mem.Desire)
	assert.True(t, a.IsMove())
	assert.False(t, a.LaysPheromone())

	// Home, storage healthy: explore.
	_, mem = decide(PolicyDeliberative, Percept{Pos: here, Colony: colony, Storage: 150}, Memory{})
	assert.Equal(t, DesireExplore, mem.Desire)
}

func TestDeliberativeExploreSwitchesToForaging(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	put(&p.Foodpiles, world.Coord{X: 5, Y: 7}, 4)
	a, mem := decide(PolicyDeliberative, p, Memory{Desire: DesireExplore})
	assert.Equal(t, DesireFindFoodpile, mem.Desire)
	assert.Equal(t, world.ActionDown, a)

	// A starving colony triggers foraging even with nothing in view.
	_, mem = decide(PolicyDeliberative, Percept{Pos: here, Colony: farAway, Storage: 30}, Memory{Desire: DesireExplore})
	assert.Equal(t, DesireFindFoodpile, mem.Desire)
}

func TestDeliberativeCollectFulfilsDesire(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	put(&p.Foodpiles, world.Coord{X: 4, Y: 5}, 4)
	a, mem := decide(PolicyDeliberative, p, Memory{Desire: DesireFindFoodpile})
	assert.Equal(t, world.ActionCollectFood, a)
	assert.Equal(t, DesireNone, mem.Desire)
}

func TestRoleHelpsLoadedAnt(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	put(&p.Others, world.Coord{X: 5, Y: 7}, 2)
	a, mem := decide(PolicyRole, p, Memory{})
	assert.Equal(t, RoleGoHelp, mem.Role)
	assert.Equal(t, DesireHelpAnt, mem.Desire)
	assert.Equal(t, world.ActionDown, a)
	assert.Equal(t, 1, mem.Steps)

	p = Percept{Pos: here, Colony: farAway}
	put(&p.Others, world.Coord{X: 4, Y: 5}, 2)
	a, mem = decide(PolicyRole, p, Memory{})
	assert.Equal(t, world.ActionCollectFoodFromAnt, a)
	assert.Equal(t, DesireNone, mem.Desire)
}

func TestRolePrefersWorkNearFood(t *testing.T) {
	p := Percept{Pos: here, Colony: farAway}
	put(&p.Others, world.Coord{X: 7, Y: 6}, 2)
	put(&p.Foodpiles, world.Coord{X: 3, Y: 5}, 4)
	_, mem := decide(PolicyRole, p, Memory{})
	assert.Equal(t, RoleGoWork, mem.Role)

	// Nothing in view: working beats helping.
	_, mem = decide(PolicyRole, Percept{Pos: here, Colony: farAway}, Memory{})
	assert.Equal(t, RoleGoWork, mem.Role)
}

func TestRoleCarryingAntWorksInsteadOfHelping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoleAssignPeriod = 3
	rng := rand.New(rand.NewSource(1))

	p := Percept{Pos: here, Colony: world.Coord{X: 4, Y: 5}, Carried: 2}
	put(&p.Others, world.Coord{X: 5, Y: 6}, 2)
	m := &mind{p: p, cfg: cfg, rng: rng}
	assert.Equal(t, NoLoadedAntPotential, m.potential(RoleGoHelp))

	a, mem := Decide(PolicyRole, p, Memory{}, cfg, world.NumActions, rng)
	assert.Equal(t, RoleGoWork, mem.Role)
	assert.Equal(t, world.ActionDropFood, a)

	// Hands empty after the drop; the role holds and the ant does not try
	// to take from its loaded neighbour.
	p.Carried = 0
	a, mem = Decide(PolicyRole, p, mem, cfg, world.NumActions, rng)
	assert.Equal(t, RoleGoWork, mem.Role)
	assert.NotEqual(t, world.ActionCollectFoodFromAnt, a)
}

func TestRoleReassignedOnPeriod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoleAssignPeriod = 3
	rng := rand.New(rand.NewSource(1))
	p := Percept{Pos: here, Colony: farAway}
	_, mem := Decide(PolicyRole, p, Memory{}, cfg, world.NumActions, rng)
	require.Equal(t, RoleGoWork, mem.Role)

	// A loaded ant shows up, but the role holds until the period elapses.
	put(&p.Others, world.Coord{X: 5, Y: 7}, 2)
	_, mem = Decide(PolicyRole, p, mem, cfg, world.NumActions, rng)
	assert.Equal(t, RoleGoWork, mem.Role)
	_, mem = Decide(PolicyRole, p, mem, cfg, world.NumActions, rng)
	assert.Equal(t, RoleGoWork, mem.Role)
	_, mem = Decide(PolicyRole, p, mem, cfg, world.NumActions, rng)
	assert.Equal(t, RoleGoHelp, mem.Role)
}

func TestRandomStaysInActionSpace(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	seen := map[world.Action]bool{}
	for i := 0; i < 2000; i++ {
		a, _ := Decide(PolicyRandom, Percept{}, Memory{}, DefaultConfig(), 11, rng)
		require.Less(t, int(a), 11)
		seen[a] = true
	}
	assert.Len(t, seen, 11)
}

func TestAvoidObstacles(t *testing.T) {
	m := &mind{p: Percept{Pos: here, Colony: world.Coord{X: 5, Y: 4}}, cfg: DefaultConfig(), rng: rand.New(rand.NewSource(1))}
	put(&m.p.Foodpiles, world.Coord{X: 5, Y: 6}, 4)
	put(&m.p.Others, world.Coord{X: 4, Y: 5}, 2)

	a := m.avoidObstacles(world.ActionDown)
	assert.Contains(t, []world.Action{world.ActionLeft, world.ActionRight}, a)
	a = m.avoidObstacles(world.ActionUpPheromone)
	assert.Contains(t, []world.Action{world.ActionLeftPheromone, world.ActionRightPheromone}, a)
	a = m.avoidObstacles(world.ActionLeft)
	assert.Contains(t, []world.Action{world.ActionDown, world.ActionUp}, a)

	assert.Equal(t, world.ActionRight, m.avoidObstacles(world.ActionRight))
	assert.Equal(t, world.ActionCollectFood, m.avoidObstacles(world.ActionCollectFood))
}

func TestDirectionToBreaksTiesBothWays(t *testing.T) {
	m := &mind{p: Percept{Pos: here}, rng: rand.New(rand.NewSource(5))}
	seen := map[world.Action]bool{}
	for i := 0; i < 200; i++ {
		seen[m.directionTo(world.Coord{X: 7, Y: 7}, false)] = true
	}
	assert.Equal(t, map[world.Action]bool{world.ActionRight: true, world.ActionDown: true}, seen)
	assert.Equal(t, world.ActionStay, m.directionTo(here, true))
}
