package agents

import "github.com/talgya/antcolony/internal/world"

// chooseDesire picks a fresh goal: go home first, then forage when the colony
// runs low, otherwise explore.
func (m *mind) chooseDesire() {
	switch {
	case m.p.HasFood() || !m.reached(m.p.Colony):
		m.mem.Desire = DesireGoToColony
	case m.p.Storage < m.cfg.StorageLow:
		m.mem.Desire = DesireFindFoodpile
	default:
		m.mem.Desire = DesireExplore
	}
}

// goToColony walks home and drops any load on arrival. Arrival fulfils the
// desire.
func (m *mind) goToColony() world.Action {
	if !m.reached(m.p.Colony) {
		return m.directionTo(m.p.Colony, m.p.HasFood())
	}
	m.mem.Desire = DesireNone
	if m.p.HasFood() {
		return world.ActionDropFood
	}
	return world.ActionStay
}

// exploreOrForage wanders until food is seen or the colony is starving, then
// switches to foraging.
func (m *mind) exploreOrForage() world.Action {
	critical := m.p.Storage > 0 && m.p.Storage < m.cfg.StorageCritical
	if m.p.FoodpileVisible() || critical {
		m.mem.Desire = DesireFindFoodpile
		return world.ActionStay
	}
	return m.explore()
}

// findFoodpile fetches visible food, otherwise follows pheromone trails,
// otherwise explores. A trail with no interesting scent left turns the desire
// into exploration.
func (m *mind) findFoodpile() world.Action {
	if m.p.FoodpileVisible() {
		m.mem.dropTrail()
		a, collecting := m.fetchFood()
		if collecting {
			m.mem.Desire = DesireNone
		}
		return a
	}

	var (
		a       world.Action
		outcome trailOutcome
	)
	switch {
	case m.mem.FollowingTrail:
		a, outcome = m.followTrail()
	case m.intenseVisible():
		a, outcome = m.startTrail()
	default:
		return m.explore()
	}
	if outcome == trailExhausted {
		m.mem.Desire = DesireExplore
	}
	return a
}

// deliberative keeps a desire across ticks and acts on it.
func (m *mind) deliberative() world.Action {
	if m.mem.Desire == DesireNone {
		m.chooseDesire()
	}

	a := world.ActionStay
	switch m.mem.Desire {
	case DesireGoToColony:
		a = m.goToColony()
	case DesireExplore:
		a = m.exploreOrForage()
	}
	if m.mem.Desire == DesireFindFoodpile {
		a = m.findFoodpile()
	}
	return m.avoidObstacles(a)
}
