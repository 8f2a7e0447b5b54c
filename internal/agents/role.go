package agents

import "github.com/talgya/antcolony/internal/world"

// potential scores how well a role fits what the ant currently sees.
func (m *mind) potential(r Role) int {
	switch r {
	case RoleGoHelp:
		if m.p.HasFood() {
			return NoLoadedAntPotential
		}
		if ant, ok := m.closestLoadedAnt(); ok {
			return -world.Manhattan(m.p.Pos, ant)
		}
		return NoLoadedAntPotential
	case RoleGoWork:
		if m.p.FoodpileVisible() {
			return 0
		}
		return NoFoodpilePotential
	}
	return NoLoadedAntPotential
}

// assignRole takes the role with the highest potential. Helping wins ties.
func (m *mind) assignRole() {
	if m.potential(RoleGoHelp) >= m.potential(RoleGoWork) {
		m.mem.Role = RoleGoHelp
	} else {
		m.mem.Role = RoleGoWork
	}
}

// helpAnt walks to the nearest loaded ant and asks to share its load. With
// nobody to help the ant forages instead.
func (m *mind) helpAnt() world.Action {
	ant, ok := m.closestLoadedAnt()
	if !ok {
		m.mem.Desire = DesireFindFoodpile
		return world.ActionStay
	}
	if m.reached(ant) {
		m.mem.Desire = DesireNone
		return world.ActionCollectFoodFromAnt
	}
	return m.directionTo(ant, false)
}

// role is the deliberative policy with periodic role assignment. Helpers
// without food pursue loaded ants.
func (m *mind) role() world.Action {
	if m.mem.Role == RoleNone || m.mem.Steps%m.cfg.RoleAssignPeriod == 0 {
		m.assignRole()
	}
	m.mem.Steps++

	if m.mem.Role == RoleGoHelp && !m.p.HasFood() {
		m.mem.Desire = DesireHelpAnt
	}
	if m.mem.Desire == DesireNone {
		m.chooseDesire()
	}

	a := world.ActionStay
	switch m.mem.Desire {
	case DesireGoToColony:
		a = m.goToColony()
	case DesireExplore:
		a = m.exploreOrForage()
	case DesireHelpAnt:
		a = m.helpAnt()
	}
	if m.mem.Desire == DesireFindFoodpile {
		a = m.findFoodpile()
	}
	return m.avoidObstacles(a)
}
