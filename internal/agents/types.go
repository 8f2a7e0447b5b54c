// Package agents provides the ant decision layer: percepts decoded from
// observations, per-ant memory, and the random, reactive, deliberative and
// role-based policies.
package agents

import (
	"math/rand"

	"github.com/talgya/antcolony/internal/world"
)

// AgentID matches the ant's index in the world.
type AgentID int

// PolicyKind selects how an ant decides.
type PolicyKind uint8

const (
	PolicyRandom       PolicyKind = iota // Uniform over the action space
	PolicyReactive                       // Fixed priority cascade
	PolicyDeliberative                   // Persistent desires
	PolicyRole                           // Desires plus potential-based roles
)

var policyNames = [...]string{"random", "reactive", "deliberative", "role"}

func (k PolicyKind) String() string {
	if int(k) < len(policyNames) {
		return policyNames[k]
	}
	return "unknown"
}

// Desire is a deliberative ant's current goal.
type Desire uint8

const (
	DesireNone Desire = iota
	DesireGoToColony
	DesireExplore
	DesireFindFoodpile
	DesireHelpAnt // Role ants only
)

var desireNames = [...]string{"NONE", "GO_TO_COLONY", "EXPLORE", "FIND_FOODPILE", "HELP_ANT"}

func (d Desire) String() string {
	if int(d) < len(desireNames) {
		return desireNames[d]
	}
	return "UNKNOWN"
}

// Role is a role ant's current assignment.
type Role uint8

const (
	RoleNone Role = iota
	RoleGoHelp
	RoleGoWork
)

func (r Role) String() string {
	switch r {
	case RoleGoHelp:
		return "GO_HELP"
	case RoleGoWork:
		return "GO_WORK"
	default:
		return "NONE"
	}
}

// Agent is one ant's decision state. The world owns its position and load.
type Agent struct {
	ID     AgentID    `json:"id"`
	Kind   PolicyKind `json:"kind"`
	Memory Memory     `json:"memory"`

	// LastAction is the most recent decision, for logs and the status API.
	LastAction world.Action `json:"last_action"`

	cfg   Config
	space int
	rng   *rand.Rand
}

// Act decodes obs, decides, and keeps the updated memory.
func (a *Agent) Act(obs world.Observation) world.Action {
	p := Perceive(obs, a.ID)
	action, mem := Decide(a.Kind, p, a.Memory, a.cfg, a.space, a.rng)
	a.Memory = mem
	a.LastAction = action
	return action
}

// Reset clears memory between episodes.
func (a *Agent) Reset() {
	a.Memory = Memory{}
	a.LastAction = world.ActionStay
}
