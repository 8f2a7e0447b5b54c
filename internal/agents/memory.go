// Ant memory: the private state a policy carries from one tick to the next.
package agents

import "github.com/talgya/antcolony/internal/world"

// Memory is an ant's private decision state.
type Memory struct {
	Desire Desire `json:"desire"`
	Role   Role   `json:"role"`

	Steps int `json:"steps"` // Ticks decided, drives role reassignment

	// Exploration keeps a plain direction for a few ticks.
	ExploreAction world.Action `json:"explore_action"`
	ExploreSteps  int          `json:"explore_steps"`

	// Trail following.
	FollowingTrail bool        `json:"following_trail"`
	HasPromising   bool        `json:"has_promising"`
	Promising      world.Coord `json:"promising"`
}

func (m *Memory) dropTrail() {
	m.FollowingTrail = false
	m.HasPromising = false
	m.Promising = world.Coord{}
}

func (m *Memory) setPromising(c world.Coord) {
	m.HasPromising = true
	m.Promising = c
}
