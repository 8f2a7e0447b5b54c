// Simulation ties a world to the team of ants playing it and runs one tick at
// a time.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/antcolony/internal/agents"
	"github.com/talgya/antcolony/internal/world"
)

// MaxEvents bounds the recent-events buffer.
const MaxEvents = 200

// Simulation holds one episode's world and ants.
type Simulation struct {
	World  *world.World
	Team   string
	Agents []*agents.Agent
	Events []Event // Most recent last
	Stats  SimStats

	obs []world.Observation
}

// Event is a notable occurrence in the episode.
type Event struct {
	Tick        int    `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "collect", "deposit", "transfer", "depleted", "end"
}

// SimStats tracks per-episode totals.
type SimStats struct {
	TotalReward float64 `json:"total_reward"`
	Collections int     `json:"collections"`
	Deposits    int     `json:"deposits"`
	Transfers   int     `json:"transfers"`
	Depleted    int     `json:"depleted"`
}

// NewSimulation pairs a world with its ants. The team must hold one ant per
// world agent.
func NewSimulation(w *world.World, team string, ants []*agents.Agent) (*Simulation, error) {
	if len(ants) != w.Config().Agents {
		return nil, fmt.Errorf("team %s has %d ants, world wants %d", team, len(ants), w.Config().Agents)
	}
	return &Simulation{World: w, Team: team, Agents: ants}, nil
}

// Reset seeds and resets the world and clears every ant's memory.
func (s *Simulation) Reset(seed int64) error {
	s.World.Seed(seed)
	obs, err := s.World.Reset()
	if err != nil {
		return fmt.Errorf("reset %s: %w", s.Team, err)
	}
	s.obs = obs
	for _, a := range s.Agents {
		a.Reset()
	}
	s.Events = s.Events[:0]
	s.Stats = SimStats{}
	return nil
}

// Tick lets every ant act on its last observation and resolves the step.
func (s *Simulation) Tick() (world.StepResult, error) {
	if s.obs == nil {
		return world.StepResult{}, world.ErrNotReset
	}
	actions := make([]world.Action, len(s.Agents))
	for i, a := range s.Agents {
		actions[i] = a.Act(s.obs[i])
	}

	before := s.World.Agents()
	pilesBefore := s.World.Foodpiles()

	res, err := s.World.Step(actions)
	if err != nil {
		return res, fmt.Errorf("step %s: %w", s.Team, err)
	}
	s.obs = res.Observations

	tick := s.World.Tick()
	after := s.World.Agents()
	for i := range after {
		s.Stats.TotalReward += res.Rewards[i]
		gained := before[i].Carried == 0 && after[i].Carried != 0
		switch {
		case gained && actions[i] == world.ActionCollectFood:
			s.Stats.Collections++
			s.record(tick, "collect", fmt.Sprintf("ant %d collected food at %s", i, after[i].Pos))
		case gained && actions[i] == world.ActionCollectFoodFromAnt:
			s.Stats.Transfers++
			s.record(tick, "transfer", fmt.Sprintf("ant %d took a share of a load at %s", i, after[i].Pos))
		case before[i].Carried != 0 && after[i].Carried == 0:
			s.Stats.Deposits++
			s.record(tick, "deposit", fmt.Sprintf("ant %d delivered %d food", i, before[i].Carried))
		}
	}
	for i, f := range s.World.Foodpiles() {
		if f.Depleted && !pilesBefore[i].Depleted {
			s.Stats.Depleted++
			s.record(tick, "depleted", fmt.Sprintf("foodpile %d at %s is empty", i, f.Pos))
		}
	}
	if s.World.Done() {
		s.record(tick, "end", fmt.Sprintf("episode over, storage %d", res.Info.ColonyStorage))
	}

	slog.Debug("tick",
		"team", s.Team,
		"tick", tick,
		"storage", res.Info.ColonyStorage,
		"actions", actionNames(actions),
	)
	return res, nil
}

// Done reports whether the episode has terminated.
func (s *Simulation) Done() bool {
	return s.World.Done()
}

func (s *Simulation) record(tick int, category, desc string) {
	if len(s.Events) >= MaxEvents {
		s.Events = append(s.Events[:0], s.Events[1:]...)
	}
	s.Events = append(s.Events, Event{Tick: tick, Description: desc, Category: category})
}

func actionNames(actions []world.Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return names
}
