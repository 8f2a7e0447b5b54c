// Package engine runs episodes: it steps a Simulation until termination,
// paces ticks, publishes snapshots and summarises each episode.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/antcolony/internal/agents"
	"github.com/talgya/antcolony/internal/world"
)

// ErrStopped is returned when Stop interrupts a run.
var ErrStopped = errors.New("engine stopped")

// Engine drives simulations forward.
type Engine struct {
	RunID    uuid.UUID
	Interval time.Duration // Pause between ticks, 0 = as fast as possible

	// Callbacks, populated during setup.
	OnTick    func(sim *Simulation, res world.StepResult)
	OnEpisode func(sum EpisodeSummary)

	stopped atomic.Bool
	status  atomic.Pointer[Status]
}

// Status is the latest published view of the running episode.
type Status struct {
	RunID    string         `json:"run_id"`
	Team     string         `json:"team"`
	Episode  int            `json:"episode"`
	Running  bool           `json:"running"`
	Snapshot world.Snapshot `json:"snapshot"`
	Stats    SimStats       `json:"stats"`
	Events   []Event        `json:"events"`
}

// NewEngine creates an engine with a fresh run id.
func NewEngine() *Engine {
	return &Engine{RunID: uuid.New()}
}

// Stop makes the current and any later RunEpisode return ErrStopped.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Status returns the last published status, or nil before the first tick.
func (e *Engine) Status() *Status {
	return e.status.Load()
}

// RunEpisode resets sim with seed and steps it until it terminates.
func (e *Engine) RunEpisode(ctx context.Context, sim *Simulation, episode int, seed int64) (EpisodeSummary, error) {
	start := time.Now()
	if err := sim.Reset(seed); err != nil {
		return EpisodeSummary{}, err
	}
	sum := EpisodeSummary{
		ID:      uuid.New(),
		RunID:   e.RunID,
		Episode: episode,
		Team:    sim.Team,
		Seed:    seed,
	}
	e.publish(sim, episode, true)

	for !sim.Done() {
		if e.stopped.Load() {
			return sum, ErrStopped
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res, err := sim.Tick()
		if err != nil {
			return sum, fmt.Errorf("episode %d: %w", episode, err)
		}
		sum.StorageCurve = append(sum.StorageCurve, res.Info.ColonyStorage)
		e.publish(sim, episode, !sim.Done())
		if e.OnTick != nil {
			e.OnTick(sim, res)
		}

		if e.Interval > 0 && !sim.Done() {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(e.Interval):
			}
		}
	}

	sum.Steps = sim.World.Tick()
	sum.TotalReward = sim.Stats.TotalReward
	sum.FinalStorage = sim.World.ColonyStorage()
	sum.FoodpilesDone = sim.World.FoodpilesDone()
	sum.Collections = sim.Stats.Collections
	sum.Deposits = sim.Stats.Deposits
	sum.Transfers = sim.Stats.Transfers
	sum.Events = append([]Event(nil), sim.Events...)
	sum.Duration = time.Since(start)
	sum.FinishedAt = time.Now().UTC()

	if e.OnEpisode != nil {
		e.OnEpisode(sum)
	}
	return sum, nil
}

func (e *Engine) publish(sim *Simulation, episode int, running bool) {
	e.status.Store(&Status{
		RunID:    e.RunID.String(),
		Team:     sim.Team,
		Episode:  episode,
		Running:  running,
		Snapshot: sim.World.Snapshot(),
		Stats:    sim.Stats,
		Events:   append([]Event(nil), sim.Events...),
	})
}

// Plan describes a team comparison.
type Plan struct {
	World          world.Config
	Policy         agents.Config
	Teams          []string
	Episodes       int
	SeedMultiplier int64
}

// Seed returns the map seed of an episode. Every team plays the same map in a
// given episode.
func (p Plan) Seed(episode int) int64 {
	mult := p.SeedMultiplier
	if mult == 0 {
		mult = 1
	}
	return int64(episode+1) * mult
}

// Run plays every team on every episode and returns the summaries in play
// order.
func (e *Engine) Run(ctx context.Context, plan Plan) ([]EpisodeSummary, error) {
	if err := plan.Policy.Validate(); err != nil {
		return nil, err
	}
	for _, team := range plan.Teams {
		if _, err := agents.TeamKinds(team, plan.World.Agents); err != nil {
			return nil, err
		}
	}

	slog.Info("run started",
		"run", e.RunID,
		"teams", plan.Teams,
		"episodes", plan.Episodes,
		"grid", fmt.Sprintf("%dx%d", plan.World.Width, plan.World.Height),
	)

	var out []EpisodeSummary
	for episode := 0; episode < plan.Episodes; episode++ {
		seed := plan.Seed(episode)
		for _, team := range plan.Teams {
			sim, err := newTeamSimulation(plan, team, seed)
			if err != nil {
				return out, err
			}
			sum, err := e.RunEpisode(ctx, sim, episode, seed)
			if err != nil {
				return out, err
			}
			slog.Debug("episode finished",
				"team", team,
				"episode", episode,
				"steps", sum.Steps,
				"storage", sum.FinalStorage,
				"reward", sum.TotalReward,
			)
			out = append(out, sum)
		}
		if (episode+1)%10 == 0 || episode+1 == plan.Episodes {
			slog.Info("episodes complete", "done", episode+1, "of", plan.Episodes)
		}
	}
	return out, nil
}

func newTeamSimulation(plan Plan, team string, seed int64) (*Simulation, error) {
	w, err := world.New(plan.World)
	if err != nil {
		return nil, err
	}
	ants, err := agents.NewSpawner(seed, plan.Policy, w.ActionSpace()).Spawn(team, plan.World.Agents)
	if err != nil {
		return nil, err
	}
	return NewSimulation(w, team, ants)
}
