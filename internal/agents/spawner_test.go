package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/antcolony/internal/world"
)

func TestTeamKinds(t *testing.T) {
	kinds, err := TeamKinds(TeamHybrid, 4)
	require.NoError(t, err)
	assert.Equal(t, []PolicyKind{PolicyReactive, PolicyReactive, PolicyDeliberative, PolicyDeliberative}, kinds)

	kinds, err = TeamKinds("Role", 3)
	require.NoError(t, err)
	assert.Equal(t, []PolicyKind{PolicyRole, PolicyRole, PolicyRole}, kinds)

	for _, name := range AllTeams {
		_, err := TeamKinds(name, 4)
		assert.NoError(t, err, name)
	}

	_, err = TeamKinds("swarm", 4)
	assert.ErrorIs(t, err, ErrUnknownTeam)
}

func TestSpawnerIsReproducible(t *testing.T) {
	run := func() []world.Action {
		team, err := NewSpawner(7, DefaultConfig(), world.NumActions).Spawn(TeamRandom, 4)
		require.NoError(t, err)
		obs := make(world.Observation, world.ObsLen)
		var out []world.Action
		for i := 0; i < 10; i++ {
			for _, a := range team {
				out = append(out, a.Act(obs))
			}
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSpawnTeamIDs(t *testing.T) {
	team := NewSpawner(1, DefaultConfig(), 11).SpawnTeam([]PolicyKind{PolicyReactive, PolicyRole})
	require.Len(t, team, 2)
	assert.Equal(t, AgentID(0), team[0].ID)
	assert.Equal(t, AgentID(1), team[1].ID)
	assert.Equal(t, PolicyRole, team[1].Kind)
	assert.Equal(t, world.ActionStay, team[0].LastAction)
}

func TestAgentActThroughWorld(t *testing.T) {
	cfg := world.SmallTestConfig()
	w, err := world.New(cfg)
	require.NoError(t, err)
	obs, err := w.ResetWithLayout(world.Layout{
		Agents:    []world.Coord{{X: 2, Y: 2}},
		Foodpiles: []world.FoodpileSpec{{Pos: world.Coord{X: 2, Y: 3}, Capacity: 4}},
		Colonies:  []world.Coord{{X: 2, Y: 0}},
	})
	require.NoError(t, err)

	ant := NewSpawner(1, DefaultConfig(), w.ActionSpace()).SpawnTeam([]PolicyKind{PolicyReactive})[0]
	a := ant.Act(obs[0])
	assert.Equal(t, world.ActionCollectFood, a)
	assert.Equal(t, a, ant.LastAction)

	res, err := w.Step([]world.Action{a})
	require.NoError(t, err)
	// Carrying now; the colony is two cells up.
	a = ant.Act(res.Observations[0])
	assert.Equal(t, world.ActionUpPheromone, a)

	ant.Reset()
	assert.Equal(t, Memory{}, ant.Memory)
}

func TestPerceiveFullyObservable(t *testing.T) {
	cfg := world.DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Agents = 2
	cfg.FullObservable = true
	cfg.Seed = 3
	w, err := world.New(cfg)
	require.NoError(t, err)
	obs, err := w.Reset()
	require.NoError(t, err)

	agents := w.Agents()
	for i := range agents {
		p := Perceive(obs[i], AgentID(i))
		assert.Equal(t, agents[i].Pos, p.Pos)
		assert.Equal(t, w.Colonies()[0].Pos, p.Colony)
		assert.Zero(t, p.Others[world.CenterIndex])
		assert.False(t, p.HasFood())
	}
}

func TestPolicyConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	cfg := DefaultConfig()
	cfg.ExploreSteps = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg = DefaultConfig()
	cfg.StorageCritical = 200
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "deliberative", PolicyDeliberative.String())
	assert.Equal(t, "HELP_ANT", DesireHelpAnt.String())
	assert.Equal(t, "GO_WORK", RoleGoWork.String())
}
