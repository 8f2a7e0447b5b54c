// Team spawning: builds the ants that play one episode.
package agents

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrUnknownTeam is returned for a team name TeamKinds does not know.
var ErrUnknownTeam = errors.New("unknown team")

// Team names, in the order comparisons report them.
const (
	TeamRandom       = "random"
	TeamDeliberative = "deliberative"
	TeamReactive     = "reactive"
	TeamHybrid       = "hybrid"
	TeamRole         = "role"
)

// AllTeams lists every known team.
var AllTeams = []string{TeamRandom, TeamDeliberative, TeamReactive, TeamHybrid, TeamRole}

// TeamKinds returns the policy of each of n ants in the named team. A hybrid
// team is half reactive, half deliberative.
func TeamKinds(name string, n int) ([]PolicyKind, error) {
	kinds := make([]PolicyKind, n)
	switch strings.ToLower(name) {
	case TeamRandom:
		fill(kinds, PolicyRandom)
	case TeamDeliberative:
		fill(kinds, PolicyDeliberative)
	case TeamReactive:
		fill(kinds, PolicyReactive)
	case TeamRole:
		fill(kinds, PolicyRole)
	case TeamHybrid:
		fill(kinds[:n/2], PolicyReactive)
		fill(kinds[n/2:], PolicyDeliberative)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	return kinds, nil
}

func fill(kinds []PolicyKind, k PolicyKind) {
	for i := range kinds {
		kinds[i] = k
	}
}

// Spawner creates ants with reproducible randomness.
type Spawner struct {
	rng   *rand.Rand
	cfg   Config
	space int
}

// NewSpawner creates a spawner. space is the world's action space size.
func NewSpawner(seed int64, cfg Config, space int) *Spawner {
	return &Spawner{
		rng:   rand.New(rand.NewSource(seed + 300)),
		cfg:   cfg,
		space: space,
	}
}

// SpawnTeam creates one ant per kind, ids in order. Each ant gets its own RNG
// stream.
func (s *Spawner) SpawnTeam(kinds []PolicyKind) []*Agent {
	team := make([]*Agent, len(kinds))
	for i, k := range kinds {
		team[i] = &Agent{
			ID:    AgentID(i),
			Kind:  k,
			cfg:   s.cfg,
			space: s.space,
			rng:   rand.New(rand.NewSource(s.rng.Int63())),
		}
		team[i].Reset()
	}
	return team
}

// Spawn builds the named team of n ants.
func (s *Spawner) Spawn(team string, n int) ([]*Agent, error) {
	kinds, err := TeamKinds(team, n)
	if err != nil {
		return nil, err
	}
	return s.SpawnTeam(kinds), nil
}
