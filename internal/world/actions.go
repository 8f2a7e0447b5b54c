package world

// Action is one of the discrete per-tick action codes.
type Action uint8

const (
	ActionDown Action = iota
	ActionLeft
	ActionUp
	ActionRight
	ActionStay
	ActionDownPheromone // Move and mark the vacated cell (requires food)
	ActionLeftPheromone
	ActionUpPheromone
	ActionRightPheromone
	ActionCollectFood        // Take from an adjacent foodpile (requires empty hands)
	ActionDropFood           // Deposit at an adjacent colony (requires food)
	ActionCollectFoodFromAnt // Share the load of an adjacent carrying ant
)

// NumActions is the size of the multi-agent action space. Single-agent worlds
// exclude ActionCollectFoodFromAnt.
const NumActions = 12

var actionNames = [NumActions]string{
	"DOWN",
	"LEFT",
	"UP",
	"RIGHT",
	"NOOP",
	"DOWN_PHERO",
	"LEFT_PHERO",
	"UP_PHERO",
	"RIGHT_PHERO",
	"COLLECT_FOOD",
	"DROP_FOOD",
	"COLLECT_FOOD_FROM_ANT",
}

// ActionName returns a human-readable name for an action code.
func ActionName(a Action) string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "UNKNOWN"
}

func (a Action) String() string {
	return ActionName(a)
}

// IsMove reports whether the action changes position.
func (a Action) IsMove() bool {
	return a <= ActionRight || (a >= ActionDownPheromone && a <= ActionRightPheromone)
}

// LaysPheromone reports whether the action is a pheromone-laying move.
func (a Action) LaysPheromone() bool {
	return a >= ActionDownPheromone && a <= ActionRightPheromone
}

// Offset returns the displacement of a move action. Non-move actions return
// the zero offset.
func (a Action) Offset() Coord {
	switch a {
	case ActionDown, ActionDownPheromone:
		return OffsetDown
	case ActionLeft, ActionLeftPheromone:
		return OffsetLeft
	case ActionUp, ActionUpPheromone:
		return OffsetUp
	case ActionRight, ActionRightPheromone:
		return OffsetRight
	default:
		return Coord{}
	}
}

// WithPheromone maps a plain move to its pheromone-laying variant and back
// when lay is false. Other actions are returned unchanged.
func (a Action) WithPheromone(lay bool) Action {
	switch {
	case lay && a <= ActionRight:
		return a + ActionDownPheromone
	case !lay && a.LaysPheromone():
		return a - ActionDownPheromone
	default:
		return a
	}
}
