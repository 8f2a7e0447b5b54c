package world

// Egocentric view window geometry. Windows are flattened row-major and the
// observing agent sits at CenterIndex.
const (
	ViewSize    = 5
	ViewRadius  = ViewSize / 2
	WindowCells = ViewSize * ViewSize
	CenterIndex = WindowCells / 2
)

// IndexToGlobal converts a window index into an absolute grid coordinate.
// index must lie in [0, WindowCells); other values give meaningless results.
func IndexToGlobal(agent Coord, index int) Coord {
	row := index / ViewSize
	col := index - ViewSize*row
	return Coord{X: agent.X + col - ViewRadius, Y: agent.Y + row - ViewRadius}
}

// GlobalToIndex converts an absolute coordinate into the agent's window index.
// global must lie inside the window (see InWindow).
func GlobalToIndex(agent, global Coord) int {
	d := global.Sub(agent)
	return CenterIndex + d.X + ViewSize*d.Y
}

// InWindow reports whether global is visible from agent.
func InWindow(agent, global Coord) bool {
	d := global.Sub(agent)
	return abs(d.X) <= ViewRadius && abs(d.Y) <= ViewRadius
}

// Window is a flattened egocentric 5x5 view of one field.
type Window [WindowCells]int

// Any reports whether any cell is non-zero.
func (w *Window) Any() bool {
	for _, v := range w {
		if v != 0 {
			return true
		}
	}
	return false
}

// At returns the value seen at an absolute coordinate, or 0 when the
// coordinate falls outside the window.
func (w *Window) At(agent, global Coord) int {
	if !InWindow(agent, global) {
		return 0
	}
	return w[GlobalToIndex(agent, global)]
}
