package capture

import "github.com/fakeyudi/rapidreporter/internal/monitor"

// MinDragSize is the smallest drag, in logical units, accepted as a
// deliberate selection. Anything smaller in either dimension is treated as
// pointer noise and discarded.
const MinDragSize = 5

// Gesture tracks one pointer drag on the selection overlay, in global
// desktop coordinates. The overlay surface works in its own local
// coordinates, but on multi-monitor layouts local and global differ, so
// the overlay feeds global positions in here.
//
// A gesture is single-shot: after a successful Finish, duplicate pointer-up
// events are ignored until Begin starts a new drag. A sub-threshold drag
// re-arms the gesture instead, so the user can immediately try again.
type Gesture struct {
	startX, startY int
	lastX, lastY   int
	ratio          float64
	active         bool
	submitted      bool
}

// NewGesture returns a tracker for an overlay with the given device pixel
// ratio. A ratio below 1 is clamped to 1.
func NewGesture(devicePixelRatio float64) *Gesture {
	if devicePixelRatio < 1 {
		devicePixelRatio = 1
	}
	return &Gesture{ratio: devicePixelRatio}
}

// Begin starts a new drag at the given global position.
func (g *Gesture) Begin(x, y int) {
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
	g.active = true
	g.submitted = false
}

// Move updates the drag's current global position. Ignored when no drag is
// active.
func (g *Gesture) Move(x, y int) {
	if !g.active {
		return
	}
	g.lastX, g.lastY = x, y
}

// Finish ends the drag and normalizes it into a selection rectangle.
// It reports ok=false and leaves the tracker re-armed when the drag is
// below MinDragSize in either dimension, and ok=false for duplicate
// pointer-up events after a selection was already submitted.
func (g *Gesture) Finish() (monitor.RegionSelection, bool) {
	if !g.active || g.submitted {
		return monitor.RegionSelection{}, false
	}

	left := min(g.startX, g.lastX)
	top := min(g.startY, g.lastY)
	width := abs(g.lastX - g.startX)
	height := abs(g.lastY - g.startY)

	if width < MinDragSize || height < MinDragSize {
		// Noise. Drop it and wait for another attempt.
		g.active = false
		return monitor.RegionSelection{}, false
	}

	g.active = false
	g.submitted = true
	return monitor.RegionSelection{
		X:                left,
		Y:                top,
		Width:            width,
		Height:           height,
		DevicePixelRatio: g.ratio,
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
