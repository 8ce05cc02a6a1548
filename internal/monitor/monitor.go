// Package monitor maps global-desktop selection rectangles onto the
// physical display that contains them.
package monitor

import "errors"

// ErrNoMonitors is returned when resolution is attempted against an empty
// monitor list. Callers are expected to have checked for screenshotable
// displays first, so hitting this is a precondition violation.
var ErrNoMonitors = errors.New("no screenshotable monitors available")

// Monitor describes one screenshotable display in global desktop
// coordinates.
type Monitor struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RegionSelection is a user-drawn capture rectangle. X and Y are the
// top-left corner in global desktop coordinates (monitor-local after
// translation by the resolver's origin). DevicePixelRatio scales logical
// units to physical pixels when cropping.
type RegionSelection struct {
	X                int     `json:"x"`
	Y                int     `json:"y"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	DevicePixelRatio float64 `json:"devicePixelRatio"`
}

// Resolution is the outcome of resolving a selection to its owning monitor.
// OriginX/OriginY repeat the monitor's position so callers can translate
// global coordinates to monitor-local ones by subtraction.
type Resolution struct {
	Monitor Monitor
	OriginX int
	OriginY int
}

// Resolve finds the monitor whose bounds contain the selection's top-left
// corner. Monitors are checked in their given order and the first match
// wins; monitors are assumed non-overlapping, so source order is the
// tie-break.
//
// When no monitor contains the point — a selection can legitimately start
// on a monitor boundary — the first monitor is returned as a best-effort
// fallback rather than an error. This mirrors the behaviour users already
// rely on; changing it would change which pixels end up in the crop.
func Resolve(sel RegionSelection, monitors []Monitor) (Resolution, error) {
	if len(monitors) == 0 {
		return Resolution{}, ErrNoMonitors
	}

	for _, m := range monitors {
		if sel.X >= m.X && sel.X < m.X+m.Width &&
			sel.Y >= m.Y && sel.Y < m.Y+m.Height {
			return Resolution{Monitor: m, OriginX: m.X, OriginY: m.Y}, nil
		}
	}

	first := monitors[0]
	return Resolution{Monitor: first, OriginX: first.X, OriginY: first.Y}, nil
}

// ToLocal translates a global-coordinate selection into the resolved
// monitor's local coordinate space. Width, height and pixel ratio carry
// over unchanged.
func (r Resolution) ToLocal(sel RegionSelection) RegionSelection {
	sel.X -= r.OriginX
	sel.Y -= r.OriginY
	return sel
}
