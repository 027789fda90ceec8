package service

import (
	"time"

	"time-planner/internal/geometry"
)

// GestureTranslator converts raw drag/resize pixel deltas from the UI
// into snapped, clamped times on a concrete day. It carries no state
// beyond the conversion constants, so identical input always yields
// identical output.
type GestureTranslator struct {
	// PxPerMinute is the vertical scale of the timeline.
	PxPerMinute float64
	// SnapMinutes is the grid quantum positions snap to.
	SnapMinutes int
	// DayStart is midnight (or the wake bound) the pixel origin maps to.
	DayStart time.Time
	// DayMinutes is the timeline length in minutes.
	DayMinutes int
	// MinMinutes is the smallest block length a resize may produce.
	MinMinutes int
}

// snapPx returns the grid size in pixels.
func (g GestureTranslator) snapPx() float64 {
	return float64(g.SnapMinutes) * g.PxPerMinute
}

// Move translates a dragged block's top offset (pixels) and its current
// duration into a snapped [start, end) interval inside the day.
func (g GestureTranslator) Move(topPx float64, duration time.Duration) (time.Time, time.Time) {
	lengthPx := duration.Minutes() * g.PxPerMinute
	totalPx := float64(g.DayMinutes) * g.PxPerMinute

	top := geometry.Snap(topPx, g.snapPx())
	top = geometry.ClampPosition(top, lengthPx, totalPx)

	start := g.DayStart.Add(minutesToDuration(top / g.PxPerMinute))
	return start, start.Add(duration)
}

// Resize translates a resized block's new pixel length, given its top
// offset, into the snapped end time.
func (g GestureTranslator) Resize(topPx, lengthPx float64) time.Time {
	totalPx := float64(g.DayMinutes) * g.PxPerMinute
	minPx := float64(g.MinMinutes) * g.PxPerMinute

	length := geometry.Snap(lengthPx, g.snapPx())
	length = geometry.ClampLength(length, topPx, totalPx, minPx)

	startMin := topPx / g.PxPerMinute
	endMin := startMin + length/g.PxPerMinute
	return g.DayStart.Add(minutesToDuration(endMin))
}

func minutesToDuration(mins float64) time.Duration {
	return time.Duration(mins * float64(time.Minute))
}
