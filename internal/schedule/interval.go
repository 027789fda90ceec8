package schedule

import (
	"time"

	"time-planner/internal/model"
)

// Overlaps reports whether two blocks intersect. Intervals are half-open
// [start, end): blocks that merely touch do not overlap.
func Overlaps(a, b *model.TimeBlock) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}

// shiftTo moves b so it starts at start, keeping its duration exactly.
func shiftTo(b *model.TimeBlock, start time.Time) {
	d := b.Duration()
	b.StartTime = start
	b.EndTime = start.Add(d)
}
