// Package geometry holds the pure drag/resize math of the timeline:
// snapping continuous positions to the grid and clamping placement to the
// day bounds. Everything here is unit-free; the caller supplies the
// pixel-to-time conversion.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Snap rounds value to the nearest multiple of grid. A non-positive grid
// disables snapping.
func Snap(value, grid float64) float64 {
	if grid <= 0 {
		return value
	}
	return math.Round(value/grid) * grid
}

// ClampPosition bounds a block's top offset to [0, totalLength-blockLength]
// so the block stays fully inside the timeline.
func ClampPosition(top, blockLength, totalLength float64) float64 {
	max := totalLength - blockLength
	if max < 0 {
		max = 0
	}
	if top < 0 {
		return 0
	}
	if top > max {
		return max
	}
	return top
}

// ClampLength bounds a resize to [minLength, totalLength-top]. When the
// remaining space is smaller than minLength the remaining space wins, so
// the block never spills past the timeline.
func ClampLength(length, top, totalLength, minLength float64) float64 {
	max := totalLength - top
	if length < minLength {
		length = minLength
	}
	if length > max {
		length = max
	}
	if length < 0 {
		length = 0
	}
	return length
}

// TimeToMinutes parses an "HH:MM" clock string into minutes from midnight.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// MinutesToTime renders minutes from midnight as "HH:MM".
func MinutesToTime(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", (mins/60)%24, mins%60)
}
