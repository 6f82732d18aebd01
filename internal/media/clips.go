package media

import "math"

// Fragment timing
const (
	FragmentDuration = 60 // seconds per clip
	FragmentCount    = 4
	EarlyRatio       = 0.33
	MiddleRatio      = 0.66
)

// ClipPoints returns the four clip start offsets in seconds:
// start, one third, two thirds and the last minute.
// For sources shorter than a minute the last point is 0, so the list is not
// ordered; callers get it unchanged.
func ClipPoints(duration float64) []float64 {
	return []float64{
		0,
		duration * EarlyRatio,
		duration * MiddleRatio,
		math.Max(0, duration-FragmentDuration),
	}
}

// IsMonotonic reports whether points never decrease
func IsMonotonic(points []float64) bool {
	for i := 1; i < len(points); i++ {
		if points[i] < points[i-1] {
			return false
		}
	}
	return true
}

// StartSeconds truncates a clip point to the whole second passed to ffmpeg
func StartSeconds(point float64) int {
	return int(point)
}
