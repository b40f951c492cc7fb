package energy

import "math"

const (
	climbSlopeDeg   = 5.0
	descentSlopeDeg = -5.0

	climbSpeedCapKmh   = 50.0
	descentSpeedCapKmh = 80.0
	flatSpeedCapKmh    = 70.0
)

// OptimalSpeed returns the cruising speed used by OptimizeEnergy: the
// desired speed capped at 50 km/h on climbs steeper than 5°, 80 km/h on
// descents steeper than -5° and 70 km/h otherwise.
func OptimalSpeed(desiredSpeedKmh, slopeDeg float64) float64 {
	switch {
	case slopeDeg > climbSlopeDeg:
		return math.Min(climbSpeedCapKmh, desiredSpeedKmh)
	case slopeDeg < descentSlopeDeg:
		return math.Min(descentSpeedCapKmh, desiredSpeedKmh)
	default:
		return math.Min(flatSpeedCapKmh, desiredSpeedKmh)
	}
}
