package energy

import (
	"errors"
	"math"
)

var (
	// ErrImpossibleSlope reports a segment whose slope is at or beyond vertical.
	ErrImpossibleSlope = errors.New("impossible slope: consumption is infinite")
	// ErrLengthMismatch is returned when parallel input sequences differ in length.
	ErrLengthMismatch = errors.New("input sequences have different lengths")
)

// IsImpossible reports whether kwh is the infinite reading produced by an
// impossible slope.
func IsImpossible(kwh float64) bool {
	return math.IsInf(kwh, 1)
}

// CheckConsumption converts the infinite sentinel into ErrImpossibleSlope.
func CheckConsumption(kwh float64) error {
	if IsImpossible(kwh) {
		return ErrImpossibleSlope
	}
	return nil
}
