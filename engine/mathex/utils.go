package mathex

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// DegToRad converts degrees to radians.
func DegToRad[T constraints.Float](deg T) T {
	return deg * (3.14159265358979323846 / 180.0)
}

// RadToDeg converts radians to degrees.
func RadToDeg[T constraints.Float](rad T) T {
	return rad * (180.0 / 3.14159265358979323846)
}
