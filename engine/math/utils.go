package math

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

// Wrap folds i into [0, n). n must be positive.
func Wrap[T constraints.Integer](i, n T) T {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
