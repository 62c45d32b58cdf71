package gamemath

import "math"

// IntegrateGravity applies gravity for one step and floors the result at the
// terminal fall speed. gravity and terminal are negative (+Y is up).
func IntegrateGravity(speedY, gravity, terminal, dt float64) float64 {
	speedY += gravity * dt
	if speedY < terminal {
		return terminal
	}
	return speedY
}

// AxisDirection sums two opposing inputs into -1, 0 or +1.
// Both pressed cancel out instead of the last one winning.
func AxisDirection(negative, positive bool) float64 {
	dir := 0.0
	if positive {
		dir++
	}
	if negative {
		dir--
	}
	return dir
}

// ClampDelta bounds a frame delta to [0, max]. NaN becomes 0.
func ClampDelta(dt, max float64) float64 {
	if !(dt > 0) {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// ClampFloat constrains a value to the range [min, max].
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Overlap reports whether the open intervals (aMin, aMax) and (bMin, bMax)
// intersect. Intervals that only touch do not overlap.
func Overlap(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax && aMax > bMin
}

// Penetration is the length of the intersection of two intervals, or 0.
func Penetration(aMin, aMax, bMin, bMax float64) float64 {
	return math.Max(0, math.Min(aMax, bMax)-math.Max(aMin, bMin))
}
