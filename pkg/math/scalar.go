package math

import "github.com/chewxy/math32"

// SmallNumber is the squared-distance threshold below which interpolation
// snaps to its target.
const SmallNumber = 1e-8

// KindaSmallNumber is the per-axis tolerance for near-zero rotator deltas.
const KindaSmallNumber = 1e-4

// Deg converts radians to degrees.
func Deg(rad float32) float32 {
	return rad * (180 / math32.Pi)
}

// Rad converts degrees to radians.
func Rad(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsNearlyZero reports whether |v| <= tolerance.
func IsNearlyZero(v, tolerance float32) bool {
	return math32.Abs(v) <= tolerance
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
