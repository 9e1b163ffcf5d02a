package math

import "github.com/chewxy/math32"

// Rotator is an Euler rotation in degrees.
// Pitch rotates around the lateral axis, Yaw around up, Roll around forward.
type Rotator struct {
	Pitch, Yaw, Roll float32
}

// NormalizeAxis wraps an angle in degrees to (-180, 180].
func NormalizeAxis(angle float32) float32 {
	angle = math32.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle > 180 {
		angle -= 360
	}
	return angle
}

// Normalize returns r with every axis wrapped to (-180, 180].
func (r Rotator) Normalize() Rotator {
	return Rotator{
		Pitch: NormalizeAxis(r.Pitch),
		Yaw:   NormalizeAxis(r.Yaw),
		Roll:  NormalizeAxis(r.Roll),
	}
}

// Add returns r + other, axis by axis.
func (r Rotator) Add(other Rotator) Rotator {
	return Rotator{r.Pitch + other.Pitch, r.Yaw + other.Yaw, r.Roll + other.Roll}
}

// Sub returns r - other, axis by axis.
func (r Rotator) Sub(other Rotator) Rotator {
	return Rotator{r.Pitch - other.Pitch, r.Yaw - other.Yaw, r.Roll - other.Roll}
}

// Scale returns r * s.
func (r Rotator) Scale(s float32) Rotator {
	return Rotator{r.Pitch * s, r.Yaw * s, r.Roll * s}
}

// IsNearlyZero reports whether every axis is within tolerance of zero.
func (r Rotator) IsNearlyZero(tolerance float32) bool {
	return IsNearlyZero(NormalizeAxis(r.Pitch), tolerance) &&
		IsNearlyZero(NormalizeAxis(r.Yaw), tolerance) &&
		IsNearlyZero(NormalizeAxis(r.Roll), tolerance)
}

// Equals reports whether r and other describe the same orientation within
// tolerance, taking wrap-around into account.
func (r Rotator) Equals(other Rotator, tolerance float32) bool {
	return r.Sub(other).IsNearlyZero(tolerance)
}

// IsFinite reports whether no axis is NaN or infinite.
func (r Rotator) IsFinite() bool {
	return IsFinite(r.Pitch) && IsFinite(r.Yaw) && IsFinite(r.Roll)
}
