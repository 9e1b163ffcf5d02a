package footik

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physanim/pkg/math"
)

// Frame names the world axis that points up.
// All axis-dependent geometry of the solver goes through it.
type Frame uint8

const (
	// FrameZUp is X forward, Y right, Z up.
	FrameZUp Frame = iota
	// FrameYUp is X right, Y up, Z forward/lateral.
	FrameYUp
)

// String returns the frame name.
func (f Frame) String() string {
	switch f {
	case FrameZUp:
		return "z-up"
	case FrameYUp:
		return "y-up"
	default:
		return "unknown"
	}
}

func (f Frame) valid() bool {
	return f == FrameZUp || f == FrameYUp
}

// Height returns the vertical component of v.
func (f Frame) Height(v math.Vec3) float32 {
	if f == FrameYUp {
		return v.Y
	}
	return v.Z
}

// WithHeight returns v with its vertical component replaced by h.
func (f Frame) WithHeight(v math.Vec3, h float32) math.Vec3 {
	if f == FrameYUp {
		v.Y = h
	} else {
		v.Z = h
	}
	return v
}

// Tilt converts a ground normal into the pitch/roll a foot needs to lie flat
// on that surface. Yaw is always zero.
//
// Z-up: pitch = -atan2(n.x, n.z), roll = atan2(n.y, n.z).
// Y-up: the same rule with Y as up and Z as the lateral axis.
func (f Frame) Tilt(normal math.Vec3) math.Rotator {
	up, forward, lateral := normal.Z, normal.X, normal.Y
	if f == FrameYUp {
		up, lateral = normal.Y, normal.Z
	}
	return math.Rotator{
		Pitch: -math.Deg(math32.Atan2(forward, up)),
		Roll:  math.Deg(math32.Atan2(lateral, up)),
	}
}
