package footik

import "github.com/Faultbox/physanim/pkg/math"

// Foot identifies one of the two feet.
type Foot uint8

const (
	FootLeft Foot = iota
	FootRight
)

// String returns "left" or "right".
func (f Foot) String() string {
	if f == FootLeft {
		return "left"
	}
	return "right"
}

// FootState is the smoothed correction for one foot.
type FootState struct {
	Socket string
	// Offset is the vertical ground correction. Negative means the ground
	// under the foot is lower than the capsule bottom.
	Offset float32
	// Tilt is the smoothed surface rotation (pitch, roll).
	Tilt math.Rotator
	// Effector is the smoothed hip-relative target for the downstream IK.
	Effector float32
	// Grounded is true when the last probe hit something.
	Grounded bool
}

// HipState is the smoothed pelvis correction.
type HipState struct {
	// Offset is never positive: the pelvis only drops.
	Offset            float32
	CapsuleHalfHeight float32
}

// State is a snapshot of every correction the solver produces.
type State struct {
	Left  FootState
	Right FootState
	Hip   HipState
}

// Foot returns the state of the given foot.
func (s State) Foot(f Foot) FootState {
	if f == FootLeft {
		return s.Left
	}
	return s.Right
}

// Hit is the nearest ground contact along a probe.
type Hit struct {
	Location math.Vec3
	Normal   math.Vec3
	// TraceEnd is the bottom end of the probe that produced the hit.
	TraceEnd math.Vec3
}

// Probe is a downward segment cast under one foot.
type Probe struct {
	Start math.Vec3
	End   math.Vec3
}

// World answers nearest-hit segment queries. Implementations are expected to
// ignore the character's own collision.
type World interface {
	Raycast(start, end math.Vec3) (Hit, bool)
}

// Skeleton resolves socket names to world positions.
type Skeleton interface {
	SocketLocation(name string) (math.Vec3, bool)
}

// Capsule is the character's collision capsule.
type Capsule interface {
	HalfHeight() float32
	SetHalfHeight(h float32)
}

// Actor reports the character's reference point (capsule centre).
type Actor interface {
	Location() math.Vec3
}

// Host bundles the collaborators the solver reads from and writes to.
type Host struct {
	World    World
	Skeleton Skeleton
	Capsule  Capsule
	Actor    Actor
}
