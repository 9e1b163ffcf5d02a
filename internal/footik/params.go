// Package footik keeps a standing biped's feet planted on uneven ground.
//
// Each tick the solver probes the ground under both feet, derives a vertical
// offset and a surface tilt per foot, drops the pelvis to follow the more
// sunk foot, shrinks the collision capsule to match, and produces a
// hip-relative effector target per foot for the animation IK that consumes it.
package footik

import (
	"errors"
	"fmt"

	"github.com/Faultbox/physanim/pkg/math"
)

// Errors returned by the solver.
var (
	ErrInvalidParams  = errors.New("invalid foot IK parameters")
	ErrInvalidDelta   = errors.New("invalid time delta")
	ErrNotInitialized = errors.New("foot IK solver not initialized")
	ErrMissingSocket  = errors.New("foot socket not found")
)

// Params holds the tunables of the solver.
type Params struct {
	// TraceDistance is how far below the capsule bottom a foot probe reaches.
	TraceDistance float32
	// AdjustOffset is added to every hit offset (sole thickness).
	AdjustOffset float32
	// FootInterpSpeed drives tilt and effector smoothing.
	FootInterpSpeed float32
	// HipInterpSpeed drives pelvis and capsule smoothing.
	HipInterpSpeed float32

	LeftFootSocket  string
	RightFootSocket string

	// Frame selects the world's up axis.
	Frame Frame
}

// DefaultParams returns the tuning used by the sample character.
func DefaultParams() Params {
	return Params{
		TraceDistance:   50,
		AdjustOffset:    2,
		FootInterpSpeed: 15,
		HipInterpSpeed:  10,
		LeftFootSocket:  "foot_l",
		RightFootSocket: "foot_r",
		Frame:           FrameZUp,
	}
}

// Validate rejects parameter sets the solver cannot run with.
func (p Params) Validate() error {
	values := []struct {
		name string
		v    float32
	}{
		{"trace distance", p.TraceDistance},
		{"adjust offset", p.AdjustOffset},
		{"foot interp speed", p.FootInterpSpeed},
		{"hip interp speed", p.HipInterpSpeed},
	}
	for _, f := range values {
		if !math.IsFinite(f.v) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidParams, f.name, f.v)
		}
	}

	if p.TraceDistance < 0 {
		return fmt.Errorf("%w: trace distance %v is negative", ErrInvalidParams, p.TraceDistance)
	}
	if p.FootInterpSpeed < 0 {
		return fmt.Errorf("%w: foot interp speed %v is negative", ErrInvalidParams, p.FootInterpSpeed)
	}
	if p.HipInterpSpeed < 0 {
		return fmt.Errorf("%w: hip interp speed %v is negative", ErrInvalidParams, p.HipInterpSpeed)
	}
	if p.LeftFootSocket == "" || p.RightFootSocket == "" {
		return fmt.Errorf("%w: foot socket names must be set", ErrInvalidParams)
	}
	if p.LeftFootSocket == p.RightFootSocket {
		return fmt.Errorf("%w: both feet use socket %q", ErrInvalidParams, p.LeftFootSocket)
	}
	if !p.Frame.valid() {
		return fmt.Errorf("%w: unknown frame %d", ErrInvalidParams, p.Frame)
	}
	return nil
}

// checkDelta rejects negative and non-finite time steps.
func checkDelta(dt float32) error {
	if !math.IsFinite(dt) || dt < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	return nil
}
