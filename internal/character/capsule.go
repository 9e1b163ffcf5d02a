package character

import (
	"errors"
	"fmt"

	"github.com/Faultbox/physanim/pkg/math"
)

// ErrInvalidCapsule is returned for non-positive capsule dimensions.
var ErrInvalidCapsule = errors.New("invalid capsule")

// Capsule is the character's upright collision capsule. HalfHeight includes
// the hemispherical caps.
type Capsule struct {
	Radius     float32
	halfHeight float32
}

// NewCapsule checks the dimensions. The half-height cannot be smaller than
// the radius.
func NewCapsule(radius, halfHeight float32) (*Capsule, error) {
	if radius <= 0 || !math.IsFinite(radius) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidCapsule, radius)
	}
	if halfHeight < radius || !math.IsFinite(halfHeight) {
		return nil, fmt.Errorf("%w: half-height %v with radius %v", ErrInvalidCapsule, halfHeight, radius)
	}
	return &Capsule{Radius: radius, halfHeight: halfHeight}, nil
}

// HalfHeight returns the current half-height.
func (c *Capsule) HalfHeight() float32 {
	return c.halfHeight
}

// SetHalfHeight resizes the capsule, never below its radius.
func (c *Capsule) SetHalfHeight(h float32) {
	c.halfHeight = max(h, c.Radius)
}

// Box returns the capsule's bounds around center.
func (c *Capsule) Box(center math.Vec3) (lo, hi math.Vec3) {
	ext := math.Vec3{X: c.Radius, Y: c.Radius, Z: c.halfHeight}
	return center.Sub(ext), center.Add(ext)
}
