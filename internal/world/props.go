package world

import (
	"errors"
	"fmt"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/physanim/pkg/math"
)

// ErrInvalidProp is returned for props that cannot be placed.
var ErrInvalidProp = errors.New("invalid prop")

// ActorID identifies whatever a probe hit. TerrainActor is the heightfield.
type ActorID uint32

// TerrainActor is reserved for the heightfield.
const TerrainActor ActorID = 0

// Prop is an axis-aligned box in the world: a crate, a step, a character's
// own capsule bounds.
type Prop struct {
	ID   ActorID
	Name string
	Box  cube.BBox
}

// NewProp builds a prop from two opposite corners.
func NewProp(id ActorID, name string, min, max math.Vec3) (Prop, error) {
	if id == TerrainActor {
		return Prop{}, fmt.Errorf("%w: %q uses the terrain id", ErrInvalidProp, name)
	}
	if !min.IsFinite() || !max.IsFinite() {
		return Prop{}, fmt.Errorf("%w: %q has non-finite bounds", ErrInvalidProp, name)
	}
	if min.X == max.X || min.Y == max.Y || min.Z == max.Z {
		return Prop{}, fmt.Errorf("%w: %q has no volume", ErrInvalidProp, name)
	}
	return Prop{
		ID:   id,
		Name: name,
		Box:  cube.Box(min.X, min.Y, min.Z, max.X, max.Y, max.Z),
	}, nil
}

// Raycast intersects the segment with the prop's box.
func (p Prop) Raycast(start, end math.Vec3) (Hit, bool) {
	res, ok := trace.BBoxIntercept(p.Box, toMgl(start), toMgl(end))
	if !ok {
		return Hit{}, false
	}

	loc := fromMgl(res.Position())
	return Hit{
		Location:   loc,
		Normal:     faceNormal(res.Face()),
		TraceStart: start,
		TraceEnd:   end,
		Distance:   start.Distance(loc),
		Actor:      p.ID,
	}, true
}

// faceNormal maps a box face to its outward normal. cube names faces for a
// Y-up world; only the axis matters here, so Up/Down are ±Y and
// South/North are ±Z.
func faceNormal(f cube.Face) math.Vec3 {
	switch f {
	case cube.FaceDown:
		return math.Vec3{Y: -1}
	case cube.FaceUp:
		return math.Vec3{Y: 1}
	case cube.FaceNorth:
		return math.Vec3{Z: -1}
	case cube.FaceSouth:
		return math.Vec3{Z: 1}
	case cube.FaceWest:
		return math.Vec3{X: -1}
	default:
		return math.Vec3{X: 1}
	}
}

func toMgl(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) math.Vec3 {
	return math.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
