package world

import (
	"slices"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/Faultbox/physanim/pkg/math"
)

// Hit describes the nearest contact along a segment.
type Hit struct {
	Location   math.Vec3
	Normal     math.Vec3
	TraceStart math.Vec3
	TraceEnd   math.Vec3
	// Distance is measured from TraceStart.
	Distance float32
	Actor    ActorID
}

// World is the queryable level: terrain plus props.
// It is not safe for concurrent mutation.
type World struct {
	terrain *Heightfield
	props   *orderedmap.OrderedMap[ActorID, Prop]
}

// New creates a world over the given terrain. terrain may be nil.
func New(terrain *Heightfield) *World {
	return &World{
		terrain: terrain,
		props:   orderedmap.NewOrderedMap[ActorID, Prop](),
	}
}

// Terrain returns the heightfield, or nil.
func (w *World) Terrain() *Heightfield {
	return w.terrain
}

// Upsert adds a prop or replaces the one with the same ID.
func (w *World) Upsert(p Prop) {
	w.props.Set(p.ID, p)
}

// Remove deletes a prop. It reports whether the prop existed.
func (w *World) Remove(id ActorID) bool {
	return w.props.Delete(id)
}

// Prop looks up a prop by ID.
func (w *World) Prop(id ActorID) (Prop, bool) {
	return w.props.Get(id)
}

// Props returns all props in insertion order.
func (w *World) Props() []Prop {
	out := make([]Prop, 0, w.props.Len())
	for el := w.props.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Raycast returns the hit nearest to start along the segment, skipping
// anything owned by an ignored actor.
func (w *World) Raycast(start, end math.Vec3, ignore ...ActorID) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	consider := func(h Hit, ok bool) {
		if ok && (!found || h.Distance < best.Distance) {
			best, found = h, true
		}
	}

	if w.terrain != nil && !slices.Contains(ignore, TerrainActor) {
		consider(w.terrain.Raycast(start, end))
	}
	for el := w.props.Front(); el != nil; el = el.Next() {
		if slices.Contains(ignore, el.Key) {
			continue
		}
		consider(el.Value.Raycast(start, end))
	}
	return best, found
}

// View is a read-only window on a world that never reports one actor.
type View struct {
	world *World
	self  ActorID
}

// Excluding returns a view that ignores self in every query.
func (w *World) Excluding(self ActorID) View {
	return View{world: w, self: self}
}

// Raycast is World.Raycast with the view's actor ignored.
func (v View) Raycast(start, end math.Vec3) (Hit, bool) {
	return v.world.Raycast(start, end, v.self)
}
