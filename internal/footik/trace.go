package footik

import "github.com/Faultbox/physanim/pkg/math"

// FootProbe builds the downward segment for a foot. It starts at the foot's
// planar position at actor height and ends capsuleHalfHeight+traceDistance
// below the actor.
func FootProbe(frame Frame, socket, actor math.Vec3, capsuleHalfHeight, traceDistance float32) Probe {
	top := frame.Height(actor)
	return Probe{
		Start: frame.WithHeight(socket, top),
		End:   frame.WithHeight(socket, top-capsuleHalfHeight-traceDistance),
	}
}

// HitOffset converts a probe hit into a vertical foot offset.
// A hit exactly traceDistance above the probe end (the capsule bottom)
// yields adjustOffset; lower ground yields less.
func HitOffset(hit Hit, traceDistance, adjustOffset float32) float32 {
	return hit.Location.Distance(hit.TraceEnd) - traceDistance + adjustOffset
}

// TraceFoot folds one probe result into a foot's state.
//
// On a hit the offset takes the fresh value at once and the tilt eases
// toward the surface normal. On a miss the offset drops to zero on the same
// tick and the tilt is held.
func TraceFoot(prev FootState, hit Hit, ok bool, p Params, dt float32) FootState {
	next := prev
	next.Grounded = ok
	if !ok {
		next.Offset = 0
		return next
	}

	next.Offset = HitOffset(hit, p.TraceDistance, p.AdjustOffset)
	next.Tilt = math.RInterpTo(prev.Tilt, p.Frame.Tilt(hit.Normal), dt, p.FootInterpSpeed)
	return next
}
