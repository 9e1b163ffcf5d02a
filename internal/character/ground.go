package character

import (
	"github.com/Faultbox/physanim/internal/footik"
	"github.com/Faultbox/physanim/internal/world"
	"github.com/Faultbox/physanim/pkg/math"
)

// ground answers foot probes against the world without the character's own
// capsule.
type ground struct {
	view world.View
}

func (g ground) Raycast(start, end math.Vec3) (footik.Hit, bool) {
	hit, ok := g.view.Raycast(start, end)
	if !ok {
		return footik.Hit{}, false
	}
	return footik.Hit{
		Location: hit.Location,
		Normal:   hit.Normal,
		TraceEnd: hit.TraceEnd,
	}, true
}
