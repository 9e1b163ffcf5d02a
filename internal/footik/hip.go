package footik

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physanim/pkg/math"
)

// HipTarget is the pelvis drop for a pair of foot offsets: the more sunk
// foot wins, and the pelvis never rises above neutral.
func HipTarget(left, right float32) float32 {
	target := math32.Min(math32.Min(left, right), 0)
	if target >= 0 {
		return 0
	}
	return target
}

// UpdateHip eases the pelvis toward HipTarget and the capsule half-height
// toward base minus half the pelvis drop. Both use HipInterpSpeed so the
// silhouette and the offset move together.
func UpdateHip(prev HipState, left, right, baseHalfHeight, currentHalfHeight float32, p Params, dt float32) HipState {
	offset := math.FInterpTo(prev.Offset, HipTarget(left, right), dt, p.HipInterpSpeed)
	capsuleTarget := baseHalfHeight - math32.Abs(offset)/2

	return HipState{
		Offset:            offset,
		CapsuleHalfHeight: math.FInterpTo(currentHalfHeight, capsuleTarget, dt, p.HipInterpSpeed),
	}
}

// UpdateFootEffector eases a foot's effector toward its offset relative to
// the already-corrected hip.
func UpdateFootEffector(current, footOffset, hipOffset float32, p Params, dt float32) float32 {
	return math.FInterpTo(current, footOffset-hipOffset, dt, p.FootInterpSpeed)
}
