package math

// FInterpTo moves current toward target at speed over dt.
//
// The step covers dt*speed of the remaining distance (clamped to [0, 1]), so
// repeated calls converge exponentially and independently of frame rate.
// A zero dt leaves current untouched. A non-positive speed snaps to target.
func FInterpTo(current, target, dt, speed float32) float32 {
	if dt == 0 {
		return current
	}
	if speed <= 0 {
		return target
	}

	dist := target - current
	if dist*dist < SmallNumber {
		return target
	}

	return current + dist*Clamp(dt*speed, 0, 1)
}

// RInterpTo is FInterpTo for rotators. Each axis moves along the shortest
// arc toward target.
func RInterpTo(current, target Rotator, dt, speed float32) Rotator {
	if dt == 0 || current == target {
		return current
	}
	if speed <= 0 {
		return target
	}

	delta := target.Sub(current).Normalize()
	if delta.IsNearlyZero(KindaSmallNumber) {
		return target
	}

	return current.Add(delta.Scale(Clamp(dt*speed, 0, 1))).Normalize()
}
