package math

import "testing"

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{360, 0},
		{725, 5},
		{-725, -5},
	}

	for _, tt := range tests {
		if got := NormalizeAxis(tt.in); got != tt.want {
			t.Errorf("NormalizeAxis(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotatorEquals(t *testing.T) {
	a := Rotator{Pitch: 179.99995, Roll: 10}
	b := Rotator{Pitch: -179.99995, Roll: 10}
	if !a.Equals(b, 1e-3) {
		t.Errorf("expected %v and %v to be equal across the wrap", a, b)
	}
	if a.Equals(Rotator{Pitch: 170, Roll: 10}, 1e-3) {
		t.Error("expected rotators 10 degrees apart to differ")
	}
}

func TestRotatorSubAdd(t *testing.T) {
	a := Rotator{Pitch: 10, Yaw: 20, Roll: 30}
	b := Rotator{Pitch: 1, Yaw: 2, Roll: 3}
	if got := a.Sub(b).Add(b); got != a {
		t.Errorf("a - b + b = %v, want %v", got, a)
	}
}
