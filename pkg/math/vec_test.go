package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", got)
	}
}

func TestVec3GetSet(t *testing.T) {
	var v Vec3
	v.Set(AxisX, 1)
	v.Set(AxisY, 2)
	v.Set(AxisZ, 3)
	if v != (Vec3{1, 2, 3}) {
		t.Fatalf("Set produced %v", v)
	}
	for axis, want := range []float32{1, 2, 3} {
		if got := v.Get(Axis(axis)); got != want {
			t.Errorf("Get(%d) = %v, want %v", axis, got, want)
		}
	}
	if got := Unit(AxisZ, -1); got != (Vec3{0, 0, -1}) {
		t.Errorf("Unit(AxisZ, -1) = %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{float32(math.NaN()), 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{0, float32(math.Inf(1)), 0}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0.3, 1},
		{-0.3, -1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Sign(tt.in); got != tt.want {
			t.Errorf("Sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
