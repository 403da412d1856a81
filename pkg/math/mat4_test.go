package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want {11 22 33}", got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	if got := m.TransformDirection(Vec3{0, 1, 0}); got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection: got %v", got)
	}
}

func TestLookAtCentersTarget(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(Vec3{})
	if !near(got, Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("target in view space = %v, want (0,0,-5)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(float32(math.Pi/4), 1, 1, 10)
	nearPt := proj.TransformVec3(Vec3{0, 0, -1})
	farPt := proj.TransformVec3(Vec3{0, 0, -10})
	if math.Abs(float64(nearPt.Z+1)) > 1e-4 {
		t.Errorf("near plane NDC z = %v, want -1", nearPt.Z)
	}
	if math.Abs(float64(farPt.Z-1)) > 1e-4 {
		t.Errorf("far plane NDC z = %v, want 1", farPt.Z)
	}
}
