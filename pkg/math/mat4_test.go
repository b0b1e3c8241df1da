package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := RotateY(0.7)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	v := m.MulVec4(Vec4{1, 0, 0, 1})

	// +X rotated 90 degrees about Y lands on -Z.
	if math32.Abs(v.X) > 1e-6 || math32.Abs(v.Z+1) > 1e-6 {
		t.Errorf("RotateY(pi/2) * (1,0,0): got (%f, %f, %f)", v.X, v.Y, v.Z)
	}
}

func TestLookAtOrigin(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	v := view.MulVec4(Vec4{0, 0, 0, 1})

	// The origin should be 5 units in front of the eye (negative view Z).
	if math32.Abs(v.X) > 1e-6 || math32.Abs(v.Y) > 1e-6 || math32.Abs(v.Z+5) > 1e-6 {
		t.Errorf("LookAt view of origin: got (%f, %f, %f), want (0, 0, -5)", v.X, v.Y, v.Z)
	}
}

func TestPerspectiveMapsNearFar(t *testing.T) {
	proj := Perspective(Radians(60), 1.0, 0.1, 100)

	near := proj.MulVec4(Vec4{0, 0, -0.1, 1})
	far := proj.MulVec4(Vec4{0, 0, -100, 1})

	if math32.Abs(near.Z/near.W+1) > 1e-4 {
		t.Errorf("near plane should map to NDC z=-1, got %f", near.Z/near.W)
	}
	if math32.Abs(far.Z/far.W-1) > 1e-4 {
		t.Errorf("far plane should map to NDC z=1, got %f", far.Z/far.W)
	}
}

func TestMulVec4Translation(t *testing.T) {
	m := Identity()
	m[12], m[13], m[14] = 1, 2, 3
	v := m.MulVec4(Vec4{0, 0, 0, 1})
	if v.X != 1 || v.Y != 2 || v.Z != 3 || v.W != 1 {
		t.Errorf("translation column ignored: got (%f, %f, %f, %f)", v.X, v.Y, v.Z, v.W)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if math32.Abs(v.Length()-1) > 1e-6 {
		t.Errorf("normalized length: got %f, want 1", v.Length())
	}
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Error("normalizing zero vector should return zero")
	}
}

func TestVec3Cross(t *testing.T) {
	c := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if c != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y: got (%f, %f, %f), want (0, 0, 1)", c.X, c.Y, c.Z)
	}
}
