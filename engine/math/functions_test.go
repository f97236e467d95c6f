package math

import (
	"testing"
)

const tolerance = 1e-5

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); !got.Compare(NewVec3(5, 7, 9), tolerance) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); !got.Compare(NewVec3(3, 3, 3), tolerance) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); !got.Compare(NewVec3(-3, 6, -3), tolerance) {
		t.Errorf("Cross = %+v", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := NewVec3(0, 10, 0).Normalized()
	if !v.Compare(NewVec3Up(), tolerance) {
		t.Errorf("Normalized = %+v", v)
	}
	// the zero vector must not produce NaNs
	z := NewVec3Zero().Normalized()
	if z != NewVec3Zero() {
		t.Errorf("Normalized zero = %+v", z)
	}
}

func TestMat4Identity(t *testing.T) {
	id := NewMat4Identity()
	v := NewVec4(1, 2, 3, 1)
	if got := id.MulVec4(v); !got.Compare(v, tolerance) {
		t.Errorf("identity * v = %+v", got)
	}
}

func TestMat4MulOrder(t *testing.T) {
	// translate then scale: scale.Mul(translate) applies translate first
	translate := NewMat4Translation(NewVec3(1, 0, 0))
	scale := NewMat4UniformScale(2)

	combined := scale.Mul(translate)
	got := NewVec3(0, 0, 0).Transform(combined)
	if !got.Compare(NewVec3(2, 0, 0), tolerance) {
		t.Errorf("scale*translate applied to origin = %+v, want (2,0,0)", got)
	}
}

func TestMat4LookAtOrigin(t *testing.T) {
	// camera at +Z looking at origin: origin maps in front of the camera
	view := NewMat4LookAt(NewVec3(0, 0, 5), NewVec3Zero(), NewVec3Up())
	got := NewVec3Zero().Transform(view)
	if !got.Compare(NewVec3(0, 0, -5), tolerance) {
		t.Errorf("view * origin = %+v, want (0,0,-5)", got)
	}
}

func TestMat4PerspectiveDepthRange(t *testing.T) {
	near := float32(0.1)
	far := float32(100.0)
	proj := NewMat4Perspective(DegToRad(45), 4.0/3.0, near, far)

	nearClip := NewVec3(0, 0, -near).Transform(proj)
	farClip := NewVec3(0, 0, -far).Transform(proj)
	if kabs(nearClip.Z-(-1)) > 1e-4 {
		t.Errorf("near plane z = %v, want -1", nearClip.Z)
	}
	if kabs(farClip.Z-1) > 1e-4 {
		t.Errorf("far plane z = %v, want 1", farClip.Z)
	}

	// after depth correction the range becomes [0, 1]
	corrected := NewMat4DepthCorrection().Mul(proj)
	nearClip = NewVec3(0, 0, -near).Transform(corrected)
	farClip = NewVec3(0, 0, -far).Transform(corrected)
	if kabs(nearClip.Z) > 1e-4 {
		t.Errorf("corrected near plane z = %v, want 0", nearClip.Z)
	}
	if kabs(farClip.Z-1) > 1e-4 {
		t.Errorf("corrected far plane z = %v, want 1", farClip.Z)
	}
}

func TestMat4Inverse(t *testing.T) {
	view := NewMat4LookAt(NewVec3(3, 4, 5), NewVec3(0, 1, 0), NewVec3Up())
	inv := view.Inverse()
	roundTrip := view.Mul(inv)
	id := NewMat4Identity()
	for i := 0; i < 16; i++ {
		if kabs(roundTrip.Data[i]-id.Data[i]) > 1e-4 {
			t.Fatalf("view * view^-1 differs from identity at %d: %v", i, roundTrip.Data[i])
		}
	}
}

func TestMat4Transposed(t *testing.T) {
	mt := NewMat4Translation(NewVec3(1, 2, 3))
	tr := NewMat4Transposed(mt)
	if tr.Data[3] != 1 || tr.Data[7] != 2 || tr.Data[11] != 3 {
		t.Errorf("transpose moved translation to wrong cells: %+v", tr.Data)
	}
}

func TestScreenClipRoundTrip(t *testing.T) {
	width, height := float32(800), float32(600)

	center := ScreenToClip(width, height, NewVec2(400, 300))
	if !center.Compare(NewVec2Zero(), tolerance) {
		t.Errorf("center of screen = %+v, want origin", center)
	}
	topLeft := ScreenToClip(width, height, NewVec2(0, 0))
	if !topLeft.Compare(NewVec2(-1, 1), tolerance) {
		t.Errorf("top-left = %+v, want (-1,1)", topLeft)
	}

	back := ClipToScreen(width, height, topLeft)
	if !back.Compare(NewVec2(0, 0), tolerance) {
		t.Errorf("round trip = %+v", back)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5.0, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(0.5, 0.0, 1.0); got != 0.5 {
		t.Errorf("Clamp inside = %v", got)
	}
}
