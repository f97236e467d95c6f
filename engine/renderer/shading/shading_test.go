package shading

import (
	"encoding/binary"
	m "math"
	"testing"

	"github.com/drapengine/drape/engine/math"
)

const tolerance = 1e-5

func TestTransformVertexMatchesMatrixProduct(t *testing.T) {
	proj := math.NewMat4Perspective(math.DegToRad(45), 800.0/600.0, 0.1, 100)
	view := math.NewMat4LookAt(math.NewVec3(0, 0, 10), math.NewVec3Zero(), math.NewVec3Up())
	viewProj := proj.Mul(view)

	p := math.NewVec3(1.5, -2.0, 3.25)
	got := TransformVertex(viewProj, p)
	want := viewProj.MulVec4(p.ToVec4(1.0))
	if !got.Compare(want, tolerance) {
		t.Errorf("TransformVertex = %+v, want %+v", got, want)
	}
}

func TestTransformVertexIdentity(t *testing.T) {
	p := math.NewVec3(1, 2, 3)
	got := TransformVertex(math.NewMat4Identity(), p)
	if !got.Compare(math.NewVec4(1, 2, 3, 1), tolerance) {
		t.Errorf("identity transform = %+v", got)
	}
}

func TestDiffuseSolidRange(t *testing.T) {
	normals := []math.Vec3{
		math.NewVec3(0, 1, 0),
		math.NewVec3(1, 0, 0),
		math.NewVec3(-1, -1, -1),
		math.NewVec3(0.3, -0.7, 0.2),
	}
	for _, n := range normals {
		d := DiffuseSolid(n)
		if d < 0 || d > 1 {
			t.Errorf("diffuse %v out of [0,1] for normal %+v", d, n)
		}
		want := n.Normalized().Dot(LightDirection)
		if want < 0 {
			want = 0
		}
		if kabs(d-want) > tolerance {
			t.Errorf("diffuse = %v, want %v", d, want)
		}
	}
}

func TestDiffuseTexturedFloor(t *testing.T) {
	// no normal direction may drop below the floor
	for _, n := range []math.Vec3{
		LightDirection.Negate(),
		math.NewVec3(0, -1, 0),
		math.NewVec3(-1, 0, -1),
	} {
		if d := DiffuseTextured(n); d != TexturedDiffuseFloor {
			t.Errorf("diffuse for dark-side normal %+v = %v, want %v", n, d, TexturedDiffuseFloor)
		}
	}
}

func TestAntiParallelNormal(t *testing.T) {
	n := LightDirection.Negate()
	if d := DiffuseSolid(n); d != 0 {
		t.Errorf("solid diffuse = %v, want 0", d)
	}
	if d := DiffuseTextured(n); d != TexturedDiffuseFloor {
		t.Errorf("textured diffuse = %v, want %v", d, TexturedDiffuseFloor)
	}
}

func TestNormalAlignedWithLight(t *testing.T) {
	n := LightDirection
	if d := DiffuseSolid(n); kabs(d-1) > tolerance {
		t.Errorf("solid diffuse = %v, want 1", d)
	}
	if d := DiffuseTextured(n); kabs(d-1) > tolerance {
		t.Errorf("textured diffuse = %v, want 1", d)
	}

	// full intensity leaves the colors untouched
	if got := ShadeSolid(n); !got.Compare(math.NewVec4(1, 1, 1, 1), tolerance) {
		t.Errorf("solid color = %+v, want white", got)
	}
	sample := math.NewVec4(0.2, 0.5, 0.9, 1.0)
	if got := ShadeTextured(n, sample); !got.Compare(sample, tolerance) {
		t.Errorf("textured color = %+v, want unscaled sample", got)
	}
}

func TestShadeTexturedScalesSample(t *testing.T) {
	// the diffuse term multiplies the whole sample, alpha included
	n := LightDirection.Negate()
	sample := math.NewVec4(1.0, 0.5, 0.25, 0.75)
	got := ShadeTextured(n, sample)
	want := math.NewVec4(0.8, 0.4, 0.2, 0.6)
	if !got.Compare(want, tolerance) {
		t.Errorf("shaded = %+v, want %+v", got, want)
	}
}

func TestShadeTexturedScalesAlpha(t *testing.T) {
	n := LightDirection.Negate()
	got := ShadeTextured(n, math.NewVec4(1, 1, 1, 0.5))
	want := math.NewVec4(0.8, 0.8, 0.8, 0.4)
	if !got.Compare(want, tolerance) {
		t.Errorf("shaded = %+v, want %+v", got, want)
	}
}

func TestCameraUniformLayout(t *testing.T) {
	u := CameraUniform{
		ViewProj:   math.NewMat4Translation(math.NewVec3(1, 2, 3)),
		Dimensions: math.NewVec2(800, 600),
		Scale:      1.5,
	}
	data := u.Bytes()
	if len(data) != CameraUniformSize {
		t.Fatalf("len = %d, want %d", len(data), CameraUniformSize)
	}

	// first matrix element, then the translation column at offset 12*4
	if got := readFloat32(data, 0); got != 1.0 {
		t.Errorf("data[0] = %v, want 1", got)
	}
	if got := readFloat32(data, 12*4); got != 1.0 {
		t.Errorf("translation X = %v, want 1", got)
	}
	if got := readFloat32(data, 13*4); got != 2.0 {
		t.Errorf("translation Y = %v, want 2", got)
	}
	if got := readFloat32(data, 64); got != 800 {
		t.Errorf("dimensions X = %v, want 800", got)
	}
	if got := readFloat32(data, 72); got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	if got := readFloat32(data, 76); got != 0 {
		t.Errorf("padding = %v, want 0", got)
	}
}

func TestPackStreams(t *testing.T) {
	v3 := PackVec3Stream([]math.Vec3{math.NewVec3(1, 2, 3), math.NewVec3(4, 5, 6)})
	if len(v3) != 24 {
		t.Fatalf("vec3 stream len = %d, want 24", len(v3))
	}
	if got := readFloat32(v3, 12); got != 4 {
		t.Errorf("second vec3 X = %v, want 4", got)
	}

	v2 := PackVec2Stream([]math.Vec2{math.NewVec2(7, 8)})
	if len(v2) != 8 {
		t.Fatalf("vec2 stream len = %d, want 8", len(v2))
	}
	if got := readFloat32(v2, 4); got != 8 {
		t.Errorf("vec2 Y = %v, want 8", got)
	}
}

func readFloat32(data []byte, offset int) float32 {
	return m.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
}

func kabs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
