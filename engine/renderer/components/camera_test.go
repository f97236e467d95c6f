package components

import (
	"testing"

	"github.com/drapengine/drape/engine/math"
)

const tolerance = 1e-4

func TestScaleClamping(t *testing.T) {
	c := NewCamera(800, 600)

	c.SetScale(1000)
	if c.Scale() != MaxScale {
		t.Errorf("scale = %v, want clamped to %v", c.Scale(), MaxScale)
	}
	c.SetScale(0)
	if c.Scale() != MinScale {
		t.Errorf("scale = %v, want clamped to %v", c.Scale(), MinScale)
	}
	c.SetScale(1)
	c.AddScale(0.5)
	if c.Scale() != 1.5 {
		t.Errorf("scale = %v, want 1.5", c.Scale())
	}
}

func TestTranslatePreservesFraming(t *testing.T) {
	c := NewCamera(800, 600)
	before := c.ViewProjection()

	c.Translate(math.NewVec3(3, -2, 0))
	after := c.ViewProjection()

	// the cloth anchor moves with the camera, so a point offset by the same
	// delta projects identically
	p := math.NewVec3(5, 0, 0)
	projBefore := p.Transform(before)
	projAfter := p.Add(math.NewVec3(3, -2, 0)).Transform(after)
	if !projBefore.Compare(projAfter, tolerance) {
		t.Errorf("framing changed: %+v != %+v", projBefore, projAfter)
	}
}

func TestViewProjectionDepthRange(t *testing.T) {
	c := NewCamera(800, 600)
	vp := c.ViewProjection()

	// a visible point lands in the corrected [0,1] depth range
	p := math.NewVec3(5, 0, 0).Transform(vp)
	if p.Z < 0 || p.Z > 1 {
		t.Errorf("depth = %v, want within [0,1]", p.Z)
	}
}

func TestResizeIgnoresZero(t *testing.T) {
	c := NewCamera(800, 600)
	c.Resize(0, 0)
	if c.Width() != 800 || c.Height() != 600 {
		t.Errorf("size = %vx%v after zero resize", c.Width(), c.Height())
	}
	c.Resize(1024, 768)
	if c.Width() != 1024 || c.Height() != 768 {
		t.Errorf("size = %vx%v", c.Width(), c.Height())
	}
}

func TestScreenRayThroughCenter(t *testing.T) {
	c := NewCamera(800, 600)
	ray := c.ScreenRay(math.NewVec2(400, 300))

	// the center ray points from the eye towards the look target
	toTarget := math.NewVec3(5, 0, 0).Sub(c.Position()).Normalized()
	if !ray.Direction.Compare(toTarget, 1e-3) {
		t.Errorf("direction = %+v, want %+v", ray.Direction, toTarget)
	}
}
