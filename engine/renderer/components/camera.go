package components

import (
	"github.com/drapengine/drape/engine/math"
	"github.com/drapengine/drape/engine/renderer/shading"
)

const (
	DefaultFOVDegrees float32 = 45.0
	NearClip          float32 = 0.1
	FarClip           float32 = 100.0

	MinScale float32 = 0.01
	MaxScale float32 = 256.0
)

// Camera owns the view-projection transform uploaded to the shaders every
// frame. The matrix is rebuilt lazily when position, scale or viewport
// change.
type Camera struct {
	position math.Vec3
	target   math.Vec3
	up       math.Vec3

	width  float32
	height float32
	scale  float32

	viewProj math.Mat4
	dirty    bool
}

// NewCamera places the camera at the scene default, slightly off-axis so
// the hanging cloth reads in three dimensions.
func NewCamera(width, height float32) *Camera {
	return &Camera{
		position: math.NewVec3(0.0, 0.0, 30.0),
		target:   math.NewVec3(5.0, 0.0, 0.0),
		up:       math.NewVec3Up(),
		width:    width,
		height:   height,
		scale:    1.0,
		dirty:    true,
	}
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.dirty = true
}

// Translate shifts both the eye and the target so the framing is preserved.
func (c *Camera) Translate(delta math.Vec3) {
	c.position = c.position.Add(delta)
	c.target = c.target.Add(delta)
	c.dirty = true
}

func (c *Camera) Scale() float32 {
	return c.scale
}

// SetScale zooms the scene, clamped so the model never inverts or vanishes.
func (c *Camera) SetScale(scale float32) {
	c.scale = math.Clamp(scale, MinScale, MaxScale)
	c.dirty = true
}

// AddScale applies a zoom delta, typically from the scroll wheel.
func (c *Camera) AddScale(delta float32) {
	c.SetScale(c.scale + delta)
}

func (c *Camera) Resize(width, height float32) {
	if width == 0 || height == 0 {
		return
	}
	c.width = width
	c.height = height
	c.dirty = true
}

func (c *Camera) Width() float32  { return c.width }
func (c *Camera) Height() float32 { return c.height }

// ViewProjection returns the combined transform: depth correction for the
// [0,1] clip range, perspective projection, view and uniform scene scale.
func (c *Camera) ViewProjection() math.Mat4 {
	if c.dirty {
		proj := math.NewMat4Perspective(math.DegToRad(DefaultFOVDegrees), c.width/c.height, NearClip, FarClip)
		view := math.NewMat4LookAt(c.position, c.target, c.up)
		scale := math.NewMat4UniformScale(c.scale)
		c.viewProj = math.NewMat4DepthCorrection().Mul(proj).Mul(view).Mul(scale)
		c.dirty = false
	}
	return c.viewProj
}

// InverseViewProjection is used to unproject screen positions into picking
// rays.
func (c *Camera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// ScreenRay builds the world-space picking ray under the given pixel.
func (c *Camera) ScreenRay(pos math.Vec2) math.Ray {
	return math.NewRay(c.width, c.height, pos, c.InverseViewProjection())
}

// Uniform snapshots the camera into the shader uniform layout.
func (c *Camera) Uniform() shading.CameraUniform {
	return shading.CameraUniform{
		ViewProj:   c.ViewProjection(),
		Dimensions: math.NewVec2(c.width, c.height),
		Scale:      c.scale,
	}
}
