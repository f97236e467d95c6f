// Package shading is the CPU reference for the WGSL shading kernels. The
// render pipelines execute the same math on the GPU; keeping a host-side
// copy makes the lighting model testable without a device.
package shading

import (
	"github.com/drapengine/drape/engine/math"
)

// LightDirection is the fixed scene light, shared by both fragment kernels.
var LightDirection = math.NewVec3(50.0, 6.0, 50.0).Normalized()

// TexturedDiffuseFloor keeps the textured cloth from going fully unlit when
// a face turns away from the light.
const TexturedDiffuseFloor float32 = 0.8

// TransformVertex maps a model-space position to clip space.
func TransformVertex(viewProj math.Mat4, position math.Vec3) math.Vec4 {
	return viewProj.MulVec4(position.ToVec4(1.0))
}

// DiffuseSolid is the untextured lighting term: the cosine of the angle to
// the light, clamped to zero on the dark side.
func DiffuseSolid(normal math.Vec3) float32 {
	d := normal.Normalized().Dot(LightDirection)
	if d < 0 {
		return 0
	}
	return d
}

// DiffuseTextured is the textured lighting term, floored so every fragment
// keeps at least 80% of its sampled color.
func DiffuseTextured(normal math.Vec3) float32 {
	d := normal.Normalized().Dot(LightDirection)
	if d < TexturedDiffuseFloor {
		return TexturedDiffuseFloor
	}
	return d
}

// ShadeSolid returns the untextured fragment color: white scaled by the
// diffuse term, opaque.
func ShadeSolid(normal math.Vec3) math.Vec4 {
	diffuse := DiffuseSolid(normal)
	return math.NewVec4(diffuse, diffuse, diffuse, 1.0)
}

// ShadeTextured returns the textured fragment color: the full sample,
// alpha included, scaled by the floored diffuse term.
func ShadeTextured(normal math.Vec3, sample math.Vec4) math.Vec4 {
	diffuse := DiffuseTextured(normal)
	return math.NewVec4(sample.X*diffuse, sample.Y*diffuse, sample.Z*diffuse, sample.W*diffuse)
}
