package math

import (
	m "math"
)

const Pi float32 = m.Pi

func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ktan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func kabs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func DegToRad(degrees float32) float32 {
	return degrees * (Pi / 180.0)
}

func RadToDeg(radians float32) float32 {
	return radians * (180.0 / Pi)
}

// RangeConvertFloat32 remaps value from [oldMin, oldMax] to [newMin, newMax].
func RangeConvertFloat32(value, oldMin, oldMax, newMin, newMax float32) float32 {
	return ((value-oldMin)/(oldMax-oldMin))*(newMax-newMin) + newMin
}

// ------------------------------------------
// Vec2
// ------------------------------------------

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec2Zero() Vec2 {
	return Vec2{}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

func (v Vec2) Length() float32 {
	return ksqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance && kabs(v.Y-other.Y) <= tolerance
}

// ------------------------------------------
// Vec3
// ------------------------------------------

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func NewVec3Up() Vec3 {
	return Vec3{Y: 1}
}

func NewVec3Down() Vec3 {
	return Vec3{Y: -1}
}

func NewVec3Right() Vec3 {
	return Vec3{X: 1}
}

func NewVec3Forward() Vec3 {
	return Vec3{Z: -1}
}

func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

// Normalized returns a unit-length copy of v. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance
}

// Transform applies the matrix to the point (v, 1) and performs the
// perspective divide.
func (v Vec3) Transform(mt Mat4) Vec3 {
	out := mt.MulVec4(v.ToVec4(1.0))
	if out.W != 0 && out.W != 1 {
		return Vec3{X: out.X / out.W, Y: out.Y / out.W, Z: out.Z / out.W}
	}
	return Vec3{X: out.X, Y: out.Y, Z: out.Z}
}

// ------------------------------------------
// Vec4
// ------------------------------------------

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

func (v Vec4) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z, W: v.W + other.W}
}

func (v Vec4) MulScalar(scalar float32) Vec4 {
	return Vec4{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar, W: v.W * scalar}
}

func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance &&
		kabs(v.W-other.W) <= tolerance
}

// ------------------------------------------
// Mat4
// ------------------------------------------

func NewMat4Identity() Mat4 {
	out := Mat4{}
	out.Data[0] = 1.0
	out.Data[5] = 1.0
	out.Data[10] = 1.0
	out.Data[15] = 1.0
	return out
}

// Mul returns mt * other; the combined transform applies other first.
func (mt Mat4) Mul(other Mat4) Mat4 {
	out := Mat4{}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+r] * other.Data[c*4+i]
			}
			out.Data[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns mt * v.
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: mt.Data[0]*v.X + mt.Data[4]*v.Y + mt.Data[8]*v.Z + mt.Data[12]*v.W,
		Y: mt.Data[1]*v.X + mt.Data[5]*v.Y + mt.Data[9]*v.Z + mt.Data[13]*v.W,
		Z: mt.Data[2]*v.X + mt.Data[6]*v.Y + mt.Data[10]*v.Z + mt.Data[14]*v.W,
		W: mt.Data[3]*v.X + mt.Data[7]*v.Y + mt.Data[11]*v.Z + mt.Data[15]*v.W,
	}
}

// NewMat4Perspective creates a right-handed perspective matrix with
// OpenGL-style [-1,1] clip depth. Combine with NewMat4DepthCorrection for
// WebGPU's [0,1] depth range.
func NewMat4Perspective(fovRadians, aspectRatio, nearClip, farClip float32) Mat4 {
	halfTanFov := ktan(fovRadians * 0.5)
	out := Mat4{}
	out.Data[0] = 1.0 / (aspectRatio * halfTanFov)
	out.Data[5] = 1.0 / halfTanFov
	out.Data[10] = -((farClip + nearClip) / (farClip - nearClip))
	out.Data[11] = -1.0
	out.Data[14] = -((2.0 * farClip * nearClip) / (farClip - nearClip))
	return out
}

// NewMat4DepthCorrection remaps OpenGL clip depth [-1,1] to WebGPU's [0,1].
func NewMat4DepthCorrection() Mat4 {
	out := NewMat4Identity()
	out.Data[10] = 0.5
	out.Data[14] = 0.5
	return out
}

// NewMat4LookAt returns a right-handed view matrix looking at target from
// position.
func NewMat4LookAt(position, target, up Vec3) Mat4 {
	zAxis := target.Sub(position).Normalized()
	xAxis := zAxis.Cross(up).Normalized()
	yAxis := xAxis.Cross(zAxis)

	out := Mat4{}
	out.Data[0] = xAxis.X
	out.Data[4] = xAxis.Y
	out.Data[8] = xAxis.Z
	out.Data[12] = -xAxis.Dot(position)
	out.Data[1] = yAxis.X
	out.Data[5] = yAxis.Y
	out.Data[9] = yAxis.Z
	out.Data[13] = -yAxis.Dot(position)
	out.Data[2] = -zAxis.X
	out.Data[6] = -zAxis.Y
	out.Data[10] = -zAxis.Z
	out.Data[14] = zAxis.Dot(position)
	out.Data[15] = 1.0
	return out
}

func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[12] = position.X
	out.Data[13] = position.Y
	out.Data[14] = position.Z
	return out
}

func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = scale.X
	out.Data[5] = scale.Y
	out.Data[10] = scale.Z
	return out
}

func NewMat4UniformScale(scale float32) Mat4 {
	return NewMat4Scale(Vec3{X: scale, Y: scale, Z: scale})
}

func NewMat4EulerX(angleRadians float32) Mat4 {
	out := NewMat4Identity()
	c := kcos(angleRadians)
	s := ksin(angleRadians)
	out.Data[5] = c
	out.Data[6] = s
	out.Data[9] = -s
	out.Data[10] = c
	return out
}

func NewMat4EulerY(angleRadians float32) Mat4 {
	out := NewMat4Identity()
	c := kcos(angleRadians)
	s := ksin(angleRadians)
	out.Data[0] = c
	out.Data[2] = -s
	out.Data[8] = s
	out.Data[10] = c
	return out
}

func NewMat4EulerZ(angleRadians float32) Mat4 {
	out := NewMat4Identity()
	c := kcos(angleRadians)
	s := ksin(angleRadians)
	out.Data[0] = c
	out.Data[1] = s
	out.Data[4] = -s
	out.Data[5] = c
	return out
}

func NewMat4EulerXYZ(xRadians, yRadians, zRadians float32) Mat4 {
	rx := NewMat4EulerX(xRadians)
	ry := NewMat4EulerY(yRadians)
	rz := NewMat4EulerZ(zRadians)
	return rz.Mul(ry).Mul(rx)
}

func NewMat4Transposed(matrix Mat4) Mat4 {
	out := Mat4{}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out.Data[r*4+c] = matrix.Data[c*4+r]
		}
	}
	return out
}

// Inverse returns the inverse of the matrix via the adjugate. A singular
// matrix yields garbage; callers only invert affine camera transforms.
func (mt Mat4) Inverse() Mat4 {
	a := mt.Data

	var inv [16]float32

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] +
		a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] -
		a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] +
		a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] -
		a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] -
		a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] +
		a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] -
		a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] +
		a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] +
		a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] -
		a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] +
		a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] -
		a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] -
		a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] +
		a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] -
		a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] +
		a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if det == 0 {
		return NewMat4Identity()
	}
	det = 1.0 / det

	out := Mat4{}
	for i := 0; i < 16; i++ {
		out.Data[i] = inv[i] * det
	}
	return out
}

// Forward returns the view direction of a view matrix.
func (mt Mat4) Forward() Vec3 {
	return Vec3{X: -mt.Data[2], Y: -mt.Data[6], Z: -mt.Data[10]}.Normalized()
}

func (mt Mat4) Backward() Vec3 {
	return Vec3{X: mt.Data[2], Y: mt.Data[6], Z: mt.Data[10]}.Normalized()
}

func (mt Mat4) Up() Vec3 {
	return Vec3{X: mt.Data[1], Y: mt.Data[5], Z: mt.Data[9]}.Normalized()
}

func (mt Mat4) Left() Vec3 {
	return Vec3{X: -mt.Data[0], Y: -mt.Data[4], Z: -mt.Data[8]}.Normalized()
}

func (mt Mat4) Right() Vec3 {
	return Vec3{X: mt.Data[0], Y: mt.Data[4], Z: mt.Data[8]}.Normalized()
}

// ------------------------------------------
// Screen <-> clip space (picking helpers)
// ------------------------------------------

// ScreenToClip converts a pixel position to normalized device coordinates,
// flipping Y so that +Y points up.
func ScreenToClip(width, height float32, pos Vec2) Vec2 {
	ndc := Vec2{
		X: (pos.X/width)*2.0 - 1.0,
		Y: (pos.Y/height)*2.0 - 1.0,
	}
	ndc.Y = -ndc.Y
	return ndc
}

// ClipToScreen converts normalized device coordinates back to pixels.
func ClipToScreen(width, height float32, pos Vec2) Vec2 {
	return Vec2{
		X: (pos.X + 1.0) * 0.5 * width,
		Y: (1.0 - pos.Y) * 0.5 * height,
	}
}
