package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix stored in column-major order, so that the raw Data
// array can be uploaded directly into a WGSL mat4x4<f32> uniform.
// Element (row r, column c) lives at Data[c*4+r].
type Mat4 struct {
	Data [16]float32
}

// Ray is a half-line used for mouse picking against world geometry.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}
