package shading

import (
	"encoding/binary"
	m "math"

	"github.com/drapengine/drape/engine/math"
)

// CameraUniformSize is the byte size of the Camera struct in the WGSL
// sources, padded to 16-byte alignment.
const CameraUniformSize = 80

// CameraUniform mirrors the Camera uniform block bound at group 0 binding 0.
type CameraUniform struct {
	ViewProj   math.Mat4
	Dimensions math.Vec2
	Scale      float32
}

// Bytes serializes the uniform to the std140-compatible layout the shaders
// expect: the column-major matrix, viewport dimensions, scale and padding.
func (u CameraUniform) Bytes() []byte {
	buf := make([]byte, 0, CameraUniformSize)
	for _, f := range u.ViewProj.Data {
		buf = appendFloat32(buf, f)
	}
	buf = appendFloat32(buf, u.Dimensions.X)
	buf = appendFloat32(buf, u.Dimensions.Y)
	buf = appendFloat32(buf, u.Scale)
	buf = appendFloat32(buf, 0.0)
	return buf
}

func appendFloat32(buf []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, m.Float32bits(f))
}

// PackVec3Stream serializes tightly packed float32x3 vertex data.
func PackVec3Stream(vectors []math.Vec3) []byte {
	buf := make([]byte, 0, len(vectors)*12)
	for _, v := range vectors {
		buf = appendFloat32(buf, v.X)
		buf = appendFloat32(buf, v.Y)
		buf = appendFloat32(buf, v.Z)
	}
	return buf
}

// PackVec2Stream serializes tightly packed float32x2 vertex data.
func PackVec2Stream(vectors []math.Vec2) []byte {
	buf := make([]byte, 0, len(vectors)*8)
	for _, v := range vectors {
		buf = appendFloat32(buf, v.X)
		buf = appendFloat32(buf, v.Y)
	}
	return buf
}
