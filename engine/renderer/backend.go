package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/drapengine/drape/engine/math"
)

// RendererBackend is the GPU-facing half of the renderer. A single
// implementation exists per build; the split keeps device plumbing out of
// the frame orchestration.
type RendererBackend interface {
	// Initialize claims the adapter and device for the given window surface
	// and builds the swapchain-sized attachments.
	Initialize(appName string, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height uint32) error
	Shutdown() error

	// SetClearColor sets the background color. Expects a value already
	// passed through math.ConvertToSRGBA.
	SetClearColor(color math.Vec4)

	// SetVsync selects the presentation mode. Call before Initialize.
	SetVsync(enabled bool)

	// Resized reconfigures the surface and rebuilds the size-dependent
	// attachments.
	Resized(width, height uint32) error

	// SetShaderSources (re)compiles both render pipelines from WGSL source.
	// Called once at startup and again on hot reload.
	SetShaderSources(clothSource, solidSource string) error

	// UploadTexture replaces the diffuse texture sampled by the cloth
	// pipeline. Pixels are tightly packed RGBA8.
	UploadTexture(pixels []byte, width, height uint32) error

	// UpdateCamera uploads the serialized camera uniform.
	UpdateCamera(data []byte)

	// UploadMesh creates the three vertex streams. UpdateMesh rewrites the
	// dynamic streams in place after each simulation step.
	UploadMesh(positions, normals, texCoords []byte, vertexCount uint32) error
	UpdateMesh(positions, normals []byte)

	// DrawFrame renders one frame. With debugView set the untextured
	// pipeline is used instead of the cloth pipeline.
	DrawFrame(debugView bool) error
}
