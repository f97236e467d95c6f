package renderer

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/drapengine/drape/engine/core"
	"github.com/drapengine/drape/engine/math"
	"github.com/drapengine/drape/engine/physics"
	"github.com/drapengine/drape/engine/renderer/components"
	"github.com/drapengine/drape/engine/renderer/shading"
	"github.com/drapengine/drape/engine/renderer/webgpu"
)

// RenderPacket is everything the renderer needs for one frame.
type RenderPacket struct {
	Camera *components.Camera
	Cloth  *physics.Cloth
	// MeshDirty marks that the simulation stepped and the vertex streams
	// need re-uploading.
	MeshDirty bool
	// DebugView selects the untextured pipeline.
	DebugView bool
}

// Renderer is the frontend: it owns the backend, packs CPU-side data into
// the wire formats the shaders consume, and sequences per-frame uploads.
type Renderer struct {
	backend RendererBackend
}

func New() *Renderer {
	return &Renderer{
		backend: webgpu.New(),
	}
}

func (r *Renderer) Initialize(appName string, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height uint32) error {
	if err := r.backend.Initialize(appName, surfaceDescriptor, width, height); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

// SetClearColor sets the background color. Expects a value already passed
// through math.ConvertToSRGBA, which math.HexToRGBA does.
func (r *Renderer) SetClearColor(color math.Vec4) {
	r.backend.SetClearColor(color)
}

// SetVsync selects the presentation mode. Call before Initialize.
func (r *Renderer) SetVsync(enabled bool) {
	r.backend.SetVsync(enabled)
}

// SetShaderSources compiles (or recompiles, on hot reload) both pipelines.
func (r *Renderer) SetShaderSources(clothSource, solidSource string) error {
	return r.backend.SetShaderSources(clothSource, solidSource)
}

// SetClothTexture uploads the RGBA8 diffuse texture sampled by the cloth
// pipeline.
func (r *Renderer) SetClothTexture(pixels []byte, width, height uint32) error {
	return r.backend.UploadTexture(pixels, width, height)
}

// UploadClothMesh creates the vertex streams for the cloth's fixed
// topology. Call once after the cloth is built.
func (r *Renderer) UploadClothMesh(cloth *physics.Cloth) error {
	return r.backend.UploadMesh(
		shading.PackVec3Stream(cloth.Positions()),
		shading.PackVec3Stream(cloth.Normals()),
		shading.PackVec2Stream(cloth.TexCoords()),
		uint32(cloth.VertexCount()),
	)
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// DrawFrame uploads the frame's camera and mesh state and renders. A frame
// skipped because the surface is rebuilding is not an error.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	r.backend.UpdateCamera(packet.Camera.Uniform().Bytes())

	if packet.MeshDirty {
		r.backend.UpdateMesh(
			shading.PackVec3Stream(packet.Cloth.Positions()),
			shading.PackVec3Stream(packet.Cloth.Normals()),
		)
	}

	if err := r.backend.DrawFrame(packet.DebugView); err != nil {
		if errors.Is(err, core.ErrSurfaceBooting) {
			return nil
		}
		return err
	}
	return nil
}
