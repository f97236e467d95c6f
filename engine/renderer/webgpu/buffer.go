package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/drapengine/drape/engine/renderer/shading"
)

// cameraBuffer is the uniform buffer behind bind group 0.
type cameraBuffer struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func (cb *cameraBuffer) initialize(device *wgpu.Device, layout *wgpu.BindGroupLayout) error {
	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Buffer",
		Size:  shading.CameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera_bind_group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buffer.Release()
		return fmt.Errorf("create camera bind group: %w", err)
	}
	cb.buffer = buffer
	cb.bindGroup = bindGroup
	return nil
}

func (cb *cameraBuffer) release() {
	if cb.bindGroup != nil {
		cb.bindGroup.Release()
		cb.bindGroup = nil
	}
	if cb.buffer != nil {
		cb.buffer.Release()
		cb.buffer = nil
	}
}

// UpdateCamera uploads the serialized camera uniform for the next frame.
func (b *Backend) UpdateCamera(data []byte) {
	if b.camera.buffer == nil {
		return
	}
	b.queue.WriteBuffer(b.camera.buffer, 0, data)
}

// meshBuffers holds the three vertex streams. Positions and normals change
// every simulation step; texture coordinates are written once.
type meshBuffers struct {
	positions   *wgpu.Buffer
	normals     *wgpu.Buffer
	texCoords   *wgpu.Buffer
	vertexCount uint32
}

func (b *Backend) UploadMesh(positions, normals, texCoords []byte, vertexCount uint32) error {
	b.mesh.release()

	var err error
	if b.mesh.positions, err = b.createVertexBuffer("Vertex Buffer", positions); err != nil {
		return err
	}
	if b.mesh.normals, err = b.createVertexBuffer("Vertex Normal Buffer", normals); err != nil {
		return err
	}
	if b.mesh.texCoords, err = b.createVertexBuffer("Texture Coord Buffer", texCoords); err != nil {
		return err
	}
	b.mesh.vertexCount = vertexCount
	return nil
}

// UpdateMesh rewrites the dynamic streams in place. The buffer sizes never
// change because the cloth topology is fixed.
func (b *Backend) UpdateMesh(positions, normals []byte) {
	if b.mesh.positions == nil {
		return
	}
	b.queue.WriteBuffer(b.mesh.positions, 0, positions)
	b.queue.WriteBuffer(b.mesh.normals, 0, normals)
}

func (b *Backend) createVertexBuffer(label string, data []byte) (*wgpu.Buffer, error) {
	buffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buffer, 0, data)
	return buffer, nil
}

func (mb *meshBuffers) release() {
	if mb.positions != nil {
		mb.positions.Release()
		mb.positions = nil
	}
	if mb.normals != nil {
		mb.normals.Release()
		mb.normals = nil
	}
	if mb.texCoords != nil {
		mb.texCoords.Release()
		mb.texCoords = nil
	}
	mb.vertexCount = 0
}
