// Package webgpu implements the renderer backend on the WebGPU API, which
// drives both native (Vulkan/Metal/DX12 via wgpu-native) and browser
// targets.
package webgpu

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/drapengine/drape/engine/core"
	"github.com/drapengine/drape/engine/math"
)

// SampleCount is the MSAA sample count for the main render pass.
const SampleCount uint32 = 4

type Backend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	width         uint32
	height        uint32

	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	renderPassDescriptor *wgpu.RenderPassDescriptor

	clearColor  math.Vec4
	presentMode wgpu.PresentMode

	pipelines pipelineSet
	mesh      meshBuffers
	camera    cameraBuffer
	diffuse   diffuseTexture
}

func New() *Backend {
	return &Backend{
		clearColor:  math.ConvertToSRGBA(math.NewVec4(20.0/256.0, 20.0/256.0, 28.0/256.0, 1.0)),
		presentMode: wgpu.PresentModeFifo,
	}
}

// SetVsync selects the presentation mode. Takes effect the next time the
// surface is configured, so call it before Initialize.
func (b *Backend) SetVsync(enabled bool) {
	if enabled {
		b.presentMode = wgpu.PresentModeFifo
	} else {
		b.presentMode = wgpu.PresentModeImmediate
	}
}

// SetClearColor sets the background color. The value is written as-is, so
// pass it through math.ConvertToSRGBA (or math.HexToRGBA, which already
// does) first.
func (b *Backend) SetClearColor(color math.Vec4) {
	b.clearColor = color
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = wgpu.Color{
			R: float64(color.X), G: float64(color.Y), B: float64(color.Z), A: float64(color.W),
		}
	}
}

func (b *Backend) Initialize(appName string, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height uint32) error {
	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: false,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: appName + " Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(adapter)
	if len(capabilities.Formats) == 0 {
		return fmt.Errorf("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	if err := b.pipelines.ensureLayouts(b.device); err != nil {
		return err
	}
	if err := b.camera.initialize(b.device, b.pipelines.cameraLayout); err != nil {
		return err
	}

	if err := b.configure(width, height); err != nil {
		return err
	}

	core.LogInfo("webgpu backend initialized, surface format %v", b.surfaceFormat)
	return nil
}

// configure sizes the surface and rebuilds the MSAA and depth attachments
// plus the cached render pass descriptor.
func (b *Backend) configure(width, height uint32) error {
	b.width = width
	b.height = height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseAttachments()

	msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "MSAA Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        b.surfaceFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create msaa texture: %w", err)
	}
	b.msaaTexture = msaaTexture
	if b.msaaTextureView, err = msaaTexture.CreateView(nil); err != nil {
		return fmt.Errorf("create msaa view: %w", err)
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   SampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depthTexture
	if b.depthTextureView, err = depthTexture.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	bg := b.clearColor
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView,
				ResolveTarget: nil, // swapchain view, set per frame
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpDiscard,
				ClearValue: wgpu.Color{
					R: float64(bg.X), G: float64(bg.Y), B: float64(bg.Z), A: float64(bg.W),
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	return b.configure(width, height)
}

func (b *Backend) DrawFrame(debugView bool) error {
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "memory") {
			return core.ErrOutOfMemory
		}
		// the surface can be stale right after a resize; reconfigure and
		// skip this frame
		core.LogWarn("surface texture unavailable: %s", err)
		if cfgErr := b.configure(b.width, b.height); cfgErr != nil {
			return cfgErr
		}
		return core.ErrSurfaceBooting
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("create swapchain view: %w", err)
	}
	defer surfaceTexture.Release()
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	pipeline := b.pipelines.cloth
	if debugView {
		pipeline = b.pipelines.solid
	}
	if pipeline != nil && b.mesh.vertexCount > 0 {
		pass.SetPipeline(pipeline)
		pass.SetBindGroup(0, b.camera.bindGroup, nil)
		if !debugView {
			pass.SetBindGroup(1, b.diffuse.bindGroup, nil)
		}
		pass.SetVertexBuffer(0, b.mesh.positions, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, b.mesh.normals, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(2, b.mesh.texCoords, 0, wgpu.WholeSize)
		pass.Draw(b.mesh.vertexCount, 1, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *Backend) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *Backend) Shutdown() error {
	b.releaseAttachments()
	b.pipelines.release()
	b.mesh.release()
	b.camera.release()
	b.diffuse.release()
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	core.LogInfo("webgpu backend shut down")
	return nil
}
