package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/drapengine/drape/engine/core"
)

// pipelineSet holds the two render pipelines and the bind group layouts
// they share. Both pipelines consume the same three vertex streams.
type pipelineSet struct {
	cameraLayout  *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout

	cloth *wgpu.RenderPipeline
	solid *wgpu.RenderPipeline
}

// SetShaderSources compiles both pipelines. Existing pipelines are replaced
// atomically so a failed hot reload keeps the previous ones running.
func (b *Backend) SetShaderSources(clothSource, solidSource string) error {
	if err := b.pipelines.ensureLayouts(b.device); err != nil {
		return err
	}

	cloth, err := b.buildPipeline("cloth", clothSource, true)
	if err != nil {
		return err
	}
	solid, err := b.buildPipeline("solid", solidSource, false)
	if err != nil {
		cloth.Release()
		return err
	}

	if b.pipelines.cloth != nil {
		b.pipelines.cloth.Release()
	}
	if b.pipelines.solid != nil {
		b.pipelines.solid.Release()
	}
	b.pipelines.cloth = cloth
	b.pipelines.solid = solid
	core.LogDebug("render pipelines compiled")
	return nil
}

func (ps *pipelineSet) ensureLayouts(device *wgpu.Device) error {
	if ps.cameraLayout == nil {
		layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "camera_bind_group_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type: wgpu.BufferBindingTypeUniform,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("create camera bind group layout: %w", err)
		}
		ps.cameraLayout = layout
	}
	if ps.textureLayout == nil {
		layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "texture_bind_group_layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
						Multisampled:  false,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("create texture bind group layout: %w", err)
		}
		ps.textureLayout = layout
	}
	return nil
}

func (b *Backend) buildPipeline(name, source string, textured bool) (*wgpu.RenderPipeline, error) {
	shader, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: name + " shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	defer shader.Release()

	bindGroupLayouts := []*wgpu.BindGroupLayout{b.pipelines.cameraLayout}
	if textured {
		bindGroupLayouts = append(bindGroupLayouts, b.pipelines.textureLayout)
	}
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            name + " pipeline layout",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline layout: %w", name, err)
	}
	defer pipelineLayout.Release()

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  name + " render pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: b.surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			// both sides of the cloth are visible
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: SampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s render pipeline: %w", name, err)
	}
	return pipeline, nil
}

// vertexBufferLayouts describes the three separate streams: positions at
// location 0, normals at 1, texture coordinates at 2.
func vertexBufferLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: 8,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 2},
			},
		},
	}
}

func (ps *pipelineSet) release() {
	if ps.cloth != nil {
		ps.cloth.Release()
		ps.cloth = nil
	}
	if ps.solid != nil {
		ps.solid.Release()
		ps.solid = nil
	}
	if ps.cameraLayout != nil {
		ps.cameraLayout.Release()
		ps.cameraLayout = nil
	}
	if ps.textureLayout != nil {
		ps.textureLayout.Release()
		ps.textureLayout = nil
	}
}
