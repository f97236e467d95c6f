package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// diffuseTexture is the sampled texture behind bind group 1.
type diffuseTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

// UploadTexture replaces the diffuse texture and rebuilds its bind group.
// Pixels must be tightly packed RGBA8, width*height*4 bytes.
func (b *Backend) UploadTexture(pixels []byte, width, height uint32) error {
	if len(pixels) != int(width*height*4) {
		return fmt.Errorf("texture data size %d does not match %dx%d RGBA", len(pixels), width, height)
	}

	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Diffuse Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create diffuse texture: %w", err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("create diffuse texture view: %w", err)
	}

	sampler := b.diffuse.sampler
	if sampler == nil {
		sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
			Label:         "Diffuse Sampler",
			AddressModeU:  wgpu.AddressModeClampToEdge,
			AddressModeV:  wgpu.AddressModeClampToEdge,
			AddressModeW:  wgpu.AddressModeClampToEdge,
			MagFilter:     wgpu.FilterModeLinear,
			MinFilter:     wgpu.FilterModeLinear,
			MipmapFilter:  wgpu.MipmapFilterModeNearest,
			LodMinClamp:   0.0,
			LodMaxClamp:   32.0,
			MaxAnisotropy: 1,
		})
		if err != nil {
			view.Release()
			texture.Release()
			return fmt.Errorf("create diffuse sampler: %w", err)
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "diffuse_bind_group",
		Layout: b.pipelines.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: view,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
		},
	})
	if err != nil {
		view.Release()
		texture.Release()
		return fmt.Errorf("create diffuse bind group: %w", err)
	}

	// drop the previous texture, keeping the shared sampler
	if b.diffuse.bindGroup != nil {
		b.diffuse.bindGroup.Release()
	}
	if b.diffuse.view != nil {
		b.diffuse.view.Release()
	}
	if b.diffuse.texture != nil {
		b.diffuse.texture.Release()
	}
	b.diffuse = diffuseTexture{
		texture:   texture,
		view:      view,
		sampler:   sampler,
		bindGroup: bindGroup,
	}
	return nil
}

func (dt *diffuseTexture) release() {
	if dt.bindGroup != nil {
		dt.bindGroup.Release()
		dt.bindGroup = nil
	}
	if dt.sampler != nil {
		dt.sampler.Release()
		dt.sampler = nil
	}
	if dt.view != nil {
		dt.view.Release()
		dt.view = nil
	}
	if dt.texture != nil {
		dt.texture.Release()
		dt.texture = nil
	}
}
