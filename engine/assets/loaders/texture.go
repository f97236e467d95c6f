package loaders

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// ImageData is the decoded payload of an image resource: tightly packed
// RGBA8 pixels ready for texture upload.
type ImageData struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

type TextureLoader struct{}

// Load decodes a PNG or JPEG file into RGBA8.
func (tl *TextureLoader) Load(path string) (*ImageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return tl.LoadFromMemory(raw)
}

// LoadFromMemory decodes image bytes into RGBA8, converting whatever
// subformat the decoder produced.
func (tl *TextureLoader) LoadFromMemory(raw []byte) (*ImageData, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &ImageData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// checkerboard cell size in pixels
const fallbackCellSize = 32

// FallbackTexture builds a magenta and black checkerboard used when an
// image asset cannot be loaded.
func (tl *TextureLoader) FallbackTexture(size uint32) *ImageData {
	pixels := make([]byte, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			i := (y*size + x) * 4
			if ((x/fallbackCellSize)+(y/fallbackCellSize))%2 == 0 {
				pixels[i] = 0xFF
				pixels[i+2] = 0xFF
			}
			pixels[i+3] = 0xFF
		}
	}
	return &ImageData{Pixels: pixels, Width: size, Height: size}
}
