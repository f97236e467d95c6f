package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestPNG(t *testing.T, width, height int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadFromMemory(t *testing.T) {
	tl := &TextureLoader{}
	raw := encodeTestPNG(t, 8, 4, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})

	data, err := tl.LoadFromMemory(raw)
	if err != nil {
		t.Fatal(err)
	}
	if data.Width != 8 || data.Height != 4 {
		t.Fatalf("size = %dx%d", data.Width, data.Height)
	}
	if len(data.Pixels) != 8*4*4 {
		t.Fatalf("pixel buffer = %d bytes", len(data.Pixels))
	}
	if data.Pixels[0] != 0x10 || data.Pixels[1] != 0x20 || data.Pixels[2] != 0x30 || data.Pixels[3] != 0xFF {
		t.Errorf("first pixel = %v", data.Pixels[:4])
	}
}

func TestLoadFromMemoryRejectsGarbage(t *testing.T) {
	tl := &TextureLoader{}
	if _, err := tl.LoadFromMemory([]byte("not an image")); err == nil {
		t.Fatal("garbage bytes must not decode")
	}
}

func TestLoadFromFile(t *testing.T) {
	tl := &TextureLoader{}
	path := filepath.Join(t.TempDir(), "pixel.png")
	if err := os.WriteFile(path, encodeTestPNG(t, 2, 2, color.RGBA{A: 0xFF}), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := tl.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if data.Width != 2 || data.Height != 2 {
		t.Errorf("size = %dx%d", data.Width, data.Height)
	}

	if _, err := tl.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestFallbackTexture(t *testing.T) {
	tl := &TextureLoader{}
	data := tl.FallbackTexture(64)

	if data.Width != 64 || data.Height != 64 {
		t.Fatalf("size = %dx%d", data.Width, data.Height)
	}
	// first cell is magenta
	if data.Pixels[0] != 0xFF || data.Pixels[1] != 0x00 || data.Pixels[2] != 0xFF {
		t.Errorf("cell (0,0) = %v", data.Pixels[:4])
	}
	// one cell to the right is black
	i := fallbackCellSize * 4
	if data.Pixels[i] != 0x00 || data.Pixels[i+2] != 0x00 {
		t.Errorf("cell (1,0) = %v", data.Pixels[i:i+4])
	}
	// alpha is opaque everywhere
	for p := 3; p < len(data.Pixels); p += 4 {
		if data.Pixels[p] != 0xFF {
			t.Fatalf("transparent pixel at byte %d", p)
		}
	}
}
