package math

import (
	"fmt"
	m "math"
	"strconv"
)

// ConvertToSRGBA approximates the sRGB transfer curve so that clear colors
// and palette entries render the same on Unorm and UnormSrgb swapchains.
func ConvertToSRGBA(rgba Vec4) Vec4 {
	gamma := func(val float32) float32 {
		return float32(m.Pow(float64(val+0.055), 2.4))
	}
	return Vec4{X: gamma(rgba.X), Y: gamma(rgba.Y), Z: gamma(rgba.Z), W: gamma(rgba.W)}
}

// HexToRGBA parses a 3 or 6 digit hex color ("F2B134" or "FB4") into a
// gamma-corrected Vec4 with alpha 1.
func HexToRGBA(hex string) (Vec4, error) {
	if len(hex) == 3 {
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded)
	}
	if len(hex) != 6 {
		return Vec4{}, fmt.Errorf("invalid hex color %q", hex)
	}
	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return Vec4{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return Vec4{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return Vec4{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return ConvertToSRGBA(Vec4{
		X: float32(r) / 255.0,
		Y: float32(g) / 255.0,
		Z: float32(b) / 255.0,
		W: 1.0,
	}), nil
}

// ColorGenerator cycles through a fixed debug palette.
type ColorGenerator struct {
	colors []Vec4
	idx    int
}

func NewColorGenerator() *ColorGenerator {
	palette := []string{
		"5FB49C", "F2B134", "F93943", "6EF9F5", "B33C86",
		"E4FF1A", "FFB800", "FF5714", "FFEECF", "4D9078",
		"D5F2E3", "FBF5F3", "C6CAED", "A288E3", "CCFFCB",
	}
	colors := make([]Vec4, 0, len(palette))
	for _, hex := range palette {
		c, err := HexToRGBA(hex)
		if err != nil {
			continue
		}
		colors = append(colors, c)
	}
	return &ColorGenerator{colors: colors}
}

func (cg *ColorGenerator) Next() Vec4 {
	c := cg.colors[cg.idx%len(cg.colors)]
	cg.idx++
	return c
}
