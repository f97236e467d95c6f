package math

import (
	"testing"
)

func TestHexToRGBA(t *testing.T) {
	c, err := HexToRGBA("FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if c.X <= c.Y || c.X <= c.Z {
		t.Errorf("red channel not dominant: %+v", c)
	}
	if c.W <= 1.0 {
		t.Errorf("alpha = %v, want gamma-lifted above 1", c.W)
	}

	short, err := HexToRGBA("F00")
	if err != nil {
		t.Fatal(err)
	}
	if !short.Compare(c, tolerance) {
		t.Errorf("3-digit form %+v differs from 6-digit form %+v", short, c)
	}

	if _, err := HexToRGBA("XYZ123"); err == nil {
		t.Error("expected error for non-hex input")
	}
	if _, err := HexToRGBA("12345"); err == nil {
		t.Error("expected error for 5-digit input")
	}
}

func TestColorGeneratorCycles(t *testing.T) {
	cg := NewColorGenerator()
	first := cg.Next()
	var last Vec4
	for i := 1; i < 15; i++ {
		last = cg.Next()
	}
	if first.Compare(last, tolerance) {
		t.Error("palette entries should differ")
	}
	if got := cg.Next(); !got.Compare(first, tolerance) {
		t.Errorf("generator did not wrap to first color: %+v", got)
	}
}
