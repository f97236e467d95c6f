// Package shaders embeds the WGSL sources compiled into the render
// pipelines. The asset system can override them at runtime for hot reload.
package shaders

import (
	_ "embed"
)

// ClothWGSL shades the textured cloth with a floored diffuse term.
//
//go:embed cloth.wgsl
var ClothWGSL string

// SolidWGSL shades untextured white geometry, used by the debug view.
//
//go:embed solid.wgsl
var SolidWGSL string
