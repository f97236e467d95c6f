package loaders

import (
	"fmt"
	"os"
	"strings"
)

// ShaderLoader reads WGSL source files for the render pipelines.
type ShaderLoader struct{}

// Load returns the shader source text. The file must contain both a vertex
// and a fragment entry point.
func (sl *ShaderLoader) Load(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", path, err)
	}
	source := string(raw)
	if !strings.Contains(source, "@vertex") || !strings.Contains(source, "@fragment") {
		return "", fmt.Errorf("shader %s is missing a vertex or fragment entry point", path)
	}
	return source, nil
}
