package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

const validWGSL = `
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestShaderLoaderLoad(t *testing.T) {
	sl := &ShaderLoader{}
	path := filepath.Join(t.TempDir(), "test.wgsl")
	if err := os.WriteFile(path, []byte(validWGSL), 0o644); err != nil {
		t.Fatal(err)
	}

	source, err := sl.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if source != validWGSL {
		t.Error("source was not returned verbatim")
	}
}

func TestShaderLoaderRejectsIncompleteSource(t *testing.T) {
	sl := &ShaderLoader{}
	dir := t.TempDir()

	cases := map[string]string{
		"vertex_only.wgsl":   "@vertex fn vs_main() {}",
		"fragment_only.wgsl": "@fragment fn fs_main() {}",
		"empty.wgsl":         "",
	}
	for name, source := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := sl.Load(path); err == nil {
			t.Errorf("%s: incomplete shader must fail validation", name)
		}
	}
}

func TestShaderLoaderMissingFile(t *testing.T) {
	sl := &ShaderLoader{}
	if _, err := sl.Load(filepath.Join(t.TempDir(), "missing.wgsl")); err == nil {
		t.Fatal("missing file must fail")
	}
}
