package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadApplicationConfigDefaults(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if config.Name != "Drape" {
		t.Errorf("name = %q", config.Name)
	}
	if config.Window.Width != 800 || config.Window.Height != 600 {
		t.Errorf("window = %dx%d", config.Window.Width, config.Window.Height)
	}
	if config.Cloth.ParticlesX != 22 || config.Cloth.ParticlesY != 26 {
		t.Errorf("cloth grid = %dx%d", config.Cloth.ParticlesX, config.Cloth.ParticlesY)
	}
	if config.Cloth.Width != 10.0 || config.Cloth.Height != 14.0 {
		t.Errorf("cloth extent = %vx%v", config.Cloth.Width, config.Cloth.Height)
	}
}

func TestLoadApplicationConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drape.toml")
	raw := `
name = "Custom"

[window]
width = 1280
height = 720

[cloth]
particles_x = 30
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Name != "Custom" {
		t.Errorf("name = %q", config.Name)
	}
	if config.Window.Width != 1280 || config.Window.Height != 720 {
		t.Errorf("window = %dx%d", config.Window.Width, config.Window.Height)
	}
	// overridden
	if config.Cloth.ParticlesX != 30 {
		t.Errorf("particles_x = %d", config.Cloth.ParticlesX)
	}
	// untouched keys keep their defaults
	if config.Cloth.ParticlesY != 26 {
		t.Errorf("particles_y = %d", config.Cloth.ParticlesY)
	}
	if config.Renderer.Background != "14141C" {
		t.Errorf("background = %q", config.Renderer.Background)
	}
}

func TestLoadApplicationConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"zero_window.toml": "[window]\nwidth = 0\n",
		"tiny_cloth.toml":  "[cloth]\nparticles_x = 2\n",
		"bad_syntax.toml":  "window = [",
	}
	for name, raw := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadApplicationConfig(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
