package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/drapengine/drape/engine/core"
)

// ApplicationConfig drives window creation and the scene defaults. It is
// usually loaded from a TOML file next to the binary.
type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"-"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"-"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`

	LogLevel core.LogLevel `toml:"-"`

	Window   WindowConfig   `toml:"window"`
	Cloth    ClothConfig    `toml:"cloth"`
	Renderer RendererConfig `toml:"renderer"`
}

type WindowConfig struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// ClothConfig sizes the simulated cloth: physical extent in world units and
// particle grid resolution.
type ClothConfig struct {
	Width      float32 `toml:"width"`
	Height     float32 `toml:"height"`
	ParticlesX int     `toml:"particles_x"`
	ParticlesY int     `toml:"particles_y"`
	Texture    string  `toml:"texture"`
}

type RendererConfig struct {
	// Background is a hex color like "14141C".
	Background string `toml:"background"`
	Vsync      bool   `toml:"vsync"`
}

// DefaultApplicationConfig matches the built-in scene: a 10x14 cloth with a
// 22x26 particle grid in an 800x600 window.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX: 100,
		StartPosY: 100,
		Name:      "Drape",
		LogLevel:  core.DebugLevel,
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Cloth: ClothConfig{
			Width:      10.0,
			Height:     14.0,
			ParticlesX: 22,
			ParticlesY: 26,
			Texture:    "assets/textures/cloth.png",
		},
		Renderer: RendererConfig{
			Background: "14141C",
			Vsync:      true,
		},
	}
}

// LoadApplicationConfig reads a TOML config file, filling anything the file
// omits from the defaults. A missing file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogDebug("no config file at %s, using defaults", path)
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size must be non-zero")
	}
	if c.Cloth.ParticlesX < 4 || c.Cloth.ParticlesY < 4 {
		return fmt.Errorf("cloth grid must be at least 4x4 particles")
	}
	if c.Cloth.Width <= 0 || c.Cloth.Height <= 0 {
		return fmt.Errorf("cloth extent must be positive")
	}
	return nil
}
