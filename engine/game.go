package engine

import (
	"github.com/drapengine/drape/engine/renderer"
)

type Initialize func(engine *Engine) error
type Update func(deltaTime float64) error
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error

// Game is the contract between the engine and the application sitting on top
// of it. The engine drives the callbacks, the game owns its own state.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}

	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}
