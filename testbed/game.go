package testbed

import (
	"github.com/drapengine/drape/engine"
	"github.com/drapengine/drape/engine/assets/loaders"
	"github.com/drapengine/drape/engine/core"
	"github.com/drapengine/drape/engine/math"
	"github.com/drapengine/drape/engine/physics"
	"github.com/drapengine/drape/engine/renderer"
	"github.com/drapengine/drape/engine/renderer/components"
)

// dragStrength scales screen-space mouse deltas into simulation forces.
const dragStrength float32 = 2.0

const cameraSpeed float32 = 10.0
const zoomStep float32 = 0.1

type ClothGame struct {
	*engine.Game
}

type gameState struct {
	engine      *engine.Engine
	worldCamera *components.Camera

	cloth      *physics.Cloth
	simulation *physics.Simulation

	// debugView renders the untextured shading so the geometry is easier
	// to inspect.
	debugView bool
	meshDirty bool

	backgrounds *math.ColorGenerator

	dragging  bool
	dragX     int
	dragY     int
	dragLastX int32
	dragLastY int32
}

func NewClothGame(config *engine.ApplicationConfig) (*ClothGame, error) {
	cg := &ClothGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	cg.FnInitialize = cg.Initialize
	cg.FnUpdate = cg.Update
	cg.FnRender = cg.Render
	cg.FnOnResize = cg.OnResize
	cg.FnShutdown = cg.Shutdown

	return cg, nil
}

func (g *ClothGame) Initialize(e *engine.Engine) error {
	core.LogDebug("ClothGame Initialize fn....")

	state := g.State.(*gameState)
	state.engine = e
	state.worldCamera = e.CameraSystem().DefaultCamera
	state.backgrounds = math.NewColorGenerator()

	config := g.ApplicationConfig
	state.cloth = physics.NewCloth(
		config.Cloth.Width,
		config.Cloth.Height,
		config.Cloth.ParticlesX,
		config.Cloth.ParticlesY,
	)
	state.simulation = physics.NewSimulation(state.cloth)

	if err := e.Renderer().UploadClothMesh(state.cloth); err != nil {
		return err
	}

	// LoadImage degrades to a checkerboard when the file is missing, so the
	// scene always has something to sample.
	res, err := e.AssetManager().LoadImage(config.Cloth.Texture)
	if err != nil {
		return err
	}
	image := res.Data.(*loaders.ImageData)
	if err := e.Renderer().SetClothTexture(image.Pixels, image.Width, image.Height); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, g.onButton)
	core.EventRegister(core.EVENT_CODE_BUTTON_RELEASED, g.onButton)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, g.onMouseMove)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, g.onMouseWheel)

	return nil
}

func (g *ClothGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	g.moveCamera(state, deltaTime)

	if core.InputWasKeyPressed(core.KEY_TAB) {
		state.debugView = !state.debugView
		core.LogDebug("debug view: %t", state.debugView)
	}
	if core.InputWasKeyPressed(core.KEY_C) {
		state.engine.Renderer().SetClearColor(state.backgrounds.Next())
	}

	if state.simulation.Update(deltaTime) {
		state.meshDirty = true
	}
	return nil
}

func (g *ClothGame) moveCamera(state *gameState, deltaTime float64) {
	step := cameraSpeed * float32(deltaTime)
	if core.InputIsKeyDown(core.KEY_W) {
		state.worldCamera.Translate(math.NewVec3(0, step, 0))
	}
	if core.InputIsKeyDown(core.KEY_S) {
		state.worldCamera.Translate(math.NewVec3(0, -step, 0))
	}
	if core.InputIsKeyDown(core.KEY_A) {
		state.worldCamera.Translate(math.NewVec3(-step, 0, 0))
	}
	if core.InputIsKeyDown(core.KEY_D) {
		state.worldCamera.Translate(math.NewVec3(step, 0, 0))
	}
}

func (g *ClothGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)

	packet.Camera = state.worldCamera
	packet.Cloth = state.cloth
	packet.MeshDirty = state.meshDirty
	packet.DebugView = state.debugView

	state.meshDirty = false
	return nil
}

func (g *ClothGame) OnResize(width uint32, height uint32) error {
	core.LogDebug("viewport resized to %dx%d", width, height)
	return nil
}

func (g *ClothGame) Shutdown() error {
	state := g.State.(*gameState)
	state.dragging = false
	return nil
}

// onButton starts a cloth drag on shift+click and ends it on release. The
// click is unprojected into a world-space ray and tested against the cloth
// triangles to find the grabbed particle.
func (g *ClothGame) onButton(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok || me.Button != core.BUTTON_LEFT {
		return
	}
	state := g.State.(*gameState)

	if context.Type == core.EVENT_CODE_BUTTON_RELEASED {
		if state.dragging {
			state.dragging = false
			core.EventFire(core.EventContext{
				Type: core.EVENT_CODE_PARTICLE_RELEASED,
				Data: core.PickEvent{X: state.dragX, Y: state.dragY},
			})
		}
		return
	}

	if !core.InputIsKeyDown(core.KEY_LSHIFT) && !core.InputIsKeyDown(core.KEY_RSHIFT) {
		return
	}

	ray := state.worldCamera.ScreenRay(math.NewVec2(float32(me.PosX), float32(me.PosY)))
	x, y, hit := state.cloth.Intersects(ray)
	if !hit {
		return
	}

	state.dragging = true
	state.dragX = x
	state.dragY = y
	state.dragLastX = me.PosX
	state.dragLastY = me.PosY
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_PARTICLE_PICKED,
		Data: core.PickEvent{X: x, Y: y},
	})
}

// onMouseMove drags the picked particle and its diagonal neighbours along
// with the cursor.
func (g *ClothGame) onMouseMove(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	if !state.dragging {
		return
	}

	dx := float32(me.PosX-state.dragLastX) * dragStrength
	dy := -float32(me.PosY-state.dragLastY) * dragStrength
	state.dragLastX = me.PosX
	state.dragLastY = me.PosY

	state.cloth.MouseForce(state.dragX, state.dragY, dx, dy)
	state.cloth.MouseForce(state.dragX-1, state.dragY-1, dx, dy)
	state.cloth.MouseForce(state.dragX+1, state.dragY+1, dx, dy)
}

func (g *ClothGame) onMouseWheel(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	state.worldCamera.AddScale(me.ScrollY * zoomStep)
}
