package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/drapengine/drape/engine/assets"
	"github.com/drapengine/drape/engine/assets/loaders"
	"github.com/drapengine/drape/engine/core"
	"github.com/drapengine/drape/engine/math"
	"github.com/drapengine/drape/engine/platform"
	"github.com/drapengine/drape/engine/renderer"
	"github.com/drapengine/drape/engine/renderer/shaders"
	"github.com/drapengine/drape/engine/systems"
)

type Stage uint8

const (
	EngineStageUninitialized Stage = iota
	EngineStageBooting
	EngineStageRunning
	EngineStageShuttingDown
)

const (
	assetsDir       = "assets"
	clothShaderPath = "assets/shaders/cloth.wgsl"
	solidShaderPath = "assets/shaders/solid.wgsl"
)

// Engine wires the platform, asset manager, renderer and camera system
// together and drives the main loop around the game's callbacks.
type Engine struct {
	currentStage Stage
	gameInstance *Game

	isRunning   bool
	isSuspended bool

	platform     *platform.Platform
	assetManager *assets.AssetManager
	rend         *renderer.Renderer
	cameraSystem *systems.CameraSystem

	clock    *core.Clock
	lastTime float64

	width  uint32
	height uint32

	// set from the asset watcher goroutine, consumed on the main thread
	shadersDirty   atomic.Bool
	pendingTexture atomic.Value // string

	fpsAccumulator float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("func New - game and its config are required")
	}
	if g.FnInitialize == nil || g.FnUpdate == nil || g.FnRender == nil {
		return nil, fmt.Errorf("func New - game callbacks are not fully assigned")
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting
	config := e.gameInstance.ApplicationConfig
	core.SetLogLevel(config.LogLevel)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("func Initialize - event system failed to initialize")
	}
	if err := core.InputInitialize(); err != nil {
		return err
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onQuit)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)
	core.EventRegister(core.EVENT_CODE_ASSET_RELOADED, e.onAssetChanged)

	p, err := platform.New()
	if err != nil {
		return err
	}
	e.platform = p
	if err := p.Startup(config.Name, config.StartPosX, config.StartPosY, config.Window.Width, config.Window.Height); err != nil {
		return err
	}

	e.width, e.height = p.FramebufferSize()

	e.rend = renderer.New()
	e.rend.SetVsync(config.Renderer.Vsync)
	background, err := math.HexToRGBA(config.Renderer.Background)
	if err != nil {
		core.LogWarn("invalid background color %q: %s", config.Renderer.Background, err)
	} else {
		e.rend.SetClearColor(background)
	}
	if err := e.rend.Initialize(config.Name, p.SurfaceDescriptor(), e.width, e.height); err != nil {
		return err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		return err
	}
	e.assetManager = am
	if err := am.Initialize(assetsDir); err != nil {
		core.LogWarn("asset watching disabled: %s", err)
	}
	am.SetReloadHandler(e.onAssetReload)

	if err := e.loadShaders(); err != nil {
		return err
	}

	cs, err := systems.NewCameraSystem(&systems.CameraSystemConfig{
		MaxCameraCount: 16,
		ViewportWidth:  float32(e.width),
		ViewportHeight: float32(e.height),
	})
	if err != nil {
		return err
	}
	e.cameraSystem = cs

	if err := e.gameInstance.FnInitialize(e); err != nil {
		return err
	}

	core.LogInfo("engine initialized")
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	go core.ProcessEvents()

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning && !e.platform.ShouldClose() {
		e.platform.PumpMessages()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.platform.GetAbsoluteTime()

		if !e.isSuspended {
			e.applyPendingReloads()

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed: %s", err)
				e.isRunning = false
				break
			}

			packet := renderer.RenderPacket{}
			if err := e.gameInstance.FnRender(&packet, delta); err != nil {
				core.LogError("game render failed: %s", err)
				e.isRunning = false
				break
			}
			if err := e.rend.DrawFrame(&packet); err != nil {
				if errors.Is(err, core.ErrOutOfMemory) {
					core.LogError("device out of memory, shutting down")
				} else {
					core.LogError("draw frame failed: %s", err)
				}
				e.isRunning = false
				break
			}
		}

		frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
		core.MetricsUpdate(frameElapsedTime)
		e.updateWindowTitle(delta)

		// input state snapshots roll over at the very end of the frame
		if err := core.InputUpdate(delta); err != nil {
			core.LogWarn("input update failed: %s", err)
		}

		e.lastTime = currentTime
	}

	e.isRunning = false
	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	core.LogInfo("shutting down")

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if err := core.EventSystemShutdown(); err != nil {
		core.LogError("failed to shutdown event system: %s", err)
	}
	if err := core.InputShutdown(); err != nil {
		core.LogError("failed to shutdown input system: %s", err)
	}
	if e.cameraSystem != nil {
		if err := e.cameraSystem.Shutdown(); err != nil {
			core.LogError("failed to shutdown camera system: %s", err)
		}
	}
	if e.assetManager != nil {
		if err := e.assetManager.Shutdown(); err != nil {
			core.LogError("failed to shutdown asset manager: %s", err)
		}
	}
	if e.rend != nil {
		if err := e.rend.Shutdown(); err != nil {
			core.LogError("failed to shutdown renderer: %s", err)
		}
	}
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			core.LogError("failed to shutdown platform: %s", err)
		}
	}
	return nil
}

func (e *Engine) Renderer() *renderer.Renderer        { return e.rend }
func (e *Engine) AssetManager() *assets.AssetManager  { return e.assetManager }
func (e *Engine) CameraSystem() *systems.CameraSystem { return e.cameraSystem }
func (e *Engine) FramebufferSize() (uint32, uint32)   { return e.width, e.height }
func (e *Engine) Config() *ApplicationConfig          { return e.gameInstance.ApplicationConfig }

// loadShaders prefers sources from the assets directory so they can be
// edited live, falling back to the embedded copies.
func (e *Engine) loadShaders() error {
	clothSource := shaders.ClothWGSL
	solidSource := shaders.SolidWGSL

	if res, err := e.assetManager.LoadShader(clothShaderPath); err == nil {
		clothSource = res.Data.(string)
	}
	if res, err := e.assetManager.LoadShader(solidShaderPath); err == nil {
		solidSource = res.Data.(string)
	}
	return e.rend.SetShaderSources(clothSource, solidSource)
}

// onAssetReload runs on the watcher goroutine. GPU work has to happen on the
// main thread, so it only flags what changed and defers the notification
// through the event queue.
func (e *Engine) onAssetReload(path string, resourceType assets.ResourceType) {
	switch resourceType {
	case assets.ResourceTypeShader:
		e.shadersDirty.Store(true)
	case assets.ResourceTypeImage:
		e.pendingTexture.Store(path)
	default:
		return
	}
	core.EventEnqueue(core.EventContext{
		Type: core.EVENT_CODE_ASSET_RELOADED,
		Data: core.AssetEvent{Path: path},
	})
}

func (e *Engine) onAssetChanged(context core.EventContext) {
	if ae, ok := context.Data.(core.AssetEvent); ok {
		core.LogInfo("asset changed on disk: %s", ae.Path)
	}
}

func (e *Engine) applyPendingReloads() {
	if e.shadersDirty.CompareAndSwap(true, false) {
		core.LogInfo("reloading shaders")
		if err := e.loadShaders(); err != nil {
			core.LogError("shader reload failed, keeping previous pipelines: %s", err)
		}
	}
	if pending := e.pendingTexture.Swap(""); pending != nil {
		if path, ok := pending.(string); ok && path != "" {
			core.LogInfo("reloading texture %s", path)
			if err := e.loadTexture(path); err != nil {
				core.LogError("texture reload failed: %s", err)
			}
		}
	}
}

func (e *Engine) loadTexture(path string) error {
	res, err := e.assetManager.LoadImage(path)
	if err != nil {
		return err
	}
	image := res.Data.(*loaders.ImageData)
	return e.rend.SetClothTexture(image.Pixels, image.Width, image.Height)
}

func (e *Engine) updateWindowTitle(delta float64) {
	e.fpsAccumulator += delta
	if e.fpsAccumulator < 1.0 {
		return
	}
	e.fpsAccumulator = 0
	fps, frameTime := core.MetricsFrame()
	e.platform.SetTitle(fmt.Sprintf("%s | %.0f fps | %.2f ms", e.gameInstance.ApplicationConfig.Name, fps, frameTime))
}

func (e *Engine) onQuit(context core.EventContext) {
	core.LogInfo("quit requested")
	e.isRunning = false
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(core.SystemEvent)
	if !ok {
		return
	}
	if se.WindowWidth == e.width && se.WindowHeight == e.height {
		return
	}
	e.width = se.WindowWidth
	e.height = se.WindowHeight

	if e.width == 0 || e.height == 0 {
		core.LogInfo("window minimized, suspending")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming")
		e.isSuspended = false
	}

	if err := e.rend.OnResize(e.width, e.height); err != nil {
		core.LogError("renderer resize failed: %s", err)
	}
	e.cameraSystem.OnResize(float32(e.width), float32(e.height))

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			core.LogError("game resize failed: %s", err)
		}
	}
}
