package platform

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/drapengine/drape/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window *glfw.Window
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for WebGPU.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
	}
	glfw.Terminate()
	return nil
}

// SurfaceDescriptor exposes the native window handle for surface creation.
func (p *Platform) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(p.Window)
}

// FramebufferSize returns the drawable size in pixels, which differs from
// the window size on high-DPI displays.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

// SetTitle updates the window title, used by the frame counter.
func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}

func (p *Platform) ShouldClose() bool {
	return p.Window.ShouldClose()
}

// PumpMessages drains the window system's event queue, dispatching into the
// registered callbacks.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

// GetAbsoluteTime returns seconds since GLFW initialization.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := translateKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		core.InputProcessKey(code, true)
	case glfw.Release:
		core.InputProcessKey(code, false)
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	core.InputProcessButton(b, action == glfw.Press)
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	fbWidth, fbHeight := w.GetFramebufferSize()
	winWidth, winHeight := w.GetSize()
	x, y := cursorToFramebuffer(xpos, ypos, fbWidth, fbHeight, winWidth, winHeight)
	core.InputProcessMouseMove(x, y)
}

// cursorToFramebuffer maps a cursor position from window coordinates to
// framebuffer pixels. On high-DPI displays the two differ, and the renderer
// and picking both work in framebuffer pixels.
func cursorToFramebuffer(x, y float64, fbWidth, fbHeight, winWidth, winHeight int) (int32, int32) {
	if winWidth > 0 {
		x *= float64(fbWidth) / float64(winWidth)
	}
	if winHeight > 0 {
		y *= float64(fbHeight) / float64(winHeight)
	}
	return int32(x), int32(y)
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	core.InputProcessMouseWheel(float32(yoff))
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}
