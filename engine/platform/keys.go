package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/drapengine/drape/engine/core"
)

// translateKey maps GLFW key identifiers onto the engine key codes. Keys
// the engine does not track are reported as not ok.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch key {
	case glfw.KeyBackspace:
		return core.KEY_BACKSPACE, true
	case glfw.KeyEnter:
		return core.KEY_ENTER, true
	case glfw.KeyTab:
		return core.KEY_TAB, true
	case glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case glfw.KeySpace:
		return core.KEY_SPACE, true
	case glfw.KeyEnd:
		return core.KEY_END, true
	case glfw.KeyHome:
		return core.KEY_HOME, true
	case glfw.KeyLeft:
		return core.KEY_LEFT, true
	case glfw.KeyUp:
		return core.KEY_UP, true
	case glfw.KeyRight:
		return core.KEY_RIGHT, true
	case glfw.KeyDown:
		return core.KEY_DOWN, true
	case glfw.KeyF1:
		return core.KEY_F1, true
	case glfw.KeyF2:
		return core.KEY_F2, true
	case glfw.KeyF3:
		return core.KEY_F3, true
	case glfw.KeyF4:
		return core.KEY_F4, true
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT, true
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT, true
	case glfw.KeyLeftControl:
		return core.KEY_LCONTROL, true
	case glfw.KeyRightControl:
		return core.KEY_RCONTROL, true
	case glfw.KeyLeftAlt:
		return core.KEY_LALT, true
	case glfw.KeyRightAlt:
		return core.KEY_RALT, true
	}

	// letter keys share their ASCII values
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return core.KeyCode(uint32(core.KEY_A) + uint32(key-glfw.KeyA)), true
	}
	return 0, false
}
