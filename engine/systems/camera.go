package systems

import (
	"fmt"

	"github.com/drapengine/drape/engine/core"
	"github.com/drapengine/drape/engine/renderer/components"
)

// DefaultCameraName resolves to the fallback camera that always exists.
const DefaultCameraName = "default"

type cameraLookup struct {
	camera         *components.Camera
	referenceCount uint16
}

// CameraSystem hands out named, reference-counted cameras. The default
// camera is never released.
type CameraSystem struct {
	Config        *CameraSystemConfig
	lookup        map[string]*cameraLookup
	DefaultCamera *components.Camera
}

type CameraSystemConfig struct {
	MaxCameraCount uint16
	ViewportWidth  float32
	ViewportHeight float32
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	cs := &CameraSystem{
		Config:        config,
		lookup:        make(map[string]*cameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(config.ViewportWidth, config.ViewportHeight),
	}
	return cs, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.lookup = nil
	return nil
}

// Acquire returns the camera registered under name, creating it on first
// use. The reference counter is incremented.
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == DefaultCameraName {
		return cs.DefaultCamera, nil
	}
	entry, ok := cs.lookup[name]
	if !ok {
		if len(cs.lookup) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("func CameraSystem.Acquire failed to acquire new slot. Adjust camera system config to allow more")
			core.LogError(err.Error())
			return nil, err
		}
		core.LogDebug("creating new camera named '%s'", name)
		entry = &cameraLookup{
			camera: components.NewCamera(cs.Config.ViewportWidth, cs.Config.ViewportHeight),
		}
		cs.lookup[name] = entry
	}
	entry.referenceCount++
	return entry.camera, nil
}

// Release decrements the reference counter and frees the slot when it
// reaches zero. Releasing the default camera is a no-op.
func (cs *CameraSystem) Release(name string) {
	if name == DefaultCameraName {
		core.LogWarn("cannot release the default camera")
		return
	}
	entry, ok := cs.lookup[name]
	if !ok {
		core.LogWarn("CameraSystem.Release called for unknown camera '%s'", name)
		return
	}
	entry.referenceCount--
	if entry.referenceCount == 0 {
		delete(cs.lookup, name)
	}
}

// OnResize propagates a new viewport size to every managed camera.
func (cs *CameraSystem) OnResize(width, height float32) {
	cs.Config.ViewportWidth = width
	cs.Config.ViewportHeight = height
	cs.DefaultCamera.Resize(width, height)
	for _, entry := range cs.lookup {
		entry.camera.Resize(width, height)
	}
}
