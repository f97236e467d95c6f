package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/drapengine/drape/engine/assets/loaders"
	"github.com/drapengine/drape/engine/core"
)

// ReloadHandler is invoked from the watcher goroutine whenever a tracked
// asset file changes on disk.
type ReloadHandler func(path string, resourceType ResourceType)

type AssetInfo struct {
	Path       string
	Type       ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory, loads resources on demand and
// watches for on-disk changes to drive hot reload.
type AssetManager struct {
	assets map[string]AssetInfo

	textureLoader *loaders.TextureLoader
	shaderLoader  *loaders.ShaderLoader

	mutex    sync.RWMutex
	reload   ReloadHandler
	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &AssetManager{
		assets:        make(map[string]AssetInfo),
		textureLoader: &loaders.TextureLoader{},
		shaderLoader:  &loaders.ShaderLoader{},
		fsnotify:      fsWatch,
		done:          make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	return nil
}

// SetReloadHandler registers the hot-reload callback. The handler runs on
// the watcher goroutine.
func (am *AssetManager) SetReloadHandler(handler ReloadHandler) {
	am.mutex.Lock()
	am.reload = handler
	am.mutex.Unlock()
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

// LoadImage decodes an image asset. When the file cannot be read or
// decoded a checkerboard fallback is returned so the scene still renders.
func (am *AssetManager) LoadImage(path string) (*Resource, error) {
	data, err := am.textureLoader.Load(path)
	if err != nil {
		core.LogWarn("falling back to checkerboard texture: %s", err)
		data = am.textureLoader.FallbackTexture(256)
	}
	am.touch(path, ResourceTypeImage)
	return newResource(filepath.Base(path), path, ResourceTypeImage, data), nil
}

// LoadImageFromMemory decodes embedded image bytes.
func (am *AssetManager) LoadImageFromMemory(name string, raw []byte) (*Resource, error) {
	data, err := am.textureLoader.LoadFromMemory(raw)
	if err != nil {
		return nil, err
	}
	return newResource(name, "", ResourceTypeImage, data), nil
}

// LoadShader reads a WGSL source asset.
func (am *AssetManager) LoadShader(path string) (*Resource, error) {
	source, err := am.shaderLoader.Load(path)
	if err != nil {
		return nil, err
	}
	am.touch(path, ResourceTypeShader)
	return newResource(filepath.Base(path), path, ResourceTypeShader, source), nil
}

func (am *AssetManager) touch(path string, resourceType ResourceType) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
}

func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds or removes all directories under the given one from
// the watch list, indexing the files it encounters along the way.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	_, known := am.assets[path]
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	reload := am.reload
	am.mutex.Unlock()

	if known && reload != nil {
		core.LogDebug("asset changed on disk: %s", path)
		reload(path, assetType)
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}

func determineAssetType(path string) ResourceType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg":
		return ResourceTypeImage
	case ".wgsl":
		return ResourceTypeShader
	default:
		return ResourceTypeNone
	}
}
