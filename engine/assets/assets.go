package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/aura/engine/assets/loaders"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

/**
 * @brief Indexes the files under the asset root and watches them for
 * changes. A write to a watched file fires EVENT_CODE_ASSET_WRITTEN so
 * interested systems can reload.
 */
type AssetManager struct {
	root   string
	assets map[string]AssetInfo

	imageLoader *loaders.ImageLoader
	meshLoader  *loaders.MeshLoader

	mutex sync.RWMutex

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
		assets:      make(map[string]AssetInfo),
		imageLoader: &loaders.ImageLoader{},
		meshLoader:  &loaders.MeshLoader{},
		fsnotify:    fsWatch,
		done:        make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.root = assetsDir

	if err := am.watchRecursive(assetsDir, false); err != nil {
		return err
	}
	go am.start()

	return nil
}

// Root returns the asset root directory.
func (am *AssetManager) Root() string {
	return am.root
}

// LoadImage decodes the image at the given path relative to the asset
// root.
func (am *AssetManager) LoadImage(relPath string) (*loaders.ImageData, error) {
	path := filepath.Join(am.root, relPath)
	data, err := am.imageLoader.Load(path)
	if err != nil {
		return nil, err
	}
	am.touch(path, AssetTypeImage)
	return data, nil
}

// LoadMesh reads the mesh at the given path relative to the asset root.
func (am *AssetManager) LoadMesh(relPath, name string) (*metadata.GeometryConfig, error) {
	path := filepath.Join(am.root, relPath)
	config, err := am.meshLoader.Load(path, name)
	if err != nil {
		return nil, err
	}
	am.touch(path, AssetTypeMesh)
	return config, nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) touch(path string, assetType AssetType) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
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
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted path, so just try to drop it from both
			// the index and the watch list.
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

// watchRecursive adds all directories under the given one to the watch
// list, or removes them when unWatch is set.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
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

// handleFileEvent indexes a created or modified file and announces the
// write.
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}

	am.mutex.Lock()
	_, known := am.assets[path]
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	if known {
		core.LogDebug(fmt.Sprintf("asset written: %s", path))
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_WRITTEN,
			Data: path,
		})
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff":
		return AssetTypeImage
	case ".gltf", ".glb":
		return AssetTypeMesh
	case ".spv", ".vert", ".frag":
		return AssetTypeShader
	case ".toml":
		return AssetTypeConfig
	default:
		return AssetTypeNone
	}
}
