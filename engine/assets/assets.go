package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/assets/loaders"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type subscription struct {
	types map[metadata.ResourceType]bool
	ch    chan string
}

// AssetManager indexes the files under a resource root by relative path and,
// when watching, keeps the index current and tells subscribers what changed.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done          chan struct{}
	stopped       chan struct{}
	fsnotify      *fsnotify.Watcher
	watching      bool
	isClosed      bool
	subscriptions []*subscription
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeText, &loaders.TextLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	return am, nil
}

// Initialize indexes everything under assetsDir. With watch set, directories
// are also registered with fsnotify and changes are picked up until Shutdown.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	if s, err := os.Stat(root); err != nil || !s.IsDir() {
		return errors.Wrapf(core.ErrAssetNotFound, "asset root '%s'", assetsDir)
	}
	am.root = root

	if err := am.watchRecursive(root, watch); err != nil {
		return err
	}
	if watch {
		am.watching = true
		go am.start()
	}
	core.LogInfo("asset manager indexed %d files under '%s' (watch=%t)", am.Count(), root, watch)
	return nil
}

// Root is the absolute resource root.
func (am *AssetManager) Root() string {
	return am.root
}

// Count returns the number of indexed assets.
func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Resolve turns a root-relative name into the full path of an indexed asset.
func (am *AssetManager) Resolve(name string) (string, error) {
	key := am.key(name)
	am.mutex.RLock()
	_, exists := am.assets[key]
	am.mutex.RUnlock()
	if !exists {
		return "", errors.Wrapf(core.ErrAssetNotFound, "'%s'", name)
	}
	return filepath.Join(am.root, filepath.FromSlash(key)), nil
}

// Info returns what the index knows about name.
func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.key(name)]
	return info, ok
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, errors.Wrapf(core.ErrUnknownResourceType, "no loader registered for asset type: %s", resourceType)
	}

	path, err := am.Resolve(name)
	if err != nil {
		return nil, err
	}

	key := am.key(name)
	am.mutex.Lock()
	asset := am.assets[key]
	asset.LastLoaded = time.Now()
	am.assets[key] = asset // Update the loaded time
	am.mutex.Unlock()

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}
	res.Name = key
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	if asset == nil {
		return nil
	}
	info, ok := am.Info(asset.Name)
	if !ok {
		return nil
	}
	if loader, ok := am.loaders[info.Type]; ok {
		return loader.Unload(asset)
	}
	return nil
}

/**
 * Subscribe returns a channel receiving the root-relative names of created or
 * modified files of the given types (all types when none are given). The
 * channel is buffered; names are dropped when the subscriber falls behind.
 * It is closed by Shutdown.
 */
func (am *AssetManager) Subscribe(types ...metadata.ResourceType) <-chan string {
	sub := &subscription{
		types: make(map[metadata.ResourceType]bool, len(types)),
		ch:    make(chan string, 16),
	}
	for _, t := range types {
		sub.types[t] = true
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		close(sub.ch)
		return sub.ch
	}
	am.subscriptions = append(am.subscriptions, sub)
	return sub.ch
}

// Shutdown stops the watcher and closes every subscription.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	if am.watching {
		close(am.done)
		<-am.stopped
	} else if err := am.fsnotify.Close(); err != nil {
		return err
	}

	am.mutex.Lock()
	for _, s := range am.subscriptions {
		close(s.ch)
	}
	am.subscriptions = nil
	am.mutex.Unlock()
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogWarn("failed to watch '%s': %s", e.Name, err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if key, t, ok := am.handleFileEvent(e.Name); ok {
					am.notify(key, t)
				}
			}
			// Removed directories drop their watch on their own.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(key string, t metadata.ResourceType) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	for _, s := range am.subscriptions {
		if len(s.types) > 0 && !s.types[t] {
			continue
		}
		select {
		case s.ch <- key:
		default:
			core.LogDebug("dropping change of '%s': subscriber is busy", key)
		}
	}
}

// watchRecursive indexes every file under path and, with watch set, adds all
// directories to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (string, metadata.ResourceType, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return "", assetType, false
	}
	key := am.key(path)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[key] = AssetInfo{
		Path:       key,
		Type:       assetType,
		LastLoaded: time.Time{},
	}
	return key, assetType, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, am.key(path))
}

// key maps absolute or root-relative paths to the slash separated index key.
func (am *AssetManager) key(path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(am.root, path); err == nil {
			path = rel
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "./")
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag", ".geom", ".glsl":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".txt", ".toml":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}

func (am *AssetManager) String() string {
	return fmt.Sprintf("assets '%s' (%d files, watch=%t)", am.root, am.Count(), am.watching)
}
