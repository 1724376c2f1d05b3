package systems

import (
	"fmt"
	"image"
	"path"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/assets"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

// TextureSystem decodes images from the asset root and uploads them once.
// Handles are cached by name; 0 always means failure.
type TextureSystem struct {
	Config *TextureSystemConfig
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]metadata.TextureBinding
	// sub systems
	jobSystem    *JobSystem
	assetManager *assets.AssetManager
	backend      renderer.RendererBackend
}

// NewTextureSystem wires the texture system. js may be nil, in which case
// cubemap faces are decoded one after the other.
func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, am *assets.AssetManager, backend renderer.RendererBackend) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:                 config,
		RegisteredTextureTable: make(map[string]metadata.TextureBinding),
		jobSystem:              js,
		assetManager:           am,
		backend:                backend,
	}, nil
}

/**
 * Load2D decodes the image at name (relative to the asset root), flips it so
 * row 0 is the bottom and uploads it.
 */
func (ts *TextureSystem) Load2D(name string, mipmap bool) (metadata.TextureHandle, error) {
	if b, ok := ts.RegisteredTextureTable[name]; ok {
		return b.Handle, nil
	}
	if err := ts.checkCapacity(name); err != nil {
		return 0, err
	}
	img, err := ts.decode(name, true)
	if err != nil {
		core.LogError("failed to load texture '%s': %s", name, err.Error())
		return 0, err
	}
	handle, err := ts.backend.TextureCreate2D(img, mipmap)
	if err != nil {
		core.LogError("failed to upload texture '%s': %s", name, err.Error())
		return 0, err
	}
	ts.RegisteredTextureTable[name] = metadata.TextureBinding{Handle: handle, Kind: metadata.Texture2D}
	core.LogDebug("texture '%s' loaded (%dx%d)", name, img.Rect.Dx(), img.Rect.Dy())
	return handle, nil
}

/**
 * LoadCubemap loads cubemaps/<dir>/{posx,negx,posy,negy,posz,negz}.png.
 * Faces are not flipped. Every face must exist and share one size.
 */
func (ts *TextureSystem) LoadCubemap(dir string, mipmap bool) (metadata.TextureHandle, error) {
	key := path.Join("cubemaps", dir)
	if b, ok := ts.RegisteredTextureTable[key]; ok {
		return b.Handle, nil
	}
	if err := ts.checkCapacity(key); err != nil {
		return 0, err
	}

	faces, err := ts.decodeFaces(key)
	if err != nil {
		err = errors.Wrapf(core.ErrCubemapFace, "cubemap '%s': %s", dir, err.Error())
		core.LogError(err.Error())
		return 0, err
	}
	for i, face := range metadata.CubemapFaces {
		if faces[i].Rect.Size() != faces[0].Rect.Size() {
			err := errors.Wrapf(core.ErrCubemapFace, "cubemap '%s' face %s is %v, expected %v", dir, face, faces[i].Rect.Size(), faces[0].Rect.Size())
			core.LogError(err.Error())
			return 0, err
		}
	}

	handle, err := ts.backend.TextureCreateCube(faces, mipmap)
	if err != nil {
		core.LogError("failed to upload cubemap '%s': %s", dir, err.Error())
		return 0, err
	}
	ts.RegisteredTextureTable[key] = metadata.TextureBinding{Handle: handle, Kind: metadata.TextureCubeMap}
	return handle, nil
}

// Get returns the binding of an already loaded texture or cubemap.
func (ts *TextureSystem) Get(name string) (metadata.TextureBinding, bool) {
	b, ok := ts.RegisteredTextureTable[name]
	return b, ok
}

func (ts *TextureSystem) Shutdown() error {
	for name, b := range ts.RegisteredTextureTable {
		ts.backend.TextureDestroy(b.Handle)
		delete(ts.RegisteredTextureTable, name)
	}
	return nil
}

// decodeFaces decodes the six faces under dir, on the job system when there
// is one. Decoding never touches the graphics context.
func (ts *TextureSystem) decodeFaces(dir string) ([6]*image.NRGBA, error) {
	var faces [6]*image.NRGBA
	tasks := make([]JobTask, 0, len(faces))
	for i, face := range metadata.CubemapFaces {
		i, name := i, path.Join(dir, face+".png")
		tasks = append(tasks, JobTask{
			Name: "decode " + name,
			Run: func() error {
				img, err := ts.decode(name, false)
				if err != nil {
					return errors.Wrapf(err, "face %s", metadata.CubemapFaces[i])
				}
				faces[i] = img
				return nil
			},
		})
	}
	if ts.jobSystem == nil {
		for _, t := range tasks {
			if err := t.Run(); err != nil {
				return faces, err
			}
		}
		return faces, nil
	}
	return faces, ts.jobSystem.RunAll(tasks...)
}

func (ts *TextureSystem) checkCapacity(name string) error {
	if uint32(len(ts.RegisteredTextureTable)) >= ts.Config.MaxTextureCount {
		err := fmt.Errorf("unable to load '%s': texture system is full (%d)", name, ts.Config.MaxTextureCount)
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (ts *TextureSystem) decode(name string, flip bool) (*image.NRGBA, error) {
	res, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: flip})
	if err != nil {
		return nil, err
	}
	img, ok := res.Data.(*image.NRGBA)
	if !ok {
		return nil, errors.Wrapf(core.ErrTextureDecode, "'%s' did not decode to an image", name)
	}
	return img, nil
}
