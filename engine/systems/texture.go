package systems

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/aura/engine/assets/loaders"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

// imageSource yields decoded pixel data for a path relative to the asset
// root. Satisfied by assets.AssetManager.
type imageSource interface {
	LoadImage(relPath string) (*loaders.ImageData, error)
}

// textureMapBackend owns the GPU side of a texture map. Satisfied by
// renderer.Renderer.
type textureMapBackend interface {
	AcquireTextureMap(tm *metadata.TextureMap, pixels []uint8) error
	ReleaseTextureMap(tm *metadata.TextureMap)
}

/**
 * @brief Loads texture maps and hands them to the backend. Roles without
 * a file get a flat dummy texture so every material always binds all
 * five sampler slots.
 */
type TextureSystem struct {
	images  imageSource
	backend textureMapBackend
}

func NewTextureSystem(images imageSource, backend textureMapBackend) *TextureSystem {
	return &TextureSystem{
		images:  images,
		backend: backend,
	}
}

// AcquireMap loads the map described by the spec and uploads it. The
// returned map is fully usable; on any failure nothing is retained.
func (ts *TextureSystem) AcquireMap(spec metadata.ImageMapSpec, basePath string) (*metadata.TextureMap, error) {
	texture := &metadata.Texture{
		ChannelCount: 4,
	}
	texture.ID = core.IdentifierAquireNewID(texture)

	var pixels []uint8
	if spec.Filename == "" || spec.Dummy {
		// Generated textures have no asset filename; the name carries a
		// unique suffix instead.
		texture.Name = core.GenerateNewName(fmt.Sprintf("%s_%s", metadata.DUMMY_TEXTURE_NAME, spec.Role.String()))
		var dim uint32
		pixels, dim = metadata.DummyPixels(spec.Role)
		texture.Width = dim
		texture.Height = dim
	} else {
		relPath := filepath.Join(basePath, spec.Filename)
		data, err := ts.images.LoadImage(relPath)
		if err != nil {
			return nil, err
		}
		texture.Name = spec.Filename
		texture.Width = data.Width
		texture.Height = data.Height
		pixels = data.Pixels
	}

	tm := &metadata.TextureMap{
		Texture:       texture,
		Role:          spec.Role,
		FilterMinify:  metadata.TextureFilterModeLinear,
		FilterMagnify: metadata.TextureFilterModeLinear,
		RepeatU:       metadata.TextureRepeatRepeat,
		RepeatV:       metadata.TextureRepeatRepeat,
	}
	if err := ts.backend.AcquireTextureMap(tm, pixels); err != nil {
		core.IdentifierReleaseID(texture.ID)
		err := fmt.Errorf("func AcquireMap - failed to upload texture '%s': %w", texture.Name, err)
		core.LogError(err.Error())
		return nil, err
	}

	return tm, nil
}

// ReleaseMap destroys the GPU resources of a map. Safe to call once per
// acquired map.
func (ts *TextureSystem) ReleaseMap(tm *metadata.TextureMap) {
	if tm == nil || tm.InternalData == nil {
		return
	}
	ts.backend.ReleaseTextureMap(tm)
	if tm.Texture != nil {
		core.IdentifierReleaseID(tm.Texture.ID)
	}
}
