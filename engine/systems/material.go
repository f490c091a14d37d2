package systems

import (
	"fmt"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

// materialBackend binds a material whose maps are all acquired.
// Satisfied by renderer.Renderer.
type materialBackend interface {
	CreateMaterial(material *metadata.Material, skybox bool) error
}

/**
 * @brief Owns every material of the application. A build is
 * all-or-nothing: the five texture maps load in role order, the first
 * failure releases whatever was acquired and registers nothing, and a
 * registered material is always Complete. Rebinding is unsupported.
 */
type MaterialSystem struct {
	textureSystem *TextureSystem
	backend       materialBackend

	registered map[string]*metadata.Material
	nextID     uint32
}

func NewMaterialSystem(ts *TextureSystem, backend materialBackend) *MaterialSystem {
	return &MaterialSystem{
		textureSystem: ts,
		backend:       backend,
		registered:    make(map[string]*metadata.Material),
	}
}

// BuildMaterial loads the five maps of a scene material and allocates
// its descriptor set.
func (ms *MaterialSystem) BuildMaterial(config *metadata.MaterialConfig) (*metadata.Material, error) {
	return ms.build(config, false)
}

// BuildSkyboxMaterial is BuildMaterial for the skybox: the material's
// descriptor set reads the skybox view matrices instead of the scene
// ones.
func (ms *MaterialSystem) BuildSkyboxMaterial(config *metadata.MaterialConfig) (*metadata.Material, error) {
	return ms.build(config, true)
}

func (ms *MaterialSystem) build(config *metadata.MaterialConfig, skybox bool) (*metadata.Material, error) {
	if config.Name == "" {
		err := fmt.Errorf("func build - material config has no name")
		core.LogError(err.Error())
		return nil, err
	}
	if _, exists := ms.registered[config.Name]; exists {
		err := fmt.Errorf("func build - material '%s' already registered", config.Name)
		core.LogError(err.Error())
		return nil, err
	}

	material := &metadata.Material{
		ID:         ms.nextID,
		InternalID: metadata.InvalidID,
		Name:       config.Name,
	}

	for _, role := range metadata.AllTextureRoles() {
		tm, err := ms.textureSystem.AcquireMap(config.Maps[role], config.BasePath)
		if err != nil {
			ms.releaseMaps(material)
			err := fmt.Errorf("func build - material '%s' map '%s' failed: %w", config.Name, role.String(), err)
			core.LogError(err.Error())
			return nil, err
		}
		material.Maps[role] = tm
	}

	if err := ms.backend.CreateMaterial(material, skybox); err != nil {
		ms.releaseMaps(material)
		err := fmt.Errorf("func build - material '%s' descriptor binding failed: %w", config.Name, err)
		core.LogError(err.Error())
		return nil, err
	}

	ms.registered[config.Name] = material
	ms.nextID++
	core.LogInfo(fmt.Sprintf("material '%s' built", config.Name))
	return material, nil
}

// Acquire returns a registered material by name.
func (ms *MaterialSystem) Acquire(name string) (*metadata.Material, error) {
	material, ok := ms.registered[name]
	if !ok {
		err := fmt.Errorf("func Acquire - material '%s' not registered", name)
		core.LogError(err.Error())
		return nil, err
	}
	return material, nil
}

func (ms *MaterialSystem) Shutdown() error {
	for _, material := range ms.registered {
		ms.releaseMaps(material)
	}
	ms.registered = make(map[string]*metadata.Material)
	return nil
}

func (ms *MaterialSystem) releaseMaps(material *metadata.Material) {
	for i, tm := range material.Maps {
		if tm != nil {
			ms.textureSystem.ReleaseMap(tm)
			material.Maps[i] = nil
		}
	}
}
