package systems

import (
	"fmt"

	"github.com/spaghettifunk/aura/engine/assets"
	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/platform"
	"github.com/spaghettifunk/aura/engine/renderer"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

/**
 * @brief Wires the systems together and owns their lifecycle. Creation
 * order here is dependency order; Shutdown walks it in reverse.
 */
type SystemManager struct {
	config *config.ApplicationConfig

	AssetManager   *assets.AssetManager
	Renderer       *renderer.Renderer
	TextureSystem  *TextureSystem
	MaterialSystem *MaterialSystem
	LightingSystem *LightingSystem
	CameraSystem   *CameraSystem
	SceneSystem    *SceneSystem
}

func NewSystemManager(cfg *config.ApplicationConfig, p *platform.Platform) (*SystemManager, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	r := renderer.New(p, cfg.Application.AssetRoot, materialBudget(cfg))
	ts := NewTextureSystem(am, r)
	ms := NewMaterialSystem(ts, r)
	ls := NewLightingSystem(r)
	cs := NewCameraSystem(r)
	ss := NewSceneSystem(r, cs)

	return &SystemManager{
		config:         cfg,
		AssetManager:   am,
		Renderer:       r,
		TextureSystem:  ts,
		MaterialSystem: ms,
		LightingSystem: ls,
		CameraSystem:   cs,
		SceneSystem:    ss,
	}, nil
}

// Initialize boots the renderer, loads everything the config declares
// and records the initial command buffers. Any failure here is fatal to
// the application.
func (sm *SystemManager) Initialize() error {
	app := sm.config.Application

	if err := sm.AssetManager.Initialize(app.AssetRoot); err != nil {
		return err
	}
	if err := sm.Renderer.Initialize(app.Name, app.Width, app.Height); err != nil {
		return err
	}
	if err := sm.CameraSystem.Initialize(sm.config.Camera, app.Width, app.Height); err != nil {
		return err
	}
	if err := sm.LightingSystem.Publish(); err != nil {
		return err
	}
	if err := sm.loadRoster(); err != nil {
		return err
	}
	return sm.SceneSystem.Record(0)
}

// loadRoster builds the materials, meshes and skybox named by the
// config, in that order. The materials keep their declared order; scene
// instance i binds material i, whatever mesh is showing.
func (sm *SystemManager) loadRoster() error {
	materials := make([]*metadata.Material, 0, len(sm.config.Materials))
	for _, decl := range sm.config.Materials {
		material, err := sm.MaterialSystem.BuildMaterial(materialConfigFromDecl(decl))
		if err != nil {
			return err
		}
		materials = append(materials, material)
	}
	if err := sm.SceneSystem.SetMaterials(materials); err != nil {
		return err
	}

	for _, decl := range sm.config.Meshes {
		meshConfig, err := sm.AssetManager.LoadMesh(decl.File, decl.Name)
		if err != nil {
			return err
		}
		if err := sm.SceneSystem.AddMesh(meshConfig); err != nil {
			return err
		}
	}
	if sm.SceneSystem.MeshCount() == 0 {
		err := fmt.Errorf("func loadRoster - config declares no meshes")
		core.LogError(err.Error())
		return err
	}

	if sm.config.Skybox.Mesh != "" {
		material, err := sm.MaterialSystem.BuildSkyboxMaterial(skyboxMaterialConfig(sm.config.Skybox))
		if err != nil {
			return err
		}
		meshConfig, err := sm.AssetManager.LoadMesh(sm.config.Skybox.Mesh, "skybox")
		if err != nil {
			return err
		}
		if err := sm.SceneSystem.SetSkybox(meshConfig, material); err != nil {
			return err
		}
	}

	return nil
}

// Update runs the per-frame system work outside of rendering.
func (sm *SystemManager) Update(deltaTime float64) error {
	return sm.LightingSystem.Update(deltaTime)
}

func (sm *SystemManager) OnResize(width, height uint16) error {
	if err := sm.CameraSystem.OnResize(uint32(width), uint32(height)); err != nil {
		return err
	}
	return sm.Renderer.OnResize(width, height)
}

func (sm *SystemManager) DrawFrame(packet *metadata.RenderPacket) error {
	return sm.Renderer.DrawFrame(packet)
}

func (sm *SystemManager) Shutdown() error {
	core.LogInfo("shutting down systems...")
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.Renderer.Shutdown(); err != nil {
		return err
	}
	return sm.AssetManager.Shutdown()
}

// materialBudget is the number of descriptor sets the renderer must be
// able to allocate: one per roster material plus one for the skybox.
// The pool is sized to exactly this, with no slack.
func materialBudget(cfg *config.ApplicationConfig) uint32 {
	count := uint32(len(cfg.Materials))
	if cfg.Skybox.Mesh != "" {
		count++
	}
	return count
}

// materialConfigFromDecl maps a config roster entry onto the five role
// slots. Empty filenames become dummy maps.
func materialConfigFromDecl(decl config.MaterialDecl) *metadata.MaterialConfig {
	mc := &metadata.MaterialConfig{
		Name:     decl.Name,
		BasePath: decl.BasePath,
	}
	files := map[metadata.TextureRole]string{
		metadata.TextureRoleAlbedo:    decl.Albedo,
		metadata.TextureRoleNormal:    decl.Normal,
		metadata.TextureRoleMetallic:  decl.Metallic,
		metadata.TextureRoleRoughness: decl.Roughness,
		metadata.TextureRoleAO:        decl.AO,
	}
	for role, filename := range files {
		mc.Maps[role] = metadata.ImageMapSpec{
			Filename: filename,
			Role:     role,
			Dummy:    filename == "",
		}
	}
	return mc
}

// skyboxMaterialConfig builds the skybox material: the cubemap image in
// the albedo slot, dummies everywhere else. The skybox reads only its
// albedo.
func skyboxMaterialConfig(decl config.SkyboxDecl) *metadata.MaterialConfig {
	mc := &metadata.MaterialConfig{
		Name: "skybox",
	}
	for _, role := range metadata.AllTextureRoles() {
		mc.Maps[role] = metadata.ImageMapSpec{Role: role, Dummy: true}
	}
	mc.Maps[metadata.TextureRoleAlbedo] = metadata.ImageMapSpec{
		Filename: decl.Cubemap,
		Role:     metadata.TextureRoleAlbedo,
		Dummy:    decl.Cubemap == "",
	}
	return mc
}
