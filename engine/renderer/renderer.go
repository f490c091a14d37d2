package renderer

import (
	"errors"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/platform"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
	"github.com/spaghettifunk/aura/engine/renderer/vulkan"
)

type Renderer struct {
	backend RendererBackend
}

// New builds the renderer over the Vulkan backend. materialCount is the
// exact number of materials the application will build; the descriptor
// pool is sized to it.
func New(p *platform.Platform, assetRoot string, materialCount uint32) *Renderer {
	return &Renderer{
		backend: vulkan.New(p, assetRoot, materialCount),
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint16) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) CreateGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error {
	return r.backend.CreateGeometry(config, geometry)
}

func (r *Renderer) AcquireTextureMap(tm *metadata.TextureMap, pixels []uint8) error {
	return r.backend.AcquireTextureMap(tm, pixels)
}

func (r *Renderer) ReleaseTextureMap(tm *metadata.TextureMap) {
	r.backend.ReleaseTextureMap(tm)
}

func (r *Renderer) CreateMaterial(material *metadata.Material, skybox bool) error {
	return r.backend.CreateMaterial(material, skybox)
}

func (r *Renderer) UpdateMatrices(scene, skybox *metadata.UBOMatrices) error {
	return r.backend.UpdateMatrices(scene, skybox)
}

func (r *Renderer) UpdateParams(params *metadata.UBOParams) error {
	return r.backend.UpdateParams(params)
}

// RecordDrawList re-records the command buffers from a new draw list.
func (r *Renderer) RecordDrawList(packet *metadata.RenderPacket) error {
	return r.backend.RecordCommandBuffers(packet)
}

// DrawFrame presents one frame. A swapchain rebuild in progress is not an
// error; the frame is simply skipped.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if err := r.backend.DrawFrame(packet.DeltaTime); err != nil {
		if errors.Is(err, core.ErrSwapchainBooting) {
			return nil
		}
		core.LogError("DrawFrame failed. Application shutting down...")
		return err
	}
	return nil
}
