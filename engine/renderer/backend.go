package renderer

import "github.com/spaghettifunk/aura/engine/renderer/metadata"

// RendererBackend is the render API boundary. The Vulkan backend is the
// only implementation; the interface keeps the systems layer free of
// API-specific types.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	CreateGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error
	AcquireTextureMap(tm *metadata.TextureMap, pixels []uint8) error
	ReleaseTextureMap(tm *metadata.TextureMap)
	CreateMaterial(material *metadata.Material, skybox bool) error
	UpdateMatrices(scene, skybox *metadata.UBOMatrices) error
	UpdateParams(params *metadata.UBOParams) error
	RecordCommandBuffers(packet *metadata.RenderPacket) error
	DrawFrame(deltaTime float64) error
}
