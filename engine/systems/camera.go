package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/mathex"
	"github.com/spaghettifunk/aura/engine/renderer/components"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

const (
	// Yaw applied to every demo mesh so it faces the camera.
	modelBaseYawDeg float32 = -90.0
	// The second mesh is authored at a different yaw.
	modelAltYawDeg float32 = 45.0
)

// matricesBackend receives both view matrix blocks. Satisfied by
// renderer.Renderer.
type matricesBackend interface {
	UpdateMatrices(scene, skybox *metadata.UBOMatrices) error
}

/**
 * @brief Owns the viewing camera and derives the two per-view uniform
 * blocks from it: the scene block, whose model matrix carries the yaw of
 * the active object, and the skybox block with the view translation
 * stripped. Republished on every view change, object toggle and resize.
 */
type CameraSystem struct {
	backend matricesBackend
	camera  *components.Camera

	activeObject int
	width        uint32
	height       uint32
}

func NewCameraSystem(backend matricesBackend) *CameraSystem {
	return &CameraSystem{
		backend: backend,
		camera:  components.NewCamera(),
	}
}

func (cs *CameraSystem) Initialize(section config.CameraSection, width, height uint32) error {
	if width == 0 || height == 0 {
		err := fmt.Errorf("func Initialize - framebuffer size %dx%d is invalid", width, height)
		core.LogError(err.Error())
		return err
	}
	cs.width = width
	cs.height = height

	cs.camera.FovDeg = section.FovDeg
	cs.camera.Near = section.Near
	cs.camera.Far = section.Far
	cs.camera.SetPosition(mgl32.Vec3{section.Position[0], section.Position[1], section.Position[2]})
	cs.camera.SetEulerRotation(mgl32.Vec3{section.Rotation[0], section.Rotation[1], section.Rotation[2]})

	return cs.Publish()
}

func (cs *CameraSystem) Camera() *components.Camera {
	return cs.camera
}

// SetActiveObject records which demo mesh is showing and republishes the
// matrix blocks with its model rotation.
func (cs *CameraSystem) SetActiveObject(index int) error {
	cs.activeObject = index
	return cs.Publish()
}

// OnResize updates the cached framebuffer size and republishes with the
// new aspect ratio.
func (cs *CameraSystem) OnResize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	cs.width = width
	cs.height = height
	return cs.Publish()
}

// Publish rebuilds both matrix blocks and writes them to their uniform
// buffers.
func (cs *CameraSystem) Publish() error {
	scene, skybox := cs.Matrices()
	return cs.backend.UpdateMatrices(&scene, &skybox)
}

// Matrices derives the scene and skybox blocks from the current camera
// state.
func (cs *CameraSystem) Matrices() (scene, skybox metadata.UBOMatrices) {
	aspect := float32(cs.width) / float32(cs.height)
	projection := cs.camera.GetProjection(aspect)

	yaw := modelBaseYawDeg
	if cs.activeObject == 1 {
		yaw += modelAltYawDeg
	}

	scene = metadata.UBOMatrices{
		Projection: projection,
		Model:      mgl32.HomogRotate3DY(mathex.DegToRad(yaw)),
		View:       cs.camera.GetView(),
		CamPos:     cs.camera.GetPosition(),
	}
	skybox = metadata.UBOMatrices{
		Projection: projection,
		Model:      mgl32.Ident4(),
		View:       cs.camera.GetSkyboxView(),
		CamPos:     cs.camera.GetPosition(),
	}
	return scene, skybox
}
