package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

// sceneBackend uploads geometry and records the draw list. Satisfied by
// renderer.Renderer.
type sceneBackend interface {
	CreateGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error
	RecordDrawList(packet *metadata.RenderPacket) error
}

// matricesPublisher republishes the view matrix blocks for the active
// object. Satisfied by CameraSystem.
type matricesPublisher interface {
	SetActiveObject(index int) error
}

// Row spacing of the three demo instances along Z.
var instanceOffsets = [3]mgl32.Vec3{
	{0, 0, 0},
	{0, 0, 2.5},
	{0, 0, -2.5},
}

type skyboxMesh struct {
	geometry *metadata.Geometry
	material *metadata.Material
}

/**
 * @brief Holds the mesh table and builds the ordered draw list. Exactly
 * one mesh is active at a time, drawn once per instance offset with the
 * roster material at that slot; toggling advances the active index with
 * wraparound and synchronously re-records the command buffers. The
 * instance materials never change, only the mesh under them does.
 */
type SceneSystem struct {
	backend sceneBackend
	camera  matricesPublisher

	meshes     []*metadata.Geometry
	materials  []*metadata.Material
	activeMesh int
	skybox     *skyboxMesh
	nextID     uint32
}

func NewSceneSystem(backend sceneBackend, camera matricesPublisher) *SceneSystem {
	return &SceneSystem{
		backend: backend,
		camera:  camera,
	}
}

// SetMaterials installs the ordered instance materials. Instance i binds
// materials[i mod len].
func (ss *SceneSystem) SetMaterials(materials []*metadata.Material) error {
	if len(materials) == 0 {
		err := fmt.Errorf("func SetMaterials - scene needs at least one material")
		core.LogError(err.Error())
		return err
	}
	ss.materials = materials
	return nil
}

// AddMesh uploads a mesh and appends it to the table.
func (ss *SceneSystem) AddMesh(config *metadata.GeometryConfig) error {
	geometry, err := ss.upload(config)
	if err != nil {
		return err
	}
	ss.meshes = append(ss.meshes, geometry)
	return nil
}

// SetSkybox uploads the skybox mesh. The skybox is drawn first, before
// the scene items, with a zero world offset.
func (ss *SceneSystem) SetSkybox(config *metadata.GeometryConfig, material *metadata.Material) error {
	geometry, err := ss.upload(config)
	if err != nil {
		return err
	}
	ss.skybox = &skyboxMesh{geometry: geometry, material: material}
	return nil
}

func (ss *SceneSystem) upload(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	geometry := &metadata.Geometry{
		ID:         ss.nextID,
		InternalID: metadata.InvalidID,
		Name:       config.Name,
	}
	if err := ss.backend.CreateGeometry(config, geometry); err != nil {
		err := fmt.Errorf("func upload - failed to upload mesh '%s': %w", config.Name, err)
		core.LogError(err.Error())
		return nil, err
	}
	ss.nextID++
	return geometry, nil
}

func (ss *SceneSystem) ActiveMesh() int {
	return ss.activeMesh
}

func (ss *SceneSystem) MeshCount() int {
	return len(ss.meshes)
}

// ToggleObject advances the active mesh with wraparound, republishes the
// view matrices for the new object and re-records the command buffers.
// Blocks until the rebuild is done.
func (ss *SceneSystem) ToggleObject() error {
	if len(ss.meshes) == 0 {
		err := fmt.Errorf("func ToggleObject - scene has no meshes")
		core.LogError(err.Error())
		return err
	}
	ss.activeMesh = (ss.activeMesh + 1) % len(ss.meshes)

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_OBJECT_TOGGLED,
		Data: ss.activeMesh,
	})

	if err := ss.camera.SetActiveObject(ss.activeMesh); err != nil {
		return err
	}
	return ss.Record(0)
}

// Record re-records all command buffers from the current draw list.
func (ss *SceneSystem) Record(deltaTime float64) error {
	return ss.backend.RecordDrawList(ss.BuildPacket(deltaTime))
}

// BuildPacket assembles the ordered draw list for the current state:
// the skybox item first when present, then the active mesh at each
// instance offset with that slot's material.
func (ss *SceneSystem) BuildPacket(deltaTime float64) *metadata.RenderPacket {
	packet := &metadata.RenderPacket{
		DeltaTime: deltaTime,
	}
	if ss.skybox != nil {
		packet.DrawSkybox = true
		packet.Items = append(packet.Items, metadata.DrawItem{
			MeshIndex: ss.skybox.geometry.InternalID,
			Material:  ss.skybox.material,
		})
	}
	if len(ss.meshes) == 0 || len(ss.materials) == 0 {
		return packet
	}
	active := ss.meshes[ss.activeMesh]
	for i, offset := range instanceOffsets {
		packet.Items = append(packet.Items, metadata.DrawItem{
			MeshIndex:   active.InternalID,
			Material:    ss.materials[i%len(ss.materials)],
			WorldOffset: offset,
		})
	}
	return packet
}
