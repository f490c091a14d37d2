package systems

import (
	"testing"

	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type fakeSceneBackend struct {
	nextInternalID uint32
	recorded       []*metadata.RenderPacket
}

func (f *fakeSceneBackend) CreateGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error {
	geometry.InternalID = f.nextInternalID
	geometry.VertexCount = uint32(len(config.Vertices))
	geometry.IndexCount = uint32(len(config.Indices))
	f.nextInternalID++
	return nil
}

func (f *fakeSceneBackend) RecordDrawList(packet *metadata.RenderPacket) error {
	f.recorded = append(f.recorded, packet)
	return nil
}

type fakePublisher struct {
	published int
	lastIndex int
}

func (f *fakePublisher) SetActiveObject(index int) error {
	f.published++
	f.lastIndex = index
	return nil
}

var rosterNames = []string{"plastic", "metal", "stone"}

func sceneWithMeshes(t *testing.T, backend *fakeSceneBackend, publisher *fakePublisher, count int) *SceneSystem {
	t.Helper()
	ss := NewSceneSystem(backend, publisher)

	materials := make([]*metadata.Material, 0, len(rosterNames))
	for _, name := range rosterNames {
		materials = append(materials, &metadata.Material{Name: name})
	}
	if err := ss.SetMaterials(materials); err != nil {
		t.Fatalf("SetMaterials: %v", err)
	}

	for i := 0; i < count; i++ {
		config := &metadata.GeometryConfig{
			Name:     "mesh",
			Vertices: make([]metadata.Vertex3D, 3),
			Indices:  []uint32{0, 1, 2},
		}
		if err := ss.AddMesh(config); err != nil {
			t.Fatalf("AddMesh: %v", err)
		}
	}
	return ss
}

func TestToggleObjectWrapsAround(t *testing.T) {
	ss := sceneWithMeshes(t, &fakeSceneBackend{}, &fakePublisher{}, 3)

	want := []int{1, 2, 0, 1}
	for i, expected := range want {
		if err := ss.ToggleObject(); err != nil {
			t.Fatalf("ToggleObject %d: %v", i, err)
		}
		if got := ss.ActiveMesh(); got != expected {
			t.Fatalf("after toggle %d active = %d, want %d", i+1, got, expected)
		}
	}
}

func TestToggleRecordsAndRepublishesOnce(t *testing.T) {
	backend := &fakeSceneBackend{}
	publisher := &fakePublisher{}
	ss := sceneWithMeshes(t, backend, publisher, 2)

	if err := ss.ToggleObject(); err != nil {
		t.Fatalf("ToggleObject: %v", err)
	}
	if len(backend.recorded) != 1 {
		t.Fatalf("toggled once but recorded %d times", len(backend.recorded))
	}
	if publisher.published != 1 {
		t.Fatalf("toggled once but republished matrices %d times", publisher.published)
	}
	if publisher.lastIndex != ss.ActiveMesh() {
		t.Fatalf("republished for object %d, active is %d", publisher.lastIndex, ss.ActiveMesh())
	}
}

func TestToggleWithoutMeshesFails(t *testing.T) {
	ss := NewSceneSystem(&fakeSceneBackend{}, &fakePublisher{})
	if err := ss.ToggleObject(); err == nil {
		t.Fatal("toggling an empty scene should fail")
	}
}

func TestSetMaterialsRejectsEmptyRoster(t *testing.T) {
	ss := NewSceneSystem(&fakeSceneBackend{}, &fakePublisher{})
	if err := ss.SetMaterials(nil); err == nil {
		t.Fatal("an empty material roster should be rejected")
	}
}

func TestBuildPacketInstanceOffsets(t *testing.T) {
	ss := sceneWithMeshes(t, &fakeSceneBackend{}, &fakePublisher{}, 1)

	packet := ss.BuildPacket(0.016)
	if len(packet.Items) != 3 {
		t.Fatalf("draw list has %d items, want 3", len(packet.Items))
	}
	wantZ := []float32{0, 2.5, -2.5}
	for i, item := range packet.Items {
		if item.WorldOffset.X() != 0 || item.WorldOffset.Y() != 0 {
			t.Errorf("item %d offset %v, want x=y=0", i, item.WorldOffset)
		}
		if item.WorldOffset.Z() != wantZ[i] {
			t.Errorf("item %d z offset = %v, want %v", i, item.WorldOffset.Z(), wantZ[i])
		}
		if item.Material.Name != rosterNames[i] {
			t.Errorf("item %d binds material %q, want %q", i, item.Material.Name, rosterNames[i])
		}
	}
	if packet.DrawSkybox {
		t.Error("no skybox was set but the packet draws one")
	}
}

// Every instance binds its own roster material, and a toggle swaps the
// mesh under them without touching the material assignment.
func TestInstancesKeepRosterMaterialsAcrossToggle(t *testing.T) {
	ss := sceneWithMeshes(t, &fakeSceneBackend{}, &fakePublisher{}, 2)

	first := ss.BuildPacket(0.016)
	if err := ss.ToggleObject(); err != nil {
		t.Fatalf("ToggleObject: %v", err)
	}
	second := ss.BuildPacket(0.016)

	if len(first.Items) != 3 || len(second.Items) != 3 {
		t.Fatalf("draw lists have %d and %d items, want 3 each", len(first.Items), len(second.Items))
	}
	for i := range second.Items {
		if second.Items[i].Material.Name != rosterNames[i] {
			t.Errorf("after toggle item %d binds %q, want %q", i, second.Items[i].Material.Name, rosterNames[i])
		}
		if second.Items[i].Material != first.Items[i].Material {
			t.Errorf("toggle changed the material of instance %d", i)
		}
		if second.Items[i].MeshIndex == first.Items[i].MeshIndex {
			t.Errorf("toggle did not change the mesh of instance %d", i)
		}
	}

	seen := map[string]bool{}
	for _, item := range second.Items {
		seen[item.Material.Name] = true
	}
	if len(seen) != 3 {
		t.Fatalf("frame binds %d distinct materials, want 3", len(seen))
	}
}

func TestBuildPacketSkyboxFirst(t *testing.T) {
	backend := &fakeSceneBackend{}
	ss := sceneWithMeshes(t, backend, &fakePublisher{}, 1)

	skyConfig := &metadata.GeometryConfig{
		Name:     "skybox",
		Vertices: make([]metadata.Vertex3D, 8),
		Indices:  make([]uint32, 36),
	}
	skyMaterial := &metadata.Material{Name: "skybox"}
	if err := ss.SetSkybox(skyConfig, skyMaterial); err != nil {
		t.Fatalf("SetSkybox: %v", err)
	}

	packet := ss.BuildPacket(0.016)
	if !packet.DrawSkybox {
		t.Fatal("packet does not draw the skybox")
	}
	if len(packet.Items) != 4 {
		t.Fatalf("draw list has %d items, want 4", len(packet.Items))
	}
	if packet.Items[0].Material != skyMaterial {
		t.Fatal("skybox item is not first in the draw list")
	}
}
