package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type fakeMatricesBackend struct {
	scenes   []metadata.UBOMatrices
	skyboxes []metadata.UBOMatrices
}

func (f *fakeMatricesBackend) UpdateMatrices(scene, skybox *metadata.UBOMatrices) error {
	f.scenes = append(f.scenes, *scene)
	f.skyboxes = append(f.skyboxes, *skybox)
	return nil
}

func initializedCameraSystem(t *testing.T, backend *fakeMatricesBackend) *CameraSystem {
	t.Helper()
	cs := NewCameraSystem(backend)
	section := config.CameraSection{
		Position: [3]float32{4.0, 2.5, -0.4},
		FovDeg:   60.0,
		Near:     0.1,
		Far:      256.0,
	}
	if err := cs.Initialize(section, 1280, 720); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return cs
}

func TestModelRotationIsAppliedFromTheStart(t *testing.T) {
	backend := &fakeMatricesBackend{}
	initializedCameraSystem(t, backend)

	if len(backend.scenes) != 1 {
		t.Fatalf("published %d times during init, want 1", len(backend.scenes))
	}
	if backend.scenes[0].Model == mgl32.Ident4() {
		t.Fatal("scene model matrix is identity, want the object yaw")
	}
	if backend.skyboxes[0].Model != mgl32.Ident4() {
		t.Fatal("skybox model matrix must stay identity")
	}
}

// Toggling to the second object republishes the scene block with a
// different model rotation; objects 0 and 2 share the base yaw.
func TestActiveObjectChangesPublishedModel(t *testing.T) {
	backend := &fakeMatricesBackend{}
	cs := initializedCameraSystem(t, backend)

	if err := cs.SetActiveObject(1); err != nil {
		t.Fatalf("SetActiveObject(1): %v", err)
	}
	if err := cs.SetActiveObject(2); err != nil {
		t.Fatalf("SetActiveObject(2): %v", err)
	}

	if len(backend.scenes) != 3 {
		t.Fatalf("published %d times, want 3", len(backend.scenes))
	}
	if backend.scenes[1].Model == backend.scenes[0].Model {
		t.Fatal("object 1 publishes the same model matrix as object 0")
	}
	if backend.scenes[2].Model != backend.scenes[0].Model {
		t.Fatal("objects 0 and 2 should share the base model rotation")
	}
	// Only the model block differs between the publishes.
	if backend.scenes[1].View != backend.scenes[0].View {
		t.Fatal("toggling an object must not move the camera")
	}
}

func TestResizeRepublishesWithNewAspect(t *testing.T) {
	backend := &fakeMatricesBackend{}
	cs := initializedCameraSystem(t, backend)

	if err := cs.OnResize(1024, 768); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	if len(backend.scenes) != 2 {
		t.Fatalf("published %d times, want 2", len(backend.scenes))
	}
	if backend.scenes[1].Projection == backend.scenes[0].Projection {
		t.Fatal("a resize with a new aspect ratio must change the projection")
	}

	// Zero sizes from a minimized window are ignored.
	if err := cs.OnResize(0, 0); err != nil {
		t.Fatalf("OnResize(0,0): %v", err)
	}
	if len(backend.scenes) != 2 {
		t.Fatal("a zero-sized resize must not publish")
	}
}
