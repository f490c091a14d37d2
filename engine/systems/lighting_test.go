package systems

import (
	"testing"

	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type fakeParamsBackend struct {
	published []metadata.UBOParams
}

func (f *fakeParamsBackend) UpdateParams(params *metadata.UBOParams) error {
	f.published = append(f.published, *params)
	return nil
}

func TestRoughnessClampsToRange(t *testing.T) {
	backend := &fakeParamsBackend{}
	ls := NewLightingSystem(backend)

	for i := 0; i < 200; i++ {
		if err := ls.DecreaseRoughness(); err != nil {
			t.Fatalf("DecreaseRoughness: %v", err)
		}
	}
	if got := ls.Params().Roughness; got != 0.05 {
		t.Fatalf("roughness floor = %v, want 0.05", got)
	}

	for i := 0; i < 200; i++ {
		if err := ls.IncreaseRoughness(); err != nil {
			t.Fatalf("IncreaseRoughness: %v", err)
		}
	}
	if got := ls.Params().Roughness; got != 1.0 {
		t.Fatalf("roughness ceiling = %v, want 1.0", got)
	}
}

func TestMetallicClampsToRange(t *testing.T) {
	ls := NewLightingSystem(&fakeParamsBackend{})

	for i := 0; i < 200; i++ {
		if err := ls.DecreaseMetallic(); err != nil {
			t.Fatalf("DecreaseMetallic: %v", err)
		}
	}
	if got := ls.Params().Metallic; got != 0.0 {
		t.Fatalf("metallic floor = %v, want 0.0", got)
	}

	for i := 0; i < 200; i++ {
		if err := ls.IncreaseMetallic(); err != nil {
			t.Fatalf("IncreaseMetallic: %v", err)
		}
	}
	if got := ls.Params().Metallic; got != 1.0 {
		t.Fatalf("metallic ceiling = %v, want 1.0", got)
	}
}

func TestPausedPublishIsByteIdentical(t *testing.T) {
	backend := &fakeParamsBackend{}
	ls := NewLightingSystem(backend)

	if !ls.Paused() {
		t.Fatal("lighting should start paused")
	}

	if err := ls.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// Paused updates must not mutate anything.
	for i := 0; i < 10; i++ {
		if err := ls.Update(0.16); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if err := ls.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(backend.published) != 2 {
		t.Fatalf("published %d blocks, want 2", len(backend.published))
	}
	if backend.published[0] != backend.published[1] {
		t.Fatalf("paused publishes differ:\n%+v\n%+v", backend.published[0], backend.published[1])
	}
}

func TestOrbitMovesOnlyFirstTwoLights(t *testing.T) {
	backend := &fakeParamsBackend{}
	ls := NewLightingSystem(backend)

	before := ls.Params()
	ls.TogglePaused()
	if err := ls.Update(0.7); err != nil {
		t.Fatalf("Update: %v", err)
	}
	after := ls.Params()

	if after.Lights[0] == before.Lights[0] {
		t.Error("light 0 did not move")
	}
	if after.Lights[1] == before.Lights[1] {
		t.Error("light 1 did not move")
	}
	if after.Lights[2] != before.Lights[2] {
		t.Errorf("light 2 moved: %v -> %v", before.Lights[2], after.Lights[2])
	}
	if after.Lights[3] != before.Lights[3] {
		t.Errorf("light 3 moved: %v -> %v", before.Lights[3], after.Lights[3])
	}
	if after.Roughness != before.Roughness || after.Metallic != before.Metallic {
		t.Error("orbit must not touch roughness or metallic")
	}
	if len(backend.published) != 1 {
		t.Fatalf("published %d blocks, want 1", len(backend.published))
	}
}
