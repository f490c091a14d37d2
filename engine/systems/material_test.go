package systems

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spaghettifunk/aura/engine/assets/loaders"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

type fakeImageSource struct {
	failSubstring string
	loaded        []string
}

func (f *fakeImageSource) LoadImage(relPath string) (*loaders.ImageData, error) {
	if f.failSubstring != "" && strings.Contains(relPath, f.failSubstring) {
		return nil, fmt.Errorf("no such file: %s", relPath)
	}
	f.loaded = append(f.loaded, relPath)
	return &loaders.ImageData{
		Width:        4,
		Height:       4,
		ChannelCount: 4,
		Pixels:       make([]uint8, 4*4*4),
	}, nil
}

type fakeMapBackend struct {
	acquired int
	released int
}

func (f *fakeMapBackend) AcquireTextureMap(tm *metadata.TextureMap, pixels []uint8) error {
	if len(pixels) != int(tm.Texture.Width*tm.Texture.Height*4) {
		return fmt.Errorf("pixel buffer size mismatch for '%s'", tm.Texture.Name)
	}
	tm.InternalData = struct{}{}
	f.acquired++
	return nil
}

func (f *fakeMapBackend) ReleaseTextureMap(tm *metadata.TextureMap) {
	f.released++
}

type fakeMaterialBackend struct {
	created int
	skybox  []bool
}

func (f *fakeMaterialBackend) CreateMaterial(material *metadata.Material, skybox bool) error {
	if !material.Complete() {
		return fmt.Errorf("material '%s' has missing maps", material.Name)
	}
	material.InternalData = struct{}{}
	f.created++
	f.skybox = append(f.skybox, skybox)
	return nil
}

func testMaterialConfig(name string) *metadata.MaterialConfig {
	mc := &metadata.MaterialConfig{
		Name:     name,
		BasePath: "textures/" + name,
	}
	for _, role := range metadata.AllTextureRoles() {
		mc.Maps[role] = metadata.ImageMapSpec{
			Filename: role.String() + ".png",
			Role:     role,
		}
	}
	return mc
}

func TestBuildMaterialPopulatesAllRoles(t *testing.T) {
	ms := NewMaterialSystem(NewTextureSystem(&fakeImageSource{}, &fakeMapBackend{}), &fakeMaterialBackend{})

	material, err := ms.BuildMaterial(testMaterialConfig("iron"))
	if err != nil {
		t.Fatalf("BuildMaterial: %v", err)
	}
	if !material.Complete() {
		t.Fatal("built material is not complete")
	}
	for _, role := range metadata.AllTextureRoles() {
		tm := material.Maps[role]
		if tm == nil || tm.Texture == nil {
			t.Fatalf("role %s has no map", role)
		}
		if tm.Role != role {
			t.Errorf("map at index %d carries role %s", role, tm.Role)
		}
	}

	got, err := ms.Acquire("iron")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got != material {
		t.Fatal("Acquire returned a different material")
	}
}

func TestBindingSlotsAreFixed(t *testing.T) {
	want := map[metadata.TextureRole]uint32{
		metadata.TextureRoleAlbedo:    2,
		metadata.TextureRoleNormal:    3,
		metadata.TextureRoleRoughness: 4,
		metadata.TextureRoleMetallic:  5,
		metadata.TextureRoleAO:        6,
	}
	seen := map[uint32]bool{}
	for role, slot := range want {
		if got := role.BindingSlot(); got != slot {
			t.Errorf("BindingSlot(%s) = %d, want %d", role, got, slot)
		}
		if seen[slot] {
			t.Errorf("slot %d assigned twice", slot)
		}
		seen[slot] = true
	}
}

func TestFailedBuildRegistersNothing(t *testing.T) {
	images := &fakeImageSource{failSubstring: "roughness"}
	maps := &fakeMapBackend{}
	materials := &fakeMaterialBackend{}
	ms := NewMaterialSystem(NewTextureSystem(images, maps), materials)

	if _, err := ms.BuildMaterial(testMaterialConfig("broken")); err == nil {
		t.Fatal("build with a missing roughness map should fail")
	}
	if _, err := ms.Acquire("broken"); err == nil {
		t.Fatal("failed build must not register the material")
	}
	if materials.created != 0 {
		t.Fatalf("backend created %d materials, want 0", materials.created)
	}
	if maps.released != maps.acquired {
		t.Fatalf("acquired %d maps but released %d", maps.acquired, maps.released)
	}
}

func TestDummyMapsFillMissingFiles(t *testing.T) {
	images := &fakeImageSource{}
	ms := NewMaterialSystem(NewTextureSystem(images, &fakeMapBackend{}), &fakeMaterialBackend{})

	mc := testMaterialConfig("bare")
	mc.Maps[metadata.TextureRoleMetallic] = metadata.ImageMapSpec{
		Role:  metadata.TextureRoleMetallic,
		Dummy: true,
	}

	material, err := ms.BuildMaterial(mc)
	if err != nil {
		t.Fatalf("BuildMaterial: %v", err)
	}
	if !material.Complete() {
		t.Fatal("material with a dummy map must still be complete")
	}
	for _, path := range images.loaded {
		if strings.Contains(path, "metallic") {
			t.Fatal("dummy role must not hit the image loader")
		}
	}
}

func TestDummyTextureNamesAreGeneratedUnique(t *testing.T) {
	ts := NewTextureSystem(&fakeImageSource{}, &fakeMapBackend{})
	spec := metadata.ImageMapSpec{Role: metadata.TextureRoleMetallic, Dummy: true}

	first, err := ts.AcquireMap(spec, "")
	if err != nil {
		t.Fatalf("AcquireMap: %v", err)
	}
	second, err := ts.AcquireMap(spec, "")
	if err != nil {
		t.Fatalf("AcquireMap: %v", err)
	}

	prefix := fmt.Sprintf("%s_%s", metadata.DUMMY_TEXTURE_NAME, spec.Role.String())
	if !strings.HasPrefix(first.Texture.Name, prefix) {
		t.Fatalf("dummy texture name %q lacks prefix %q", first.Texture.Name, prefix)
	}
	if first.Texture.Name == second.Texture.Name {
		t.Fatalf("two generated textures share the name %q", first.Texture.Name)
	}
}

func TestSkyboxMaterialFlagReachesBackend(t *testing.T) {
	materials := &fakeMaterialBackend{}
	ms := NewMaterialSystem(NewTextureSystem(&fakeImageSource{}, &fakeMapBackend{}), materials)

	if _, err := ms.BuildMaterial(testMaterialConfig("scene")); err != nil {
		t.Fatalf("BuildMaterial: %v", err)
	}
	if _, err := ms.BuildSkyboxMaterial(testMaterialConfig("sky")); err != nil {
		t.Fatalf("BuildSkyboxMaterial: %v", err)
	}

	if len(materials.skybox) != 2 || materials.skybox[0] || !materials.skybox[1] {
		t.Fatalf("skybox flags = %v, want [false true]", materials.skybox)
	}
}
