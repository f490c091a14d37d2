package config

import "testing"

const sampleConfig = `
[application]
name = "Demo"
width = 1920
height = 1080
asset_root = "data"

[camera]
position = [4.0, 2.5, -0.4]
fov_deg = 60.0

[[materials]]
name = "iron"
base_path = "textures/iron"
albedo = "albedo.png"
normal = "normal.png"
metallic = "metallic.png"
roughness = "roughness.png"
ao = "ao.png"

[[materials]]
name = "planks"
base_path = "textures/planks"
albedo = "albedo.png"

[[meshes]]
name = "sphere"
file = "models/sphere.gltf"

[skybox]
mesh = "models/cube.gltf"
cubemap = "textures/sky.png"
`

func TestDecodeRoster(t *testing.T) {
	cfg, err := Decode([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if cfg.Application.Name != "Demo" || cfg.Application.Width != 1920 || cfg.Application.Height != 1080 {
		t.Errorf("application section = %+v", cfg.Application)
	}
	if cfg.Application.AssetRoot != "data" {
		t.Errorf("asset root = %q, want data", cfg.Application.AssetRoot)
	}
	if cfg.Camera.Position != [3]float32{4.0, 2.5, -0.4} {
		t.Errorf("camera position = %v", cfg.Camera.Position)
	}

	if len(cfg.Materials) != 2 {
		t.Fatalf("decoded %d materials, want 2", len(cfg.Materials))
	}
	if cfg.Materials[0].Roughness != "roughness.png" {
		t.Errorf("iron roughness = %q", cfg.Materials[0].Roughness)
	}
	// Omitted map entries decode to the empty string, which selects the
	// dummy texture downstream.
	if cfg.Materials[1].Metallic != "" {
		t.Errorf("planks metallic = %q, want empty", cfg.Materials[1].Metallic)
	}

	if len(cfg.Meshes) != 1 || cfg.Meshes[0].File != "models/sphere.gltf" {
		t.Errorf("meshes = %+v", cfg.Meshes)
	}
	if cfg.Skybox.Cubemap != "textures/sky.png" {
		t.Errorf("skybox = %+v", cfg.Skybox)
	}
}

func TestDecodeAppliesDefaults(t *testing.T) {
	cfg, err := Decode([]byte(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Application.Width != 1280 || cfg.Application.Height != 720 {
		t.Errorf("default size = %dx%d", cfg.Application.Width, cfg.Application.Height)
	}
	if cfg.Camera.FovDeg != 60.0 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 256.0 {
		t.Errorf("default camera = %+v", cfg.Camera)
	}
}

func TestDecodeRejectsInvalidTOML(t *testing.T) {
	if _, err := Decode([]byte("[application\nname=")); err == nil {
		t.Fatal("invalid TOML should fail to decode")
	}
}
