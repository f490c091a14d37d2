package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/aura/engine/core"
)

// ApplicationConfig is the top level of aura.toml.
type ApplicationConfig struct {
	Application AppSection     `toml:"application"`
	Camera      CameraSection  `toml:"camera"`
	Materials   []MaterialDecl `toml:"materials"`
	Meshes      []MeshDecl     `toml:"meshes"`
	Skybox      SkyboxDecl     `toml:"skybox"`
}

type AppSection struct {
	Name      string `toml:"name"`
	StartPosX uint32 `toml:"start_pos_x"`
	StartPosY uint32 `toml:"start_pos_y"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	AssetRoot string `toml:"asset_root"`
	LogLevel  string `toml:"log_level"`
}

type CameraSection struct {
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	FovDeg   float32    `toml:"fov_deg"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
}

// MaterialDecl declares one PBR material by its five texture maps. Paths
// are relative to the material base path under the asset root. An empty
// map path selects the shared dummy texture for that slot.
type MaterialDecl struct {
	Name      string `toml:"name"`
	BasePath  string `toml:"base_path"`
	Albedo    string `toml:"albedo"`
	Normal    string `toml:"normal"`
	Metallic  string `toml:"metallic"`
	Roughness string `toml:"roughness"`
	AO        string `toml:"ao"`
}

// MeshDecl declares one toggleable demo mesh. Meshes do not own
// materials; every mesh is drawn with the full material roster, one
// material per instance.
type MeshDecl struct {
	Name string `toml:"name"`
	File string `toml:"file"`
}

type SkyboxDecl struct {
	Mesh    string `toml:"mesh"`
	Cubemap string `toml:"cubemap"`
}

// Load reads and decodes the application config file.
func Load(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err := fmt.Errorf("func Load - failed to read config file '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}
	cfg, err := Decode(data)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML bytes into an ApplicationConfig and applies defaults.
func Decode(data []byte) (*ApplicationConfig, error) {
	cfg := &ApplicationConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("func Decode - invalid config: %w", err)
	}
	if cfg.Application.Name == "" {
		cfg.Application.Name = "Aura"
	}
	if cfg.Application.Width == 0 {
		cfg.Application.Width = 1280
	}
	if cfg.Application.Height == 0 {
		cfg.Application.Height = 720
	}
	if cfg.Application.AssetRoot == "" {
		cfg.Application.AssetRoot = "assets"
	}
	if cfg.Application.LogLevel == "" {
		cfg.Application.LogLevel = "debug"
	}
	if cfg.Camera.FovDeg == 0 {
		cfg.Camera.FovDeg = 60.0
	}
	if cfg.Camera.Near == 0 {
		cfg.Camera.Near = 0.1
	}
	if cfg.Camera.Far == 0 {
		cfg.Camera.Far = 256.0
	}
	return cfg, nil
}
