package systems

import (
	"testing"

	"github.com/spaghettifunk/aura/engine/config"
)

func TestMaterialBudgetCountsRosterAndSkybox(t *testing.T) {
	cfg := &config.ApplicationConfig{
		Materials: []config.MaterialDecl{
			{Name: "plastic"},
			{Name: "metal"},
			{Name: "stone"},
		},
	}
	if got := materialBudget(cfg); got != 3 {
		t.Fatalf("materialBudget = %d, want 3", got)
	}

	cfg.Skybox.Mesh = "models/cube.gltf"
	if got := materialBudget(cfg); got != 4 {
		t.Fatalf("materialBudget with skybox = %d, want 4", got)
	}
}
