package testbed

import (
	"testing"

	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

func TestParamsReadoutTracksPublishedValues(t *testing.T) {
	g := NewTestGame(&config.ApplicationConfig{})

	g.onParamsChanged(core.EventContext{
		Type: core.EVENT_CODE_PARAMS_CHANGED,
		Data: metadata.UBOParams{Roughness: 0.42, Metallic: 0.13},
	})

	state := g.State.(*gameState)
	if state.roughness != 0.42 || state.metallic != 0.13 {
		t.Fatalf("readout = %.2f/%.2f, want 0.42/0.13", state.roughness, state.metallic)
	}

	// A malformed payload must leave the readout alone.
	g.onParamsChanged(core.EventContext{Type: core.EVENT_CODE_PARAMS_CHANGED, Data: "bogus"})
	if state.roughness != 0.42 || state.metallic != 0.13 {
		t.Fatal("bad payload overwrote the readout")
	}
}

func TestAssetWrittenIsRecorded(t *testing.T) {
	g := NewTestGame(&config.ApplicationConfig{})

	g.onAssetWritten(core.EventContext{
		Type: core.EVENT_CODE_ASSET_WRITTEN,
		Data: "shaders/pbr.frag",
	})

	state := g.State.(*gameState)
	if state.lastAssetWritten != "shaders/pbr.frag" {
		t.Fatalf("lastAssetWritten = %q", state.lastAssetWritten)
	}
}
