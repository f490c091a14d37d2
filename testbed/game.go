package testbed

import (
	"fmt"

	"github.com/spaghettifunk/aura/engine"
	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

/**
 * @brief The PBR demo application. One mesh is shown at a time in three
 * instances; the keyboard drives the scene:
 *   Space     cycle through the configured meshes
 *   F2 / F3   roughness down / up
 *   F4 / F5   metallic down / up
 *   P         pause or resume the light animation
 *   Esc       quit
 */
type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	// Last published shading parameters, shown in the log readout.
	roughness float32
	metallic  float32
	// Last asset path reported written by the watcher.
	lastAssetWritten string
}

func NewTestGame(cfg *config.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State:  &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize

	return tg
}

func (g *TestGame) Initialize() error {
	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	core.EventRegister(core.EVENT_CODE_OBJECT_TOGGLED, g.onObjectToggled)
	core.EventRegister(core.EVENT_CODE_PARAMS_CHANGED, g.onParamsChanged)
	core.EventRegister(core.EVENT_CODE_ASSET_WRITTEN, g.onAssetWritten)

	return nil
}

// Update polls the demo keys. Input state is written on the frame loop
// thread, so edge detection here keeps all scene mutations on that
// thread too.
func (g *TestGame) Update(deltaTime float64) error {
	scene := g.SystemManager.SceneSystem
	lighting := g.SystemManager.LightingSystem

	if keyPressed(core.KEY_SPACE) {
		if err := scene.ToggleObject(); err != nil {
			return err
		}
	}
	if keyPressed(core.KEY_F2) {
		if err := lighting.DecreaseRoughness(); err != nil {
			return err
		}
	}
	if keyPressed(core.KEY_F3) {
		if err := lighting.IncreaseRoughness(); err != nil {
			return err
		}
	}
	if keyPressed(core.KEY_F4) {
		if err := lighting.DecreaseMetallic(); err != nil {
			return err
		}
	}
	if keyPressed(core.KEY_F5) {
		if err := lighting.IncreaseMetallic(); err != nil {
			return err
		}
	}
	if keyPressed(core.KEY_P) {
		lighting.TogglePaused()
		if lighting.Paused() {
			core.LogInfo("light animation paused")
		} else {
			core.LogInfo("light animation resumed")
		}
	}

	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) onObjectToggled(context core.EventContext) {
	if index, ok := context.Data.(int); ok {
		core.LogInfo("active object is now %d", index)
	}
}

// onParamsChanged mirrors the published shading parameters into the game
// state and logs the readout.
func (g *TestGame) onParamsChanged(context core.EventContext) {
	params, ok := context.Data.(metadata.UBOParams)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	state.roughness = params.Roughness
	state.metallic = params.Metallic
	core.LogInfo("roughness %.2f, metallic %.2f", params.Roughness, params.Metallic)
}

// onAssetWritten reports a changed file under the asset root. Assets are
// uploaded once at startup, so the change applies on the next run.
func (g *TestGame) onAssetWritten(context core.EventContext) {
	path, ok := context.Data.(string)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	state.lastAssetWritten = path
	core.LogInfo("asset '%s' changed on disk, restart to pick it up", path)
}

// keyPressed reports a key down edge since the previous frame.
func keyPressed(key core.KeyCode) bool {
	return core.InputIsKeyDown(key) && core.InputWasKeyUp(key)
}
