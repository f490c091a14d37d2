package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/engine/mathex"
	"github.com/spaghettifunk/aura/engine/renderer/metadata"
)

// paramsBackend receives the lighting parameter block. Satisfied by
// renderer.Renderer.
type paramsBackend interface {
	UpdateParams(params *metadata.UBOParams) error
}

const (
	// Half extent of the light rig on X and Z.
	lightRigExtent float32 = 15.0
	// Orbit radius of the two animated lights.
	lightOrbitRadius float64 = 20.0
	// Animation clock scale. The orbit is slow on purpose.
	lightTimeScale float64 = 0.25

	roughnessFloor float32 = 0.05
	paramStep      float32 = 0.01
)

/**
 * @brief Holds the shared lighting parameter block and republishes it to
 * the backend after every mutation. Parameter edits clamp silently;
 * there is no dirty tracking, so publishing an unchanged state writes
 * the same bytes again.
 */
type LightingSystem struct {
	backend paramsBackend

	params  metadata.UBOParams
	paused  bool
	elapsed float64
}

func NewLightingSystem(backend paramsBackend) *LightingSystem {
	ls := &LightingSystem{
		backend: backend,
		paused:  true,
	}

	p := lightRigExtent
	ls.params.Lights = [metadata.LightCount]mgl32.Vec4{
		{-p, -p * 0.5, -p, 1.0},
		{-p, -p * 0.5, p, 1.0},
		{p, -p * 0.5, p, 1.0},
		{p, -p * 0.5, -p, 1.0},
	}
	ls.params.Roughness = 1.0
	ls.params.Metallic = 1.0

	return ls
}

// ChangeRoughness nudges the global roughness, clamped to [0.05, 1.0].
func (ls *LightingSystem) ChangeRoughness(delta float32) error {
	ls.params.Roughness = mathex.Clamp(ls.params.Roughness+delta, roughnessFloor, 1.0)
	return ls.Publish()
}

// ChangeMetallic nudges the global metallic, clamped to [0.0, 1.0].
func (ls *LightingSystem) ChangeMetallic(delta float32) error {
	ls.params.Metallic = mathex.Clamp(ls.params.Metallic+delta, 0.0, 1.0)
	return ls.Publish()
}

// IncreaseRoughness and friends map directly onto the parameter keys.
func (ls *LightingSystem) IncreaseRoughness() error { return ls.ChangeRoughness(paramStep) }
func (ls *LightingSystem) DecreaseRoughness() error { return ls.ChangeRoughness(-paramStep) }
func (ls *LightingSystem) IncreaseMetallic() error  { return ls.ChangeMetallic(paramStep) }
func (ls *LightingSystem) DecreaseMetallic() error  { return ls.ChangeMetallic(-paramStep) }

func (ls *LightingSystem) Paused() bool {
	return ls.paused
}

func (ls *LightingSystem) TogglePaused() {
	ls.paused = !ls.paused
}

// Update advances the animation clock and orbits lights 0 and 1. Paused,
// it touches nothing, so the next publish is byte-identical to the last.
func (ls *LightingSystem) Update(deltaTime float64) error {
	if ls.paused {
		return nil
	}
	ls.elapsed += deltaTime * lightTimeScale

	angle := ls.elapsed * 2.0 * math.Pi
	sin := float32(math.Sin(angle) * lightOrbitRadius)
	cos := float32(math.Cos(angle) * lightOrbitRadius)

	ls.params.Lights[0][0] = sin
	ls.params.Lights[0][2] = cos
	ls.params.Lights[1][0] = cos
	ls.params.Lights[1][1] = sin

	return ls.Publish()
}

// Publish serializes the parameter block into the shared uniform buffer
// and announces the change.
func (ls *LightingSystem) Publish() error {
	params := ls.params
	if err := ls.backend.UpdateParams(&params); err != nil {
		return err
	}
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_PARAMS_CHANGED,
		Data: params,
	})
	return nil
}

// Params returns a copy of the current parameter block.
func (ls *LightingSystem) Params() metadata.UBOParams {
	return ls.params
}
