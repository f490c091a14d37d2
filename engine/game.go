package engine

import (
	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/systems"
)

/**
 * @brief The application hosted by the engine. The engine drives the
 * frame loop and calls back into these hooks; SystemManager is populated
 * before FnInitialize runs.
 */
type Game struct {
	Config        *config.ApplicationConfig
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnOnResize    OnResize
}

type Initialize func() error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
