/*
The demo application entry point. Everything the demo shows is declared
in aura.toml; the engine package does the rest.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/aura/engine"
	"github.com/spaghettifunk/aura/engine/config"
	"github.com/spaghettifunk/aura/engine/core"
	"github.com/spaghettifunk/aura/testbed"
)

func main() {
	configPath := "aura.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}
	core.SetLogLevel(cfg.Application.LogLevel)

	tb := testbed.NewTestGame(cfg)

	e, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}
	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		_ = e.Shutdown()
		os.Exit(0)
	}()

	if err := e.Run(); err != nil {
		panic(err)
	}
	if err := e.Shutdown(); err != nil {
		panic(err)
	}
}
