/*
Drape renders an interactively draggable piece of cloth, simulated with
Verlet integration and drawn through WebGPU.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/drapengine/drape/engine"
	"github.com/drapengine/drape/testbed"
)

const configPath = "drape.toml"

func main() {
	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		panic(err)
	}

	game, err := testbed.NewClothGame(config)
	if err != nil {
		panic(err)
	}

	eng, err := engine.New(game.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}
}
