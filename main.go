/*
Parallax runs one of the testbed demos on top of the engine package.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/platform"
	"github.com/spaghettifunk/parallax/engine/platform/headless"
	"github.com/spaghettifunk/parallax/engine/renderer"
	hb "github.com/spaghettifunk/parallax/engine/renderer/headless"
	"github.com/spaghettifunk/parallax/engine/renderer/opengl"
	"github.com/spaghettifunk/parallax/testbed"
)

func main() {
	configPath := flag.String("config", "parallax.toml", "path of the TOML configuration")
	demo := flag.String("demo", "", "demo to run, overrides [demo] name")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if *demo != "" {
		config.Demo.Name = *demo
	}
	backendType, err := config.RendererType()
	if err != nil {
		core.LogFatal(err.Error())
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		core.LogFatal(err.Error())
	}

	var (
		window  engine.Window
		backend renderer.RendererBackend
	)
	switch backendType {
	case renderer.Headless:
		window = headless.New(config.Renderer.Frames)
		backend = hb.New()
	default:
		window = platform.New(config.Window.VSync)
		backend = opengl.New()
	}

	e, err := engine.New(tb.Game, window, backend)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// ask the loop to stop; it owns the context and shuts down on its own thread
	go func() {
		<-sigCh
		core.EventFire(nil, core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
