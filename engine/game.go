package engine

import (
	"github.com/spaghettifunk/parallax/engine/assets"
	"github.com/spaghettifunk/parallax/engine/systems"
)

// Game is what an application plugs into the engine. SystemManager and
// AssetManager are filled in by New.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	AssetManager      *assets.AssetManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *systems.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
