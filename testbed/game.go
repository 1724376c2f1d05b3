package testbed

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/systems"
)

// demo is one runnable scene. The engine drives it through the Game hooks.
type demo interface {
	Initialize() error
	Update(deltaTime float64) error
	Render(packet *systems.RenderPacket, deltaTime float64) error
	OnResize(width uint32, height uint32) error
	Shutdown() error
}

var demos = map[string]func(g *engine.Game) demo{
	"planets":  newPlanets,
	"shapes":   newShapes,
	"lighting": newLighting,
	"ocean":    newOcean,
}

// Demos lists the demo names accepted by NewTestGame.
func Demos() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type TestGame struct {
	*engine.Game
	Name string
}

// NewTestGame builds the game for config.Demo.Name.
func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	name := strings.ToLower(strings.TrimSpace(config.Demo.Name))
	create, ok := demos[name]
	if !ok {
		err := errors.Wrapf(core.ErrUnknownDemo, "'%s' (available: %s)", config.Demo.Name, strings.Join(Demos(), ", "))
		core.LogError(err.Error())
		return nil, err
	}

	tg := &TestGame{
		Game: &engine.Game{ApplicationConfig: config},
		Name: name,
	}
	d := create(tg.Game)
	tg.State = d
	tg.FnInitialize = d.Initialize
	tg.FnUpdate = d.Update
	tg.FnRender = d.Render
	tg.FnOnResize = d.OnResize
	tg.FnShutdown = d.Shutdown

	return tg, nil
}
