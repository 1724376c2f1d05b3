package engine

import (
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
)

type WindowConfig struct {
	// The application name used in windowing, if applicable.
	Title string `toml:"title"`
	// Window starting width, if applicable.
	Width uint32 `toml:"width"`
	// Window starting height, if applicable.
	Height uint32 `toml:"height"`
	// Window starting position x axis, if applicable.
	PosX uint32 `toml:"pos_x"`
	// Window starting position y axis, if applicable.
	PosY  uint32 `toml:"pos_y"`
	VSync bool   `toml:"vsync"`
}

type RendererConfig struct {
	// "opengl" or "headless"
	Backend     string     `toml:"backend"`
	ClearColour [4]float32 `toml:"clear_colour"`
	CullFaces   bool       `toml:"cull_faces"`
	// Frames to run before closing; only used by the headless backend. 0 runs forever.
	Frames uint64 `toml:"frames"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	Root  string `toml:"root"`
	Watch bool   `toml:"watch"`
}

type DemoConfig struct {
	Name string `toml:"name"`
}

type ApplicationConfig struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Log      LogConfig      `toml:"log"`
	Assets   AssetsConfig   `toml:"assets"`
	Demo     DemoConfig     `toml:"demo"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{
			Title:  "Parallax",
			Width:  1280,
			Height: 720,
			PosX:   100,
			PosY:   100,
			VSync:  true,
		},
		Renderer: RendererConfig{
			Backend:     renderer.OpenGL.String(),
			ClearColour: [4]float32{0.2, 0.2, 0.2, 1},
			CullFaces:   true,
		},
		Log:    LogConfig{Level: "info"},
		Assets: AssetsConfig{Root: "assets", Watch: true},
		Demo:   DemoConfig{Name: "planets"},
	}
}

/**
 * LoadApplicationConfig reads path on top of the defaults. A missing file is
 * not an error: the defaults are returned and a warning is logged.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogWarn("config '%s' not found, using defaults", path)
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parsing config '%s'", path)
	}
	return config, nil
}

// Marshal renders the config back to TOML.
func (c *ApplicationConfig) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *ApplicationConfig) RendererType() (renderer.RendererType, error) {
	switch strings.ToLower(strings.TrimSpace(c.Renderer.Backend)) {
	case renderer.OpenGL.String(), "gl":
		return renderer.OpenGL, nil
	case renderer.Headless.String():
		return renderer.Headless, nil
	}
	return 0, errors.Wrapf(core.ErrUnknownBackend, "'%s'", c.Renderer.Backend)
}

func (c *ApplicationConfig) ClearColour() mgl32.Vec4 {
	return mgl32.Vec4(c.Renderer.ClearColour)
}
