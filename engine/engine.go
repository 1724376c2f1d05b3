package engine

import (
	"fmt"

	"github.com/spaghettifunk/parallax/engine/assets"
	"github.com/spaghettifunk/parallax/engine/containers"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/spaghettifunk/parallax/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released everything
	EngineStageShutdown
)

// Window is the windowing collaborator: the glfw platform or a headless
// stand-in.
type Window interface {
	Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error
	// PumpMessages processes window events; false means the window wants to close.
	PumpMessages() bool
	SwapBuffers()
	FramebufferSize() (uint32, uint32)
	GetAbsoluteTime() float64
	Shutdown() error
}

// seconds between two HUD lines
const hudInterval = 1.0

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	window        Window
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64

	// HUD: a periodic log line with frame and camera statistics
	showHUD    bool
	hudTimer   float64
	frameTimes *containers.RingQueue[float64]
	debugLogs  bool
}

func New(g *Game, window Window, backend renderer.RendererBackend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	cfg := g.ApplicationConfig
	sm, err := systems.NewSystemManager(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, backend, am)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm
	g.AssetManager = am

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		window:        window,
		assetManager:  am,
		systemManager: sm,
		isRunning:     true,
		isSuspended:   false,
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
		frameTimes:    containers.NewRingQueue[float64](120),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig
	core.SetLogLevel(core.ParseLogLevel(cfg.Log.Level))
	e.debugLogs = core.GetLogLevel() == core.DebugLevel

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.window.Startup(cfg.Window.Title, cfg.Window.PosX, cfg.Window.PosY, cfg.Window.Width, cfg.Window.Height); err != nil {
		return err
	}

	// initialize subsystems
	if err := e.assetManager.Initialize(cfg.Assets.Root, cfg.Assets.Watch); err != nil {
		return err
	}

	rs := e.systemManager.RendererSystem
	rs.ClearColour = cfg.ClearColour()
	if err := rs.Initialize(cfg.Renderer.CullFaces); err != nil {
		return err
	}
	if cfg.Assets.Watch {
		e.systemManager.ShaderSystem.Watch(e.assetManager)
	}

	if w, h := e.window.FramebufferSize(); w > 0 && h > 0 {
		e.width, e.height = w, h
	}
	if err := rs.OnResize(e.width, e.height); err != nil {
		return err
	}
	e.systemManager.CameraSystem.Resized(e.width, e.height)

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.window.PumpMessages() {
			e.isRunning = false
			break
		}
		if e.isSuspended {
			continue
		}

		// Shader edits are picked up here, on the thread owning the context.
		e.systemManager.ShaderSystem.Poll()

		// Update clock and get delta time.
		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.window.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err.Error())
			e.isRunning = false
			return err
		}

		packet := &systems.RenderPacket{DeltaTime: delta}
		// Call the game's render routine.
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err.Error())
			e.isRunning = false
			return err
		}

		// Draw frame
		if err := e.systemManager.RendererSystem.DrawFrame(packet); err != nil {
			e.isRunning = false
			return err
		}
		e.window.SwapBuffers()

		// Figure out how long the frame took
		var frameElapsedTime float64 = e.window.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		e.frameTimes.Push(frameElapsedTime)
		e.updateHUD(delta)

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate(delta)

		// Update last time
		e.lastTime = currentTime
	}
	return nil
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.window.Shutdown(); err != nil {
		return err
	}
	core.EventShutdown()
	if err := core.InputShutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageShutdown
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) updateHUD(delta float64) {
	if !e.showHUD {
		return
	}
	e.hudTimer += delta
	if e.hudTimer < hudInterval {
		return
	}
	e.hudTimer = 0

	worst := 0.0
	e.frameTimes.Each(func(t float64) {
		if t > worst {
			worst = t
		}
	})
	camera := e.systemManager.CameraSystem.GetDefault()
	pos := camera.GetPosition()
	rot := camera.GetEulerRotation()
	fps, frameTime := e.metrics.Frame()
	core.LogInfo("FPS: %.0f (%.2fms avg, %.2fms worst) | Camera Pos: [%.3f, %.3f, %.3f] Rot: [%.1f, %.1f]",
		fps, frameTime, worst*1000, pos.X(), pos.Y(), pos.Z(), math.RadToDeg(rot.X()), math.RadToDeg(rot.Y()))
}

func (e *Engine) onEvent(sender, listener interface{}, context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(sender, listener interface{}, context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(e, core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		// Block anything else from processing this.
		return true
	case core.KEY_F2:
		e.showHUD = !e.showHUD
		e.hudTimer = hudInterval
	case core.KEY_F3:
		e.debugLogs = !e.debugLogs
		if e.debugLogs {
			core.SetLogLevel(core.DebugLevel)
		} else {
			core.SetLogLevel(core.ParseLogLevel(e.gameInstance.ApplicationConfig.Log.Level))
		}
	}
	return false
}

func (e *Engine) onResized(sender, listener interface{}, context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := re.Width, re.Height

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.systemManager.RendererSystem.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	e.systemManager.CameraSystem.Resized(width, height)
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	return false
}
