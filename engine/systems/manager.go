package systems

import (
	"runtime"

	"github.com/spaghettifunk/parallax/engine/assets"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
)

type SystemManager struct {
	CameraSystem   *CameraSystem
	GeometrySystem *GeometrySystem
	JobSystem      *JobSystem
	ShaderSystem   *ShaderSystem
	TextureSystem  *TextureSystem
	RendererSystem *RendererSystem
}

// NewSystemManager creates every system on top of backend. The backend is
// initialized later, by RendererSystem.Initialize.
func NewSystemManager(appName string, width, height uint32, backend renderer.RendererBackend, am *assets.AssetManager) (*SystemManager, error) {
	workers := runtime.NumCPU()
	if workers > 6 {
		// one per cubemap face is enough
		workers = 6
	}
	js, err := NewJobSystem(workers, 16)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 16,
	})
	if err != nil {
		return nil, err
	}
	ssys, err := NewShaderSystem(&ShaderSystemConfig{
		MaxProgramCount: 64,
	}, backend, am)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 256,
	}, js, am, backend)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 1024,
	}, backend)
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(appName, width, height, backend, ssys)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:   cs,
		GeometrySystem: gs,
		JobSystem:      js,
		ShaderSystem:   ssys,
		TextureSystem:  ts,
		RendererSystem: rs,
	}, nil
}

// Shutdown releases GPU resources first, then the renderer, then the workers.
func (sm *SystemManager) Shutdown() error {
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	core.LogDebug("systems shut down")
	return nil
}
