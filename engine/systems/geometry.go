package systems

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of meshes that can be alive at once.
	 */
	MaxGeometryCount uint32
}

// GeometrySystem uploads generated geometry and owns the resulting meshes.
type GeometrySystem struct {
	Config  *GeometrySystemConfig
	backend renderer.RendererBackend
	meshes  []*metadata.Mesh
}

func NewGeometrySystem(config *GeometrySystemConfig, backend renderer.RendererBackend) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:  config,
		backend: backend,
		meshes:  make([]*metadata.Mesh, 0, config.MaxGeometryCount),
	}, nil
}

/**
 * @brief Uploads config. The returned mesh is never nil: on failure its VAO
 * is 0 and an error is returned alongside it.
 */
func (gs *GeometrySystem) Create(config *metadata.GeometryConfig) (*metadata.Mesh, error) {
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName + "-" + uuid.NewString()
	}
	if uint32(len(gs.meshes)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("unable to upload '%s': geometry system is full (%d). Adjust configuration to allow more space", config.Name, gs.Config.MaxGeometryCount)
		core.LogError(err.Error())
		return &metadata.Mesh{Name: config.Name}, err
	}
	mesh, err := gs.backend.CreateGeometry(config)
	if mesh == nil {
		mesh = &metadata.Mesh{Name: config.Name}
	}
	if err != nil {
		core.LogError("failed to create geometry '%s': %s", config.Name, err.Error())
		return mesh, err
	}
	gs.meshes = append(gs.meshes, mesh)
	core.LogDebug("uploaded %s", config)
	return mesh, nil
}

func (gs *GeometrySystem) create(config *metadata.GeometryConfig, err error) (*metadata.Mesh, error) {
	if err != nil {
		core.LogError(err.Error())
		return &metadata.Mesh{}, err
	}
	return gs.Create(config)
}

func (gs *GeometrySystem) CreateQuad(width, height float32) (*metadata.Mesh, error) {
	return gs.create(GenerateQuadConfig(width, height))
}

func (gs *GeometrySystem) CreateCircleRing(resRadius, resTheta int, innerRadius, outerRadius float32) (*metadata.Mesh, error) {
	return gs.create(GenerateCircleRingConfig(resRadius, resTheta, innerRadius, outerRadius))
}

func (gs *GeometrySystem) CreateSphere(resTheta, resPhi int, radius float32) (*metadata.Mesh, error) {
	return gs.create(GenerateSphereConfig(resTheta, resPhi, radius))
}

func (gs *GeometrySystem) CreateTorus(resTheta, resPhi int, rA, rB float32) (*metadata.Mesh, error) {
	return gs.create(GenerateTorusConfig(resTheta, resPhi, rA, rB))
}

func (gs *GeometrySystem) CreateZoneplate(resX, resY int, waveCount, depth float32) (*metadata.Mesh, error) {
	return gs.create(GenerateZoneplateConfig(resX, resY, waveCount, depth))
}

func (gs *GeometrySystem) CreateOceanplate(resX, resZ int, side float32) (*metadata.Mesh, error) {
	return gs.create(GenerateOceanplateConfig(resX, resZ, side))
}

func (gs *GeometrySystem) CreateCube(width, height, depth, tileX, tileY float32) (*metadata.Mesh, error) {
	return gs.create(GenerateCubeConfig(width, height, depth, tileX, tileY, ""))
}

// Count returns the number of live meshes.
func (gs *GeometrySystem) Count() int {
	return len(gs.meshes)
}

/**
 * @brief Destroys every mesh created through the system.
 */
func (gs *GeometrySystem) Shutdown() error {
	for _, m := range gs.meshes {
		gs.backend.DestroyGeometry(m)
	}
	gs.meshes = gs.meshes[:0]
	return nil
}
