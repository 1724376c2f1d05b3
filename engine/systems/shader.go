package systems

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/assets"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of programs held in the table. */
	MaxProgramCount uint16
}

type programEntry struct {
	name   string
	stages []metadata.ShaderStageSource
	handle metadata.ProgramHandle
}

/**
 * @brief The program table. Nodes keep a slot; the handle behind a slot is
 * replaced when its sources are reloaded, so every user sees the new program
 * on the next draw.
 */
type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for program name->slot
	Lookup map[string]metadata.ProgramSlot

	programs     []*programEntry
	backend      renderer.RendererBackend
	assets       *assets.AssetManager
	reloadFailed bool
	// set by the watcher goroutine, consumed on the frame thread
	pending atomic.Bool
}

func NewShaderSystem(config *ShaderSystemConfig, backend renderer.RendererBackend, am *assets.AssetManager) (*ShaderSystem, error) {
	if config.MaxProgramCount == 0 {
		err := fmt.Errorf("NewShaderSystem - config.MaxProgramCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:   config,
		Lookup:   make(map[string]metadata.ProgramSlot),
		programs: make([]*programEntry, 0, config.MaxProgramCount),
		backend:  backend,
		assets:   am,
	}, nil
}

/**
 * CreateAndRegisterProgram reads and compiles the stages and stores the result
 * under name. Stages with a Path are read through the asset manager; stages
 * with only a Source are kept as given.
 * A program that fails to build still gets its slot, holding handle 0, so a
 * later reload can repair it. Registering an existing name rebuilds that slot.
 */
func (s *ShaderSystem) CreateAndRegisterProgram(name string, stages ...metadata.ShaderStageSource) (metadata.ProgramSlot, error) {
	if len(name) == 0 {
		name = "program-" + uuid.NewString()
	}
	slot, exists := s.Lookup[name]
	if !exists {
		if len(s.programs) >= int(s.Config.MaxProgramCount) {
			err := fmt.Errorf("unable to register program '%s': shader system is full (%d)", name, s.Config.MaxProgramCount)
			core.LogError(err.Error())
			return metadata.NoProgram, err
		}
		slot = metadata.ProgramSlot(len(s.programs))
		s.programs = append(s.programs, &programEntry{name: name})
		s.Lookup[name] = slot
	}
	entry := s.programs[slot]
	entry.stages = append([]metadata.ShaderStageSource(nil), stages...)

	handle, err := s.build(entry)
	if err != nil {
		core.LogError("program '%s' failed to build: %s", name, err.Error())
		return slot, err
	}
	s.replace(entry, handle)
	core.LogDebug("program '%s' registered in slot %d", name, slot)
	return slot, nil
}

// Program implements renderer.ProgramTable.
func (s *ShaderSystem) Program(slot metadata.ProgramSlot) metadata.ProgramHandle {
	if slot < 0 || int(slot) >= len(s.programs) {
		return 0
	}
	return s.programs[slot].handle
}

// Slot returns the slot registered under name.
func (s *ShaderSystem) Slot(name string) (metadata.ProgramSlot, error) {
	slot, ok := s.Lookup[name]
	if !ok {
		return metadata.NoProgram, errors.Wrapf(core.ErrUnknownProgramSlot, "'%s'", name)
	}
	return slot, nil
}

func (s *ShaderSystem) Name(slot metadata.ProgramSlot) string {
	if slot < 0 || int(slot) >= len(s.programs) {
		return ""
	}
	return s.programs[slot].name
}

func (s *ShaderSystem) Count() int {
	return len(s.programs)
}

// ReloadFailed reports whether the last reload left any program on its old
// (or missing) handle.
func (s *ShaderSystem) ReloadFailed() bool {
	return s.reloadFailed
}

/**
 * ReloadAllPrograms rebuilds every registered program from its sources.
 * Programs that build replace their previous handle; programs that fail keep
 * it. Listeners of EVENT_CODE_SHADERS_RELOADED are told the outcome.
 */
func (s *ShaderSystem) ReloadAllPrograms() error {
	var (
		first  error
		failed int
	)
	for _, entry := range s.programs {
		handle, err := s.build(entry)
		if err != nil {
			core.LogError("reloading program '%s': %s", entry.name, err.Error())
			if first == nil {
				first = err
			}
			failed++
			continue
		}
		s.replace(entry, handle)
	}
	s.reloadFailed = failed > 0

	var err error
	if failed > 0 {
		err = errors.Wrapf(first, "%d of %d programs failed to reload", failed, len(s.programs))
	} else {
		core.LogInfo("reloaded %d programs", len(s.programs))
	}
	core.EventFire(s, core.EventContext{
		Type: core.EVENT_CODE_SHADERS_RELOADED,
		Data: &core.ShaderReloadEvent{Failed: s.reloadFailed, Err: err},
	})
	return err
}

// RequestReload schedules a reload for the next Poll.
func (s *ShaderSystem) RequestReload() {
	s.pending.Store(true)
}

// Watch schedules a reload whenever a shader file under the asset root
// changes. The reload itself happens in Poll.
func (s *ShaderSystem) Watch(am *assets.AssetManager) {
	changes := am.Subscribe(metadata.ResourceTypeShader)
	go func() {
		for name := range changes {
			core.LogDebug("shader source '%s' changed", name)
			s.pending.Store(true)
		}
	}()
}

// Poll runs a pending reload. It must be called on the thread owning the
// graphics context. Returns true when a reload ran.
func (s *ShaderSystem) Poll() bool {
	if !s.pending.CompareAndSwap(true, false) {
		return false
	}
	_ = s.ReloadAllPrograms()
	return true
}

func (s *ShaderSystem) Shutdown() error {
	for _, entry := range s.programs {
		s.backend.ProgramDestroy(entry.handle)
		entry.handle = 0
	}
	s.programs = s.programs[:0]
	s.Lookup = make(map[string]metadata.ProgramSlot)
	return nil
}

func (s *ShaderSystem) build(entry *programEntry) (metadata.ProgramHandle, error) {
	stages := make([]metadata.ShaderStageSource, len(entry.stages))
	for i, stage := range entry.stages {
		if len(stage.Path) > 0 {
			if s.assets == nil {
				return 0, errors.Wrapf(core.ErrAssetNotFound, "%s stage '%s': no asset manager", stage.Stage, stage.Path)
			}
			res, err := s.assets.LoadAsset(stage.Path, metadata.ResourceTypeShader, nil)
			if err != nil {
				return 0, err
			}
			stage.Source = res.Data.(string)
		}
		stages[i] = stage
	}
	return s.backend.ProgramCreate(stages)
}

func (s *ShaderSystem) replace(entry *programEntry, handle metadata.ProgramHandle) {
	if entry.handle != 0 {
		s.backend.ProgramDestroy(entry.handle)
	}
	entry.handle = handle
}
