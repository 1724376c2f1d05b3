package renderer

import (
	"sort"

	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// ProgramTable resolves a slot to the program currently stored there.
type ProgramTable interface {
	Program(slot metadata.ProgramSlot) metadata.ProgramHandle
}

// Renderer turns draw calls into backend commands.
type Renderer struct {
	backend  RendererBackend
	programs ProgramTable
	// slots already reported as unresolved
	missing map[metadata.ProgramSlot]bool
}

func New(backend RendererBackend, programs ProgramTable) *Renderer {
	return &Renderer{
		backend:  backend,
		programs: programs,
		missing:  make(map[metadata.ProgramSlot]bool),
	}
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) SetProgramTable(programs ProgramTable) {
	r.programs = programs
}

// Draw issues one draw call. Calls without a drawable mesh or whose program
// slot does not resolve to a linked program are dropped.
func (r *Renderer) Draw(call *metadata.DrawCall) {
	if call == nil || !call.Mesh.Ready() {
		return
	}
	program := metadata.ProgramHandle(0)
	if r.programs != nil && call.Program != metadata.NoProgram {
		program = r.programs.Program(call.Program)
	}
	if program == 0 {
		if !r.missing[call.Program] {
			core.LogDebug("skipping '%s': program slot %d has no linked program", call.Mesh.Name, call.Program)
			r.missing[call.Program] = true
		}
		return
	}
	delete(r.missing, call.Program)

	r.backend.UseProgram(program)
	uniforms := r.backend.Uniforms(program)

	normalModelToWorld := call.World.Inv().Transpose()
	uniforms.SetMat4("vertex_model_to_world", call.World)
	uniforms.SetMat4("normal_model_to_world", normalModelToWorld)
	uniforms.SetMat4("vertex_world_to_clip", call.ViewProjection)

	r.bindTextures(uniforms, call)

	if call.Material != nil {
		call.Material.Apply(uniforms)
	}
	r.backend.DrawGeometry(call.Mesh)
}

func (r *Renderer) bindTextures(uniforms metadata.UniformSetter, call *metadata.DrawCall) {
	bindings := make(map[string]metadata.TextureBinding, len(call.Mesh.Bindings)+len(call.Textures))
	for name, b := range call.Mesh.Bindings {
		bindings[name] = b
	}
	for _, nb := range call.Textures {
		bindings[nb.Name] = nb.Binding
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	// stable unit assignment
	sort.Strings(names)

	for _, slot := range metadata.CanonicalTextureSlots {
		uniforms.SetUint("has_"+slot, 0)
	}
	unit := uint32(0)
	for _, name := range names {
		b := bindings[name]
		if b.Handle == 0 {
			continue
		}
		r.backend.BindTexture(unit, b)
		uniforms.SetInt(name, int32(unit))
		uniforms.SetUint("has_"+name, 1)
		unit++
	}
}
