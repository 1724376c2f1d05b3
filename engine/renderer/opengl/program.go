package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

func glStage(stage metadata.ShaderStage) uint32 {
	switch stage {
	case metadata.ShaderStageGeometry:
		return gl.GEOMETRY_SHADER
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func compileShader(stage metadata.ShaderStageSource) (uint32, error) {
	shader := gl.CreateShader(glStage(stage.Stage))

	csource, free := gl.Strs(stage.Source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := strings.Repeat("\x00", int(logSize+1))
		gl.GetShaderInfoLog(shader, logSize, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, errors.Wrapf(core.ErrShaderCompile, "%s stage '%s': %s", stage.Stage, stage.Path, strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

// ProgramCreate compiles every stage and links them. Nothing leaks on failure.
func (r *OpenGLRenderer) ProgramCreate(stages []metadata.ShaderStageSource) (metadata.ProgramHandle, error) {
	if len(stages) == 0 {
		return 0, errors.Wrap(core.ErrShaderLink, "no stages")
	}

	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, stage := range stages {
		s, err := compileShader(stage)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	var isLinked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logSize)
		buf := strings.Repeat("\x00", int(logSize+1))
		gl.GetProgramInfoLog(program, logSize, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, errors.Wrapf(core.ErrShaderLink, "%s", strings.TrimRight(buf, "\x00"))
	}

	handle := metadata.ProgramHandle(program)
	r.locations[handle] = make(map[string]int32)
	return handle, nil
}

func (r *OpenGLRenderer) ProgramDestroy(program metadata.ProgramHandle) {
	if program == 0 {
		return
	}
	if r.current == program {
		gl.UseProgram(0)
		r.current = 0
	}
	delete(r.locations, program)
	gl.DeleteProgram(uint32(program))
}

func (r *OpenGLRenderer) UseProgram(program metadata.ProgramHandle) {
	if r.current == program {
		return
	}
	gl.UseProgram(uint32(program))
	r.current = program
}

func (r *OpenGLRenderer) Uniforms(program metadata.ProgramHandle) metadata.UniformSetter {
	return &uniformSetter{program: program, renderer: r}
}

func (r *OpenGLRenderer) location(program metadata.ProgramHandle, name string) int32 {
	cache, ok := r.locations[program]
	if !ok {
		cache = make(map[string]int32)
		r.locations[program] = cache
	}
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
	cache[name] = loc
	return loc
}
