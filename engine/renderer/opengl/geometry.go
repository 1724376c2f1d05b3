package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// CreateGeometry uploads the packed attribute buffer and the index buffer
// into a new vertex array.
func (r *OpenGLRenderer) CreateGeometry(config *metadata.GeometryConfig) (*metadata.Mesh, error) {
	mesh := &metadata.Mesh{Name: config.Name}
	if err := config.Validate(); err != nil {
		err = errors.Wrap(core.ErrGeometryUpload, err.Error())
		core.LogError(err.Error())
		return mesh, err
	}
	if config.VertexCount() == 0 || config.IndexCount() == 0 {
		err := errors.Wrapf(core.ErrGeometryUpload, "geometry '%s' is empty", config.Name)
		core.LogError(err.Error())
		return mesh, err
	}

	vertices := config.Pack()
	segments := config.Segments()

	gl.GenVertexArrays(1, &mesh.VAO)
	gl.BindVertexArray(mesh.VAO)

	gl.GenBuffers(1, &mesh.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	for location := metadata.AttribPosition; location < metadata.AttribCount; location++ {
		gl.EnableVertexAttribArray(location)
		gl.VertexAttribPointer(location, 3, gl.FLOAT, false, 0, gl.PtrOffset(segments[location]))
	}

	gl.GenBuffers(1, &mesh.IBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.IBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, gl.Ptr(config.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.DestroyGeometry(mesh)
		failed := &metadata.Mesh{Name: config.Name}
		err := errors.Wrapf(core.ErrGeometryUpload, "geometry '%s': GL error 0x%x", config.Name, code)
		core.LogError(err.Error())
		return failed, err
	}

	mesh.VerticesNB = config.VertexCount()
	mesh.IndicesNB = config.IndexCount()
	return mesh, nil
}

func (r *OpenGLRenderer) DestroyGeometry(mesh *metadata.Mesh) {
	if mesh == nil {
		return
	}
	if mesh.IBO != 0 {
		gl.DeleteBuffers(1, &mesh.IBO)
	}
	if mesh.VBO != 0 {
		gl.DeleteBuffers(1, &mesh.VBO)
	}
	if mesh.VAO != 0 {
		gl.DeleteVertexArrays(1, &mesh.VAO)
	}
}

func (r *OpenGLRenderer) DrawGeometry(mesh *metadata.Mesh) {
	gl.BindVertexArray(mesh.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(mesh.IndicesNB), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}
