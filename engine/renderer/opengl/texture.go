package opengl

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

func (r *OpenGLRenderer) TextureCreate2D(img *image.NRGBA, mipmap bool) (metadata.TextureHandle, error) {
	if img == nil || img.Rect.Empty() {
		return 0, errors.Wrap(core.ErrTextureDecode, "empty image")
	}
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmap {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	if mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return metadata.TextureHandle(texture), nil
}

// TextureCreateCube uploads six faces in metadata.CubemapFaces order.
func (r *OpenGLRenderer) TextureCreateCube(faces [6]*image.NRGBA, mipmap bool) (metadata.TextureHandle, error) {
	for i, f := range faces {
		if f == nil || f.Rect.Empty() {
			return 0, errors.Wrapf(core.ErrCubemapFace, "face %s is empty", metadata.CubemapFaces[i])
		}
		if f.Rect.Size() != faces[0].Rect.Size() {
			return 0, errors.Wrapf(core.ErrCubemapFace, "face %s is %v, expected %v", metadata.CubemapFaces[i], f.Rect.Size(), faces[0].Rect.Size())
		}
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texture)

	for i, f := range faces {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(f.Stride/4))
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8, int32(f.Rect.Dx()), int32(f.Rect.Dy()),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmap {
		gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	} else {
		gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return metadata.TextureHandle(texture), nil
}

func (r *OpenGLRenderer) TextureDestroy(texture metadata.TextureHandle) {
	if texture == 0 {
		return
	}
	t := uint32(texture)
	gl.DeleteTextures(1, &t)
}

func (r *OpenGLRenderer) BindTexture(unit uint32, binding metadata.TextureBinding) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	if binding.Kind == metadata.TextureCubeMap {
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(binding.Handle))
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(binding.Handle))
}
