package core

import (
	"errors"
)

var (
	ErrInvalidResolution    = errors.New("resolution must be at least 2 along every axis")
	ErrMismatchedAttributes = errors.New("vertex attribute arrays differ in length")
	ErrIndexOutOfRange      = errors.New("index references a vertex past the end of the buffer")
	ErrGeometryUpload       = errors.New("failed to upload geometry")

	ErrShaderCompile      = errors.New("shader failed to compile")
	ErrShaderLink         = errors.New("program failed to link")
	ErrUnknownProgramSlot = errors.New("unknown program slot")

	ErrTextureDecode = errors.New("failed to decode texture")
	ErrCubemapFace   = errors.New("cubemap face missing or mismatched")

	ErrAssetNotFound       = errors.New("asset not found")
	ErrUnknownResourceType = errors.New("unknown resource type")

	ErrSceneCycle  = errors.New("scene graph contains a cycle")
	ErrInvalidNode = errors.New("invalid node id")

	ErrUnknownBackend = errors.New("unknown renderer backend")
	ErrUnknownDemo    = errors.New("unknown demo")
)
