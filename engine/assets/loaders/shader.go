package loaders

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// ShaderLoader reads a GLSL stage as text. Compilation is left to the backend.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading shader '%s'", path)
	}
	return &metadata.Resource{
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}

// TextLoader is the shader loader for any other text file.
type TextLoader struct {
	ShaderLoader
}
