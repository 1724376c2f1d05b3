//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Shaders mg.Namespace

// Validate runs glslangValidator over every stage under assets/shaders.
func (Shaders) Validate() error {
	stages, err := shaderStages("assets/shaders")
	if err != nil {
		return err
	}
	failed := 0
	for _, stage := range stages {
		if _, err := executeCmd("glslangValidator", withArgs(stage)); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", stage, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shader stages failed validation", failed, len(stages))
	}
	fmt.Printf("%d shader stages validated\n", len(stages))
	return nil
}

func shaderStages(dir string) ([]string, error) {
	var stages []string
	for _, ext := range []string{"*.vert", "*.frag", "*.geom"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return nil, err
		}
		stages = append(stages, matches...)
	}
	return stages, nil
}
