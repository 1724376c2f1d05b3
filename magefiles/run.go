//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Demo runs the demo named by $DEMO (planets when unset).
func (Run) Demo() error {
	mg.Deps(Shaders.Validate)

	demo := os.Getenv("DEMO")
	if demo == "" {
		demo = "planets"
	}
	fmt.Printf("Run demo %s...\n", demo)
	_, err := executeCmd("go", withArgs("run", ".", "-config", "parallax.toml", "-demo", demo), withStream())
	return err
}

// Headless runs every demo for a few frames without a window.
func (Run) Headless() error {
	for _, demo := range []string{"planets", "shapes", "lighting", "ocean"} {
		if _, err := executeCmd("go", withArgs("run", ".", "-config", "testdata/headless.toml", "-demo", demo), withStream()); err != nil {
			return err
		}
	}
	return nil
}
