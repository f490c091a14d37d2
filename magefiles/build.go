//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var shaderDir = filepath.Join("assets", "shaders")

// Compiles the GLSL shader sources into SPIR-V next to them.
func (Build) Shaders() error {
	for _, name := range []string{"pbr.vert", "pbr.frag"} {
		src := filepath.Join(shaderDir, name)
		out := filepath.Join(shaderDir, name+".spv")
		if _, err := executeCmd("glslc", withArgs(src, "-o", out), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Builds the demo binary.
func (Build) Binary() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("build", "-o", "aura", "."), withStream())
	return err
}
