package shader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// PhongVertexShader is the vertex stage of the built-in lighting program.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader is the fragment stage of the built-in lighting program.
//
//go:embed phong.frag
var PhongFragmentShader string

// Sources returns the Phong vertex and fragment sources. When dir is empty
// the embedded copies are used, otherwise phong.vert and phong.frag are
// read from dir.
func Sources(dir string) (vertex, fragment string, err error) {
	if dir == "" {
		return PhongVertexShader, PhongFragmentShader, nil
	}
	v, err := os.ReadFile(filepath.Join(dir, "phong.vert"))
	if err != nil {
		return "", "", fmt.Errorf("reading vertex shader: %w", err)
	}
	f, err := os.ReadFile(filepath.Join(dir, "phong.frag"))
	if err != nil {
		return "", "", fmt.Errorf("reading fragment shader: %w", err)
	}
	return string(v), string(f), nil
}
