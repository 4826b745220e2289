package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/geometry"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/texture"
	"github.com/Faultbox/glint/internal/logger"
)

// Load imports a model file. OBJ files bring their MTL textures; a texture
// that fails to load is logged and left out. STL and PLY files carry
// geometry only. Any other extension yields a unit cube.
//
// A missing OBJ, STL or PLY file returns an error matching fs.ErrNotExist.
func Load(dev gpu.Device, path string) (*Model, error) {
	log := logger.Named("model")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := geometry.LoadOBJ(path)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		textures, texErr := loadTextures(dev, obj.Textures)
		if texErr != nil {
			log.Warn("some textures failed to load",
				zap.String("path", path),
				zap.Int("failed", len(multierr.Errors(texErr))),
				zap.Error(texErr))
		}
		m, err := FromSurface(dev, obj.Mesh, textures...)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		log.Info("model loaded",
			zap.String("path", path),
			zap.Int("vertices", len(obj.Mesh.Vertices)),
			zap.Int("triangles", len(obj.Mesh.Triangles)),
			zap.Int("textures", len(textures)))
		return m, nil

	case ".stl", ".ply":
		load := geometry.LoadSTL
		if strings.EqualFold(filepath.Ext(path), ".ply") {
			load = geometry.LoadPLY
		}
		s, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		m, err := FromSurface(dev, s)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		log.Info("model loaded",
			zap.String("path", path),
			zap.Int("triangles", len(s.Triangles)))
		return m, nil
	}

	log.Warn("unsupported model format, using a cube", zap.String("path", path))
	return Box(dev, 1, 1, 1)
}

func loadTextures(dev gpu.Device, refs []geometry.TextureRef) ([]texture.Texture, error) {
	var (
		textures []texture.Texture
		errs     error
	)
	for _, ref := range refs {
		tex, err := texture.Load(dev, ref.Path, texture.Kind(ref.Kind))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		textures = append(textures, tex)
	}
	return textures, errs
}
