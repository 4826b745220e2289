package lighting

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/logger"
)

// Set is an ordered collection of lights. Point lights take array slots in
// insertion order. Directional and spot lights share one slot each, so a
// later one overwrites an earlier one.
type Set struct {
	lights []Light
	warned bool
}

// Add appends lights in order.
func (s *Set) Add(lights ...Light) {
	s.lights = append(s.lights, lights...)
}

// Len returns the number of lights of every kind.
func (s *Set) Len() int { return len(s.lights) }

// Lights returns a copy of the lights in insertion order.
func (s *Set) Lights() []Light {
	return append([]Light(nil), s.lights...)
}

// Apply writes every light and then numPointLights. It returns the number
// of point lights written.
func (s *Set) Apply(u shader.Uniforms) int {
	points := 0
	for _, l := range s.lights {
		if l.Kind == Point {
			l.Apply(u, points)
			points++
			continue
		}
		l.Apply(u, 0)
	}
	u.SetInt(shader.NumPointLights, int32(points))

	if points > shader.MaxPointLights && !s.warned {
		s.warned = true
		logger.Warn("point lights exceed shader capacity",
			zap.Int("count", points),
			zap.Int("capacity", shader.MaxPointLights))
	}
	return points
}
