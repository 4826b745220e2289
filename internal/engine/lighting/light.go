// Package lighting holds the light variants of the Phong pipeline and the
// ordered set that writes them to a shader.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/internal/engine/shader"
)

// Kind selects the light variant.
type Kind uint8

const (
	Directional Kind = iota
	Point
	Spot
)

func (k Kind) String() string {
	switch k {
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Light is one light source. Which fields are meaningful depends on Kind:
// Direction for Directional and Spot, Position and Attenuation for Point
// and Spot, the cut-offs for Spot only.
type Light struct {
	Kind Kind

	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	Direction   mgl32.Vec3
	Position    mgl32.Vec3
	Attenuation Attenuation

	// Cosines of the inner and outer cone half-angles.
	CutOff      float32
	OuterCutOff float32
}

// NewDirectional creates a light shining along direction.
func NewDirectional(direction, ambient, diffuse, specular mgl32.Vec3) Light {
	return Light{
		Kind:      Directional,
		Direction: direction,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
	}
}

// NewPoint creates an omnidirectional light at position.
func NewPoint(position, ambient, diffuse, specular mgl32.Vec3, att Attenuation) Light {
	return Light{
		Kind:        Point,
		Position:    position,
		Ambient:     ambient,
		Diffuse:     diffuse,
		Specular:    specular,
		Attenuation: att,
	}
}

// NewSpot creates a cone light. innerDeg and outerDeg are the cone
// half-angles in degrees; the light stores their cosines.
func NewSpot(position, direction, ambient, diffuse, specular mgl32.Vec3, att Attenuation, innerDeg, outerDeg float32) Light {
	return Light{
		Kind:        Spot,
		Position:    position,
		Direction:   direction,
		Ambient:     ambient,
		Diffuse:     diffuse,
		Specular:    specular,
		Attenuation: att,
		CutOff:      math32.Cos(mgl32.DegToRad(innerDeg)),
		OuterCutOff: math32.Cos(mgl32.DegToRad(outerDeg)),
	}
}

// Apply writes the light's uniforms. index selects the point light array
// slot and is ignored by the single-slot variants.
func (l Light) Apply(u shader.Uniforms, index int) {
	switch l.Kind {
	case Directional:
		p := shader.DirLightPrefix
		u.SetVec3(p+"direction", l.Direction)
		u.SetVec3(p+"ambient", l.Ambient)
		u.SetVec3(p+"diffuse", l.Diffuse)
		u.SetVec3(p+"specular", l.Specular)
	case Point:
		name := func(field string) string { return shader.PointLight(index, field) }
		u.SetVec3(name("position"), l.Position)
		u.SetVec3(name("ambient"), l.Ambient)
		u.SetVec3(name("diffuse"), l.Diffuse)
		u.SetVec3(name("specular"), l.Specular)
		u.SetFloat(name("constant"), l.Attenuation.Constant)
		u.SetFloat(name("linear"), l.Attenuation.Linear)
		u.SetFloat(name("quadratic"), l.Attenuation.Quadratic)
	case Spot:
		p := shader.SpotLightPrefix
		u.SetVec3(p+"position", l.Position)
		u.SetVec3(p+"direction", l.Direction)
		u.SetVec3(p+"ambient", l.Ambient)
		u.SetVec3(p+"diffuse", l.Diffuse)
		u.SetVec3(p+"specular", l.Specular)
		u.SetFloat(p+"constant", l.Attenuation.Constant)
		u.SetFloat(p+"linear", l.Attenuation.Linear)
		u.SetFloat(p+"quadratic", l.Attenuation.Quadratic)
		u.SetFloat(p+"cutOff", l.CutOff)
		u.SetFloat(p+"outerCutOff", l.OuterCutOff)
	}
}
