package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/glint/internal/engine/lighting"
)

// Light kinds accepted in the scene.lights section.
const (
	KindDirectional = "directional"
	KindSun         = "sun"
	KindPoint       = "point"
	KindSpot        = "spot"
)

// ErrUnknownLightKind is returned for a light with an unrecognized kind.
var ErrUnknownLightKind = errors.New("unknown light kind")

// LightConfig describes one light. Which fields matter depends on Kind:
// directional uses Direction, sun uses Longitude and Latitude, point uses
// Position and attenuation, spot uses all of those plus the cutoffs.
type LightConfig struct {
	Kind      string  `yaml:"kind"`
	Direction Vec3    `yaml:"direction,omitempty"`
	Position  Vec3    `yaml:"position,omitempty"`
	Longitude float32 `yaml:"longitude,omitempty"`
	Latitude  float32 `yaml:"latitude,omitempty"`

	Ambient  Vec3 `yaml:"ambient"`
	Diffuse  Vec3 `yaml:"diffuse"`
	Specular Vec3 `yaml:"specular"`

	// Attenuation wins over Range; with neither the default falloff is used.
	Attenuation *AttenuationConfig `yaml:"attenuation,omitempty"`
	Range       float32            `yaml:"range,omitempty"`

	CutOff      float32 `yaml:"cutoff,omitempty"`       // degrees
	OuterCutOff float32 `yaml:"outer_cutoff,omitempty"` // degrees
}

// AttenuationConfig holds explicit falloff coefficients.
type AttenuationConfig struct {
	Constant  float32 `yaml:"constant"`
	Linear    float32 `yaml:"linear"`
	Quadratic float32 `yaml:"quadratic"`
}

func (l LightConfig) attenuation() lighting.Attenuation {
	switch {
	case l.Attenuation != nil:
		return lighting.Attenuation{
			Constant:  l.Attenuation.Constant,
			Linear:    l.Attenuation.Linear,
			Quadratic: l.Attenuation.Quadratic,
		}
	case l.Range > 0:
		return lighting.AttenuationForRange(l.Range)
	default:
		return lighting.DefaultAttenuation
	}
}

// Light builds the light described by l.
func (l LightConfig) Light() (lighting.Light, error) {
	amb, dif, spec := l.Ambient.Vec(), l.Diffuse.Vec(), l.Specular.Vec()
	switch l.Kind {
	case KindDirectional:
		return lighting.NewDirectional(l.Direction.Vec(), amb, dif, spec), nil
	case KindSun:
		return lighting.NewSun(l.Longitude, l.Latitude, amb, dif, spec), nil
	case KindPoint:
		return lighting.NewPoint(l.Position.Vec(), amb, dif, spec, l.attenuation()), nil
	case KindSpot:
		if l.OuterCutOff < l.CutOff {
			return lighting.Light{}, fmt.Errorf("spot light: outer cutoff %v below inner %v", l.OuterCutOff, l.CutOff)
		}
		return lighting.NewSpot(l.Position.Vec(), l.Direction.Vec(), amb, dif, spec, l.attenuation(), l.CutOff, l.OuterCutOff), nil
	}
	return lighting.Light{}, fmt.Errorf("%w: %q", ErrUnknownLightKind, l.Kind)
}

// BuildLights builds every configured light, failing on the first invalid one.
func (s SceneConfig) BuildLights() ([]lighting.Light, error) {
	lights := make([]lighting.Light, 0, len(s.Lights))
	for i, lc := range s.Lights {
		l, err := lc.Light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, l)
	}
	return lights, nil
}
