package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts sun angles to a unit vector pointing towards the
// sun. Longitude rotates around Y (0 faces +Z), latitude is the elevation
// above the horizon, both in degrees.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lon := mgl32.DegToRad(longitude)
	lat := mgl32.DegToRad(latitude)
	return mgl32.Vec3{
		math32.Cos(lat) * math32.Sin(lon),
		math32.Sin(lat),
		math32.Cos(lat) * math32.Cos(lon),
	}
}

// NewSun creates a directional light shining from the sun position given
// by longitude and latitude.
func NewSun(longitude, latitude float32, ambient, diffuse, specular mgl32.Vec3) Light {
	return NewDirectional(SunDirection(longitude, latitude).Mul(-1), ambient, diffuse, specular)
}
