// Package shader defines the uniform-write contract between the scene core
// and a shader program, plus the Phong program sources.
package shader

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms accepts named uniform writes.
type Uniforms interface {
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat2(name string, m mgl32.Mat2)
	SetMat3(name string, m mgl32.Mat3)
	SetMat4(name string, m mgl32.Mat4)
}

// Program is a linked shader program that can be bound for drawing.
type Program interface {
	Uniforms
	Use()
}

// Uniform names shared with phong.vert / phong.frag.
const (
	View             = "view"
	Projection       = "projection"
	ViewPos          = "viewPos"
	Model            = "model"
	MaterialShine    = "material.shininess"
	ObjectColor      = "objectColor"
	HasTexture       = "hasTexture"
	NumPointLights   = "numPointLights"
	DirLightPrefix   = "dirLight."
	SpotLightPrefix  = "spotLight."
	PointLightsArray = "pointLights"
)

// MaxPointLights is the point light array capacity declared in phong.frag.
const MaxPointLights = 16

// PointLight returns the uniform name of field for point light i,
// e.g. "pointLights[2].position".
func PointLight(i int, field string) string {
	return PointLightsArray + "[" + strconv.Itoa(i) + "]." + field
}

// Sampler returns the material sampler name for the n-th texture of kind,
// e.g. "material.texture_diffuse1".
func Sampler(kind string, n int) string {
	return "material." + kind + strconv.Itoa(n)
}
