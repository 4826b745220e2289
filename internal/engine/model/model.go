// Package model provides the transformable entity that owns meshes and
// writes its per-object uniforms before drawing them.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/mesh"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/pkg/math"
)

// Defaults for new models.
var (
	DefaultColor     = mgl32.Vec3{0.8, 0.8, 0.8}
	DefaultShininess = float32(32)
)

// Model places a list of meshes in the world.
//
// Rotation holds Euler angles in degrees per axis. The model matrix is
// T · Rz · Ry · Rx · S with column vectors: scale first, then rotate about
// X, Y and Z, then translate.
type Model struct {
	meshes    []*mesh.Mesh
	position  mgl32.Vec3
	rotation  mgl32.Vec3
	scale     mgl32.Vec3
	color     mgl32.Vec3
	shininess float32
}

// New creates a model at the origin with unit scale.
func New(meshes ...*mesh.Mesh) *Model {
	return &Model{
		meshes:    meshes,
		scale:     mgl32.Vec3{1, 1, 1},
		color:     DefaultColor,
		shininess: DefaultShininess,
	}
}

// Matrix composes the model matrix from the current transform. It is
// rebuilt on every call.
func (m *Model) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.position[0], m.position[1], m.position[2]).
		Mul4(mgl32.HomogRotate3DZ(math.Radians(m.rotation[2]))).
		Mul4(mgl32.HomogRotate3DY(math.Radians(m.rotation[1]))).
		Mul4(mgl32.HomogRotate3DX(math.Radians(m.rotation[0]))).
		Mul4(mgl32.Scale3D(m.scale[0], m.scale[1], m.scale[2]))
}

// Rotate adds angle, in radians, to every axis whose mask component is
// positive. The mask is not a rotation axis: (1,1,0) spins X and Y by the
// same amount.
func (m *Model) Rotate(axisMask mgl32.Vec3, angle float32) {
	deg := math.Degrees(angle)
	for i := 0; i < 3; i++ {
		if axisMask[i] > 0 {
			m.rotation[i] += deg
		}
	}
}

// Draw writes the object uniforms and draws every mesh in order.
// hasTexture follows the first mesh.
func (m *Model) Draw(u shader.Uniforms, dev gpu.Device) {
	u.SetMat4(shader.Model, m.Matrix())
	u.SetFloat(shader.MaterialShine, m.shininess)
	u.SetVec3(shader.ObjectColor, m.color)
	u.SetBool(shader.HasTexture, len(m.meshes) > 0 && m.meshes[0].HasTextures())

	for _, msh := range m.meshes {
		msh.Draw(u, dev)
	}
}

// AddMesh appends a mesh.
func (m *Model) AddMesh(msh *mesh.Mesh) { m.meshes = append(m.meshes, msh) }

// Meshes returns the owned meshes in draw order.
func (m *Model) Meshes() []*mesh.Mesh { return append([]*mesh.Mesh(nil), m.meshes...) }

func (m *Model) SetPosition(p mgl32.Vec3) { m.position = p }
func (m *Model) SetRotation(r mgl32.Vec3) { m.rotation = r }
func (m *Model) SetScale(s mgl32.Vec3)    { m.scale = s }
func (m *Model) SetColor(c mgl32.Vec3)    { m.color = c }
func (m *Model) SetShininess(s float32)   { m.shininess = s }
func (m *Model) Position() mgl32.Vec3     { return m.position }
func (m *Model) Rotation() mgl32.Vec3     { return m.rotation }
func (m *Model) Scale() mgl32.Vec3        { return m.scale }
func (m *Model) Color() mgl32.Vec3        { return m.color }
func (m *Model) Shininess() float32       { return m.shininess }
