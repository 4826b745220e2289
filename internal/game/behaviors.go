package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/model"
)

// FlyController moves the scene camera from input: movement actions at
// Speed units per second, mouse motion scaled by Sensitivity degrees per
// unit, scroll wheel zoom and the quit action.
type FlyController struct {
	Speed       float32
	Sensitivity float32
}

var moves = []struct {
	action Action
	dir    camera.Direction
}{
	{MoveForward, camera.Forward},
	{MoveBackward, camera.Backward},
	{MoveLeft, camera.Left},
	{MoveRight, camera.Right},
	{MoveUp, camera.Up},
	{MoveDown, camera.Down},
}

// Update implements Behavior.
func (f *FlyController) Update(g *Game, dt float32) {
	in := g.Input()
	if in.Pressed(Quit) {
		g.Window().SetShouldClose(true)
	}

	cam := g.Scene().Camera()
	if cam == nil {
		return
	}

	velocity := f.Speed * dt
	for _, m := range moves {
		if in.Pressed(m.action) {
			cam.Move(m.dir, velocity)
		}
	}

	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		cam.Rotate(dx*f.Sensitivity, dy*f.Sensitivity, true)
	}

	if scroll := in.ScrollDelta(); scroll != 0 {
		cam.SetZoom(cam.Zoom() - scroll)
	}
}

// Spinner rotates a model every frame by Rate radians per second around
// the axes selected by Axis.
type Spinner struct {
	Model *model.Model
	Axis  mgl32.Vec3
	Rate  float32
}

// Update implements Behavior.
func (s *Spinner) Update(_ *Game, dt float32) {
	s.Model.Rotate(s.Axis, s.Rate*dt)
}
