package game

import (
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/game/entity"
	"github.com/Faultbox/meadow/internal/game/world"
	"github.com/Faultbox/meadow/pkg/math"
)

// playerControls maps held keys to player input.
func playerControls(kb *input.Keyboard) entity.Controls {
	return entity.Controls{
		Forward: kb.Down(input.KeyW),
		Back:    kb.Down(input.KeyS),
		Left:    kb.Down(input.KeyA),
		Right:   kb.Down(input.KeyD),
		Jump:    kb.Down(input.KeySpace),
	}
}

// cameraControls maps this frame's mouse state to camera input.
func cameraControls(m *input.Mouse) camera.Controls {
	dx, dy := m.Delta()
	return camera.Controls{
		Wheel: m.Wheel(),
		DX:    dx,
		DY:    dy,
		Left:  m.Down(input.ButtonLeft),
		Right: m.Down(input.ButtonRight),
	}
}

// Simulation is the per-frame game state that needs no GPU: the camera,
// the world on its terrain tile and the mouse picker.
type Simulation struct {
	Camera  *camera.ThirdPersonCamera
	World   *world.World
	Terrain *terrain.HeightField
	Picker  *picking.MousePicker

	picked  math.Vec3
	hasPick bool
}

// Step advances the simulation by dt seconds using this frame's input.
// The camera moves first and the player after it, so the view lags the
// player by a frame.
func (s *Simulation) Step(dt float32, in *input.Input) {
	s.Camera.Move(s.World.Player, cameraControls(&in.Mouse))
	s.World.Player.Move(dt, playerControls(&in.Keyboard), s.Terrain)

	s.Picker.Update(s.Camera, &in.Mouse)
	s.picked, s.hasPick = s.Picker.CurrentTerrainPoint()
	if s.hasPick {
		s.World.MoveCursorLamp(s.picked)
	}
}

// Picked returns the terrain point under the cursor after the last Step.
func (s *Simulation) Picked() (math.Vec3, bool) {
	return s.picked, s.hasPick
}

// Submit queues the world and its terrain for drawing.
func (s *Simulation) Submit(f *scene.Frame) {
	s.World.Submit(f)
	f.SubmitTerrain(s.Terrain)
}
