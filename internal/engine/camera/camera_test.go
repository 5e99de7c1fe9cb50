package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/pkg/math"
)

var _ picking.CameraState = (*ThirdPersonCamera)(nil)

type target struct {
	pos math.Vec3
	rot float32
}

func (t target) Position() math.Vec3 { return t.pos }
func (t target) RotationY() float32  { return t.rot }

func TestFollowDefaults(t *testing.T) {
	c := NewThirdPersonCamera(DefaultSettings())
	c.Follow(target{})

	pitch := math.Radians(20)
	assert.InDelta(t, 0, c.Position().X, 1e-4)
	assert.InDelta(t, 50*math32.Sin(pitch), c.Position().Y, 1e-4)
	assert.InDelta(t, -50*math32.Cos(pitch), c.Position().Z, 1e-4)
	assert.Equal(t, float32(180), c.Yaw())
	assert.Equal(t, float32(20), c.Pitch())
}

func TestCameraLooksAtTarget(t *testing.T) {
	tests := []struct {
		name  string
		tgt   target
		input Controls
	}{
		{"behind", target{pos: math.Vec3{X: 10, Y: 5, Z: -300}}, Controls{}},
		{"turned target", target{pos: math.Vec3{X: -40, Y: 0, Z: 12}, rot: 75}, Controls{}},
		{"orbited", target{pos: math.Vec3{X: 200, Y: -3, Z: -200}, rot: 210}, Controls{Right: true, DX: 150}},
		{"steep", target{rot: 33}, Controls{Left: true, DY: -200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewThirdPersonCamera(DefaultSettings())
			c.Move(tt.tgt, tt.input)

			eye := c.ViewMatrix().TransformPoint(tt.tgt.pos)
			assert.InDelta(t, 0, eye.X, 1e-3)
			assert.InDelta(t, 0, eye.Y, 1e-3)
			assert.InDelta(t, -c.Distance(), eye.Z, 1e-3)
		})
	}
}

func TestMoveControls(t *testing.T) {
	t.Run("wheel zooms in", func(t *testing.T) {
		c := NewThirdPersonCamera(DefaultSettings())
		c.Move(target{}, Controls{Wheel: 10})
		assert.InDelta(t, 49, c.Distance(), 1e-5)
	})

	t.Run("left drag pitches", func(t *testing.T) {
		c := NewThirdPersonCamera(DefaultSettings())
		c.Move(target{}, Controls{Left: true, DY: 10})
		assert.InDelta(t, 18, c.Pitch(), 1e-5)
	})

	t.Run("right drag orbits", func(t *testing.T) {
		c := NewThirdPersonCamera(DefaultSettings())
		c.Move(target{rot: 40}, Controls{Right: true, DX: 10})
		assert.InDelta(t, 3, c.AngleAroundTarget(), 1e-5)
		assert.InDelta(t, 180-43, c.Yaw(), 1e-5)
	})

	t.Run("movement without buttons is ignored", func(t *testing.T) {
		c := NewThirdPersonCamera(DefaultSettings())
		c.Move(target{}, Controls{DX: 500, DY: 500})
		assert.Equal(t, float32(20), c.Pitch())
		assert.Equal(t, float32(0), c.AngleAroundTarget())
	})
}

func TestClamps(t *testing.T) {
	s := DefaultSettings()
	c := NewThirdPersonCamera(s)

	c.Move(target{}, Controls{Wheel: 1e6})
	assert.Equal(t, s.MinDistance, c.Distance())
	c.Move(target{}, Controls{Wheel: -1e6})
	assert.Equal(t, s.MaxDistance, c.Distance())

	c.Move(target{}, Controls{Left: true, DY: -1e4})
	assert.Equal(t, s.MaxPitch, c.Pitch())
	c.Move(target{}, Controls{Left: true, DY: 1e4})
	assert.Equal(t, s.MinPitch, c.Pitch())

	t.Run("zero limits disable clamping", func(t *testing.T) {
		c := NewThirdPersonCamera(Settings{Distance: 50, ZoomSpeed: 1})
		c.Move(target{}, Controls{Wheel: 80})
		assert.Equal(t, float32(-30), c.Distance())
	})
}
