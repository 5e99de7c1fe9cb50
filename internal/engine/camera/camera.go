// Package camera provides the third-person camera that follows the player.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Target is what the camera follows.
type Target interface {
	Position() math.Vec3
	// RotationY is the target's heading in degrees.
	RotationY() float32
}

// Controls is one frame of mouse input as the camera consumes it.
type Controls struct {
	Wheel  float32 // wheel steps, positive away from the user
	DX, DY float32 // cursor movement in pixels
	Left   bool
	Right  bool
}

// Settings tunes the camera.
type Settings struct {
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Pitch       float32 // degrees
	MinPitch    float32
	MaxPitch    float32

	ZoomSpeed  float32
	PitchSpeed float32
	AngleSpeed float32
}

// DefaultSettings returns the reference camera tuning.
func DefaultSettings() Settings {
	return Settings{
		Distance:    50,
		MinDistance: 5,
		MaxDistance: 400,
		Pitch:       20,
		MinPitch:    -10,
		MaxPitch:    89,
		ZoomSpeed:   0.1,
		PitchSpeed:  0.2,
		AngleSpeed:  0.3,
	}
}

// ThirdPersonCamera orbits a target at a fixed distance and pitch.
// Pitch and yaw are in degrees.
type ThirdPersonCamera struct {
	settings Settings

	distance float32
	angle    float32 // around the target, added to its heading

	position math.Vec3
	pitch    float32
	yaw      float32
}

// NewThirdPersonCamera creates a camera with the given settings.
func NewThirdPersonCamera(s Settings) *ThirdPersonCamera {
	c := &ThirdPersonCamera{
		settings: s,
		distance: s.Distance,
		pitch:    s.Pitch,
	}
	c.clamp()
	return c
}

// Move applies one frame of input and places the camera behind target.
func (c *ThirdPersonCamera) Move(target Target, in Controls) {
	c.distance -= in.Wheel * c.settings.ZoomSpeed
	if in.Left {
		c.pitch -= in.DY * c.settings.PitchSpeed
	}
	if in.Right {
		c.angle += in.DX * c.settings.AngleSpeed
	}
	c.clamp()

	c.Follow(target)
}

// Follow places the camera behind target without consuming input.
func (c *ThirdPersonCamera) Follow(target Target) {
	pitch := math.Radians(c.pitch)
	horizontal := c.distance * math32.Cos(pitch)
	vertical := c.distance * math32.Sin(pitch)

	theta := target.RotationY() + c.angle
	sin, cos := math32.Sincos(math.Radians(theta))

	p := target.Position()
	c.position = math.Vec3{
		X: p.X - horizontal*sin,
		Y: p.Y + vertical,
		Z: p.Z - horizontal*cos,
	}
	c.yaw = 180 - theta
}

func (c *ThirdPersonCamera) clamp() {
	s := c.settings
	if s.MaxDistance > s.MinDistance {
		c.distance = math32.Max(s.MinDistance, math32.Min(s.MaxDistance, c.distance))
	}
	if s.MaxPitch > s.MinPitch {
		c.pitch = math32.Max(s.MinPitch, math32.Min(s.MaxPitch, c.pitch))
	}
}

// Position returns the camera position in world space.
func (c *ThirdPersonCamera) Position() math.Vec3 { return c.position }

// Pitch returns the camera pitch in degrees. Positive looks down.
func (c *ThirdPersonCamera) Pitch() float32 { return c.pitch }

// Yaw returns the camera yaw in degrees.
func (c *ThirdPersonCamera) Yaw() float32 { return c.yaw }

// Distance returns the current distance to the target.
func (c *ThirdPersonCamera) Distance() float32 { return c.distance }

// AngleAroundTarget returns the orbit angle in degrees.
func (c *ThirdPersonCamera) AngleAroundTarget() float32 { return c.angle }

// ViewMatrix returns the world to eye transform.
func (c *ThirdPersonCamera) ViewMatrix() math.Mat4 {
	return math.CreateViewMatrix(c.position, c.pitch, c.yaw)
}
