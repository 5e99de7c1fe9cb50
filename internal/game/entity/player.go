package entity

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/pkg/math"
)

// Movement defaults.
const (
	DefaultRunSpeed  float32 = 20
	DefaultTurnSpeed float32 = 160
	DefaultGravity   float32 = -50
	DefaultJumpPower float32 = 30
)

// Ground answers terrain height queries.
type Ground interface {
	HeightAt(x, z float32) float32
}

// Controls is the player's input for one frame.
type Controls struct {
	Forward, Back bool
	Left, Right   bool
	Jump          bool
}

// Physics tunes player movement.
type Physics struct {
	RunSpeed  float32
	TurnSpeed float32 // degrees per second
	Gravity   float32
	JumpPower float32
}

// DefaultPhysics returns the reference movement tuning.
func DefaultPhysics() Physics {
	return Physics{
		RunSpeed:  DefaultRunSpeed,
		TurnSpeed: DefaultTurnSpeed,
		Gravity:   DefaultGravity,
		JumpPower: DefaultJumpPower,
	}
}

// Player is the entity the user steers. It runs along its heading, falls
// under gravity and stands on the terrain.
type Player struct {
	*Entity

	physics      Physics
	speed        float32
	turnSpeed    float32
	upwardsSpeed float32
	inAir        bool
}

// NewPlayer creates a player standing at position.
func NewPlayer(tm model.TexturedModel, position, rotation math.Vec3, scale float32, p Physics) *Player {
	return &Player{
		Entity:  New(KindPlayer, tm, position, rotation, scale),
		physics: p,
	}
}

// RotationY returns the player's heading in degrees.
func (p *Player) RotationY() float32 { return p.Rotation.Y }

// Position returns the player's position.
func (p *Player) Position() math.Vec3 { return p.Entity.Position }

// InAir reports whether the player is off the ground.
func (p *Player) InAir() bool { return p.inAir }

// Move advances the player by dt seconds.
func (p *Player) Move(dt float32, in Controls, ground Ground) {
	p.applyControls(in)

	p.IncreaseRotation(math.Vec3{Y: p.turnSpeed * dt})

	distance := p.speed * dt
	sin, cos := math32.Sincos(math.Radians(p.Rotation.Y))
	p.IncreasePosition(math.Vec3{X: distance * sin, Z: distance * cos})

	p.upwardsSpeed += p.physics.Gravity * dt
	p.IncreasePosition(math.Vec3{Y: p.upwardsSpeed * dt})

	height := ground.HeightAt(p.Entity.Position.X, p.Entity.Position.Z)
	if p.Entity.Position.Y < height {
		p.upwardsSpeed = 0
		p.inAir = false
		p.Entity.Position.Y = height
	}
}

// Jump launches the player unless it is already in the air.
func (p *Player) Jump() {
	if !p.inAir {
		p.upwardsSpeed = p.physics.JumpPower
		p.inAir = true
	}
}

func (p *Player) applyControls(in Controls) {
	switch {
	case in.Forward:
		p.speed = p.physics.RunSpeed
	case in.Back:
		p.speed = -p.physics.RunSpeed
	default:
		p.speed = 0
	}

	switch {
	case in.Right:
		p.turnSpeed = -p.physics.TurnSpeed
	case in.Left:
		p.turnSpeed = p.physics.TurnSpeed
	default:
		p.turnSpeed = 0
	}

	if in.Jump {
		p.Jump()
	}
}
