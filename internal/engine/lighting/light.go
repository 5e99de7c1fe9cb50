// Package lighting holds the scene lights and packs them for shader upload.
package lighting

import "github.com/Faultbox/meadow/pkg/math"

// MaxLights is the number of lights the shaders accept.
const MaxLights = 4

// NoAttenuation keeps a light at full strength at any distance.
var NoAttenuation = math.Vec3{X: 1, Y: 0, Z: 0}

// Light is a point light. Attenuation holds the constant, linear and
// quadratic falloff factors.
type Light struct {
	Position    math.Vec3
	Color       math.Vec3
	Attenuation math.Vec3
}

// New creates a light that does not fall off with distance.
func New(position, color math.Vec3) Light {
	return Light{Position: position, Color: color, Attenuation: NoAttenuation}
}

// Factor returns the attenuation divisor at distance d.
func (l Light) Factor(d float32) float32 {
	return l.Attenuation.X + l.Attenuation.Y*d + l.Attenuation.Z*d*d
}

// DefaultLights returns the sun followed by the red, cyan and yellow lamp
// lights.
func DefaultLights() []Light {
	lamp := math.Vec3{X: 1, Y: 0.01, Z: 0.002}
	return []Light{
		New(math.Vec3{X: 0, Y: 10000, Z: -7000}, math.Vec3{X: 0.4, Y: 0.4, Z: 0.4}),
		{Position: math.Vec3{X: 185, Y: 100, Z: -293}, Color: math.Vec3{X: 2, Y: 0, Z: 0}, Attenuation: lamp},
		{Position: math.Vec3{X: 370, Y: 100, Z: -300}, Color: math.Vec3{X: 0, Y: 2, Z: 2}, Attenuation: lamp},
		{Position: math.Vec3{X: 293, Y: 100, Z: -305}, Color: math.Vec3{X: 2, Y: 2, Z: 0}, Attenuation: lamp},
	}
}

// Uniforms is a light list laid out for upload: exactly MaxLights entries,
// padded with black lights.
type Uniforms struct {
	Positions    [MaxLights * 3]float32
	Colors       [MaxLights * 3]float32
	Attenuations [MaxLights * 3]float32
	Count        int
}

// Pack truncates lights to MaxLights and pads the rest with black lights
// that have no falloff.
func Pack(lights []Light) Uniforms {
	var u Uniforms
	for i := 0; i < MaxLights; i++ {
		l := Light{Attenuation: NoAttenuation}
		if i < len(lights) {
			l = lights[i]
			u.Count++
		}
		put(u.Positions[i*3:], l.Position)
		put(u.Colors[i*3:], l.Color)
		put(u.Attenuations[i*3:], l.Attenuation)
	}
	return u
}

func put(dst []float32, v math.Vec3) {
	dst[0], dst[1], dst[2] = v.X, v.Y, v.Z
}
