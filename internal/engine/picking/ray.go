// Package picking turns the mouse cursor into a world-space ray and finds
// where that ray meets the terrain.
package picking

import (
	"github.com/Faultbox/meadow/pkg/math"
)

// Viewport is the size of the drawable area in pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Ray is a half-line starting at Origin. Direction is unit length.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// PointAt returns the point distance units along the ray.
func (r Ray) PointAt(distance float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(distance))
}

// NormalizedDeviceCoords maps a cursor position in window pixels (origin top
// left, y down) to [-1, 1] on both axes with y up.
func NormalizedDeviceCoords(x, y float32, vp Viewport) math.Vec2 {
	ndc := math.Vec2{X: x / vp.Width, Y: y / vp.Height}.Scale(2).Sub(math.Vec2{X: 1, Y: 1})
	ndc.Y = -ndc.Y
	return ndc
}

// EyeRay unprojects normalized device coordinates through the inverse
// projection. The result is an eye-space direction pointing into the screen.
func EyeRay(ndc math.Vec2, invProjection math.Mat4) math.Vec4 {
	clip := math.Vec4{ndc.X, ndc.Y, -1, 1}
	eye := invProjection.MulVec4(clip)
	return math.Vec4{eye[0], eye[1], -1, 0}
}

// WorldRay carries an eye-space direction into world space and normalizes
// it. It reports false for rays that are zero length or not finite.
func WorldRay(eye math.Vec4, invView math.Mat4) (math.Vec3, bool) {
	w := invView.MulVec4(eye)
	dir := math.Vec3{X: w[0], Y: w[1], Z: w[2]}
	if !dir.IsFinite() || dir.Length() == 0 {
		return math.Vec3{}, false
	}
	dir = dir.Normalize()
	if !dir.IsFinite() {
		return math.Vec3{}, false
	}
	return dir, true
}
