package picking

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

const (
	// DefaultRayRange is how far along the ray the terrain is searched.
	DefaultRayRange float32 = 600
	// DefaultRecursionCount is the number of bisection steps per search.
	DefaultRecursionCount = 200
)

// CameraState is the camera as seen by the picker. Angles are in degrees.
type CameraState interface {
	Position() math.Vec3
	Pitch() float32
	Yaw() float32
}

// CursorSource reports the cursor position in window pixels.
type CursorSource interface {
	Cursor() (x, y float32)
}

// HeightSampler answers ground height queries.
type HeightSampler interface {
	HeightAt(x, z float32) float32
}

// Options tunes the terrain search.
type Options struct {
	RayRange       float32
	RecursionCount int
}

// DefaultOptions returns the reference search range and depth.
func DefaultOptions() Options {
	return Options{
		RayRange:       DefaultRayRange,
		RecursionCount: DefaultRecursionCount,
	}
}

// MousePicker resolves the terrain point under the cursor once per frame.
type MousePicker struct {
	opts     Options
	viewport Viewport
	ground   HeightSampler

	invProjection math.Mat4
	projectionOK  bool
	view          math.Mat4

	ray      Ray
	hasRay   bool
	point    math.Vec3
	hasPoint bool

	log *zap.Logger
}

// NewMousePicker creates a picker over a private copy of ground.
func NewMousePicker(projection math.Mat4, vp Viewport, ground *terrain.HeightField, opts Options) *MousePicker {
	p := &MousePicker{
		opts:   opts,
		ground: ground.Clone(),
		view:   math.Identity(),
		log:    logger.Named("picker"),
	}
	p.SetProjection(projection, vp)
	return p
}

// SetProjection replaces the projection matrix and viewport, for example
// after the window is resized.
func (p *MousePicker) SetProjection(projection math.Mat4, vp Viewport) {
	p.viewport = vp
	p.invProjection, p.projectionOK = projection.Inverse()
	if !p.projectionOK {
		p.log.Warn("projection matrix is singular, picking disabled")
	}
	if !vp.Valid() {
		p.log.Warn("viewport has no area, picking disabled",
			zap.Float32("width", vp.Width),
			zap.Float32("height", vp.Height))
	}
}

// Update recomputes the mouse ray from the camera and cursor and searches
// the terrain along it. Results are read with CurrentRay and
// CurrentTerrainPoint.
func (p *MousePicker) Update(camera CameraState, cursor CursorSource) {
	p.view = math.CreateViewMatrix(camera.Position(), camera.Pitch(), camera.Yaw())
	p.hasRay, p.hasPoint = false, false
	p.point = math.Vec3{}

	dir, ok := p.calculateMouseRay(cursor.Cursor())
	if !ok {
		p.ray = Ray{}
		return
	}
	p.ray = Ray{Origin: camera.Position(), Direction: dir}
	p.hasRay = true

	if p.intersectionInRange(0, p.opts.RayRange) {
		p.point, p.hasPoint = p.binarySearch(0, p.opts.RayRange), true
	}
}

// CurrentRay returns the ray computed by the last Update.
func (p *MousePicker) CurrentRay() (Ray, bool) {
	return p.ray, p.hasRay
}

// CurrentTerrainPoint returns the terrain point resolved by the last Update.
func (p *MousePicker) CurrentTerrainPoint() (math.Vec3, bool) {
	return p.point, p.hasPoint
}

// ViewMatrix returns the view matrix used by the last Update.
func (p *MousePicker) ViewMatrix() math.Mat4 {
	return p.view
}

func (p *MousePicker) calculateMouseRay(x, y float32) (math.Vec3, bool) {
	if !p.projectionOK || !p.viewport.Valid() {
		return math.Vec3{}, false
	}
	invView, ok := p.view.Inverse()
	if !ok {
		return math.Vec3{}, false
	}

	ndc := NormalizedDeviceCoords(x, y, p.viewport)
	return WorldRay(EyeRay(ndc, p.invProjection), invView)
}

// binarySearch halves [start, finish] a fixed number of times, keeping the
// half that holds the crossing, and returns the midpoint of the last span.
// The height field is the only ground, so the midpoint always resolves,
// including off the tile where the ground reads as 0.
func (p *MousePicker) binarySearch(start, finish float32) math.Vec3 {
	for count := 0; ; count++ {
		half := start + (finish-start)/2
		if count >= p.opts.RecursionCount {
			return p.ray.PointAt(half)
		}
		if p.intersectionInRange(start, half) {
			finish = half
		} else {
			start = half
		}
	}
}

// intersectionInRange reports whether the ray enters the ground between the
// two distances: above it at start and below it at finish.
func (p *MousePicker) intersectionInRange(start, finish float32) bool {
	return !p.isUnderGround(p.ray.PointAt(start)) && p.isUnderGround(p.ray.PointAt(finish))
}

func (p *MousePicker) isUnderGround(v math.Vec3) bool {
	return v.Y < p.ground.HeightAt(v.X, v.Z)
}
