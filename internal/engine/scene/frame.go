// Package scene collects what is drawn in a frame, grouped the way the
// renderer wants to draw it.
package scene

import (
	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/math"
)

// Renderable is an instance of a textured model placed in the world.
type Renderable interface {
	TexturedModel() model.TexturedModel
	Transformation() math.Mat4
	// TextureOffset locates the instance's cell in a texture atlas.
	TextureOffset() math.Vec2
}

// Batch is every instance of one textured model.
type Batch struct {
	Model     model.TexturedModel
	Instances []Renderable
}

// GUI is a textured quad in normalized device coordinates.
type GUI struct {
	Texture  resource.Handle
	Position math.Vec2
	Scale    math.Vec2
}

// Frame holds one frame's submissions. Batches keep the order in which
// their model was first submitted.
type Frame struct {
	batches  []Batch
	index    map[model.TexturedModel]int
	terrains []*terrain.HeightField
	guis     []GUI
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{index: make(map[model.TexturedModel]int)}
}

// Submit queues r for drawing.
func (f *Frame) Submit(r Renderable) {
	tm := r.TexturedModel()
	i, ok := f.index[tm]
	if !ok {
		i = len(f.batches)
		f.index[tm] = i
		f.batches = append(f.batches, Batch{Model: tm})
	}
	f.batches[i].Instances = append(f.batches[i].Instances, r)
}

// SubmitTerrain queues a terrain tile.
func (f *Frame) SubmitTerrain(t *terrain.HeightField) {
	f.terrains = append(f.terrains, t)
}

// SubmitGUI queues an overlay quad. GUIs draw in submission order.
func (f *Frame) SubmitGUI(g GUI) {
	f.guis = append(f.guis, g)
}

// Batches returns the queued entity batches.
func (f *Frame) Batches() []Batch { return f.batches }

// Terrains returns the queued terrain tiles.
func (f *Frame) Terrains() []*terrain.HeightField { return f.terrains }

// GUIs returns the queued overlay quads.
func (f *Frame) GUIs() []GUI { return f.guis }

// Instances returns the number of queued entity instances.
func (f *Frame) Instances() int {
	n := 0
	for _, b := range f.batches {
		n += len(b.Instances)
	}
	return n
}

// Reset empties the frame for reuse.
func (f *Frame) Reset() {
	f.batches = f.batches[:0]
	clear(f.index)
	f.terrains = f.terrains[:0]
	f.guis = f.guis[:0]
}
