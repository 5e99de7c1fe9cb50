// Package model provides mesh data, GPU model descriptors and the OBJ parser.
package model

import (
	"github.com/Faultbox/meadow/internal/engine/resource"
)

// MeshData holds parallel vertex arrays ready for GPU upload.
// Positions and Normals carry three floats per vertex, UVs two.
type MeshData struct {
	Positions []float32
	UVs       []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices described by Positions.
func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *MeshData) Bounds() Bounds {
	if len(m.Positions) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{m.Positions[0], m.Positions[1], m.Positions[2]},
		Max: [3]float32{m.Positions[0], m.Positions[1], m.Positions[2]},
	}
	for i := 3; i+2 < len(m.Positions); i += 3 {
		updateBounds(&b, [3]float32{m.Positions[i], m.Positions[i+1], m.Positions[i+2]})
	}
	return b
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// RawModel is an uploaded vertex array and the number of indices to draw.
type RawModel struct {
	VAO         resource.Handle
	VertexCount int32
}

// ModelTexture describes a texture and its surface properties.
type ModelTexture struct {
	Texture resource.Handle

	ShineDamper  float32
	Reflectivity float32

	// HasTransparency disables back-face culling for the model.
	HasTransparency bool
	// UseFakeLighting points every normal straight up, for flat foliage.
	UseFakeLighting bool

	// NumberOfRows is the side length of a texture atlas, 1 for plain textures.
	NumberOfRows int
}

// NewModelTexture returns a texture with default surface properties.
func NewModelTexture(tex resource.Handle) ModelTexture {
	return ModelTexture{
		Texture:      tex,
		ShineDamper:  1,
		Reflectivity: 0,
		NumberOfRows: 1,
	}
}

// TexturedModel pairs a model with its texture. It is a small value made of
// handles and is used as the batching key by the renderer.
type TexturedModel struct {
	Model   RawModel
	Texture ModelTexture
}
