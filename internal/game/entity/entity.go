// Package entity provides the placed objects of the world and the player.
package entity

import (
	"github.com/google/uuid"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/pkg/math"
)

// Kind tells entities apart for logging and population.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindTree
	KindLowPolyTree
	KindGrass
	KindFern
	KindFlower
	KindLamp
)

var kindNames = [...]string{
	KindPlayer:      "player",
	KindTree:        "tree",
	KindLowPolyTree: "lowpoly_tree",
	KindGrass:       "grass",
	KindFern:        "fern",
	KindFlower:      "flower",
	KindLamp:        "lamp",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Entity is a textured model placed in the world. Rotation is in degrees.
type Entity struct {
	ID       uuid.UUID
	Kind     Kind
	Model    model.TexturedModel
	Position math.Vec3
	Rotation math.Vec3
	Scale    float32

	// TextureIndex picks a cell of the model's texture atlas.
	TextureIndex int
}

// New creates an entity with a fresh ID.
func New(kind Kind, tm model.TexturedModel, position, rotation math.Vec3, scale float32) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Kind:     kind,
		Model:    tm,
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
}

// IncreasePosition moves the entity by d.
func (e *Entity) IncreasePosition(d math.Vec3) {
	e.Position = e.Position.Add(d)
}

// IncreaseRotation turns the entity by d degrees.
func (e *Entity) IncreaseRotation(d math.Vec3) {
	e.Rotation = e.Rotation.Add(d)
}

// TexturedModel returns the entity's model.
func (e *Entity) TexturedModel() model.TexturedModel { return e.Model }

// Transformation returns the model matrix.
func (e *Entity) Transformation() math.Mat4 {
	return math.CreateTransformationMatrix(e.Position, e.Rotation, math.Vec3{X: e.Scale, Y: e.Scale, Z: e.Scale})
}

// TextureOffset returns the atlas offset of TextureIndex, in texture
// coordinates.
func (e *Entity) TextureOffset() math.Vec2 {
	return AtlasOffset(e.TextureIndex, e.Model.Texture.NumberOfRows)
}

// AtlasOffset returns the top-left texture coordinate of cell index in a
// rows x rows atlas. Cells are numbered left to right, top to bottom.
func AtlasOffset(index, rows int) math.Vec2 {
	if rows <= 1 {
		return math.Vec2{}
	}
	cell := math.Vec2{X: float32(index % rows), Y: float32(index / rows)}
	return cell.Scale(1 / float32(rows))
}
