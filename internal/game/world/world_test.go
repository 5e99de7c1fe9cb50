package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/game/entity"
	"github.com/Faultbox/meadow/pkg/math"
)

// slope rises one unit per unit of x.
type slope struct{}

func (slope) HeightAt(x, _ float32) float32 { return x }

func testModels() Models {
	tm := func(h resource.Handle) model.TexturedModel {
		return model.TexturedModel{
			Model:   model.RawModel{VAO: h, VertexCount: 3},
			Texture: model.NewModelTexture(h),
		}
	}
	fern := tm(5)
	fern.Texture.NumberOfRows = 2
	return Models{
		Player:      tm(1),
		Tree:        tm(2),
		LowPolyTree: tm(3),
		Grass:       tm(4),
		Fern:        fern,
		Flower:      tm(6),
		Lamp:        tm(7),
	}
}

func populate(layout Layout) *World {
	return Populate(slope{}, testModels(), layout, entity.DefaultPhysics(), lighting.DefaultLights())
}

func TestPopulateCounts(t *testing.T) {
	w := populate(DefaultLayout())

	assert.Equal(t, map[string]int{
		"tree":         25,
		"grass":        100,
		"fern":         500,
		"lowpoly_tree": 10,
		"flower":       500,
		"lamp":         3,
		"player":       1,
	}, w.Census())
}

func TestPopulatePlacement(t *testing.T) {
	layout := DefaultLayout()
	w := populate(layout)

	ferns := make(map[int]bool)
	for _, e := range w.Entities {
		p := e.Position
		assert.GreaterOrEqual(t, p.X, layout.Area.MinX)
		assert.Less(t, p.X, layout.Area.MaxX)
		assert.GreaterOrEqual(t, p.Z, layout.Area.MinZ)
		assert.LessOrEqual(t, p.Z, layout.Area.MaxZ)
		assert.Equal(t, p.X, p.Y, "entity stands on the ground")

		switch e.Kind {
		case entity.KindFern:
			require.GreaterOrEqual(t, e.TextureIndex, 0)
			require.Less(t, e.TextureIndex, 4)
			ferns[e.TextureIndex] = true
		case entity.KindTree:
			assert.Equal(t, float32(8), e.Scale)
		case entity.KindLowPolyTree:
			assert.Equal(t, float32(3), e.Scale)
		default:
			assert.Zero(t, e.TextureIndex)
		}
	}
	assert.Len(t, ferns, 4, "every atlas cell is used")
}

func TestPopulateIsDeterministic(t *testing.T) {
	a := populate(DefaultLayout())
	b := populate(DefaultLayout())
	require.Len(t, b.Entities, len(a.Entities))
	for i := range a.Entities {
		assert.Equal(t, a.Entities[i].Position, b.Entities[i].Position)
		assert.Equal(t, a.Entities[i].TextureIndex, b.Entities[i].TextureIndex)
	}

	layout := DefaultLayout()
	layout.Seed = 2
	c := populate(layout)
	assert.NotEqual(t, a.Entities[0].Position, c.Entities[0].Position)
}

func TestPopulateDisabledKinds(t *testing.T) {
	layout := DefaultLayout()
	layout.Iterations = 10
	layout.TreeEvery = 0
	layout.LowPolyTreeEvery = 0
	layout.FlowersPerIteration = 0

	w := populate(layout)
	census := w.Census()
	assert.Zero(t, census["tree"])
	assert.Zero(t, census["lowpoly_tree"])
	assert.Zero(t, census["flower"])
	assert.Equal(t, 2, census["grass"])
	assert.Equal(t, 10, census["fern"])
}

func TestLampsStandUnderLights(t *testing.T) {
	w := populate(DefaultLayout())
	require.Len(t, w.Lamps, 3)

	for i, lamp := range w.Lamps {
		light := w.Lights[i+1]
		assert.Equal(t, light.Position.X, lamp.Position.X)
		assert.Equal(t, light.Position.Z, lamp.Position.Z)
		assert.Equal(t, lamp.Position.X, lamp.Position.Y)
	}
	assert.Same(t, w.Lamps[0], w.CursorLamp())
}

func TestMoveCursorLamp(t *testing.T) {
	lights := lighting.DefaultLights()
	w := Populate(slope{}, testModels(), DefaultLayout(), entity.DefaultPhysics(), lights)

	point := math.Vec3{X: 10, Y: 3, Z: -40}
	w.MoveCursorLamp(point)

	assert.Equal(t, point, w.CursorLamp().Position)
	assert.Equal(t, math.Vec3{X: 10, Y: 18, Z: -40}, w.Lights[1].Position)
	assert.NotEqual(t, lights[1].Position, w.Lights[1].Position, "caller's lights are not aliased")

	t.Run("no lamps", func(t *testing.T) {
		bare := Populate(slope{}, testModels(), Layout{}, entity.DefaultPhysics(), lights[:1])
		assert.Nil(t, bare.CursorLamp())
		bare.MoveCursorLamp(point)
		assert.Equal(t, lights[0], bare.Lights[0])
	})
}

func TestSubmit(t *testing.T) {
	layout := DefaultLayout()
	layout.Iterations = 1
	w := populate(layout)

	f := scene.NewFrame()
	w.Submit(f)

	// player, tree, grass, fern, low-poly tree, flower, lamp
	assert.Len(t, f.Batches(), 7)
	assert.Equal(t, 1+len(w.Entities)+len(w.Lamps), f.Instances())
}
