// Package world places the player, the scenery and the lamps on a terrain
// tile.
package world

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/game/entity"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// LampLift is how far above the cursor lamp's foot its light hangs.
const LampLift float32 = 15

// Ground is the terrain the world stands on.
type Ground interface {
	HeightAt(x, z float32) float32
}

// Models holds the textured model of each entity kind.
type Models struct {
	Player      model.TexturedModel
	Tree        model.TexturedModel
	LowPolyTree model.TexturedModel
	Grass       model.TexturedModel
	Fern        model.TexturedModel
	Flower      model.TexturedModel
	Lamp        model.TexturedModel
}

// Area is the rectangle scenery is scattered over, [MinX, MaxX) x [MinZ, MaxZ).
type Area struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// Layout controls how scenery is scattered. Every iteration places the
// per-iteration kinds, and the "Every" kinds are placed on iterations that
// are a multiple of their period. A period of zero disables the kind.
type Layout struct {
	Seed       uint64
	Iterations int

	TreeEvery        int
	GrassEvery       int
	LowPolyTreeEvery int

	FernsPerIteration   int
	FlowersPerIteration int

	Area Area
}

// DefaultLayout returns the reference scene: 25 trees, 100 grass tufts,
// 500 ferns, 10 low-poly trees and 500 flowers.
func DefaultLayout() Layout {
	return Layout{
		Seed:                1,
		Iterations:          500,
		TreeEvery:           20,
		GrassEvery:          5,
		LowPolyTreeEvery:    50,
		FernsPerIteration:   1,
		FlowersPerIteration: 1,
		Area:                Area{MinX: -400, MaxX: 400, MinZ: -600, MaxZ: 0},
	}
}

// Entity scales.
const (
	treeScale        float32 = 8
	lowPolyTreeScale float32 = 3
	foliageScale     float32 = 1
	lampScale        float32 = 1
	playerScale      float32 = 1
)

// World is everything placed on the terrain.
type World struct {
	Player   *entity.Player
	Entities []*entity.Entity
	Lamps    []*entity.Entity
	Lights   []lighting.Light

	log *zap.Logger
}

// Populate builds the world on ground. Scenery placement depends only on
// layout, so the same seed always yields the same scene. One lamp stands
// under each point light, and the first of them follows the cursor.
func Populate(ground Ground, models Models, layout Layout, physics entity.Physics, lights []lighting.Light) *World {
	w := &World{
		Lights: append([]lighting.Light(nil), lights...),
		log:    logger.Named("world"),
	}

	rng := rand.New(rand.NewPCG(layout.Seed, layout.Seed^0x9e3779b97f4a7c15))
	place := func(kind entity.Kind, tm model.TexturedModel, scale float32) *entity.Entity {
		x := layout.Area.MinX + rng.Float32()*(layout.Area.MaxX-layout.Area.MinX)
		z := layout.Area.MinZ + rng.Float32()*(layout.Area.MaxZ-layout.Area.MinZ)
		e := entity.New(kind, tm, math.Vec3{X: x, Y: ground.HeightAt(x, z), Z: z}, math.Vec3{}, scale)
		w.Entities = append(w.Entities, e)
		return e
	}

	for i := 0; i < layout.Iterations; i++ {
		if every(i, layout.TreeEvery) {
			place(entity.KindTree, models.Tree, treeScale)
		}
		if every(i, layout.GrassEvery) {
			place(entity.KindGrass, models.Grass, foliageScale)
		}
		for range layout.FernsPerIteration {
			fern := place(entity.KindFern, models.Fern, foliageScale)
			fern.TextureIndex = rng.IntN(4)
		}
		if every(i, layout.LowPolyTreeEvery) {
			place(entity.KindLowPolyTree, models.LowPolyTree, lowPolyTreeScale)
		}
		for range layout.FlowersPerIteration {
			place(entity.KindFlower, models.Flower, foliageScale)
		}
	}

	// The first light is the sun; lamps stand under the rest.
	for _, l := range w.Lights[min(1, len(w.Lights)):] {
		pos := math.Vec3{X: l.Position.X, Z: l.Position.Z}
		pos.Y = ground.HeightAt(pos.X, pos.Z)
		lamp := entity.New(entity.KindLamp, models.Lamp, pos, math.Vec3{}, lampScale)
		w.Lamps = append(w.Lamps, lamp)
	}

	w.Player = entity.NewPlayer(models.Player, math.Vec3{}, math.Vec3{}, playerScale, physics)

	w.log.Info("world populated",
		zap.Uint64("seed", layout.Seed),
		zap.Int("entities", len(w.Entities)),
		zap.Int("lamps", len(w.Lamps)),
		zap.Any("kinds", w.Census()),
	)
	return w
}

func every(i, period int) bool {
	return period > 0 && i%period == 0
}

// CursorLamp returns the lamp that follows the picked terrain point, or nil
// if the world has no lamps.
func (w *World) CursorLamp() *entity.Entity {
	if len(w.Lamps) == 0 {
		return nil
	}
	return w.Lamps[0]
}

// MoveCursorLamp stands the cursor lamp on point and hangs its light
// LampLift above it.
func (w *World) MoveCursorLamp(point math.Vec3) {
	lamp := w.CursorLamp()
	if lamp == nil {
		return
	}
	lamp.Position = point
	if len(w.Lights) > 1 {
		w.Lights[1].Position = point.Add(math.Vec3{Y: LampLift})
	}
}

// Submit queues the player, the scenery and the lamps for drawing.
func (w *World) Submit(f *scene.Frame) {
	f.Submit(w.Player)
	for _, e := range w.Entities {
		f.Submit(e)
	}
	for _, lamp := range w.Lamps {
		f.Submit(lamp)
	}
}

// Census counts placed entities by kind, lamps and player included.
func (w *World) Census() map[string]int {
	counts := make(map[string]int)
	for _, e := range w.Entities {
		counts[e.Kind.String()]++
	}
	counts[entity.KindLamp.String()] += len(w.Lamps)
	if w.Player != nil {
		counts[entity.KindPlayer.String()]++
	}
	return counts
}
