package game

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/game/entity"
	"github.com/Faultbox/meadow/internal/game/world"
	"github.com/Faultbox/meadow/pkg/math"
)

func TestManifestTextures(t *testing.T) {
	m := DefaultManifest()
	textures := m.Textures()

	seen := make(map[string]bool)
	for _, p := range textures {
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
	}
	assert.True(t, seen["textures/fern.png"])
	assert.True(t, seen["textures/blendMap.png"])
	assert.True(t, seen["textures/emblem.png"])
	assert.False(t, seen["textures/right.png"], "sky faces load as cube maps")
	assert.Equal(t, "textures/white.png", textures[0])
}

func TestManifestResolve(t *testing.T) {
	m := DefaultManifest()
	r := m.Resolve(func(p string) string { return filepath.Join("/srv/res", p) })

	assert.Equal(t, "/srv/res/models/fern.obj", filepath.ToSlash(r.Fern.OBJ))
	assert.Equal(t, 2, r.Fern.AtlasRows)
	assert.True(t, strings.HasPrefix(filepath.ToSlash(r.NightSky[5]), "/srv/res/"))
	for _, p := range r.Textures() {
		assert.True(t, strings.HasPrefix(filepath.ToSlash(p), "/srv/res/"), p)
	}

	// Resolve returns a copy; the receiver keeps relative paths.
	assert.Equal(t, "models/fern.obj", m.Fern.OBJ)
	assert.Equal(t, "textures/emblem.png", m.GUIs[0].Texture)
}

func TestConfigMapping(t *testing.T) {
	cfg := config.Default()

	layout := sceneLayout(cfg.Scene)
	assert.Equal(t, world.DefaultLayout(), layout)

	assert.Equal(t, camera.DefaultSettings(), cameraSettings(cfg.Camera))
}

func feed(in *input.Input, events ...input.Event) {
	in.BeginFrame()
	for _, e := range events {
		in.Handle(e)
	}
}

func TestControls(t *testing.T) {
	in := input.New()
	feed(in,
		input.Event{Type: input.EventKeyDown, Key: input.KeyW},
		input.Event{Type: input.EventKeyDown, Key: input.KeyA},
		input.Event{Type: input.EventKeyDown, Key: input.KeySpace},
		input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft},
		input.Event{Type: input.EventMouseMove, MouseX: 5, MouseY: 6, RelX: 5, RelY: -4},
		input.Event{Type: input.EventMouseWheel, Wheel: 2},
	)

	assert.Equal(t, entity.Controls{Forward: true, Left: true, Jump: true}, playerControls(&in.Keyboard))
	assert.Equal(t, camera.Controls{Wheel: 2, DX: 5, DY: -4, Left: true}, cameraControls(&in.Mouse))
}

func newSimulation(t *testing.T) *Simulation {
	t.Helper()

	const n = 9
	heights := make([][]float32, n)
	for x := range heights {
		heights[x] = make([]float32, n)
	}
	tile, err := terrain.FromHeights(0, -1, 800, heights)
	require.NoError(t, err)

	tm := model.TexturedModel{Model: model.RawModel{VAO: 1, VertexCount: 3}, Texture: model.NewModelTexture(resource.Handle(1))}
	models := world.Models{Player: tm, Tree: tm, LowPolyTree: tm, Grass: tm, Fern: tm, Flower: tm, Lamp: tm}
	layout := world.DefaultLayout()
	layout.Iterations = 5
	w := world.Populate(tile, models, layout, entity.DefaultPhysics(), lighting.DefaultLights())
	w.Player.Entity.Position = math.Vec3{X: 100, Z: -300}

	sim := &Simulation{
		Camera:  camera.NewThirdPersonCamera(camera.DefaultSettings()),
		World:   w,
		Terrain: tile,
		Picker: picking.NewMousePicker(math.DefaultProjection(1280, 720),
			picking.Viewport{Width: 1280, Height: 720}, tile, picking.DefaultOptions()),
	}
	sim.Camera.Follow(w.Player)
	return sim
}

func TestSimulationPicksUnderCursor(t *testing.T) {
	sim := newSimulation(t)
	in := input.New()

	// The camera looks down at the player from behind, so the screen centre
	// hits flat ground just past the player.
	feed(in, input.Event{Type: input.EventMouseMove, MouseX: 640, MouseY: 360})
	sim.Step(0.016, in)

	point, ok := sim.Picked()
	require.True(t, ok)
	assert.InDelta(t, 0, point.Y, 1e-3)

	lamp := sim.World.CursorLamp()
	assert.Equal(t, point, lamp.Position)
	assert.Equal(t, point.Add(math.Vec3{Y: world.LampLift}), sim.World.Lights[1].Position)

	player := sim.World.Player.Position()
	assert.InDelta(t, player.X, point.X, 1)
	assert.Less(t, player.Sub(point).Length(), float32(200))
}

func TestSimulationMissKeepsLamp(t *testing.T) {
	sim := newSimulation(t)
	in := input.New()
	lampBefore := sim.World.CursorLamp().Position

	// Top edge of the screen looks above the horizon.
	feed(in, input.Event{Type: input.EventMouseMove, MouseX: 640, MouseY: 0})
	sim.Step(0.016, in)

	_, ok := sim.Picked()
	assert.False(t, ok)
	assert.Equal(t, lampBefore, sim.World.CursorLamp().Position)
}

func TestSimulationMovesPlayer(t *testing.T) {
	sim := newSimulation(t)
	in := input.New()

	feed(in, input.Event{Type: input.EventKeyDown, Key: input.KeyW})
	sim.Step(0.5, in)

	p := sim.World.Player.Position()
	assert.InDelta(t, 100, p.X, 1e-3)
	assert.InDelta(t, -290, p.Z, 1e-3)
}

func TestSimulationSubmit(t *testing.T) {
	sim := newSimulation(t)
	f := scene.NewFrame()
	sim.Submit(f)

	assert.Len(t, f.Terrains(), 1)
	assert.Equal(t, 1+len(sim.World.Entities)+len(sim.World.Lamps), f.Instances())
}
