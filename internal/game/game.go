// Package game implements the main loop: it loads the scene, steps the
// simulation and draws each frame.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/game/entity"
	"github.com/Faultbox/meadow/internal/game/world"
	"github.com/Faultbox/meadow/internal/logger"
)

// Title is the window title.
const Title = "Meadow"

// Game is the running application.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	loader   *renderer.Loader
	renderer *renderer.MasterRenderer
	input    *input.Input
	frame    *scene.Frame
	sim      *Simulation
	guis     []scene.GUI

	log *zap.Logger
}

// New opens the window and loads the scene.
func New(ctx context.Context, cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		input:  input.New(),
		frame:  scene.NewFrame(),
		log:    logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := g.load(ctx); err != nil {
		g.Close()
		return nil, err
	}

	g.log.Info("initialized")
	return g, nil
}

func (g *Game) load(ctx context.Context) error {
	cfg := g.config
	manifest := DefaultManifest().Resolve(cfg.AssetPath)

	// The fullscreen window may differ from the configured size.
	width, height := g.window.GetSize()

	g.loader = renderer.NewLoader()
	var err error
	g.renderer, err = renderer.New(ctx, renderer.Config{
		Width:    width,
		Height:   height,
		FOV:      cfg.Graphics.FOV,
		Near:     cfg.Graphics.Near,
		Far:      cfg.Graphics.Far,
		DaySky:   manifest.DaySky,
		NightSky: manifest.NightSky,
	}, g.loader)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	paths := manifest.Textures()
	handles, err := g.loader.PreloadTextures(ctx, paths)
	if err != nil {
		return err
	}
	textures := make(map[string]resource.Handle, len(paths))
	for i, p := range paths {
		textures[p] = handles[i]
	}

	models, err := g.loadModels(manifest, textures)
	if err != nil {
		return err
	}

	tile, err := g.loadTerrain(manifest, textures)
	if err != nil {
		return err
	}

	w := world.Populate(tile, models, sceneLayout(cfg.Scene), entity.Physics{
		RunSpeed:  cfg.Player.RunSpeed,
		TurnSpeed: cfg.Player.TurnSpeed,
		Gravity:   cfg.Player.Gravity,
		JumpPower: cfg.Player.JumpPower,
	}, lighting.DefaultLights())

	g.sim = &Simulation{
		Camera:  camera.NewThirdPersonCamera(cameraSettings(cfg.Camera)),
		World:   w,
		Terrain: tile,
		Picker: picking.NewMousePicker(g.renderer.Projection(),
			picking.Viewport{Width: float32(width), Height: float32(height)},
			tile,
			picking.Options{RayRange: cfg.Picker.RayRange, RecursionCount: cfg.Picker.RecursionCount}),
	}
	g.sim.Camera.Follow(w.Player)

	for _, a := range manifest.GUIs {
		g.guis = append(g.guis, scene.GUI{Texture: textures[a.Texture], Position: a.Position, Scale: a.Scale})
	}

	vaos, texs := g.loader.Stats()
	g.log.Info("scene loaded", zap.Int("vaos", vaos), zap.Int("textures", texs))
	return nil
}

func (g *Game) loadModels(m Manifest, textures map[string]resource.Handle) (world.Models, error) {
	load := func(a ModelAsset) (model.TexturedModel, error) {
		raw, err := g.loader.LoadOBJ(a.OBJ)
		if err != nil {
			return model.TexturedModel{}, err
		}
		tex := model.NewModelTexture(textures[a.Texture])
		tex.HasTransparency = a.HasTransparency
		tex.UseFakeLighting = a.UseFakeLighting
		if a.AtlasRows > 0 {
			tex.NumberOfRows = a.AtlasRows
		}
		if a.ShineDamper > 0 {
			tex.ShineDamper = a.ShineDamper
		}
		tex.Reflectivity = a.Reflectivity
		return model.TexturedModel{Model: raw, Texture: tex}, nil
	}

	var models world.Models
	var err error
	for _, slot := range []struct {
		dst   *model.TexturedModel
		asset ModelAsset
	}{
		{&models.Player, m.Player},
		{&models.Tree, m.Tree},
		{&models.LowPolyTree, m.LowPolyTree},
		{&models.Grass, m.Grass},
		{&models.Fern, m.Fern},
		{&models.Flower, m.Flower},
		{&models.Lamp, m.Lamp},
	} {
		if *slot.dst, err = load(slot.asset); err != nil {
			return world.Models{}, err
		}
	}
	return models, nil
}

func (g *Game) loadTerrain(m Manifest, textures map[string]resource.Handle) (*terrain.HeightField, error) {
	cfg := g.config.Terrain
	path := g.config.HeightmapPath()

	heightmap, err := texture.LoadPixelBuffer(path)
	if err != nil {
		return nil, fmt.Errorf("load heightmap: %w", err)
	}
	tile, err := terrain.New(cfg.GridX, cfg.GridZ, heightmap,
		terrain.Options{Size: cfg.Size, MaxHeight: cfg.MaxHeight}, g.loader)
	if err != nil {
		return nil, fmt.Errorf("build terrain from %s: %w", path, err)
	}
	tile.SetTextures(terrain.TexturePack{
		Background: textures[m.TerrainBackground],
		R:          textures[m.TerrainR],
		G:          textures[m.TerrainG],
		B:          textures[m.TerrainB],
		BlendMap:   textures[m.BlendMap],
	})

	stats := tile.Stats()
	g.log.Info("terrain loaded",
		zap.String("heightmap", path),
		zap.Int("vertex_count", tile.VertexCount()),
		zap.Float32("min", stats.Min),
		zap.Float32("max", stats.Max),
		zap.String("fingerprint", fmt.Sprintf("%016x", tile.Fingerprint())),
	)
	return tile, nil
}

func sceneLayout(c config.SceneConfig) world.Layout {
	layout := world.DefaultLayout()
	layout.Seed = c.Seed
	layout.Iterations = c.Iterations
	layout.TreeEvery = c.TreeEvery
	layout.GrassEvery = c.GrassEvery
	layout.LowPolyTreeEvery = c.LowPolyTreeEvery
	layout.FernsPerIteration = c.FernsPerIteration
	layout.FlowersPerIteration = c.FlowersPerIteration
	return layout
}

func cameraSettings(c config.CameraConfig) camera.Settings {
	return camera.Settings{
		Distance:    c.Distance,
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
		Pitch:       c.Pitch,
		MinPitch:    c.MinPitch,
		MaxPitch:    c.MaxPitch,
		ZoomSpeed:   c.ZoomSpeed,
		PitchSpeed:  c.PitchSpeed,
		AngleSpeed:  c.AngleSpeed,
	}
}

// Run starts the main loop and returns when the user quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var minFrame time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	g.log.Info("starting main loop")

	for g.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		g.window.PollEvents(g.input)
		if g.input.QuitRequested() {
			g.running = false
			break
		}
		if w, h, ok := g.input.Resized(); ok {
			g.resize(w, h)
		}

		// 2. Camera, player, picker and cursor lamp
		g.sim.Step(dt, g.input)

		// 3. Render
		g.frame.Reset()
		g.sim.Submit(g.frame)
		for _, gui := range g.guis {
			g.frame.SubmitGUI(gui)
		}
		g.renderer.Render(g.frame, g.sim.World.Lights, g.sim.Camera.ViewMatrix(), dt)

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			point, picked := g.sim.Picked()
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Bool("picked", picked),
				zap.Float32("pick_x", point.X),
				zap.Float32("pick_z", point.Z),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spare := minFrame - time.Since(now); spare > 0 {
				time.Sleep(spare)
			}
		}
	}

	g.log.Info("main loop stopped")
	return nil
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimised. Keep the old projection.
		return
	}
	g.renderer.Resize(width, height)
	g.sim.Picker.SetProjection(g.renderer.Projection(),
		picking.Viewport{Width: float32(width), Height: float32(height)})
}

// Close frees GPU resources and the window.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.renderer != nil {
		g.renderer.Destroy()
	}
	if g.loader != nil {
		if err := g.loader.Close(); err != nil {
			g.log.Warn("releasing GPU resources", zap.Error(err))
		}
	}
	if g.window != nil {
		g.window.Close()
	}
}
