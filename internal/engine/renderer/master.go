// Package renderer draws a scene.Frame with OpenGL.
package renderer

import (
	"context"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// SkyColour is the clear colour and the colour distant geometry fades into.
var SkyColour = math.Vec3{X: 0.5, Y: 1, Z: 1}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32
	Near   float32
	Far    float32

	DaySky   SkyboxFaces
	NightSky SkyboxFaces
}

// Projection returns the perspective projection for the configured viewport.
// A zero height is treated as one pixel.
func (c Config) Projection() math.Mat4 {
	h := c.Height
	if h <= 0 {
		h = 1
	}
	return math.CreatePerspectiveProjection(float32(c.Width), float32(h), c.FOV, c.Near, c.Far)
}

// Environment is the per-frame state every lit pass shares.
type Environment struct {
	View   math.Mat4
	Lights lighting.Uniforms
	Sky    math.Vec3
}

func (env Environment) apply(p *shader.Program) {
	p.SetMat4("viewMatrix", env.View)
	p.SetVec3Array("lightPosition", env.Lights.Positions[:])
	p.SetVec3Array("lightColour", env.Lights.Colors[:])
	p.SetVec3Array("attenuation", env.Lights.Attenuations[:])
	p.SetVec3("skyColour", env.Sky)
}

// MasterRenderer runs the entity, terrain and sky passes over a frame.
type MasterRenderer struct {
	config     Config
	projection math.Mat4

	entities *EntityRenderer
	terrain  *TerrainRenderer
	skybox   *SkyboxRenderer
	gui      *GUIRenderer

	log *zap.Logger
}

// New creates the master renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(ctx context.Context, cfg Config, loader *Loader) (*MasterRenderer, error) {
	log := logger.Named("renderer")

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	mr := &MasterRenderer{config: cfg, projection: cfg.Projection(), log: log}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	enableCulling()

	var err error
	if mr.entities, err = NewEntityRenderer(loader, mr.projection); err != nil {
		return nil, err
	}
	if mr.terrain, err = NewTerrainRenderer(loader, mr.projection); err != nil {
		mr.Destroy()
		return nil, err
	}
	if mr.skybox, err = NewSkyboxRenderer(ctx, loader, mr.projection, cfg.DaySky, cfg.NightSky); err != nil {
		mr.Destroy()
		return nil, err
	}
	if mr.gui, err = NewGUIRenderer(loader); err != nil {
		mr.Destroy()
		return nil, err
	}

	mr.Resize(cfg.Width, cfg.Height)
	return mr, nil
}

func enableCulling() {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

func disableCulling() {
	gl.Disable(gl.CULL_FACE)
}

// Projection returns the current projection matrix.
func (mr *MasterRenderer) Projection() math.Mat4 { return mr.projection }

// Resize handles window resize and rebuilds the projection.
func (mr *MasterRenderer) Resize(width, height int) {
	mr.config.Width = width
	mr.config.Height = height
	mr.projection = mr.config.Projection()

	gl.Viewport(0, 0, int32(width), int32(height))
	mr.entities.SetProjection(mr.projection)
	mr.terrain.SetProjection(mr.projection)
	mr.skybox.SetProjection(mr.projection)

	mr.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws the frame's terrain, entities and sky, then its GUI quads.
// dt advances the sky.
func (mr *MasterRenderer) Render(f *scene.Frame, lights []lighting.Light, view math.Mat4, dt float32) {
	gl.ClearColor(SkyColour.X, SkyColour.Y, SkyColour.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	env := Environment{View: view, Lights: lighting.Pack(lights), Sky: SkyColour}
	mr.entities.Render(f.Batches(), env)
	mr.terrain.Render(f.Terrains(), env)

	mr.skybox.Advance(dt)
	mr.skybox.Render(view, SkyColour)

	mr.gui.Render(f.GUIs())
}

// Destroy frees every shader program.
func (mr *MasterRenderer) Destroy() {
	mr.log.Info("closing renderer")
	if mr.entities != nil {
		mr.entities.Destroy()
	}
	if mr.terrain != nil {
		mr.terrain.Destroy()
	}
	if mr.skybox != nil {
		mr.skybox.Destroy()
	}
	if mr.gui != nil {
		mr.gui.Destroy()
	}
}
