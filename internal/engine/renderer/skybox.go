package renderer

import (
	"context"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/pkg/math"
)

const (
	// SkyboxSize is the half-extent of the sky cube.
	SkyboxSize float32 = 500
	// SkyboxRotateSpeed is how fast the sky turns, in degrees per second.
	SkyboxRotateSpeed float32 = 1
)

// SkyboxFaces names the six cube map images of one sky.
type SkyboxFaces [6]string

// SkyboxVertices returns the 36 positions of a cube of half-extent size,
// wound to be seen from inside.
func SkyboxVertices(size float32) []float32 {
	s := size
	return []float32{
		-s, s, -s, -s, -s, -s, s, -s, -s,
		s, -s, -s, s, s, -s, -s, s, -s,

		-s, -s, s, -s, -s, -s, -s, s, -s,
		-s, s, -s, -s, s, s, -s, -s, s,

		s, -s, -s, s, -s, s, s, s, s,
		s, s, s, s, s, -s, s, -s, -s,

		-s, -s, s, -s, s, s, s, s, s,
		s, s, s, s, -s, s, -s, -s, s,

		-s, s, -s, s, s, -s, s, s, s,
		s, s, s, -s, s, s, -s, s, -s,

		-s, -s, -s, -s, -s, s, s, -s, -s,
		s, -s, -s, -s, -s, s, s, -s, s,
	}
}

// SkyboxView returns the view matrix the sky is drawn with: the camera's
// view without translation, turned by rotation degrees around Y.
func SkyboxView(view math.Mat4, rotation float32) math.Mat4 {
	return math.RotateY(math.Radians(rotation), view.WithoutTranslation())
}

// SkyboxRenderer draws the day/night sky cube.
type SkyboxRenderer struct {
	program *shader.Program
	loader  *Loader
	cube    model.RawModel
	day     resource.Handle
	night   resource.Handle

	rotation float32
	time     float32
}

// NewSkyboxRenderer uploads the cube and both skies.
func NewSkyboxRenderer(ctx context.Context, loader *Loader, projection math.Mat4, day, night SkyboxFaces) (*SkyboxRenderer, error) {
	program, err := shader.NewProgram("skybox", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		return nil, err
	}

	cube, err := loader.LoadPositions(SkyboxVertices(SkyboxSize), 3)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("skybox cube: %w", err)
	}
	dayTex, err := loader.LoadCubeMap(ctx, day)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("day sky: %w", err)
	}
	nightTex, err := loader.LoadCubeMap(ctx, night)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("night sky: %w", err)
	}

	sr := &SkyboxRenderer{
		program: program,
		loader:  loader,
		cube:    cube,
		day:     dayTex,
		night:   nightTex,
	}

	program.Use()
	program.SetInt("cubeMap", 0)
	program.SetInt("cubeMap2", 1)
	program.SetMat4("projectionMatrix", projection)
	program.Stop()
	return sr, nil
}

// SetProjection uploads a new projection matrix.
func (sr *SkyboxRenderer) SetProjection(projection math.Mat4) {
	sr.program.Use()
	sr.program.SetMat4("projectionMatrix", projection)
	sr.program.Stop()
}

// Advance moves the sky's rotation and the day/night clock by dt seconds.
func (sr *SkyboxRenderer) Advance(dt float32) {
	sr.rotation += SkyboxRotateSpeed * dt
	sr.time = WrapDayTime(sr.time + dt*1000)
}

// Time returns the position in the day/night cycle, in milliseconds.
func (sr *SkyboxRenderer) Time() float32 { return sr.time }

// Render draws the sky.
func (sr *SkyboxRenderer) Render(view math.Mat4, fog math.Vec3) {
	sr.program.Use()
	sr.program.SetMat4("viewMatrix", SkyboxView(view, sr.rotation))
	sr.program.SetVec3("fogColour", fog)

	blend := DayNightBlend(sr.time)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sr.loader.Texture(sr.sky(blend.From)))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sr.loader.Texture(sr.sky(blend.To)))
	sr.program.SetFloat("blendFactor", blend.Factor)

	gl.BindVertexArray(sr.loader.VAO(sr.cube.VAO))
	gl.DrawArrays(gl.TRIANGLES, 0, sr.cube.VertexCount)
	gl.BindVertexArray(0)
	sr.program.Stop()
}

func (sr *SkyboxRenderer) sky(s Sky) resource.Handle {
	if s == Day {
		return sr.day
	}
	return sr.night
}

// Destroy frees the shader. Textures and the cube belong to the loader.
func (sr *SkyboxRenderer) Destroy() {
	sr.program.Delete()
}
