package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/pkg/math"
)

// guiQuad is a unit quad drawn as a triangle strip.
var guiQuad = []float32{-1, 1, -1, -1, 1, 1, 1, -1}

// GUIRenderer draws textured quads over the scene.
type GUIRenderer struct {
	program *shader.Program
	loader  *Loader
	quad    model.RawModel
}

// NewGUIRenderer uploads the quad and compiles the GUI shader.
func NewGUIRenderer(loader *Loader) (*GUIRenderer, error) {
	program, err := shader.NewProgram("gui", shaders.GUIVertexShader, shaders.GUIFragmentShader)
	if err != nil {
		return nil, err
	}
	quad, err := loader.LoadPositions(guiQuad, 2)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("gui quad: %w", err)
	}

	program.Use()
	program.SetInt("guiTexture", 0)
	program.Stop()
	return &GUIRenderer{program: program, loader: loader, quad: quad}, nil
}

// Render draws guis in order, alpha blended and without depth testing.
func (gr *GUIRenderer) Render(guis []scene.GUI) {
	if len(guis) == 0 {
		return
	}

	gr.program.Use()
	gl.BindVertexArray(gr.loader.VAO(gr.quad.VAO))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	for _, g := range guis {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, gr.loader.Texture(g.Texture))
		gr.program.SetMat4("transformationMatrix", math.CreateGUITransformationMatrix(g.Position, g.Scale))
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, gr.quad.VertexCount)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	gr.program.Stop()
}

// Destroy frees the shader.
func (gr *GUIRenderer) Destroy() {
	gr.program.Delete()
}
