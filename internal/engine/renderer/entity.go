package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/pkg/math"
)

// EntityRenderer draws batches of textured models.
type EntityRenderer struct {
	program *shader.Program
	loader  *Loader
}

// NewEntityRenderer compiles the entity shader.
func NewEntityRenderer(loader *Loader, projection math.Mat4) (*EntityRenderer, error) {
	program, err := shader.NewProgram("entity", shaders.EntityVertexShader, shaders.EntityFragmentShader)
	if err != nil {
		return nil, err
	}
	er := &EntityRenderer{program: program, loader: loader}

	program.Use()
	program.SetInt("textureSampler", 0)
	program.SetMat4("projectionMatrix", projection)
	program.Stop()
	return er, nil
}

// SetProjection uploads a new projection matrix.
func (er *EntityRenderer) SetProjection(projection math.Mat4) {
	er.program.Use()
	er.program.SetMat4("projectionMatrix", projection)
	er.program.Stop()
}

// Render draws every batch. The per-frame uniforms must already be
// described by env.
func (er *EntityRenderer) Render(batches []scene.Batch, env Environment) {
	er.program.Use()
	env.apply(er.program)

	for _, b := range batches {
		er.prepareModel(b.Model)
		for _, r := range b.Instances {
			er.program.SetMat4("transformationMatrix", r.Transformation())
			er.program.SetVec2("offset", r.TextureOffset())
			gl.DrawElementsWithOffset(gl.TRIANGLES, b.Model.Model.VertexCount, gl.UNSIGNED_INT, 0)
		}
		unbindModel(b.Model)
	}

	er.program.Stop()
}

func (er *EntityRenderer) prepareModel(tm model.TexturedModel) {
	gl.BindVertexArray(er.loader.VAO(tm.Model.VAO))

	tex := tm.Texture
	rows := tex.NumberOfRows
	if rows < 1 {
		rows = 1
	}
	er.program.SetFloat("numberOfRows", float32(rows))
	if tex.HasTransparency {
		disableCulling()
	}
	er.program.SetBool("useFakeLighting", tex.UseFakeLighting)
	er.program.SetFloat("shineDamper", tex.ShineDamper)
	er.program.SetFloat("reflectivity", tex.Reflectivity)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, er.loader.Texture(tex.Texture))
}

func unbindModel(tm model.TexturedModel) {
	if tm.Texture.HasTransparency {
		enableCulling()
	}
	gl.BindVertexArray(0)
}

// Destroy frees the shader.
func (er *EntityRenderer) Destroy() {
	er.program.Delete()
}
