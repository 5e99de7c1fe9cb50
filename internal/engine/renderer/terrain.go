package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shader/shaders"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/pkg/math"
)

// terrainSamplers lists the terrain texture units in binding order.
var terrainSamplers = [...]string{"backgroundTexture", "rTexture", "gTexture", "bTexture", "blendMap"}

// TerrainRenderer draws terrain tiles with their blended texture packs.
type TerrainRenderer struct {
	program *shader.Program
	loader  *Loader
}

// NewTerrainRenderer compiles the terrain shader and binds its samplers to
// texture units 0 to 4.
func NewTerrainRenderer(loader *Loader, projection math.Mat4) (*TerrainRenderer, error) {
	program, err := shader.NewProgram("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, err
	}
	tr := &TerrainRenderer{program: program, loader: loader}

	program.Use()
	for unit, name := range terrainSamplers {
		program.SetInt(name, int32(unit))
	}
	program.SetMat4("projectionMatrix", projection)
	program.Stop()
	return tr, nil
}

// SetProjection uploads a new projection matrix.
func (tr *TerrainRenderer) SetProjection(projection math.Mat4) {
	tr.program.Use()
	tr.program.SetMat4("projectionMatrix", projection)
	tr.program.Stop()
}

// Render draws every tile.
func (tr *TerrainRenderer) Render(tiles []*terrain.HeightField, env Environment) {
	tr.program.Use()
	env.apply(tr.program)
	tr.program.SetFloat("shineDamper", 1)
	tr.program.SetFloat("reflectivity", 0)

	for _, tile := range tiles {
		raw := tile.Model()
		gl.BindVertexArray(tr.loader.VAO(raw.VAO))
		tr.bindTextures(tile.Textures())

		x, z := tile.Origin()
		tr.program.SetMat4("transformationMatrix", math.CreateTransformationMatrix(
			math.Vec3{X: x, Z: z}, math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
		gl.DrawElementsWithOffset(gl.TRIANGLES, raw.VertexCount, gl.UNSIGNED_INT, 0)
	}

	gl.BindVertexArray(0)
	tr.program.Stop()
}

func (tr *TerrainRenderer) bindTextures(pack terrain.TexturePack) {
	units := [...]resource.Handle{pack.Background, pack.R, pack.G, pack.B, pack.BlendMap}
	for i, h := range units {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tr.loader.Texture(h))
	}
}

// Destroy frees the shader.
func (tr *TerrainRenderer) Destroy() {
	tr.program.Delete()
}
