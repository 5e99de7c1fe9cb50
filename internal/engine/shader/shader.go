// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/pkg/math"
)

// Vertex attribute slots shared by every mesh VAO.
const (
	AttribPosition uint32 = 0
	AttribUV       uint32 = 1
	AttribNormal   uint32 = 2
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.BindAttribLocation(program, AttribPosition, gl.Str("position\x00"))
	gl.BindAttribLocation(program, AttribUV, gl.Str("textureCoordinates\x00"))
	gl.BindAttribLocation(program, AttribNormal, gl.Str("normal\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Program is a linked shader program with cached uniform locations.
type Program struct {
	Name      string
	ID        uint32
	locations map[string]int32
}

// NewProgram compiles and links a named program.
func NewProgram(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	return &Program{
		Name:      name,
		ID:        id,
		locations: make(map[string]int32),
	}, nil
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Stop unbinds any program.
func (p *Program) Stop() {
	gl.UseProgram(0)
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Location returns the cached location of a uniform, or -1 if the program
// has no active uniform by that name.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locations[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Location(name), v)
}

// SetBool sets a float uniform to 1 or 0.
func (p *Program) SetBool(name string, v bool) {
	var f float32
	if v {
		f = 1
	}
	gl.Uniform1f(p.Location(name), f)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v math.Vec2) {
	gl.Uniform2f(p.Location(name), v.X, v.Y)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.Location(name), v.X, v.Y, v.Z)
}

// SetVec3Array sets a vec3 array uniform from packed xyz triples.
func (p *Program) SetVec3Array(name string, v []float32) {
	if len(v) < 3 {
		return
	}
	gl.Uniform3fv(p.Location(name), int32(len(v)/3), &v[0])
}

// SetMat4 uploads m as stored. The memory layout already matches GLSL.
func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, m.Ptr())
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// MustGetUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func MustGetUniform(program uint32, name string) int32 {
	loc := GetUniform(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
