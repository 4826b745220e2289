package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/shader"
)

// Program is a linked GL program with cached uniform locations.
type Program struct {
	id        uint32
	locations map[string]int32
	log       *zap.Logger
}

var _ shader.Program = (*Program)(nil)

// NewProgram compiles and links a program owned by the renderer.
func (r *Renderer) NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	p := &Program{
		id:        id,
		locations: make(map[string]int32),
		log:       r.log.With(zap.Uint32("program", id)),
	}
	r.programs = append(r.programs, p)
	r.log.Debug("shader program created", zap.Uint32("program", id))
	return p, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error naming the failing stage.
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
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(sh, logLen, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", stage, gl.GoStr(&log[0]))
	}

	return sh, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// location returns the cached location of name. Unknown or optimized-out
// uniforms resolve to -1, which GL ignores on write; they are logged once.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("uniform not active", zap.String("name", name))
	}
	p.locations[name] = loc
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2fv(p.location(name), 1, &v[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.location(name), 1, &v[0])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.location(name), 1, &v[0])
}

func (p *Program) SetMat2(name string, m mgl32.Mat2) {
	gl.UniformMatrix2fv(p.location(name), 1, false, &m[0])
}

func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.location(name), 1, false, &m[0])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *Program) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
