package shaders

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/glcall"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/go-gl/mathgl/mgl32"
)

var programMetrics = metrics.NewObjectMetrics("program")

// Program is a linked shader program together with a cache of the uniform
// locations looked up in it.
type Program struct {
	ctx      *rendering.Context
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links src. When either stage fails to compile or
// the link fails, the diagnostics are logged and the program has ID 0;
// see Valid.
func NewProgram(ctx *rendering.Context, src ProgramSource) *Program {
	p := &Program{
		ctx:      ctx,
		id:       CreateProgram(ctx, src),
		uniforms: make(map[string]int32),
	}
	if p.id != 0 {
		programMetrics.Created()
	}
	return p
}

// CreateProgram builds a program object from both stages and returns its
// name, or 0 if it could not be built.
func CreateProgram(ctx *rendering.Context, src ProgramSource) uint32 {
	gl := ctx.GL()

	vs := CompileShader(ctx, glapi.VertexShader, src.Vertex)
	fs := CompileShader(ctx, glapi.FragmentShader, src.Fragment)
	if vs == 0 || fs == 0 {
		deleteShader(ctx, vs)
		deleteShader(ctx, fs)
		return 0
	}

	var program uint32
	ctx.Do("glCreateProgram", func() { program = gl.CreateProgram() })
	ctx.Do("glAttachShader(vertex)", func() { gl.AttachShader(program, vs) })
	ctx.Do("glAttachShader(fragment)", func() { gl.AttachShader(program, fs) })
	ctx.Do("glLinkProgram", func() { gl.LinkProgram(program) })

	var status int32
	ctx.Do("glGetProgramiv(GL_LINK_STATUS)", func() { status = gl.GetProgramiv(program, glapi.LinkStatus) })
	if status == glapi.False {
		var logmsg string
		ctx.Do("glGetProgramInfoLog", func() { logmsg = gl.GetProgramInfoLog(program) })
		slog.Error(fmt.Sprintf("failed to link program: %s", logmsg), slog.String("module", "shaders"))

		ctx.Do("glDeleteProgram", func() { gl.DeleteProgram(program) })
		deleteShader(ctx, vs)
		deleteShader(ctx, fs)
		return 0
	}

	ctx.Do("glValidateProgram", func() { gl.ValidateProgram(program) })
	deleteShader(ctx, vs)
	deleteShader(ctx, fs)

	return program
}

// CompileShader compiles one stage. On failure the info log is logged, the
// shader object is deleted and 0 is returned.
func CompileShader(ctx *rendering.Context, shaderType uint32, source string) uint32 {
	gl := ctx.GL()

	var shader uint32
	ctx.Do("glCreateShader", func() { shader = gl.CreateShader(shaderType) })
	ctx.Do("glShaderSource", func() { gl.ShaderSource(shader, source) })
	ctx.Do("glCompileShader", func() { gl.CompileShader(shader) })

	var status int32
	ctx.Do("glGetShaderiv(GL_COMPILE_STATUS)", func() { status = gl.GetShaderiv(shader, glapi.CompileStatus) })
	if status == glapi.False {
		var clog string
		ctx.Do("glGetShaderInfoLog", func() { clog = gl.GetShaderInfoLog(shader) })
		slog.Error(fmt.Sprintf("failed to compile %s shader: %s", stageName(shaderType), clog),
			slog.String("module", "shaders"))

		deleteShader(ctx, shader)
		return 0
	}

	return shader
}

func deleteShader(ctx *rendering.Context, shader uint32) {
	if shader == 0 {
		return
	}
	ctx.Do("glDeleteShader", func() { ctx.GL().DeleteShader(shader) })
}

func stageName(shaderType uint32) string {
	if shaderType == glapi.VertexShader {
		return "vertex"
	}
	return "fragment"
}

func (p *Program) ID() uint32 {
	return p.id
}

// Valid reports whether the program compiled and linked.
func (p *Program) Valid() bool {
	return p.id != 0
}

func (p *Program) Bind() {
	p.ctx.Do("glUseProgram", func() { p.ctx.GL().UseProgram(p.id) })
}

func (p *Program) Unbind() {
	p.ctx.Do("glUseProgram(0)", func() { p.ctx.GL().UseProgram(0) })
}

// UniformLocation looks up a uniform, caching the result. The uniform must
// exist: a missing one fails an assertion.
func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}

	var loc int32
	p.ctx.Do("glGetUniformLocation", func() { loc = p.ctx.GL().GetUniformLocation(p.id, name) })
	glcall.Assert(loc != -1, "uniform %s not found in program %d", name, p.id)

	p.uniforms[name] = loc
	return loc
}

// HasUniform reports whether the program has an active uniform called name,
// without asserting on it.
func (p *Program) HasUniform(name string) bool {
	if loc, ok := p.uniforms[name]; ok {
		return loc != -1
	}
	if p.id == 0 {
		return false
	}
	var loc int32
	p.ctx.Do("glGetUniformLocation", func() { loc = p.ctx.GL().GetUniformLocation(p.id, name) })
	if loc == -1 {
		return false
	}
	p.uniforms[name] = loc
	return true
}

// SetUniform4f sets a vec4 uniform. The program must be bound.
func (p *Program) SetUniform4f(name string, v mgl32.Vec4) {
	loc := p.UniformLocation(name)
	p.ctx.Do("glUniform4f", func() { p.ctx.GL().Uniform4f(loc, v[0], v[1], v[2], v[3]) })
}

func (p *Program) Delete() {
	if p == nil || p.id == 0 {
		return
	}
	id := p.id
	p.ctx.Do("glDeleteProgram", func() { p.ctx.GL().DeleteProgram(id) })
	p.id = 0
	p.uniforms = make(map[string]int32)
	programMetrics.Deleted()
}
