package native

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL forwards glapi.Functions to the go-gl bindings. A context must be
// current on the calling OS thread.
type GL struct{}

// Init loads the OpenGL entry points for the current context.
func Init() (*GL, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	g := &GL{}
	slog.Info(fmt.Sprintf("OpenGL version %s / %s / %s",
		g.GetString(glapi.Vendor), g.GetString(glapi.Renderer), g.GetString(glapi.Version)),
		slog.String("module", "gl"))

	return g, nil
}

func (*GL) GetError() uint32 {
	return gl.GetError()
}

func (*GL) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (*GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*GL) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (*GL) BindBuffer(target, id uint32) {
	gl.BindBuffer(target, id)
}

func (*GL) BufferData(target uint32, data []byte, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data), ptr, usage)
}

func (*GL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*GL) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (*GL) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (*GL) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (*GL) Clear(mask uint32) {
	gl.Clear(mask)
}

func (*GL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(int(offset)))
}

func (*GL) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (*GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (*GL) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (*GL) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	logLength := g.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if logLength <= 0 {
		return ""
	}
	clog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (*GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*GL) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)
}

func (*GL) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	logLength := g.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if logLength <= 0 {
		return ""
	}
	logmsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
	return strings.TrimRight(logmsg, "\x00")
}

func (*GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

var _ glapi.Functions = (*GL)(nil)
