package glapi

import "fmt"

// Functions is the subset of the OpenGL API used by glquad. Everything
// above this layer talks to the driver through it, so the same code runs
// against the native bindings and against softgl.
type Functions interface {
	GetError() uint32
	GetString(name uint32) string

	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, data []byte, usage uint32)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	Viewport(x, y, width, height int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform4f(location int32, v0, v1, v2, v3 float32)
}

// Enum values, identical to the ones in the OpenGL registry.
const (
	False = 0
	True  = 1

	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
	ContextLost                 = 0x0507

	Points    = 0x0000
	Lines     = 0x0001
	Triangles = 0x0004

	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893

	StreamDraw  = 0x88E0
	StaticDraw  = 0x88E4
	DynamicDraw = 0x88E8

	ColorBufferBit = 0x00004000

	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02

	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	ValidateStatus = 0x8B83
	InfoLogLength  = 0x8B84

	MaxVertexAttribs = 16
)

var codeNames = map[uint32]string{
	NoError:                     "GL_NO_ERROR",
	InvalidEnum:                 "GL_INVALID_ENUM",
	InvalidValue:                "GL_INVALID_VALUE",
	InvalidOperation:            "GL_INVALID_OPERATION",
	StackOverflow:               "GL_STACK_OVERFLOW",
	StackUnderflow:              "GL_STACK_UNDERFLOW",
	OutOfMemory:                 "GL_OUT_OF_MEMORY",
	InvalidFramebufferOperation: "GL_INVALID_FRAMEBUFFER_OPERATION",
	ContextLost:                 "GL_CONTEXT_LOST",
}

// CodeName returns the symbolic name of a glGetError code.
func CodeName(code uint32) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("GL_ERROR_0x%04X", code)
}

// TypeSize returns the size in bytes of a scalar GL data type, or 0 if the
// type is not one glquad knows about.
func TypeSize(xtype uint32) int32 {
	switch xtype {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	}
	return 0
}
