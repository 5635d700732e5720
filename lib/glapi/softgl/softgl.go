// Package softgl is an in-process emulation of the parts of OpenGL that
// glquad uses. It keeps the same object model, binding points and sticky
// error flags as a real driver, and records every draw it executes, so the
// rendering layer can run headless and be tested without a GPU.
package softgl

import (
	"github.com/fosdem/glquad/lib/glapi"
	"github.com/go-gl/mathgl/mgl32"
)

// GL is a single emulated context. Like a real context it is not safe for
// concurrent use.
type GL struct {
	// pending error flags, oldest first; a code is recorded at most once
	// until it has been read back by GetError
	flags []uint32

	nextName uint32

	buffers  map[uint32]*buffer
	arrays   map[uint32]*vertexArray
	shaders  map[uint32]*shader
	programs map[uint32]*program

	arrayBuffer    uint32
	boundArray     uint32
	currentProgram uint32

	// element binding used while no vertex array is bound
	defaultArray vertexArray

	clearColour mgl32.Vec4
	viewport    [4]int32
	clears      int

	draws []DrawCall
}

func New() *GL {
	return &GL{
		buffers:  make(map[uint32]*buffer),
		arrays:   make(map[uint32]*vertexArray),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
	}
}

func (g *GL) raise(code uint32) {
	for _, f := range g.flags {
		if f == code {
			return
		}
	}
	g.flags = append(g.flags, code)
}

func (g *GL) name() uint32 {
	g.nextName++
	return g.nextName
}

func (g *GL) GetError() uint32 {
	if len(g.flags) == 0 {
		return glapi.NoError
	}
	code := g.flags[0]
	g.flags = g.flags[1:]
	return code
}

func (g *GL) GetString(name uint32) string {
	switch name {
	case glapi.Vendor:
		return "glquad"
	case glapi.Renderer:
		return "softgl"
	case glapi.Version:
		return "4.1 softgl"
	}
	g.raise(glapi.InvalidEnum)
	return ""
}

func (g *GL) Clear(mask uint32) {
	const valid = glapi.ColorBufferBit | 0x00000100 | 0x00000400
	if mask&^valid != 0 {
		g.raise(glapi.InvalidValue)
		return
	}
	g.clears++
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.clearColour = mgl32.Vec4{clamp(r), clamp(gr), clamp(b), clamp(a)}
}

func (g *GL) Viewport(x, y, width, height int32) {
	if width < 0 || height < 0 {
		g.raise(glapi.InvalidValue)
		return
	}
	g.viewport = [4]int32{x, y, width, height}
}

func clamp(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

// Raise sets an error flag as if a previous call had failed.
func (g *GL) Raise(code uint32) {
	g.raise(code)
}

// PendingErrors is the number of error flags not yet read by GetError.
func (g *GL) PendingErrors() int {
	return len(g.flags)
}

// Bindings is a snapshot of the context's binding points.
type Bindings struct {
	ArrayBuffer   uint32
	ElementBuffer uint32
	VertexArray   uint32
	Program       uint32
}

func (g *GL) Bound() Bindings {
	return Bindings{
		ArrayBuffer:   g.arrayBuffer,
		ElementBuffer: g.currentArray().elementBuffer,
		VertexArray:   g.boundArray,
		Program:       g.currentProgram,
	}
}

// Counts holds the number of live objects of each kind.
type Counts struct {
	Buffers      int
	VertexArrays int
	Shaders      int
	Programs     int
}

func (g *GL) Live() Counts {
	c := Counts{
		Buffers:      len(g.buffers),
		VertexArrays: len(g.arrays),
	}
	for _, s := range g.shaders {
		if !s.deleted {
			c.Shaders++
		}
	}
	for _, p := range g.programs {
		if !p.deleted {
			c.Programs++
		}
	}
	return c
}

func (g *GL) ClearColour() mgl32.Vec4 {
	return g.clearColour
}

func (g *GL) Clears() int {
	return g.clears
}

func (g *GL) ViewportRect() [4]int32 {
	return g.viewport
}

var _ glapi.Functions = (*GL)(nil)
