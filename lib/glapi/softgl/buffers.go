package softgl

import (
	"github.com/fosdem/glquad/lib/glapi"
)

type buffer struct {
	data  []byte
	usage uint32
}

// Attrib is the state of one vertex attribute slot of a vertex array.
type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
}

// EffectiveStride is the distance between two vertices, resolving a zero
// stride to tightly packed components.
func (a Attrib) EffectiveStride() int32 {
	if a.Stride != 0 {
		return a.Stride
	}
	return a.Size * glapi.TypeSize(a.Type)
}

type vertexArray struct {
	attribs       [glapi.MaxVertexAttribs]Attrib
	elementBuffer uint32
}

func (g *GL) currentArray() *vertexArray {
	if g.boundArray == 0 {
		return &g.defaultArray
	}
	return g.arrays[g.boundArray]
}

func (g *GL) bindingFor(target uint32) (*uint32, bool) {
	switch target {
	case glapi.ArrayBuffer:
		return &g.arrayBuffer, true
	case glapi.ElementArrayBuffer:
		return &g.currentArray().elementBuffer, true
	}
	return nil, false
}

func (g *GL) GenBuffer() uint32 {
	id := g.name()
	g.buffers[id] = &buffer{}
	return id
}

func (g *GL) DeleteBuffer(id uint32) {
	if _, ok := g.buffers[id]; !ok {
		return
	}
	delete(g.buffers, id)
	if g.arrayBuffer == id {
		g.arrayBuffer = 0
	}
	if va := g.currentArray(); va.elementBuffer == id {
		va.elementBuffer = 0
	}
}

func (g *GL) BindBuffer(target, id uint32) {
	binding, ok := g.bindingFor(target)
	if !ok {
		g.raise(glapi.InvalidEnum)
		return
	}
	if _, exists := g.buffers[id]; id != 0 && !exists {
		g.raise(glapi.InvalidOperation)
		return
	}
	*binding = id
}

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	binding, ok := g.bindingFor(target)
	if !ok {
		g.raise(glapi.InvalidEnum)
		return
	}
	switch usage {
	case glapi.StaticDraw, glapi.DynamicDraw, glapi.StreamDraw:
	default:
		g.raise(glapi.InvalidEnum)
		return
	}
	b, exists := g.buffers[*binding]
	if *binding == 0 || !exists {
		g.raise(glapi.InvalidOperation)
		return
	}
	b.data = append([]byte(nil), data...)
	b.usage = usage
}

func (g *GL) GenVertexArray() uint32 {
	id := g.name()
	g.arrays[id] = &vertexArray{}
	return id
}

func (g *GL) DeleteVertexArray(id uint32) {
	if _, ok := g.arrays[id]; !ok {
		return
	}
	delete(g.arrays, id)
	if g.boundArray == id {
		g.boundArray = 0
	}
}

func (g *GL) BindVertexArray(id uint32) {
	if _, exists := g.arrays[id]; id != 0 && !exists {
		g.raise(glapi.InvalidOperation)
		return
	}
	g.boundArray = id
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	if g.boundArray == 0 {
		g.raise(glapi.InvalidOperation)
		return
	}
	if index >= glapi.MaxVertexAttribs {
		g.raise(glapi.InvalidValue)
		return
	}
	g.arrays[g.boundArray].attribs[index].Enabled = true
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	if g.boundArray == 0 {
		g.raise(glapi.InvalidOperation)
		return
	}
	if index >= glapi.MaxVertexAttribs || size < 1 || size > 4 || stride < 0 {
		g.raise(glapi.InvalidValue)
		return
	}
	if glapi.TypeSize(xtype) == 0 {
		g.raise(glapi.InvalidEnum)
		return
	}
	if g.arrayBuffer == 0 && offset != 0 {
		g.raise(glapi.InvalidOperation)
		return
	}
	a := &g.arrays[g.boundArray].attribs[index]
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = g.arrayBuffer
}

// BufferInfo describes the contents of a buffer object.
type BufferInfo struct {
	Data  []byte
	Usage uint32
}

func (g *GL) Buffer(id uint32) (BufferInfo, bool) {
	b, ok := g.buffers[id]
	if !ok {
		return BufferInfo{}, false
	}
	return BufferInfo{Data: append([]byte(nil), b.data...), Usage: b.usage}, true
}

// VertexAttrib returns the state of attribute slot index of vertex array
// array.
func (g *GL) VertexAttrib(array, index uint32) (Attrib, bool) {
	va, ok := g.arrays[array]
	if !ok || index >= glapi.MaxVertexAttribs {
		return Attrib{}, false
	}
	return va.attribs[index], true
}

// ElementBuffer returns the index buffer recorded in vertex array array.
func (g *GL) ElementBuffer(array uint32) uint32 {
	va, ok := g.arrays[array]
	if !ok {
		return 0
	}
	return va.elementBuffer
}
