package rendering

import (
	"fmt"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/glcall"
)

// Kind is the base component type of a layout element.
type Kind uint32

const (
	Float        Kind = glapi.Float
	Int          Kind = glapi.Int
	UnsignedByte Kind = glapi.UnsignedByte
)

// Size returns the width of one component in bytes.
func (k Kind) Size() int32 {
	switch k {
	case Float, Int:
		return 4
	case UnsignedByte:
		return 1
	}
	return 0
}

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case UnsignedByte:
		return "ubyte"
	}
	return fmt.Sprintf("Kind(0x%04X)", uint32(k))
}

// LayoutElement describes one attribute of a vertex record.
type LayoutElement struct {
	Count      int32
	Kind       Kind
	Normalised bool
}

// Span is the number of bytes the element occupies in a vertex record.
func (e LayoutElement) Span() int32 {
	return e.Count * e.Kind.Size()
}

// VertexBufferLayout lists the attributes of a vertex record in memory
// order. The position of an element is also its attribute index once added
// to a VertexArray, so elements can only be appended.
type VertexBufferLayout struct {
	elements []LayoutElement
	stride   int32
}

// Push appends count components of kind. Unsigned bytes are normalised to
// [0, 1]; other kinds are passed through.
func (l *VertexBufferLayout) Push(kind Kind, count int32) {
	glcall.Assert(kind.Size() != 0, "unsupported layout kind %s", kind)
	glcall.Assert(count >= 1 && count <= 4, "layout element needs 1 to 4 components, got %d", count)
	l.elements = append(l.elements, LayoutElement{
		Count:      count,
		Kind:       kind,
		Normalised: kind == UnsignedByte,
	})
	l.stride += count * kind.Size()
}

func (l *VertexBufferLayout) PushFloat(count int32) {
	l.Push(Float, count)
}

func (l *VertexBufferLayout) PushInt(count int32) {
	l.Push(Int, count)
}

func (l *VertexBufferLayout) PushUnsignedByte(count int32) {
	l.Push(UnsignedByte, count)
}

// Elements returns a copy of the elements in push order.
func (l *VertexBufferLayout) Elements() []LayoutElement {
	return append([]LayoutElement(nil), l.elements...)
}

// Stride is the size of one vertex record in bytes.
func (l *VertexBufferLayout) Stride() int32 {
	return l.stride
}

// VertexCount returns how many whole vertex records fit in size bytes and
// whether size is an exact multiple of the stride. Checking a buffer against
// its layout is up to the caller.
func (l *VertexBufferLayout) VertexCount(size int) (int, bool) {
	if l.stride == 0 {
		return 0, size == 0
	}
	return size / int(l.stride), size%int(l.stride) == 0
}
