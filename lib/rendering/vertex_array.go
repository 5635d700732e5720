package rendering

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glquad/lib/metrics"
)

var vertexArrayMetrics = metrics.NewObjectMetrics("vertex_array")

// VertexArray owns a vertex array object: the set of attribute pointers a
// draw reads from. It refers to the buffers added to it but does not own
// them.
type VertexArray struct {
	ctx *Context
	id  uint32

	// next free attribute index
	nextAttrib uint32
}

func NewVertexArray(ctx *Context) *VertexArray {
	va := &VertexArray{ctx: ctx}
	ctx.Do("glGenVertexArrays", func() { va.id = ctx.gl.GenVertexArray() })
	vertexArrayMetrics.Created()
	return va
}

// AddBuffer registers one attribute pointer per element of layout, reading
// from vb. Elements take consecutive attribute indices, continuing after
// those of earlier AddBuffer calls, and are packed back to back at offsets
// derived from their order and size.
//
// A failure leaves the array unusable; delete it and build a new one.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, layout *VertexBufferLayout) {
	va.Bind()
	vb.Bind()

	gl := va.ctx.gl
	stride := layout.Stride()
	offset := uintptr(0)
	for _, e := range layout.Elements() {
		index := va.nextAttrib
		va.ctx.Do(fmt.Sprintf("glEnableVertexAttribArray(%d)", index), func() {
			gl.EnableVertexAttribArray(index)
		})
		va.ctx.Do(fmt.Sprintf("glVertexAttribPointer(%d)", index), func() {
			gl.VertexAttribPointer(index, e.Count, uint32(e.Kind), e.Normalised, stride, offset)
		})
		slog.Debug(fmt.Sprintf("attribute %d: %d x %s at offset %d, stride %d", index, e.Count, e.Kind, offset, stride),
			slog.String("module", "rendering"))

		offset += uintptr(e.Span())
		va.nextAttrib++
	}
}

// Attributes is the number of attribute indices in use.
func (va *VertexArray) Attributes() uint32 {
	return va.nextAttrib
}

func (va *VertexArray) ID() uint32 {
	return va.id
}

func (va *VertexArray) Bind() {
	va.ctx.Do("glBindVertexArray", func() { va.ctx.gl.BindVertexArray(va.id) })
}

func (va *VertexArray) Unbind() {
	va.ctx.Do("glBindVertexArray(0)", func() { va.ctx.gl.BindVertexArray(0) })
}

func (va *VertexArray) Delete() {
	if va == nil || va.id == 0 {
		return
	}
	id := va.id
	va.ctx.Do("glDeleteVertexArrays", func() { va.ctx.gl.DeleteVertexArray(id) })
	va.id = 0
	vertexArrayMetrics.Deleted()
}
