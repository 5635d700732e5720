package rendering

import (
	"unsafe"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/glcall"
	"github.com/fosdem/glquad/lib/metrics"
)

// indexWidth is the width of GL_UNSIGNED_INT, the only index type drawn by
// the Renderer.
const indexWidth = 4

var indexBufferMetrics = metrics.NewObjectMetrics("index_buffer")

// IndexBuffer owns a buffer object of unsigned 32 bit element indices.
type IndexBuffer struct {
	ctx   *Context
	id    uint32
	count int32
}

// NewIndexBuffer uploads indices to a new element array buffer. Index types
// other than 32 bit unsigned integers are rejected.
func NewIndexBuffer[T ~uint32](ctx *Context, indices []T, opts ...BufferOption) *IndexBuffer {
	var zero T
	glcall.Assert(unsafe.Sizeof(zero) == indexWidth,
		"index type must be %d bytes wide, got %d", indexWidth, unsafe.Sizeof(zero))

	o := collectOptions(opts)
	b := &IndexBuffer{ctx: ctx, count: int32(len(indices))}

	data := asBytes(indices)
	ctx.Do("glGenBuffers", func() { b.id = ctx.gl.GenBuffer() })
	indexBufferMetrics.Created()
	b.Bind()
	ctx.Do("glBufferData(GL_ELEMENT_ARRAY_BUFFER)", func() {
		ctx.gl.BufferData(glapi.ElementArrayBuffer, data, uint32(o.usage))
	})
	metrics.BytesUploaded.WithLabelValues("element_array").Add(float64(len(data)))

	return b
}

func (b *IndexBuffer) ID() uint32 {
	return b.id
}

// Count is the number of indices supplied at construction.
func (b *IndexBuffer) Count() int32 {
	return b.count
}

func (b *IndexBuffer) Bind() {
	b.ctx.Do("glBindBuffer(GL_ELEMENT_ARRAY_BUFFER)", func() {
		b.ctx.gl.BindBuffer(glapi.ElementArrayBuffer, b.id)
	})
}

func (b *IndexBuffer) Unbind() {
	b.ctx.Do("glBindBuffer(GL_ELEMENT_ARRAY_BUFFER, 0)", func() {
		b.ctx.gl.BindBuffer(glapi.ElementArrayBuffer, 0)
	})
}

func (b *IndexBuffer) Delete() {
	if b == nil || b.id == 0 {
		return
	}
	id := b.id
	b.ctx.Do("glDeleteBuffers", func() { b.ctx.gl.DeleteBuffer(id) })
	b.id = 0
	indexBufferMetrics.Deleted()
}
