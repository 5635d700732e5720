package rendering

import (
	"unsafe"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/metrics"
)

// Usage is the hint passed to glBufferData.
type Usage uint32

const (
	StaticDraw  Usage = glapi.StaticDraw
	DynamicDraw Usage = glapi.DynamicDraw
	StreamDraw  Usage = glapi.StreamDraw
)

func (u Usage) String() string {
	switch u {
	case StaticDraw:
		return "static"
	case DynamicDraw:
		return "dynamic"
	case StreamDraw:
		return "stream"
	}
	return "unknown"
}

type bufferOptions struct {
	usage Usage
}

type BufferOption func(*bufferOptions)

// WithUsage overrides the default StaticDraw usage hint.
func WithUsage(u Usage) BufferOption {
	return func(o *bufferOptions) {
		o.usage = u
	}
}

func collectOptions(opts []BufferOption) bufferOptions {
	o := bufferOptions{usage: StaticDraw}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var vertexBufferMetrics = metrics.NewObjectMetrics("vertex_buffer")

// VertexBuffer owns a buffer object holding raw vertex bytes. It knows
// nothing about the layout of the data.
type VertexBuffer struct {
	ctx   *Context
	id    uint32
	size  int
	usage Usage
}

// NewVertexBuffer allocates a buffer and uploads data into it. The bytes are
// copied, so data may be reused once this returns.
func NewVertexBuffer(ctx *Context, data []byte, opts ...BufferOption) *VertexBuffer {
	o := collectOptions(opts)
	b := &VertexBuffer{ctx: ctx, usage: o.usage}

	ctx.Do("glGenBuffers", func() { b.id = ctx.gl.GenBuffer() })
	vertexBufferMetrics.Created()
	b.Bind()
	ctx.Do("glBufferData(GL_ARRAY_BUFFER)", func() {
		ctx.gl.BufferData(glapi.ArrayBuffer, data, uint32(o.usage))
	})
	b.size = len(data)
	metrics.BytesUploaded.WithLabelValues("array").Add(float64(len(data)))

	return b
}

// NewVertexBufferOf uploads a slice of plain values, such as float32 or
// mgl32.Vec2, as raw bytes.
func NewVertexBufferOf[T any](ctx *Context, data []T, opts ...BufferOption) *VertexBuffer {
	return NewVertexBuffer(ctx, asBytes(data), opts...)
}

func asBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

func (b *VertexBuffer) ID() uint32 {
	return b.id
}

// Size is the number of bytes uploaded at construction.
func (b *VertexBuffer) Size() int {
	return b.size
}

func (b *VertexBuffer) Usage() Usage {
	return b.usage
}

func (b *VertexBuffer) Bind() {
	b.ctx.Do("glBindBuffer(GL_ARRAY_BUFFER)", func() {
		b.ctx.gl.BindBuffer(glapi.ArrayBuffer, b.id)
	})
}

func (b *VertexBuffer) Unbind() {
	b.ctx.Do("glBindBuffer(GL_ARRAY_BUFFER, 0)", func() {
		b.ctx.gl.BindBuffer(glapi.ArrayBuffer, 0)
	})
}

// Delete releases the buffer object. It is safe to call more than once and
// on a buffer whose construction did not complete.
func (b *VertexBuffer) Delete() {
	if b == nil || b.id == 0 {
		return
	}
	id := b.id
	b.ctx.Do("glDeleteBuffers", func() { b.ctx.gl.DeleteBuffer(id) })
	b.id = 0
	vertexBufferMetrics.Deleted()
}
