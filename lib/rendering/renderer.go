package rendering

import (
	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/go-gl/mathgl/mgl32"
)

// Bindable is anything that can be made current before a draw, such as a
// shader program.
type Bindable interface {
	Bind()
}

// Renderer issues clears and indexed draws.
type Renderer struct {
	ctx *Context
}

func NewRenderer(ctx *Context) *Renderer {
	return &Renderer{ctx: ctx}
}

func (r *Renderer) SetClearColour(c mgl32.Vec4) {
	r.ctx.Do("glClearColor", func() { r.ctx.gl.ClearColor(c[0], c[1], c[2], c[3]) })
}

func (r *Renderer) SetViewport(width, height int) {
	r.ctx.Do("glViewport", func() { r.ctx.gl.Viewport(0, 0, int32(width), int32(height)) })
}

func (r *Renderer) Clear() {
	r.ctx.Do("glClear", func() { r.ctx.gl.Clear(glapi.ColorBufferBit) })
}

// Draw binds program, va and ib, then draws ib.Count() indices as triangles.
// Nothing is assumed to still be bound from a previous frame.
func (r *Renderer) Draw(va *VertexArray, ib *IndexBuffer, program Bindable) {
	program.Bind()
	va.Bind()
	ib.Bind()
	r.DrawIndexed(ib.Count())
}

// DrawIndexed draws with whatever is currently bound.
func (r *Renderer) DrawIndexed(count int32) {
	r.ctx.Do("glDrawElements(GL_TRIANGLES)", func() {
		r.ctx.gl.DrawElements(glapi.Triangles, count, glapi.UnsignedInt, 0)
	})
	metrics.DrawCalls.Inc()
}
