package harness

import (
	"github.com/fosdem/glquad/lib/glcall"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/go-gl/mathgl/mgl32"
)

// QuadPositions are the corners of a unit quad centred on the origin.
var QuadPositions = []mgl32.Vec2{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

// QuadIndices split the quad into two counter-clockwise triangles.
var QuadIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

// Mesh is an indexed mesh ready to be drawn.
type Mesh struct {
	Layout *rendering.VertexBufferLayout
	VB     *rendering.VertexBuffer
	IB     *rendering.IndexBuffer
	VA     *rendering.VertexArray
}

// NewMesh uploads 2D positions and their indices. The index buffer is
// created while the vertex array is bound, so the array records it.
func NewMesh(ctx *rendering.Context, positions []mgl32.Vec2, indices []uint32) *Mesh {
	m := &Mesh{Layout: &rendering.VertexBufferLayout{}}
	m.Layout.PushFloat(2)

	m.VA = rendering.NewVertexArray(ctx)
	m.VB = rendering.NewVertexBufferOf(ctx, positions)

	_, exact := m.Layout.VertexCount(m.VB.Size())
	glcall.Assert(exact, "vertex buffer of %d bytes does not hold whole %d byte vertices", m.VB.Size(), m.Layout.Stride())

	m.VA.AddBuffer(m.VB, m.Layout)
	m.IB = rendering.NewIndexBuffer(ctx, indices)
	return m
}

func NewQuad(ctx *rendering.Context) *Mesh {
	return NewMesh(ctx, QuadPositions, QuadIndices)
}

// Unbind clears every binding point the mesh uses, so the next draw has to
// bind it again.
func (m *Mesh) Unbind() {
	m.VA.Unbind()
	m.VB.Unbind()
	m.IB.Unbind()
}

func (m *Mesh) Delete() {
	m.VA.Delete()
	m.IB.Delete()
	m.VB.Delete()
}
