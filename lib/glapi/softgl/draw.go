package softgl

import (
	"encoding/binary"
	"math"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex holds the fetched value of every attribute slot up to the highest
// enabled one. Disabled slots read as (0, 0, 0, 1).
type Vertex []mgl32.Vec4

// Position is attribute 0.
func (v Vertex) Position() mgl32.Vec4 {
	if len(v) == 0 {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	return v[0]
}

// DrawCall is a draw executed by the emulator.
type DrawCall struct {
	Mode     uint32
	Program  uint32
	Indices  []uint32
	Vertices []Vertex
	Uniforms map[string]mgl32.Vec4
}

// Triangles groups the positions of a TRIANGLES draw into primitives.
func (d DrawCall) Triangles() [][3]mgl32.Vec4 {
	if d.Mode != glapi.Triangles {
		return nil
	}
	tris := make([][3]mgl32.Vec4, 0, len(d.Vertices)/3)
	for i := 0; i+2 < len(d.Vertices); i += 3 {
		tris = append(tris, [3]mgl32.Vec4{
			d.Vertices[i].Position(),
			d.Vertices[i+1].Position(),
			d.Vertices[i+2].Position(),
		})
	}
	return tris
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	switch mode {
	case glapi.Points, glapi.Lines, glapi.Triangles:
	default:
		g.raise(glapi.InvalidEnum)
		return
	}
	switch xtype {
	case glapi.UnsignedByte, glapi.UnsignedShort, glapi.UnsignedInt:
	default:
		g.raise(glapi.InvalidEnum)
		return
	}
	if count < 0 {
		g.raise(glapi.InvalidValue)
		return
	}
	if g.boundArray == 0 || g.currentProgram == 0 {
		g.raise(glapi.InvalidOperation)
		return
	}
	va := g.arrays[g.boundArray]
	ib, ok := g.buffers[va.elementBuffer]
	if va.elementBuffer == 0 || !ok {
		g.raise(glapi.InvalidOperation)
		return
	}

	indices, ok := readIndices(ib.data, int(count), xtype, offset)
	if !ok {
		g.raise(glapi.InvalidOperation)
		return
	}

	last := -1
	for i, a := range va.attribs {
		if a.Enabled {
			last = i
		}
	}

	vertices := make([]Vertex, 0, len(indices))
	for _, idx := range indices {
		v := make(Vertex, last+1)
		for i := 0; i <= last; i++ {
			a := va.attribs[i]
			if !a.Enabled {
				v[i] = mgl32.Vec4{0, 0, 0, 1}
				continue
			}
			vb, exists := g.buffers[a.Buffer]
			if a.Buffer == 0 || !exists {
				g.raise(glapi.InvalidOperation)
				return
			}
			value, ok := fetch(vb.data, a, idx)
			if !ok {
				g.raise(glapi.InvalidOperation)
				return
			}
			v[i] = value
		}
		vertices = append(vertices, v)
	}

	g.draws = append(g.draws, DrawCall{
		Mode:     mode,
		Program:  g.currentProgram,
		Indices:  indices,
		Vertices: vertices,
		Uniforms: g.programs[g.currentProgram].snapshot(),
	})
}

func readIndices(data []byte, count int, xtype uint32, offset uintptr) ([]uint32, bool) {
	size := int(glapi.TypeSize(xtype))
	start := int(offset)
	if start < 0 || start+count*size > len(data) {
		return nil, false
	}
	indices := make([]uint32, count)
	for i := range indices {
		at := data[start+i*size:]
		switch xtype {
		case glapi.UnsignedByte:
			indices[i] = uint32(at[0])
		case glapi.UnsignedShort:
			indices[i] = uint32(binary.LittleEndian.Uint16(at))
		case glapi.UnsignedInt:
			indices[i] = binary.LittleEndian.Uint32(at)
		}
	}
	return indices, true
}

func fetch(data []byte, a Attrib, index uint32) (mgl32.Vec4, bool) {
	width := int(glapi.TypeSize(a.Type))
	start := int(a.Offset) + int(index)*int(a.EffectiveStride())
	end := start + int(a.Size)*width
	if start < 0 || end > len(data) {
		return mgl32.Vec4{}, false
	}
	v := mgl32.Vec4{0, 0, 0, 1}
	for c := 0; c < int(a.Size); c++ {
		v[c] = component(data[start+c*width:], a.Type, a.Normalized)
	}
	return v, true
}

func component(b []byte, xtype uint32, normalized bool) float32 {
	switch xtype {
	case glapi.Float:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case glapi.Int:
		v := int32(binary.LittleEndian.Uint32(b))
		if normalized {
			return max(float32(v)/math.MaxInt32, -1)
		}
		return float32(v)
	case glapi.UnsignedInt:
		v := binary.LittleEndian.Uint32(b)
		if normalized {
			return float32(float64(v) / math.MaxUint32)
		}
		return float32(v)
	case glapi.Short:
		v := int16(binary.LittleEndian.Uint16(b))
		if normalized {
			return max(float32(v)/math.MaxInt16, -1)
		}
		return float32(v)
	case glapi.UnsignedShort:
		v := binary.LittleEndian.Uint16(b)
		if normalized {
			return float32(v) / math.MaxUint16
		}
		return float32(v)
	case glapi.Byte:
		v := int8(b[0])
		if normalized {
			return max(float32(v)/math.MaxInt8, -1)
		}
		return float32(v)
	case glapi.UnsignedByte:
		if normalized {
			return float32(b[0]) / math.MaxUint8
		}
		return float32(b[0])
	}
	return 0
}

// Draws returns every draw executed so far, oldest first.
func (g *GL) Draws() []DrawCall {
	return append([]DrawCall(nil), g.draws...)
}

// LastDraw returns the most recent draw.
func (g *GL) LastDraw() (DrawCall, bool) {
	if len(g.draws) == 0 {
		return DrawCall{}, false
	}
	return g.draws[len(g.draws)-1], true
}
