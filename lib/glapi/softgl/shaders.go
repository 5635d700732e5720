package softgl

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/go-gl/mathgl/mgl32"
)

const shaderTypeParam = 0x8B4F

var uniformDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)

type shader struct {
	kind     uint32
	source   string
	compiled bool
	log      string
	uniforms []string
	deleted  bool
}

type program struct {
	attached []uint32
	linked   bool
	valid    bool
	log      string
	deleted  bool

	locations map[string]int32
	values    map[int32]mgl32.Vec4
}

func (p *program) snapshot() map[string]mgl32.Vec4 {
	out := make(map[string]mgl32.Vec4, len(p.values))
	for name, loc := range p.locations {
		if v, ok := p.values[loc]; ok {
			out[name] = v
		}
	}
	return out
}

func (g *GL) lookupShader(id uint32) *shader {
	s, ok := g.shaders[id]
	if !ok || s.deleted {
		g.raise(glapi.InvalidValue)
		return nil
	}
	return s
}

func (g *GL) lookupProgram(id uint32) *program {
	p, ok := g.programs[id]
	if !ok || p.deleted {
		g.raise(glapi.InvalidValue)
		return nil
	}
	return p
}

func (g *GL) CreateShader(xtype uint32) uint32 {
	if xtype != glapi.VertexShader && xtype != glapi.FragmentShader {
		g.raise(glapi.InvalidEnum)
		return 0
	}
	id := g.name()
	g.shaders[id] = &shader{kind: xtype}
	return id
}

func (g *GL) ShaderSource(id uint32, source string) {
	if s := g.lookupShader(id); s != nil {
		s.source = source
	}
}

// CompileShader accepts any source that declares a main function and
// records the uniforms it declares.
func (g *GL) CompileShader(id uint32) {
	s := g.lookupShader(id)
	if s == nil {
		return
	}
	s.uniforms = nil
	if !strings.Contains(s.source, "void main") {
		s.compiled = false
		s.log = "ERROR: 0:1: 'main' : function not defined\n"
		return
	}
	for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
		s.uniforms = append(s.uniforms, m[1])
	}
	s.compiled = true
	s.log = ""
}

func (g *GL) GetShaderiv(id, pname uint32) int32 {
	s := g.lookupShader(id)
	if s == nil {
		return 0
	}
	switch pname {
	case glapi.CompileStatus:
		return boolParam(s.compiled)
	case glapi.InfoLogLength:
		return logLength(s.log)
	case shaderTypeParam:
		return int32(s.kind)
	}
	g.raise(glapi.InvalidEnum)
	return 0
}

func (g *GL) GetShaderInfoLog(id uint32) string {
	if s := g.lookupShader(id); s != nil {
		return s.log
	}
	return ""
}

func (g *GL) DeleteShader(id uint32) {
	if id == 0 {
		return
	}
	if s := g.lookupShader(id); s != nil {
		s.deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	id := g.name()
	g.programs[id] = &program{}
	return id
}

func (g *GL) AttachShader(programID, shaderID uint32) {
	p := g.lookupProgram(programID)
	s := g.lookupShader(shaderID)
	if p == nil || s == nil {
		return
	}
	for _, a := range p.attached {
		if a == shaderID {
			g.raise(glapi.InvalidOperation)
			return
		}
	}
	p.attached = append(p.attached, shaderID)
}

// LinkProgram needs exactly one compiled vertex and one compiled fragment
// stage. Uniform locations are handed out in declaration order.
func (g *GL) LinkProgram(id uint32) {
	p := g.lookupProgram(id)
	if p == nil {
		return
	}
	p.linked = false
	p.valid = false
	p.locations = make(map[string]int32)
	p.values = make(map[int32]mgl32.Vec4)

	stages := map[uint32]int{}
	var uniforms []string
	for _, sid := range p.attached {
		s := g.shaders[sid]
		if !s.compiled {
			p.log = "error: attached shader is not compiled\n"
			return
		}
		stages[s.kind]++
		uniforms = append(uniforms, s.uniforms...)
	}
	if stages[glapi.VertexShader] != 1 || stages[glapi.FragmentShader] != 1 {
		p.log = "error: program needs one vertex and one fragment shader\n"
		return
	}
	for _, name := range uniforms {
		if _, ok := p.locations[name]; !ok {
			p.locations[name] = int32(len(p.locations))
		}
	}
	p.linked = true
	p.log = ""
}

func (g *GL) ValidateProgram(id uint32) {
	if p := g.lookupProgram(id); p != nil {
		p.valid = p.linked
	}
}

func (g *GL) GetProgramiv(id, pname uint32) int32 {
	p := g.lookupProgram(id)
	if p == nil {
		return 0
	}
	switch pname {
	case glapi.LinkStatus:
		return boolParam(p.linked)
	case glapi.ValidateStatus:
		return boolParam(p.valid)
	case glapi.InfoLogLength:
		return logLength(p.log)
	}
	g.raise(glapi.InvalidEnum)
	return 0
}

func (g *GL) GetProgramInfoLog(id uint32) string {
	if p := g.lookupProgram(id); p != nil {
		return p.log
	}
	return ""
}

func (g *GL) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	p := g.lookupProgram(id)
	if p == nil {
		return
	}
	p.deleted = true
	if g.currentProgram != id {
		g.release(id)
	}
}

// release drops a deleted program and any deleted shaders only it held.
func (g *GL) release(id uint32) {
	p := g.programs[id]
	delete(g.programs, id)
	for _, sid := range p.attached {
		if s, ok := g.shaders[sid]; ok && s.deleted && !g.attachedElsewhere(sid) {
			delete(g.shaders, sid)
		}
	}
}

func (g *GL) attachedElsewhere(shaderID uint32) bool {
	for _, p := range g.programs {
		for _, a := range p.attached {
			if a == shaderID {
				return true
			}
		}
	}
	return false
}

func (g *GL) UseProgram(id uint32) {
	if id != 0 {
		p := g.lookupProgram(id)
		if p == nil {
			return
		}
		if !p.linked {
			g.raise(glapi.InvalidOperation)
			return
		}
	}
	prev := g.currentProgram
	g.currentProgram = id
	if prev != 0 && prev != id && g.programs[prev].deleted {
		g.release(prev)
	}
}

func (g *GL) GetUniformLocation(id uint32, name string) int32 {
	p := g.lookupProgram(id)
	if p == nil {
		return -1
	}
	if !p.linked {
		g.raise(glapi.InvalidOperation)
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	if g.currentProgram == 0 {
		g.raise(glapi.InvalidOperation)
		return
	}
	if location == -1 {
		return
	}
	p := g.programs[g.currentProgram]
	known := false
	for _, loc := range p.locations {
		if loc == location {
			known = true
			break
		}
	}
	if !known {
		g.raise(glapi.InvalidOperation)
		return
	}
	p.values[location] = mgl32.Vec4{v0, v1, v2, v3}
}

// Uniform returns the last value set for a uniform of a program.
func (g *GL) Uniform(programID uint32, name string) (mgl32.Vec4, bool) {
	p, ok := g.programs[programID]
	if !ok {
		return mgl32.Vec4{}, false
	}
	v, ok := p.snapshot()[name]
	return v, ok
}

// Uniforms lists the active uniforms of a linked program.
func (g *GL) Uniforms(programID uint32) []string {
	p, ok := g.programs[programID]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(p.locations))
}

func boolParam(b bool) int32 {
	if b {
		return glapi.True
	}
	return glapi.False
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
