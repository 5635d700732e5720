package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/glapi/softgl"
	"github.com/fosdem/glquad/lib/glcall"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/fosdem/glquad/lib/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noUniformShader = `#shader vertex
#version 410 core
layout(location = 0) in vec4 position;
void main() { gl_Position = position; }
#shader fragment
#version 410 core
out vec4 colour;
void main() { colour = vec4(1.0); }
`

const tintShader = `#shader vertex
#version 410 core
layout(location = 0) in vec4 position;
void main() { gl_Position = position; }
#shader fragment
#version 410 core
out vec4 colour;
uniform vec4 u_Colour;
uniform vec4 u_Tint;
void main() { colour = u_Colour * u_Tint; }
`

func setup(t *testing.T, cfg *config.Config, frames int) (*Harness, *softgl.GL, *window.Headless) {
	t.Helper()
	gl := softgl.New()
	ctx := rendering.NewContextWithInvoker(gl, glcall.NewChecked(gl))
	surface := window.NewHeadless(cfg.Window.Width, cfg.Window.Height, frames)

	h, err := New(cfg, ctx, surface)
	require.NoError(t, err)
	return h, gl, surface
}

func TestSetupLeavesNothingBound(t *testing.T) {
	h, gl, _ := setup(t, config.Default(), 1)
	defer h.Close()

	assert.Equal(t, softgl.Bindings{}, gl.Bound())
	assert.True(t, h.Program().Valid())

	c, ok := gl.Uniform(h.Program().ID(), "u_Colour")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, c)

	snap := h.Stats.Snapshot()
	assert.Equal(t, "#000000ff", snap.Colour, "stats start at the ramp colour")
	assert.Equal(t, uint64(0), snap.Frames)
}

func TestRunDrawsQuadEveryFrame(t *testing.T) {
	h, gl, surface := setup(t, config.Default(), 3)

	h.Run()

	assert.Equal(t, 3, surface.Frames())
	assert.Equal(t, 3, gl.Clears())
	assert.Equal(t, [4]int32{0, 0, 640, 480}, gl.ViewportRect())
	assert.Equal(t, uint64(3), h.Stats.Snapshot().Frames)

	draws := gl.Draws()
	require.Len(t, draws, 3)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, draws[0].Indices)
	assert.Equal(t, [][3]mgl32.Vec4{
		{{-0.5, -0.5, 0, 1}, {0.5, -0.5, 0, 1}, {0.5, 0.5, 0, 1}},
		{{0.5, 0.5, 0, 1}, {-0.5, 0.5, 0, 1}, {-0.5, -0.5, 0, 1}},
	}, draws[0].Triangles())

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, draws[0].Uniforms["u_Colour"])
	assert.InDelta(t, 0.0001, draws[1].Uniforms["u_Colour"][0], 1e-6)
	assert.InDelta(t, 0.0002, draws[2].Uniforms["u_Colour"][0], 1e-6)

	assert.Equal(t, 0, gl.PendingErrors())

	h.Close()
	assert.Equal(t, softgl.Counts{}, gl.Live())
}

func TestRequestsRunOnNextFrame(t *testing.T) {
	h, gl, _ := setup(t, config.Default(), 0)
	defer h.Close()

	require.True(t, h.SetColour(mgl32.Vec4{0.25, 0.5, 0.75, 1}))
	// nothing changes until the render thread picks it up
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, h.Colour())

	h.Frame()
	last, ok := gl.LastDraw()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0.25, 0.5, 0.75, 1}, last.Uniforms["u_Colour"])

	require.True(t, h.TogglePause())
	h.Frame()
	before := h.Colour()
	h.Frame()
	assert.Equal(t, before, h.Colour())
	assert.True(t, h.Stats.Snapshot().Paused)

	require.True(t, h.ResetColour())
	h.Frame()
	last, _ = gl.LastDraw()
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, last.Uniforms["u_Colour"])
}

func TestRequestQueueIsBounded(t *testing.T) {
	h, _, _ := setup(t, config.Default(), 0)
	defer h.Close()

	for range requestQueueSize {
		require.True(t, h.TogglePause())
	}
	assert.False(t, h.TogglePause())
}

func TestRequestShutdownStopsRun(t *testing.T) {
	h, _, surface := setup(t, config.Default(), 0)
	defer h.Close()

	surface.OnSwap = func(frame int) {
		if frame == 5 {
			h.RequestShutdown()
		}
	}
	h.Run()
	assert.Equal(t, 5, surface.Frames())
}

func TestViewportFollowsSurfaceSize(t *testing.T) {
	h, gl, surface := setup(t, config.Default(), 0)
	defer h.Close()

	h.Frame()
	surface.Width, surface.Height = 800, 600
	h.Frame()
	assert.Equal(t, [4]int32{0, 0, 800, 600}, gl.ViewportRect())
}

func TestReloadKeepsProgramWithoutUniform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.shader")
	require.NoError(t, os.WriteFile(path, []byte(tintShader), 0o644))

	cfg := config.Default()
	cfg.Shader.Path = config.CfgPath(path)
	h, gl, _ := setup(t, cfg, 0)
	defer h.Close()

	first := h.Program().ID()
	assert.Equal(t, []string{"u_Colour", "u_Tint"}, gl.Uniforms(first))

	require.NoError(t, os.WriteFile(path, []byte(noUniformShader), 0o644))
	h.Reload()
	assert.Equal(t, first, h.Program().ID())

	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\nbroken\n"), 0o644))
	h.Reload()
	assert.Equal(t, first, h.Program().ID())

	h.Frame()
	assert.Equal(t, 0, gl.PendingErrors())
	assert.Equal(t, 1, gl.Live().Programs)
}

func TestReloadSwapsProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.shader")
	require.NoError(t, os.WriteFile(path, []byte(tintShader), 0o644))

	cfg := config.Default()
	cfg.Shader.Path = config.CfgPath(path)
	h, gl, _ := setup(t, cfg, 0)
	defer h.Close()

	first := h.Program().ID()
	h.Reload()
	second := h.Program().ID()
	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, gl.Live().Programs)

	h.Frame()
	last, ok := gl.LastDraw()
	require.True(t, ok)
	assert.Equal(t, second, last.Program)
}

func TestFrameReloadsRewrittenAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.shader")
	require.NoError(t, os.WriteFile(path, []byte(tintShader), 0o644))

	cfg := config.Default()
	cfg.Shader.Path = config.CfgPath(path)
	cfg.Shader.HotReload = true

	gl := softgl.New()
	ctx := rendering.NewContextWithInvoker(gl, glcall.NewChecked(gl))
	h, err := New(cfg, ctx, window.NewHeadless(cfg.Window.Width, cfg.Window.Height, 0))
	if err != nil {
		t.Skipf("inotify unavailable: %s", err)
	}
	defer h.Close()

	first := h.Program().ID()
	h.Frame()
	assert.Equal(t, first, h.Program().ID(), "no reload without a write")

	require.NoError(t, os.WriteFile(path, []byte(tintShader), 0o644))
	deadline := time.Now().Add(5 * time.Second)
	for h.Program().ID() == first && time.Now().Before(deadline) {
		h.Frame()
		time.Sleep(10 * time.Millisecond)
	}
	require.NotEqual(t, first, h.Program().ID(), "frame loop never picked up the write")
	assert.Equal(t, 1, gl.Live().Programs)

	h.Frame()
	last, ok := gl.LastDraw()
	require.True(t, ok)
	assert.Equal(t, h.Program().ID(), last.Program)
	assert.Equal(t, 0, gl.PendingErrors())
}

func TestMeshUnbindThenDrawTraps(t *testing.T) {
	gl := softgl.New()
	var trapped []*glcall.Error
	checked := glcall.NewChecked(gl)
	checked.Trap = func(err *glcall.Error) { trapped = append(trapped, err) }
	ctx := rendering.NewContextWithInvoker(gl, checked)

	mesh := NewQuad(ctx)
	defer mesh.Delete()
	mesh.Unbind()

	rendering.NewRenderer(ctx).DrawIndexed(int32(len(QuadIndices)))
	require.Len(t, trapped, 1)
	assert.Equal(t, "glDrawElements(GL_TRIANGLES)", trapped[0].Site.Call)
}
