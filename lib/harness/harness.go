// Package harness drives the render loop: it owns the quad, the shader
// program and the colour animation, and draws one frame per iteration until
// the surface asks to close.
package harness

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/fosdem/glquad/lib/utils"
	"github.com/fosdem/glquad/lib/window"
	"github.com/go-gl/mathgl/mgl32"
)

// requests are queued by other goroutines and run on the render thread at
// the start of the next frame
const requestQueueSize = 16

const slowFrame = 100 * time.Millisecond

type Harness struct {
	cfg     *config.Config
	ctx     *rendering.Context
	surface window.Surface

	renderer *rendering.Renderer
	mesh     *Mesh
	program  *shaders.Program
	ramp     *utils.ColourRamp
	watcher  *shaders.Watcher

	width, height int

	Stats *stats.Stats

	requests          chan func()
	shutdownRequested atomic.Bool
}

// New builds every GPU resource the loop needs. The context behind ctx
// must be current on the calling thread.
func New(cfg *config.Config, ctx *rendering.Context, surface window.Surface) (*Harness, error) {
	start, err := utils.ColourParse(cfg.Colour.Start)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:      cfg,
		ctx:      ctx,
		surface:  surface,
		renderer: rendering.NewRenderer(ctx),
		ramp:     utils.NewColourRamp(start, cfg.Colour.Increment, cfg.Colour.Loop),
		Stats:    stats.New(),
		requests: make(chan func(), requestQueueSize),
	}

	src, err := shaders.Load(string(cfg.Shader.Path))
	if err != nil {
		return nil, fmt.Errorf("could not load shader: %w", err)
	}

	h.mesh = NewQuad(ctx)
	h.program = shaders.NewProgram(ctx, src)
	if !h.program.Valid() {
		slog.Warn("shader program did not build, drawing will fail", slog.String("module", "harness"))
	}

	h.program.Bind()
	h.program.SetUniform4f(cfg.Shader.Uniform, h.ramp.Current())
	h.Stats.SetColour(h.ramp.Current())

	// leave nothing bound; every frame binds what it draws
	h.mesh.VA.Unbind()
	h.program.Unbind()
	h.mesh.VB.Unbind()
	h.mesh.IB.Unbind()

	if cfg.Shader.HotReload {
		h.watcher, err = shaders.Watch(string(cfg.Shader.Path))
		if err != nil {
			h.Close()
			return nil, err
		}
	}

	return h, nil
}

// Run draws frames until the surface should close or shutdown is requested.
func (h *Harness) Run() {
	var deltaTimer utils.DeltaTimer
	for !h.surface.ShouldClose() && !h.shutdownRequested.Load() {
		if dt := deltaTimer.Next(); dt > slowFrame {
			slog.Debug(fmt.Sprintf("slow frame: %s", dt), slog.String("module", "harness"))
		}
		h.Frame()
	}
	slog.Info(fmt.Sprintf("render loop finished after %d frames", h.Stats.Snapshot().Frames),
		slog.String("module", "harness"))
}

// Frame renders and presents one frame.
func (h *Harness) Frame() {
	h.runRequests()
	h.checkReload()

	if w, ht := h.surface.Size(); w != h.width || ht != h.height {
		h.width, h.height = w, ht
		h.renderer.SetViewport(w, ht)
	}

	h.renderer.Clear()

	h.program.Bind()
	h.program.SetUniform4f(h.cfg.Shader.Uniform, h.ramp.Current())
	h.renderer.Draw(h.mesh.VA, h.mesh.IB, h.program)

	h.ramp.Step()

	h.surface.SwapBuffers()
	h.surface.PollEvents()

	metrics.FramesRendered.Inc()
	h.Stats.Update(h.ramp.Current(), h.ramp.Paused())
}

func (h *Harness) runRequests() {
	for {
		select {
		case req := <-h.requests:
			req()
		default:
			return
		}
	}
}

func (h *Harness) enqueue(req func()) bool {
	select {
	case h.requests <- req:
		return true
	default:
		slog.Warn("request queue full, dropping request", slog.String("module", "harness"))
		return false
	}
}

func (h *Harness) checkReload() {
	if h.watcher == nil {
		return
	}
	select {
	case <-h.watcher.Changed():
		h.Reload()
	default:
	}
}

// Reload rebuilds the program from the configured asset. The running
// program is kept if the new one does not build or lacks the colour
// uniform.
func (h *Harness) Reload() {
	src, err := shaders.Load(string(h.cfg.Shader.Path))
	if err != nil {
		slog.Error(fmt.Sprintf("could not reload shader: %s", err), slog.String("module", "harness"))
		metrics.ShaderReloads.WithLabelValues("error").Inc()
		return
	}

	program := shaders.NewProgram(h.ctx, src)
	if !program.HasUniform(h.cfg.Shader.Uniform) {
		slog.Error(fmt.Sprintf("reloaded shader has no uniform %s, keeping the old one", h.cfg.Shader.Uniform),
			slog.String("module", "harness"))
		program.Delete()
		metrics.ShaderReloads.WithLabelValues("error").Inc()
		return
	}

	h.program.Delete()
	h.program = program
	metrics.ShaderReloads.WithLabelValues("ok").Inc()
	slog.Info("shader reloaded", slog.String("module", "harness"))
}

// SetColour jumps the animation to c on the next frame.
func (h *Harness) SetColour(c mgl32.Vec4) bool {
	return h.enqueue(func() { h.ramp.Set(c) })
}

func (h *Harness) ResetColour() bool {
	return h.enqueue(h.ramp.Reset)
}

func (h *Harness) TogglePause() bool {
	return h.enqueue(func() {
		paused := h.ramp.TogglePause()
		slog.Info(fmt.Sprintf("animation paused: %t", paused), slog.String("module", "harness"))
	})
}

// RequestShutdown ends Run after the current frame. Safe from any goroutine.
func (h *Harness) RequestShutdown() {
	h.shutdownRequested.Store(true)
}

// Colour is the current animation colour. Render thread only; other
// goroutines read it from Stats.
func (h *Harness) Colour() mgl32.Vec4 {
	return h.ramp.Current()
}

func (h *Harness) Program() *shaders.Program {
	return h.program
}

func (h *Harness) Mesh() *Mesh {
	return h.mesh
}

// Close deletes the GPU resources. It must run before the surface is
// closed, while the context is still current.
func (h *Harness) Close() {
	if h.watcher != nil {
		if err := h.watcher.Close(); err != nil {
			slog.Warn(fmt.Sprintf("could not close shader watcher: %s", err), slog.String("module", "harness"))
		}
		h.watcher = nil
	}
	h.program.Delete()
	if h.mesh != nil {
		h.mesh.Delete()
	}
}
