package window

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glquad/lib/config"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWWindow is a window with a current OpenGL core profile context.
type GLFWWindow struct {
	Window *glfw.Window
}

// Open initialises GLFW, creates the window and makes its context current
// on the calling thread, which must be locked to its OS thread.
func Open(cfg *config.WindowCfg) (*GLFWWindow, error) {
	slog.Debug("Initializing window", slog.String("module", "window"))
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}

	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &GLFWWindow{Window: window}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *GLFWWindow) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *GLFWWindow) SetShouldClose(v bool) {
	w.Window.SetShouldClose(v)
}

func (w *GLFWWindow) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

// Size is the framebuffer size in pixels.
func (w *GLFWWindow) Size() (int, int) {
	return w.Window.GetFramebufferSize()
}

func (w *GLFWWindow) Close() {
	w.Window.Destroy()
	glfw.Terminate()
}
