// Package app assembles a backend, the render harness and the outer
// surfaces (keyboard shortcuts, HTTP API) into one run.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fosdem/glquad/lib/api"
	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/glapi/native"
	"github.com/fosdem/glquad/lib/glapi/softgl"
	"github.com/fosdem/glquad/lib/harness"
	"github.com/fosdem/glquad/lib/kbdctl"
	"github.com/fosdem/glquad/lib/rendering"
	"github.com/fosdem/glquad/lib/window"
)

// Backend is an opened surface with a current GL context.
type Backend struct {
	Surface window.Surface
	GL      glapi.Functions
	// Window is nil for the software backend
	Window *window.GLFWWindow
}

// OpenBackend opens the window and loads the GL entry points, or sets up
// the software emulator.
func OpenBackend(cfg *config.Config) (*Backend, error) {
	switch cfg.Backend {
	case config.SoftBackend:
		slog.Info("using the software GL backend", slog.String("module", "app"))
		return &Backend{
			Surface: window.NewHeadless(cfg.Window.Width, cfg.Window.Height, cfg.HeadlessFrames),
			GL:      softgl.New(),
		}, nil
	case config.OpenGLBackend:
		w, err := window.Open(cfg.Window)
		if err != nil {
			return nil, err
		}
		gl, err := native.Init()
		if err != nil {
			w.Close()
			return nil, err
		}
		return &Backend{Surface: w, GL: gl, Window: w}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Run opens the configured backend and renders until told to stop. It must
// be called from the thread locked by main.
func Run(cfg *config.Config) error {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Surface.Close()

	return RunOn(cfg, backend)
}

// RunOn renders on an already opened backend. The surface is left open.
func RunOn(cfg *config.Config, backend *Backend) error {
	ctx := rendering.NewContext(backend.GL)

	h, err := harness.New(cfg, ctx, backend.Surface)
	if err != nil {
		return fmt.Errorf("could not set up harness: %w", err)
	}
	defer h.Close()

	if backend.Window != nil {
		kbdctl.SetupShortcutKeys(h, backend.Window.Window)
	}

	theApi := api.ServeInBackground(cfg.Api, h, h.Stats)
	if theApi != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := theApi.Shutdown(shutdownCtx); err != nil {
				slog.Warn(fmt.Sprintf("could not stop web server: %s", err), slog.String("module", "app"))
			}
		}()
	}

	h.Run()
	return nil
}
