package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Controller is what the shortcut keys act on.
type Controller interface {
	TogglePause() bool
	ResetColour() bool
	RequestShutdown()
}

func SetupShortcutKeys(ctrl Controller, window *glfw.Window) {
	window.SetKeyCallback(keyCallback(ctrl))
}

func keyCallback(ctrl Controller) func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		handleKey(ctrl, key, action, mods)
	}
}

func handleKey(ctrl Controller, key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		if key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0 {
			slog.Info("told to quit, exiting", slog.String("module", "kbdctl"))
			ctrl.RequestShutdown()
		}
	}
	if action == glfw.Press {
		switch key {
		case glfw.KeySpace:
			ctrl.TogglePause()
		case glfw.KeyR:
			slog.Info("resetting colour", slog.String("module", "kbdctl"))
			ctrl.ResetColour()
		}
	}
}
