// Package window provides the surface the render loop presents to: a GLFW
// window owning an OpenGL context, or a headless stand-in for the software
// backend.
package window

import (
	"errors"
)

var (
	ErrInit         = errors.New("could not initialise the window library")
	ErrCreateWindow = errors.New("could not create window")
)

// Surface is what the render loop needs from the window system.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	PollEvents()
	Size() (width, height int)
	// Close destroys the window and its context. GL objects must be
	// deleted before.
	Close()
}
