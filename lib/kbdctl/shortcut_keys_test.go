package kbdctl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

type fakeController struct {
	pauses, resets, shutdowns int
}

func (f *fakeController) TogglePause() bool { f.pauses++; return true }
func (f *fakeController) ResetColour() bool { f.resets++; return true }
func (f *fakeController) RequestShutdown()  { f.shutdowns++ }

func TestQuitNeedsControlShift(t *testing.T) {
	ctrl := &fakeController{}

	handleKey(ctrl, glfw.KeyQ, glfw.Release, glfw.ModControl)
	handleKey(ctrl, glfw.KeyQ, glfw.Press, glfw.ModControl|glfw.ModShift)
	assert.Equal(t, 0, ctrl.shutdowns)

	handleKey(ctrl, glfw.KeyQ, glfw.Release, glfw.ModControl|glfw.ModShift)
	assert.Equal(t, 1, ctrl.shutdowns)
}

func TestPauseAndReset(t *testing.T) {
	ctrl := &fakeController{}

	handleKey(ctrl, glfw.KeySpace, glfw.Press, 0)
	handleKey(ctrl, glfw.KeySpace, glfw.Release, 0)
	handleKey(ctrl, glfw.KeyR, glfw.Press, 0)
	handleKey(ctrl, glfw.KeyR, glfw.Repeat, 0)

	assert.Equal(t, 1, ctrl.pauses)
	assert.Equal(t, 1, ctrl.resets)
	assert.Equal(t, 0, ctrl.shutdowns)
}
