package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ColourRamp animates a colour one step per frame: red rises to 1 first,
// then blue, then green. Alpha is left alone.
type ColourRamp struct {
	Start     mgl32.Vec4
	Increment float32
	// Loop restarts from Start once all three channels are saturated.
	Loop bool

	current mgl32.Vec4
	paused  bool
}

func NewColourRamp(start mgl32.Vec4, increment float32, loop bool) *ColourRamp {
	return &ColourRamp{
		Start:     start,
		Increment: increment,
		Loop:      loop,
		current:   start,
	}
}

// channel order the ramp walks through
var rampOrder = [3]int{0, 2, 1}

func (r *ColourRamp) Step() mgl32.Vec4 {
	if r.paused {
		return r.current
	}
	for _, ch := range rampOrder {
		if r.current[ch] < 1.0 {
			r.current[ch] = min(r.current[ch]+r.Increment, 1.0)
			return r.current
		}
	}
	if r.Loop {
		r.current = r.Start
	}
	return r.current
}

func (r *ColourRamp) Current() mgl32.Vec4 {
	return r.current
}

// Set jumps to c; the ramp continues from there.
func (r *ColourRamp) Set(c mgl32.Vec4) {
	r.current = c
}

func (r *ColourRamp) Reset() {
	r.current = r.Start
}

func (r *ColourRamp) TogglePause() bool {
	r.paused = !r.paused
	return r.paused
}

func (r *ColourRamp) Paused() bool {
	return r.paused
}

// Done reports whether a non-looping ramp has saturated every channel.
func (r *ColourRamp) Done() bool {
	return !r.Loop && r.current[0] >= 1 && r.current[1] >= 1 && r.current[2] >= 1
}
