// Package glcall is the boundary every graphics call goes through. In debug
// builds a call is bracketed by glGetError so that a failure is reported
// against the call that caused it and stops the program on the spot. Release
// builds (-tags release) run the call directly.
package glcall

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/metrics"
)

// maxDrain bounds the number of stale flags cleared before a call. A lost
// context can report errors forever.
const maxDrain = 32

// Site describes where a graphics call was made.
type Site struct {
	Call string
	File string
	Line int
}

func (s Site) String() string {
	return fmt.Sprintf("%s %s:%d", s.Call, filepath.Base(s.File), s.Line)
}

// Caller builds a Site for call, attributed to the function skip frames
// above the caller of Caller.
func Caller(call string, skip int) Site {
	s := Site{Call: call}
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		s.File = file
		s.Line = line
	}
	return s
}

// ErrorQueue is the driver's error flag queue.
type ErrorQueue interface {
	GetError() uint32
}

// Invoker runs a single graphics call.
type Invoker interface {
	Invoke(site Site, fn func())
}

// Error is a GL error raised by a checked call.
type Error struct {
	Code uint32
	Site Site
}

func (e *Error) Error() string {
	return fmt.Sprintf("GL error %s (0x%04X) in %s", glapi.CodeName(e.Code), e.Code, e.Site)
}

// Checked drains stale errors, runs the call and reports the first error
// flag raised by it.
type Checked struct {
	Queue ErrorQueue

	// Trap is called with every error after it has been logged. The default
	// panics with the *Error, stopping at the offending call.
	Trap func(err *Error)
}

func NewChecked(queue ErrorQueue) *Checked {
	return &Checked{Queue: queue}
}

func (c *Checked) Invoke(site Site, fn func()) {
	c.drain(site)
	fn()

	code := c.Queue.GetError()
	if code == glapi.NoError {
		return
	}

	err := &Error{Code: code, Site: site}
	metrics.GLErrors.WithLabelValues(glapi.CodeName(code)).Inc()
	slog.Error(err.Error(),
		slog.String("module", "glcall"),
		slog.String("call", site.Call),
		slog.String("file", site.File),
		slog.Int("line", site.Line),
		slog.String("code", glapi.CodeName(code)),
	)

	if c.Trap != nil {
		c.Trap(err)
		return
	}
	panic(err)
}

func (c *Checked) drain(site Site) {
	for range maxDrain {
		code := c.Queue.GetError()
		if code == glapi.NoError {
			return
		}
		slog.Debug(fmt.Sprintf("discarding stale %s before %s", glapi.CodeName(code), site.Call),
			slog.String("module", "glcall"))
	}
}

// Unchecked runs calls without looking at the error state.
type Unchecked struct{}

func (Unchecked) Invoke(_ Site, fn func()) {
	fn()
}

// New returns the invoker for the current build: Checked in debug builds,
// Unchecked with the release tag.
func New(queue ErrorQueue) Invoker {
	if Debug {
		return NewChecked(queue)
	}
	return Unchecked{}
}

// Assert stops the program when an assumption about the caller's input is
// broken. Assertions are compiled out of release builds.
func Assert(cond bool, format string, args ...any) {
	if Debug && !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
