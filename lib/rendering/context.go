package rendering

import (
	"github.com/fosdem/glquad/lib/glapi"
	"github.com/fosdem/glquad/lib/glcall"
)

// Context pairs a graphics function table with the invoker every call made
// by this package goes through. It stands for the GL context that is
// current on the render thread; objects created from it must be deleted
// before that context is destroyed.
type Context struct {
	gl    glapi.Functions
	calls glcall.Invoker
}

// NewContext uses the invoker for the current build.
func NewContext(gl glapi.Functions) *Context {
	return NewContextWithInvoker(gl, glcall.New(gl))
}

func NewContextWithInvoker(gl glapi.Functions, calls glcall.Invoker) *Context {
	return &Context{gl: gl, calls: calls}
}

func (c *Context) GL() glapi.Functions {
	return c.gl
}

// Do runs fn through the invoker. call names the GL function for error
// reports, which point at the line calling Do.
func (c *Context) Do(call string, fn func()) {
	c.calls.Invoke(glcall.Caller(call, 1), fn)
}
