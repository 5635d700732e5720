package window

// Headless is a Surface without a window. It asks to close after a fixed
// number of presented frames, or never if the limit is 0.
type Headless struct {
	Width, Height int

	limit   int
	frames  int
	closing bool
	OnSwap  func(frame int)
}

func NewHeadless(width, height, frames int) *Headless {
	return &Headless{Width: width, Height: height, limit: frames}
}

func (h *Headless) ShouldClose() bool {
	return h.closing || (h.limit > 0 && h.frames >= h.limit)
}

func (h *Headless) SetShouldClose(v bool) {
	h.closing = v
}

func (h *Headless) SwapBuffers() {
	h.frames++
	if h.OnSwap != nil {
		h.OnSwap(h.frames)
	}
}

func (h *Headless) PollEvents() {}

func (h *Headless) Size() (int, int) {
	return h.Width, h.Height
}

func (h *Headless) Close() {}

// Frames is the number of frames presented so far.
func (h *Headless) Frames() int {
	return h.frames
}
