// Package headless provides a window stand-in for runs without a display.
package headless

import (
	"time"

	"github.com/spaghettifunk/parallax/engine/core"
)

// Window "presents" frames into the void and asks to close after a frame
// budget. A zero budget runs until Close is called.
type Window struct {
	Name   string
	Width  uint32
	Height uint32
	Frames uint64

	budget  uint64
	closed  bool
	started time.Time
	now     func() time.Time
}

func New(frames uint64) *Window {
	return &Window{budget: frames, now: time.Now}
}

func (w *Window) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	w.Name = applicationName
	w.Width = width
	w.Height = height
	w.started = w.now()
	core.LogInfo("headless window '%s' (%dx%d, %d frames)", applicationName, width, height, w.budget)
	return nil
}

func (w *Window) Shutdown() error {
	w.closed = true
	return nil
}

func (w *Window) PumpMessages() bool {
	if w.budget > 0 && w.Frames >= w.budget {
		return false
	}
	return !w.closed
}

func (w *Window) SwapBuffers() {
	w.Frames++
}

func (w *Window) FramebufferSize() (uint32, uint32) {
	return w.Width, w.Height
}

func (w *Window) GetAbsoluteTime() float64 {
	return w.now().Sub(w.started).Seconds()
}

func (w *Window) Close() {
	w.closed = true
}

// Resize simulates the user resizing the window.
func (w *Window) Resize(width, height uint32) {
	w.Width = width
	w.Height = height
	core.EventFire(w, core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{Width: width, Height: height},
	})
}
