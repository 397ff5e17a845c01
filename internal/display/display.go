/*
Display backends: somewhere to put pixels and somewhere to get an exit
keypress from.

The fetch/cache/loop logic only ever talks to the Backend interface, so
it runs identically against the Linux framebuffer, an X11 window, or
the in-memory backend the tests use.
*/
package display

import "image"

// KeyEvent is a key press seen by the backend.  Any key press stops
// the frame; Code is kept for logging.
type KeyEvent struct {
	Code uint32
}

type Backend interface {
	// Bounds of the display surface.
	Bounds() image.Rectangle
	// Flush copies the composited buffer to the screen.
	Flush(buffer *image.RGBA) error
	// Keys delivers key presses.  The channel is never closed while
	// the backend is open.
	Keys() <-chan KeyEvent
	Close() error
}
