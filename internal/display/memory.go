package display

import (
	"image"
	"image/draw"
	"sync"
)

// Memory is a headless backend for tests: flushes are copied to an
// in-memory image and counted, and tests push key events themselves.
type Memory struct {
	bounds image.Rectangle
	keys   chan KeyEvent

	mu      sync.Mutex
	frame   *image.RGBA
	flushes int
}

func NewMemory(bounds image.Rectangle) *Memory {
	return &Memory{
		bounds: bounds,
		keys:   make(chan KeyEvent, 1),
		frame:  image.NewRGBA(bounds),
	}
}

func (d *Memory) Bounds() image.Rectangle { return d.bounds }

func (d *Memory) Flush(buffer *image.RGBA) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	draw.Draw(d.frame, d.bounds, buffer, buffer.Bounds().Min, draw.Src)
	d.flushes++
	return nil
}

func (d *Memory) Keys() <-chan KeyEvent { return d.keys }

func (d *Memory) Close() error { return nil }

// PressKey injects a key event, as a keyboard would.
func (d *Memory) PressKey(code uint32) {
	select {
	case d.keys <- KeyEvent{Code: code}:
	default:
	}
}

// Flushes reports how many frames have been flushed.
func (d *Memory) Flushes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushes
}

// Frame returns a copy of the last flushed frame.
func (d *Memory) Frame() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := image.NewRGBA(d.bounds)
	draw.Draw(cp, d.bounds, d.frame, d.bounds.Min, draw.Src)
	return cp
}
