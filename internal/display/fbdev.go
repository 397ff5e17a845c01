package display

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
)

// FBDev shows frames on a Linux framebuffer device.  Exit keypresses
// are read from the evdev devices, since the framebuffer itself has no
// input side.
type FBDev struct {
	dev    *fb.Device
	keys   chan KeyEvent
	cancel context.CancelFunc
}

// OpenFBDev opens the framebuffer device (typically /dev/fb0) and
// starts the keyboard watcher.  An unopenable framebuffer is fatal to
// the caller: a frame without a display has no purpose.
func OpenFBDev(device string) (*FBDev, error) {
	dev, err := fb.Open(device)
	if err != nil {
		return nil, fmt.Errorf("can't open framebuffer %s: %w", device, err)
	}
	d := &FBDev{
		dev:  dev,
		keys: make(chan KeyEvent, 1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	watchKeyboards(ctx, d.keys)
	return d, nil
}

func (d *FBDev) Bounds() image.Rectangle { return d.dev.Bounds() }

// Flush copies the buffer pixel by pixel through the device's Set.
// The generic path is plenty fast at one frame a minute.
func (d *FBDev) Flush(buffer *image.RGBA) error {
	draw.Draw(d.dev, d.dev.Bounds(), buffer, buffer.Bounds().Min, draw.Src)
	return nil
}

func (d *FBDev) Keys() <-chan KeyEvent { return d.keys }

func (d *FBDev) Close() error {
	d.cancel()
	d.dev.Close()
	return nil
}
