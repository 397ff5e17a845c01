package display

import (
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11 shows frames in a plain X window, standing in for the
// framebuffer when developing on a desktop.  Any key press in the
// window, or closing it, surfaces as a key event.
type X11 struct {
	conn   *xgb.Conn
	window xproto.Window
	bounds image.Rectangle
	keys   chan KeyEvent

	mu   sync.Mutex
	last *image.RGBA // redrawn on Expose
}

func OpenX11(width, height int) (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("can't connect to X server: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	xproto.CreateWindow(conn, screen.RootDepth, window, screen.Root,
		0, 0, uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			0x00000000,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskStructureNotify,
		})

	// Ask the window manager to tell us about window close.
	atomWmDeleteWindow, _ := xproto.InternAtom(conn, false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	atomWmProtocols, _ := xproto.InternAtom(conn, false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if atomWmDeleteWindow != nil && atomWmProtocols != nil {
		xproto.ChangeProperty(conn, xproto.PropModeReplace, window, atomWmProtocols.Atom,
			xproto.AtomAtom, 32, 1, []byte{byte(atomWmDeleteWindow.Atom), 0, 0, 0})
	}

	xproto.MapWindow(conn, window)

	d := &X11{
		conn:   conn,
		window: window,
		bounds: image.Rect(0, 0, width, height),
		keys:   make(chan KeyEvent, 1),
	}
	go d.eventLoop()
	return d, nil
}

func (d *X11) Bounds() image.Rectangle { return d.bounds }

func (d *X11) Flush(buffer *image.RGBA) error {
	d.mu.Lock()
	d.last = buffer
	d.mu.Unlock()
	d.draw(buffer)
	return nil
}

// draw copies the buffer to the window pixel by pixel.  Slow, but the
// frame only changes once a minute.
func (d *X11) draw(buffer *image.RGBA) {
	gc, err := xproto.NewGcontextId(d.conn)
	if err != nil {
		return
	}
	xproto.CreateGC(d.conn, gc, xproto.Drawable(d.window), 0, nil)
	defer xproto.FreeGC(d.conn, gc)
	for y := 0; y < d.bounds.Dy(); y++ {
		for x := 0; x < d.bounds.Dx(); x++ {
			pix := buffer.RGBAAt(x, y)
			colour := uint32(pix.R)<<16 | uint32(pix.G)<<8 | uint32(pix.B)
			xproto.ChangeGC(d.conn, gc, xproto.GcForeground, []uint32{colour})
			xproto.PolyPoint(d.conn, xproto.CoordModeOrigin, xproto.Drawable(d.window), gc,
				[]xproto.Point{{X: int16(x), Y: int16(y)}})
		}
	}
}

func (d *X11) eventLoop() {
	for {
		ev, err := d.conn.WaitForEvent()
		if ev == nil && err == nil {
			// Connection closed.
			return
		}
		if err != nil {
			log.Printf("display: x11 event error: %v", err)
			continue
		}
		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			select {
			case d.keys <- KeyEvent{Code: uint32(e.Detail)}:
			default:
			}
		case xproto.ClientMessageEvent:
			// Window close counts as an exit keypress.
			select {
			case d.keys <- KeyEvent{}:
			default:
			}
		case xproto.ExposeEvent:
			d.mu.Lock()
			last := d.last
			d.mu.Unlock()
			if last != nil {
				d.draw(last)
			}
		}
	}
}

func (d *X11) Keys() <-chan KeyEvent { return d.keys }

func (d *X11) Close() error {
	d.conn.Close()
	return nil
}
