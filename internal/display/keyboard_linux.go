//go:build linux

package display

import (
	"context"
	"encoding/binary"
	"log"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEsc = 1
)

// watchKeyboards watches the evdev devices under /dev/input/event* and
// delivers an Escape press on keys.
//
// It is best-effort: if no input devices are readable the frame simply
// has no exit key and stops via SIGINT instead.
func watchKeyboards(ctx context.Context, keys chan<- KeyEvent) {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		log.Printf("display: no evdev devices found, Escape exit disabled")
		return
	}

	for _, path := range paths {
		p := path
		go func() {
			fd, err := unix.Open(p, unix.O_RDONLY|unix.O_NONBLOCK, 0)
			if err != nil {
				return
			}
			defer unix.Close(fd)

			buf := make([]byte, 4096)
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
				if _, err := unix.Poll(pollFds, 250); err != nil {
					// Device went away.
					return
				}
				if pollFds[0].Revents&unix.POLLIN == 0 {
					continue
				}

				n, err := unix.Read(fd, buf)
				if err != nil {
					if err == unix.EAGAIN || err == unix.EINTR {
						continue
					}
					return
				}

				for off := 0; off+eventSize <= n; off += eventSize {
					rec := buf[off : off+eventSize]
					typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
					code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
					value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
					if typ == evKey && code == keyEsc && value == 1 {
						select {
						case keys <- KeyEvent{Code: uint32(code)}:
						default:
						}
						return
					}
				}
			}
		}()
	}
}
