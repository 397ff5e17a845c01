//go:build !linux

package display

import (
	"context"
	"log"
)

// Only Linux has evdev; elsewhere the framebuffer backend has no exit
// key and the frame stops via SIGINT.
func watchKeyboards(ctx context.Context, keys chan<- KeyEvent) {
	log.Printf("display: keyboard watching unsupported on this platform")
}
