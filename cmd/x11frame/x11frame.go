// Program x11frame runs the caching photo frame in a small X11 window,
// for trying the frame out on a desktop without a spare framebuffer.
// Any key in the window (or closing it) exits.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/kdalquist/photoframe/internal/app"
	"github.com/kdalquist/photoframe/internal/cache"
	"github.com/kdalquist/photoframe/internal/config"
	"github.com/kdalquist/photoframe/internal/display"
)

const (
	hdDivider    = 5
	windowWidth  = 1920 / hdDivider
	windowHeight = 1080 / hdDivider
)

func x11frame(ctx context.Context, cfg *config.Config) error {
	source, err := app.BuildSource(ctx, cfg)
	if err != nil {
		return err
	}

	backend, err := display.OpenX11(windowWidth, windowHeight)
	if err != nil {
		return err
	}
	defer backend.Close()

	prefetch := cache.New(source, cfg.CacheSize)
	go prefetch.Run(ctx)

	loop := app.New(source, prefetch, backend, cfg.FontPath, cfg.Interval)
	return loop.Run(ctx)
}

func main() {
	log.Printf("x11frame starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := x11frame(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
