// Program photoframe shows a rotating stream of random photos on the
// Linux frame buffer, which is typically available via HDMI when
// running on a Raspberry Pi or a PC.  Photos come from a remote photo
// API (or a PhotoPrism album) with the photo's location drawn in the
// corner; a small prefetch cache keeps the rotation going through
// network hiccups.
//
// Escape (or SIGINT) exits.
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
	"github.com/kdalquist/photoframe/internal/web"
)

func photoframe(ctx context.Context, cfg *config.Config) error {
	source, err := app.BuildSource(ctx, cfg)
	if err != nil {
		return err
	}

	backend, err := app.OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	prefetch := cache.New(source, cfg.CacheSize)
	go prefetch.Run(ctx)

	loop := app.New(source, prefetch, backend, cfg.FontPath, cfg.Interval)
	if cfg.StatusAddr != "" {
		web.NewServer(loop, cfg.StatusAddr).Start(ctx)
	}
	return loop.Run(ctx)
}

func main() {
	log.Printf("photoframe starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Cancel the context instead of exiting the program:
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := photoframe(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
