// Program simpleframe is the uncached photo frame: no prefetch, one
// direct fetch per tick, a slower default rotation (three minutes).
// On a fetch failure the previous photo stays up until the next tick.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/kdalquist/photoframe/internal/app"
	"github.com/kdalquist/photoframe/internal/config"
	"github.com/kdalquist/photoframe/internal/web"
)

func simpleframe(ctx context.Context, cfg *config.Config) error {
	source, err := app.BuildSource(ctx, cfg)
	if err != nil {
		return err
	}

	backend, err := app.OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	loop := app.New(source, nil, backend, cfg.FontPath, cfg.Interval)
	if cfg.StatusAddr != "" {
		web.NewServer(loop, cfg.StatusAddr).Start(ctx)
	}
	return loop.Run(ctx)
}

func main() {
	log.Printf("simpleframe starting")

	cfg, err := config.LoadSimple()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := simpleframe(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
