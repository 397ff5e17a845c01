package app

import (
	"context"
	"fmt"

	"github.com/kdalquist/photoframe/internal/config"
	"github.com/kdalquist/photoframe/internal/display"
	"github.com/kdalquist/photoframe/internal/photo"
)

// How many album photos a PhotoPrism source lists, and the window size
// the x11 backend opens when picked from config.
const (
	photoprismAlbumCount = 50
	x11Width             = 960
	x11Height            = 540
)

// BuildSource constructs the configured photo source.
func BuildSource(ctx context.Context, cfg *config.Config) (photo.Source, error) {
	switch cfg.Source {
	case "photoprism":
		pp := cfg.PhotoPrism
		return photo.NewPhotoPrismSource(ctx, pp.Domain, pp.Token, pp.AlbumUID, photoprismAlbumCount)
	case "api":
		return photo.NewAPISource(cfg.Endpoint, cfg.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("unknown photo source %q", cfg.Source)
	}
}

// OpenBackend opens the configured display backend.  Failure here is
// the one fatal condition: a frame with no display has no purpose.
func OpenBackend(cfg *config.Config) (display.Backend, error) {
	switch cfg.Backend {
	case "x11":
		return display.OpenX11(x11Width, x11Height)
	case "fbdev":
		return display.OpenFBDev(cfg.FBDevice)
	default:
		return nil, fmt.Errorf("unknown display backend %q", cfg.Backend)
	}
}
