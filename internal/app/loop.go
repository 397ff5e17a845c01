/*
The display loop: one goroutine that owns the display surface and the
current photo, ticking on a fixed interval.

Each tick it obtains the next record - from the prefetch cache when one
is wired in and non-empty, otherwise straight from the source - and
composites and flushes it.  A failed fetch is logged and the previous
photo stays on screen until the next tick; nothing short of losing the
display itself stops the loop.
*/
package app

import (
	"bytes"
	"context"
	"image/jpeg"
	"log"
	"sync"
	"time"

	"github.com/kdalquist/photoframe/internal/cache"
	"github.com/kdalquist/photoframe/internal/display"
	"github.com/kdalquist/photoframe/internal/frame"
	"github.com/kdalquist/photoframe/internal/photo"
)

type Loop struct {
	source   photo.Source
	cache    *cache.Cache // nil in the simple variant
	backend  display.Backend
	pf       *frame.PictureFrame
	interval time.Duration

	// snapshot state, read by the status server
	mu         sync.Mutex
	location   string
	ticks      int
	lastChange time.Time
	started    time.Time
}

// Snapshot is the loop state the status server reports.
type Snapshot struct {
	Location   string    `json:"location"`
	Ticks      int       `json:"ticks"`
	CacheLen   int       `json:"cache_len"`
	CacheCap   int       `json:"cache_cap"`
	LastChange time.Time `json:"last_change"`
	Started    time.Time `json:"started"`
}

// New builds a loop over the given backend.  c may be nil for the
// direct-fetch variant.
func New(source photo.Source, c *cache.Cache, backend display.Backend, fontPath string, interval time.Duration) *Loop {
	return &Loop{
		source:   source,
		cache:    c,
		backend:  backend,
		pf:       frame.NewPictureFrame(backend.Bounds(), fontPath),
		interval: interval,
	}
}

// Run shows the first photo immediately, then changes photo every
// interval until ctx is cancelled or a key is pressed.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.started = time.Now()
	l.mu.Unlock()

	l.tick(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key := <-l.backend.Keys():
			log.Printf("loop: key %d pressed, stopping", key.Code)
			return nil
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// tick obtains and shows one photo.  On failure the previous photo is
// left on screen; the framebuffer still holds it, so no redraw is
// needed.
func (l *Loop) tick(ctx context.Context) {
	rec, err := l.next(ctx)
	if err != nil {
		log.Printf("loop: no new photo this tick: %v", err)
		return
	}

	// The mutex covers the buffer too: the status server encodes it
	// from another goroutine.
	l.mu.Lock()
	l.pf.SetPhoto(rec)
	l.pf.Render()
	err = l.backend.Flush(l.pf.Buffer)
	if err == nil {
		l.location = rec.Location
		l.ticks++
		l.lastChange = time.Now()
	}
	l.mu.Unlock()
	if err != nil {
		log.Printf("loop: flush failed: %v", err)
	}
}

func (l *Loop) next(ctx context.Context) (*photo.Record, error) {
	if l.cache != nil {
		if rec, ok := l.cache.TryTake(); ok {
			return rec, nil
		}
		log.Printf("loop: cache empty, fetching directly")
	}
	return l.source.Next(ctx)
}

// Snapshot reports current loop state; safe from any goroutine.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Snapshot{
		Location:   l.location,
		Ticks:      l.ticks,
		LastChange: l.lastChange,
		Started:    l.started,
	}
	if l.cache != nil {
		s.CacheLen = l.cache.Len()
		s.CacheCap = l.cache.Cap()
	}
	return s
}

// CurrentJPEG encodes the composited frame for the status server's
// photo endpoint.
func (l *Loop) CurrentJPEG() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, l.pf.Buffer, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
