/*
Bounded FIFO prefetch cache for photo records.

The cache is a buffered channel with one producer (the filler, Run) and
one consumer (the display loop, TryTake).  It exists so the frame can
keep rotating photos for a while when the network goes away: the filler
tops the cache up on its own schedule, independently of the display
tick.
*/
package cache

import (
	"context"
	"log"
	"time"

	"github.com/kdalquist/photoframe/internal/photo"
)

const (
	DefaultSize = 15

	// How long the filler waits after a failed fetch before trying
	// again, and how long it sleeps once the cache is full.
	defaultRetryWait = 5 * time.Second
	defaultFullWait  = 30 * time.Second
)

type Cache struct {
	source    photo.Source
	records   chan *photo.Record
	retryWait time.Duration
	fullWait  time.Duration
}

func New(source photo.Source, size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{
		source:    source,
		records:   make(chan *photo.Record, size),
		retryWait: defaultRetryWait,
		fullWait:  defaultFullWait,
	}
}

// TryTake pops the oldest cached record without blocking.  The second
// return is false when the cache is empty; the caller then falls back
// to fetching directly from its source.
func (c *Cache) TryTake() (*photo.Record, bool) {
	select {
	case rec := <-c.records:
		return rec, true
	default:
		return nil, false
	}
}

// Len reports the current number of cached records, between 0 and the
// configured size.
func (c *Cache) Len() int { return len(c.records) }

// Cap reports the configured capacity.
func (c *Cache) Cap() int { return cap(c.records) }

// Run is the filler loop: it keeps the cache topped up until ctx is
// cancelled.  Fetch failures are logged and retried after a short wait,
// never propagated.  A fetch in flight at cancellation finishes on its
// own and the result is dropped.
func (c *Cache) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if len(c.records) >= cap(c.records) {
			if !sleep(ctx, c.fullWait) {
				return
			}
			continue
		}

		rec, err := c.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("cache: fetch failed, retrying in %v: %v", c.retryWait, err)
			if !sleep(ctx, c.retryWait) {
				return
			}
			continue
		}

		select {
		case c.records <- rec:
			log.Printf("cache: stored photo %q, size now %d/%d", rec.Location, len(c.records), cap(c.records))
		case <-ctx.Done():
			return
		}
	}
}

// sleep waits for d or until ctx is done, reporting true if the full
// wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
