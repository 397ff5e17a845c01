package cache

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kdalquist/photoframe/internal/photo"
)

// countingSource hands out records labelled in fetch order.
func countingSource(counter *atomic.Int64) photo.Source {
	return photo.SourceFunc(func(ctx context.Context) (*photo.Record, error) {
		n := counter.Add(1)
		return &photo.Record{
			Bitmap:   image.NewRGBA(image.Rect(0, 0, 1, 1)),
			Location: fmt.Sprintf("photo-%d", n),
		}, nil
	})
}

func waitForLen(t *testing.T, c *Cache, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for c.Len() != want {
		if time.Now().After(deadline) {
			t.Fatalf(`cache length stuck at %d, want %d`, c.Len(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTryTakeEmpty(t *testing.T) {
	c := New(countingSource(&atomic.Int64{}), 3)

	// Repeated takes on an empty cache return the empty marker
	// immediately, with no side effects.
	for i := 0; i < 5; i++ {
		rec, ok := c.TryTake()
		if ok || rec != nil {
			t.Fatalf(`TryTake on empty cache = (%v, %v), want (nil, false)`, rec, ok)
		}
	}
	if c.Len() != 0 {
		t.Fatalf(`Len = %d, want 0`, c.Len())
	}
}

func TestFillerFillsToCapacityThenDrainsFIFO(t *testing.T) {
	var fetched atomic.Int64
	c := New(countingSource(&fetched), 15)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	waitForLen(t, c, 15)
	cancel()

	// 15 takes succeed in fetch order, the 16th reports empty.
	for i := 1; i <= 15; i++ {
		rec, ok := c.TryTake()
		if !ok {
			t.Fatalf(`TryTake %d reported empty`, i)
		}
		want := fmt.Sprintf("photo-%d", i)
		if rec.Location != want {
			t.Fatalf(`take %d got %q, want %q (FIFO order)`, i, rec.Location, want)
		}
	}
	if _, ok := c.TryTake(); ok {
		t.Fatal("16th TryTake should report empty")
	}
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	var fetched atomic.Int64
	c := New(countingSource(&fetched), 4)
	c.fullWait = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	waitForLen(t, c, 4)
	// Let the filler run a few full-wait cycles; it must not overfill.
	time.Sleep(30 * time.Millisecond)
	if got := c.Len(); got != 4 {
		t.Fatalf(`Len = %d, want 4`, got)
	}
}

func TestFillerRetriesAfterFailure(t *testing.T) {
	var calls atomic.Int64
	flaky := photo.SourceFunc(func(ctx context.Context) (*photo.Record, error) {
		if calls.Add(1) == 1 {
			return nil, &photo.NetworkError{URL: "http://example.test", Err: context.DeadlineExceeded}
		}
		return &photo.Record{Bitmap: image.NewRGBA(image.Rect(0, 0, 1, 1)), Location: "ok"}, nil
	})

	c := New(flaky, 1)
	c.retryWait = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	// The failure is absorbed and the next attempt fills the cache.
	waitForLen(t, c, 1)
	rec, ok := c.TryTake()
	if !ok || rec.Location != "ok" {
		t.Fatalf(`TryTake = (%v, %v), want the retried record`, rec, ok)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var fetched atomic.Int64
	c := New(countingSource(&fetched), 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	waitForLen(t, c, 2)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("filler did not stop after cancel")
	}
}
