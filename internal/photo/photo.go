/*
A photo record is one displayable photo: the decoded bitmap plus the
location label drawn over it.

Records come from a Source.  The frame has two of them: the random-photo
API endpoint and a PhotoPrism album.  A Source hands out one record per
call and does no caching or retrying of its own - the display loop and
the cache filler each decide their own retry policy.
*/
package photo

import (
	"context"
	"image"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is a decoded photo plus its location label.  Immutable once
// constructed; ownership transfers from the source to the cache slot to
// the display loop, it is never shared.
type Record struct {
	Bitmap   image.Image
	Location string
}

// Source produces the next photo to show.  Blocking; honours ctx.
type Source interface {
	Next(ctx context.Context) (*Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*Record, error)

func (f SourceFunc) Next(ctx context.Context) (*Record, error) { return f(ctx) }

var titleCaser = cases.Title(language.Und)

// FormatLocation tidies a raw location string for display: underscores
// and hyphens become spaces and words are title cased.  An empty input
// gives "Unknown Location".
func FormatLocation(raw string) string {
	s := strings.ReplaceAll(raw, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown Location"
	}
	return titleCaser.String(s)
}
