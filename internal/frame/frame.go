/*
A picture frame is a complete rectangular area presenting one photo.

The frame owns an intermediate RGBA buffer the size of the display.  It
is rendered by pasting panels on the buffer: the scaled photo first,
then the location label.  This is done in two stages:

- SetPhoto swaps in the panels for a new record
- Render repaints the buffer from the current panels

The display backend then copies the buffer to the actual screen.
*/
package frame

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/kdalquist/photoframe/internal/drawing"
	"github.com/kdalquist/photoframe/internal/panel"
	"github.com/kdalquist/photoframe/internal/photo"
	"golang.org/x/image/font"
)

type PictureFrame struct {
	// config
	Bounds   image.Rectangle
	W, H     int
	Buffer   *image.RGBA // what the display backend copies to screen
	BGColour color.RGBA
	face     font.Face

	panels []panel.Panelled
}

// NewPictureFrame creates a frame for a display of the given bounds,
// with the label face sized to the display width.
func NewPictureFrame(bounds image.Rectangle, fontPath string) *PictureFrame {
	pf := new(PictureFrame)
	pf.Bounds = bounds
	pf.W = bounds.Dx()
	pf.H = bounds.Dy()
	pf.BGColour = color.RGBA{A: 255} // black behind letterboxed photos
	pf.Buffer = image.NewRGBA(pf.Bounds)
	pf.face = panel.LoadFace(fontPath, panel.FaceSize(pf.W))
	pf.RepaintBackground()
	return pf
}

func (pf *PictureFrame) RepaintBackground() {
	draw.Draw(pf.Buffer, pf.Bounds, &image.Uniform{pf.BGColour}, image.Point{}, draw.Src)
}

// SetPhoto replaces the frame's panels with ones for the new record:
// the bitmap scaled to fill the display, and the location label in the
// bottom-right corner.
func (pf *PictureFrame) SetPhoto(rec *photo.Record) {
	scaled := drawing.ScaleToFill(rec.Bitmap, pf.Bounds, false)
	picture := panel.NewImagePanel(scaled)
	picture.Location = pf.Bounds
	pf.panels = []panel.Panelled{
		picture,
		panel.NewLocationPanel(rec.Location, pf.face),
	}
}

// Render repaints the buffer from the current panels.
func (pf *PictureFrame) Render() {
	pf.RepaintBackground()
	for _, p := range pf.panels {
		p.Render(pf.Buffer)
	}
}
