/*
Panels are the things a picture frame composites: each one knows how to
draw itself onto the frame's RGBA buffer.
*/
package panel

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

type Panelled interface {
	Render(buffer *image.RGBA)
}

// ImagePanel draws one bitmap into its Location rectangle on the
// buffer.
type ImagePanel struct {
	img      image.Image
	Location image.Rectangle // where the panel is rendered
}

func NewImagePanel(img image.Image) *ImagePanel {
	p := new(ImagePanel)
	p.img = img
	p.Location = img.Bounds()
	return p
}

func (p *ImagePanel) Render(buffer *image.RGBA) {
	if p.img.Bounds() == p.Location {
		// Pre-scaled to its slot, plain copy is enough.
		draw.Draw(buffer, p.Location, p.img, p.img.Bounds().Min, draw.Src)
		return
	}
	xdraw.BiLinear.Scale(buffer, p.Location, p.img, p.img.Bounds(), xdraw.Over, nil)
}
