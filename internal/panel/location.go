package panel

import (
	"image"
	"log"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	cornerPadding = 10 // gap between text box and screen corner
	boxPadding    = 5  // translucent box around the text
)

// LocationPanel draws a location label in the bottom-right corner of
// the buffer: white text on a translucent black box.
type LocationPanel struct {
	Text string
	face font.Face
}

func NewLocationPanel(text string, face font.Face) *LocationPanel {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &LocationPanel{Text: text, face: face}
}

func (p *LocationPanel) Render(buffer *image.RGBA) {
	if p.Text == "" {
		return
	}
	bounds := buffer.Bounds()
	dc := gg.NewContextForRGBA(buffer)
	dc.SetFontFace(p.face)

	w, h := dc.MeasureString(p.Text)
	x := float64(bounds.Max.X) - w - cornerPadding
	y := float64(bounds.Max.Y) - h - cornerPadding

	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(x-boxPadding, y-boxPadding, w+2*boxPadding, h+2*boxPadding)
	dc.Fill()

	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(p.Text, x, y, 0, 1)
}

// LoadFace loads a TrueType face from path at the given point size.  A
// missing or unparsable font is logged and the basic bitmap face is
// used instead; the overlay never blocks on fonts.
func LoadFace(path string, size float64) font.Face {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("panel: font %s unavailable, using basic face: %v", path, err)
		return basicfont.Face7x13
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		log.Printf("panel: can't parse font %s, using basic face: %v", path, err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: size})
}

// FaceSize picks a label point size for a display width: width/40
// clamped to [12, 24].
func FaceSize(width int) float64 {
	size := width / 40
	if size < 12 {
		size = 12
	}
	if size > 24 {
		size = 24
	}
	return float64(size)
}
