// Scaling geometry for fitting photos to the display surface.
package drawing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleImageInside linearly scales a rectangle to fit within maxW x
// maxH, preserving aspect ratio.  The result is anchored at the origin;
// the caller decides where to place it.
func ScaleImageInside(bounds image.Rectangle, maxW, maxH int) image.Rectangle {
	imgW := bounds.Dx()
	imgH := bounds.Dy()
	ratio := float64(maxW) / float64(imgW)
	if r := float64(maxH) / float64(imgH); r < ratio {
		ratio = r
	}
	scaledW := int(ratio * float64(imgW))
	scaledH := int(ratio * float64(imgH))
	return image.Rect(0, 0, scaledW, scaledH)
}

// ScaleToFill scales img to cover dstBounds completely, centred, with
// the overflow cropped equally from both sides.  With fit set the image
// instead fits inside the bounds, leaving blank bands top/bottom or
// left/right.
func ScaleToFill(img image.Image, dstBounds image.Rectangle, fit bool) *image.RGBA {
	srcBounds := img.Bounds()
	windowWidth := dstBounds.Dx()
	windowHeight := dstBounds.Dy()
	srcAspect := float64(srcBounds.Dx()) / float64(srcBounds.Dy())
	dstAspect := float64(windowWidth) / float64(windowHeight)

	var scaledWidth, scaledHeight int
	if fit == (srcAspect > dstAspect) {
		scaledWidth = windowWidth
		scaledHeight = int(float64(windowWidth) / srcAspect)
	} else {
		scaledHeight = windowHeight
		scaledWidth = int(float64(windowHeight) * srcAspect)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, windowWidth, windowHeight))
	offsetX := (windowWidth - scaledWidth) / 2
	offsetY := (windowHeight - scaledHeight) / 2
	xdraw.CatmullRom.Scale(scaled,
		image.Rect(offsetX, offsetY, offsetX+scaledWidth, offsetY+scaledHeight),
		img, srcBounds, xdraw.Over, nil)
	return scaled
}
