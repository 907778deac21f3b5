package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterizeText draws text in white on a transparent image sized to fit.
// The HUD tints it at draw time.
func RasterizeText(text string) *image.RGBA {
	face := basicfont.Face7x13
	m := face.Metrics()

	drawer := &font.Drawer{
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	w := drawer.MeasureString(text).Ceil()
	if w < 1 {
		w = 1
	}
	h := (m.Ascent + m.Descent).Ceil()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	drawer.Dst = img
	drawer.Dot = fixed.Point26_6{X: 0, Y: m.Ascent}
	drawer.DrawString(text)
	return img
}
