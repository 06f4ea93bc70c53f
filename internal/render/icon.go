package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"netflux/pkg/format"
	"netflux/pkg/view"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const IconSize = 32

var (
	iconBackground = color.RGBA{R: 0x0b, G: 0x0b, B: 0x0e, A: 0xff}
	iconGraph      = color.RGBA{R: 0x2d, G: 0x53, B: 0x14, A: 0xff}
)

// Icon draws the tray-sized image: a bar graph of the recent download rate
// behind the current rate, value over unit, colored by tier.
func Icon(snap view.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: iconBackground}, image.Point{}, draw.Src)
	roundCorners(img)

	history := snap.IconHistory
	if len(history) > IconSize {
		history = history[len(history)-IconSize:]
	}
	for x, h := range view.BarHeights(history, IconSize, 0) {
		for y := IconSize - h; y < IconSize; y++ {
			img.SetRGBA(x, y, iconGraph)
		}
	}

	value, unit := format.Compact(snap.DownBps)
	ink := image.NewUniform(format.Classify(snap.DownBps).Color())
	drawCentered(img, ink, value, 13)
	drawCentered(img, ink, unit, 28)
	return img
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode icon: %w", err)
	}
	return nil
}

func drawCentered(dst draw.Image, src image.Image, text string, baseline int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	x := (IconSize - width) / 2
	if x < 0 {
		x = 0
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func roundCorners(img *image.RGBA) {
	e := IconSize - 1
	for _, p := range []image.Point{
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1),
		image.Pt(e, 0), image.Pt(e-1, 0), image.Pt(e, 1),
		image.Pt(0, e), image.Pt(1, e), image.Pt(0, e-1),
		image.Pt(e, e), image.Pt(e-1, e), image.Pt(e, e-1),
	} {
		img.SetRGBA(p.X, p.Y, color.RGBA{})
	}
}
