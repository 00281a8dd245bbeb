// Package overlay turns segment text into a transparent image layer: wrapped,
// centered text over a translucent backing rectangle, ready for compositing
// onto a background frame.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Options control the text layer layout.
type Options struct {
	Width     int
	Height    int
	FontFile  string
	FontSize  int
	TextColor color.Color
	BoxColor  color.Color
	MarginPx  int
	PaddingPx int
}

// Build rasterizes the wrapped, centered text onto a transparent layer of
// canvas size. It always produces a layer; the only fallible step is font
// resolution, which cascades internally and reports the source it settled on.
func Build(text string, opts Options) (*image.RGBA, FontSource) {
	layer := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	fnt := ResolveFont(opts.FontFile, opts.FontSize)
	face := fnt.Face

	avg := AverageGlyphWidth(face)
	lines := Wrap(text, WrapWidth(opts.Width, opts.MarginPx, avg))
	if len(lines) == 0 {
		return layer, fnt.Source
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	blockWidth := 0
	for _, line := range lines {
		if w := lineWidth(face, line); w > blockWidth {
			blockWidth = w
		}
	}
	blockHeight := lineHeight * len(lines)

	x := (opts.Width - blockWidth) / 2
	y := (opts.Height - blockHeight) / 2

	box := image.Rect(
		x-opts.PaddingPx,
		y-opts.PaddingPx,
		x+blockWidth+opts.PaddingPx,
		y+blockHeight+opts.PaddingPx,
	).Intersect(layer.Bounds())
	draw.Draw(layer, box, image.NewUniform(opts.BoxColor), image.Point{}, draw.Over)

	drawer := font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(opts.TextColor),
		Face: face,
	}
	for i, line := range lines {
		lineX := x + (blockWidth-lineWidth(face, line))/2
		drawer.Dot = fixed.P(lineX, y+ascent+i*lineHeight)
		drawer.DrawString(line)
	}

	return layer, fnt.Source
}

func lineWidth(face font.Face, line string) int {
	return font.MeasureString(face, line).Ceil()
}
