// Package ui holds the selector screens shown before a race. Each screen
// follows the same shape as the rest of the app: an Update that reads
// input and a Draw that renders with the shared bitmap font.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Outcome is what a selector reports each frame.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSelected
	OutcomeCancelled
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

// drawCenteredText draws scaled text centered horizontally at y.
func drawCenteredText(screen *ebiten.Image, label string, y, scale float64, clr color.Color) {
	width := float64(screen.Bounds().Dx())
	textWidth := text.Advance(label, fontFace) * scale
	x := width/2 - textWidth/2

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, fontFace, op)
}

// drawTextAt draws scaled text at an explicit position.
func drawTextAt(screen *ebiten.Image, label string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, fontFace, op)
}

// fillRect draws a solid rectangle, the way the rest of the app draws
// flat shapes.
func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w < 1 || h < 1 {
		return
	}
	img := ebiten.NewImage(int(w), int(h))
	img.Fill(clr)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}
