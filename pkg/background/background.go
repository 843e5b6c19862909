// Package background renders the static countryside texture the drive
// scene sits on. The texture is generated once per race and the road is
// painted over its middle every frame.
package background

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Countryside generates a grass strip with scattered trees and bushes.
// The same seed always produces the same scenery.
func Countryside(width, height int, seed int64) *ebiten.Image {
	img := ebiten.NewImage(width, height)
	rng := rand.New(rand.NewSource(seed))

	img.Fill(color.RGBA{34, 139, 34, 255})

	// Grass speckle so the strip doesn't read as a flat fill.
	for i := 0; i < width*height/12; i++ {
		x := rng.Intn(width)
		y := rng.Intn(height)
		shade := uint8(110 + rng.Intn(60))
		img.Set(x, y, color.RGBA{30, shade, 30, 255})
	}

	// Vegetation rows, sparse near the horizon and denser up close.
	// Sizes scale with the row so the perspective of the road carries
	// into the scenery.
	for y := 10; y < height; y += 14 {
		depth := float64(y) / float64(height)
		for x := 0; x < width; x += 18 + rng.Intn(26) {
			if rng.Float64() > 0.2+0.4*depth {
				continue
			}
			px := x + rng.Intn(12) - 6
			if rng.Float64() < 0.35 {
				drawTree(img, rng, px, y, depth)
			} else {
				drawBush(img, rng, px, y, depth)
			}
		}
	}
	return img
}

// drawTree stamps a trunk and a triangular canopy scaled by depth.
func drawTree(img *ebiten.Image, rng *rand.Rand, x, y int, depth float64) {
	h := int((14 + float64(rng.Intn(10))) * (0.4 + depth))
	if h < 6 {
		h = 6
	}
	w := h * 2 / 3

	trunk := color.RGBA{70, 45, 20, 255}
	for ty := 0; ty < h/3; ty++ {
		setPx(img, x, y+ty, trunk)
		setPx(img, x+1, y+ty, trunk)
	}

	leaves := color.RGBA{
		uint8(20 + rng.Intn(25)),
		uint8(85 + rng.Intn(55)),
		uint8(20 + rng.Intn(25)),
		255,
	}
	for row := 0; row < h; row++ {
		rowW := w * (h - row) / h
		for dx := -rowW / 2; dx <= rowW/2; dx++ {
			setPx(img, x+dx, y-row, leaves)
		}
	}
}

// drawBush stamps a filled circle scaled by depth.
func drawBush(img *ebiten.Image, rng *rand.Rand, x, y int, depth float64) {
	r := int((3 + float64(rng.Intn(5))) * (0.4 + depth))
	if r < 2 {
		r = 2
	}
	c := color.RGBA{
		uint8(40 + rng.Intn(35)),
		uint8(105 + rng.Intn(45)),
		uint8(40 + rng.Intn(35)),
		255,
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPx(img, x+dx, y+dy, c)
			}
		}
	}
}

func setPx(img *ebiten.Image, x, y int, c color.Color) {
	b := img.Bounds()
	if x >= 0 && x < b.Dx() && y >= 0 && y < b.Dy() {
		img.Set(x, y, c)
	}
}
