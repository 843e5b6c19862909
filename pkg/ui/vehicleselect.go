package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// VehicleOption is one selectable car and its character. The multipliers
// fold into the drive model's tuning at race start.
type VehicleOption struct {
	Name         string
	TopSpeed     float64
	Acceleration float64
	Handling     float64
	Body         color.RGBA
}

// DefaultVehicles is the shipped garage.
func DefaultVehicles() []VehicleOption {
	return []VehicleOption{
		{Name: "COUPE", TopSpeed: 1.0, Acceleration: 1.0, Handling: 1.0, Body: color.RGBA{220, 20, 20, 255}},
		{Name: "TURBO GT", TopSpeed: 1.15, Acceleration: 1.1, Handling: 0.85, Body: color.RGBA{240, 180, 20, 255}},
		{Name: "COMPACT", TopSpeed: 0.9, Acceleration: 1.2, Handling: 1.2, Body: color.RGBA{40, 120, 230, 255}},
	}
}

// VehicleSelectScreen lets the player pick a car, garage-style: stat
// bars per vehicle and left/right to browse.
type VehicleSelectScreen struct {
	vehicles []VehicleOption
	index    int
}

// NewVehicleSelectScreen builds the selector.
func NewVehicleSelectScreen(vehicles []VehicleOption) *VehicleSelectScreen {
	return &VehicleSelectScreen{vehicles: vehicles}
}

// Update reads input and reports the selection outcome for this frame.
func (vs *VehicleSelectScreen) Update() Outcome {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		vs.index = (vs.index + len(vs.vehicles) - 1) % len(vs.vehicles)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		vs.index = (vs.index + 1) % len(vs.vehicles)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return OutcomeSelected
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return OutcomeCancelled
	}
	return OutcomePending
}

// Selected returns the highlighted vehicle.
func (vs *VehicleSelectScreen) Selected() VehicleOption { return vs.vehicles[vs.index] }

// Draw renders the garage view.
func (vs *VehicleSelectScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 25, 30, 255})
	drawCenteredText(screen, "SELECT VEHICLE", 60, 4, color.RGBA{255, 200, 50, 255})

	v := vs.vehicles[vs.index]
	drawCenteredText(screen, "< "+v.Name+" >", 140, 3, color.RGBA{100, 255, 100, 255})

	// Simple body silhouette in the vehicle's color.
	width := float64(screen.Bounds().Dx())
	fillRect(screen, width/2-40, 190, 80, 40, v.Body)
	fillRect(screen, width/2-28, 180, 56, 14, v.Body)

	vs.drawStatBar(screen, "SPEED", v.TopSpeed, 270)
	vs.drawStatBar(screen, "ACCEL", v.Acceleration, 300)
	vs.drawStatBar(screen, "GRIP", v.Handling, 330)

	drawCenteredText(screen, "ENTER: RACE   ESC: BACK TO MUSIC",
		float64(screen.Bounds().Dy())-60, 1.5, color.RGBA{150, 200, 255, 255})
}

// drawStatBar draws a labeled gauge; 1.0 lands in the middle so the
// tradeoffs between vehicles read at a glance.
func (vs *VehicleSelectScreen) drawStatBar(screen *ebiten.Image, label string, value, y float64) {
	width := float64(screen.Bounds().Dx())
	barX := width/2 - 60
	barW := 160.0

	drawTextAt(screen, label, barX-80, y, 1.5, color.RGBA{180, 180, 200, 255})
	fillRect(screen, barX, y+2, barW, 12, color.RGBA{40, 40, 40, 255})

	frac := (value - 0.6) / 0.8
	if frac < 0.05 {
		frac = 0.05
	}
	if frac > 1 {
		frac = 1
	}
	fillRect(screen, barX, y+2, barW*frac, 12, color.RGBA{100, 255, 100, 255})
}
