package game

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/golangdaddy/drive/pkg/background"
	"github.com/golangdaddy/drive/pkg/hazard"
	"github.com/golangdaddy/drive/pkg/traffic"
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

// carPalettes are the NPC body colors; the upper half is the darker
// truck range.
var carPalettes = []color.RGBA{
	{220, 20, 20, 255},
	{20, 120, 220, 255},
	{230, 230, 230, 255},
	{240, 180, 20, 255},
	{20, 180, 90, 255},
	{90, 70, 60, 255},
	{70, 80, 100, 255},
	{60, 60, 60, 255},
	{110, 60, 30, 255},
	{50, 70, 50, 255},
}

// Draw renders the current session state.
func (s *Session) Draw(screen *ebiten.Image) {
	switch s.state {
	case StateMusicSelect:
		s.musicSel.Draw(screen)
	case StateVehicleSelect:
		s.vehicleSel.Draw(screen)
	case StateReady:
		s.drawScene(screen)
		s.drawCentered(screen, "GET READY", 180, 4, color.RGBA{255, 200, 50, 255})
		s.drawCentered(screen, "ENTER: GO   M: MUSIC", 260, 1.5, color.RGBA{150, 200, 255, 255})
	case StateRacing:
		s.drawScene(screen)
		s.drawHUD(screen)
		if s.paused {
			s.drawCentered(screen, "PAUSED", 200, 4, color.RGBA{255, 255, 255, 255})
		}
	case StateGameOver:
		s.drawScene(screen)
		s.drawResults(screen)
	}
}

// horizonY is where the pseudo-3D road vanishes.
func (s *Session) horizonY() float64 { return s.cfg.Road.ScreenHeight * 0.35 }

// drawScene paints sky, countryside, and the scanline road with all
// entities on it.
func (s *Session) drawScene(screen *ebiten.Image) {
	w := s.cfg.Road.ScreenWidth
	h := s.cfg.Road.ScreenHeight
	horizon := s.horizonY()

	screen.Fill(color.RGBA{110, 175, 235, 255})

	if s.scenery == nil {
		s.scenery = background.Countryside(int(w), int(h-horizon), s.seed)
	}
	sceneryOp := &ebiten.DrawImageOptions{}
	sceneryOp.GeoM.Translate(0, horizon)
	screen.DrawImage(s.scenery, sceneryOp)

	// Road body, one scanline strip at a time. Alternating shoulder
	// bands keyed off the distance phase sell the forward motion.
	for y := horizon; y < h; y += 2 {
		depth := (y - horizon) / (h - horizon)
		offset := s.geom.ScanlineOffset(depth)
		roadW := s.geom.WidthAt(depth)
		centerX := w/2 + offset

		phase := s.geom.Position()*3 + (1-depth)*40
		band := int(phase/8) % 2

		shoulder := color.RGBA{200, 200, 200, 255}
		if band == 0 {
			shoulder = color.RGBA{200, 60, 60, 255}
		}
		roadClr := color.RGBA{60, 60, 60, 255}
		if band == 0 {
			roadClr = color.RGBA{66, 66, 66, 255}
		}

		edge := math.Max(2, 6*depth)
		fillRect(screen, centerX-roadW/2-edge, y, edge, 2, shoulder)
		fillRect(screen, centerX-roadW/2, y, roadW, 2, roadClr)
		fillRect(screen, centerX+roadW/2, y, edge, 2, shoulder)

		// Center line dashes on the same phase.
		if band == 0 {
			dashW := math.Max(1, 3*depth)
			fillRect(screen, centerX-dashW/2, y, dashW, 2, color.RGBA{255, 255, 0, 255})
		}
	}

	s.drawEntities(screen)
	s.drawPlayerCar(screen)

	if s.car.Penalty.FlashTimer > 0 {
		flash := ebiten.NewImage(int(w), int(h))
		flash.Fill(color.RGBA{255, 0, 0, 60})
		screen.DrawImage(flash, &ebiten.DrawImageOptions{})
	}
}

// nearCull is how far behind the camera a sprite may sit before it is
// dropped from the draw pass.
const nearCull = 40.0

// project maps a world entity (normalized x, longitudinal y ahead of
// the player) to screen space with a perspective scale. ok is false
// when the entity is behind the camera or beyond the horizon. The far
// cull tracks the traffic despawn distance so the draw window can never
// drift from the simulation window.
func (s *Session) project(x, y float64) (sx, sy, scale float64, ok bool) {
	far := s.cfg.Traffic.DespawnAheadY
	if y < -nearCull || y > far {
		return 0, 0, 0, false
	}
	h := s.cfg.Road.ScreenHeight
	horizon := s.horizonY()

	depth := 1 - (y+nearCull)/(far+nearCull) // 0 at horizon, 1 at the player's row
	sy = horizon + depth*(h-horizon)
	scale = 0.15 + 0.85*depth

	offset := s.geom.ScanlineOffset(depth)
	sx = x*s.cfg.Road.ScreenWidth + offset
	return sx, sy, scale, true
}

// drawEntities draws hazards then vehicles, far to near, so nearer
// sprites overlap correctly.
func (s *Session) drawEntities(screen *ebiten.Image) {
	type sprite struct {
		y    float64
		draw func()
	}
	var sprites []sprite

	for _, hz := range s.hazards.Hazards() {
		hz := hz
		sx, sy, scale, ok := s.project(hz.X, hz.Y)
		if !ok {
			continue
		}
		sprites = append(sprites, sprite{y: hz.Y, draw: func() {
			s.drawHazardSprite(screen, hz, sx, sy, scale)
		}})
	}
	for _, v := range s.traffic.Vehicles() {
		v := v
		sx, sy, scale, ok := s.project(v.X, v.Y)
		if !ok {
			continue
		}
		sprites = append(sprites, sprite{y: v.Y, draw: func() {
			s.drawVehicleSprite(screen, v, sx, sy, scale)
		}})
	}

	sort.Slice(sprites, func(i, j int) bool { return sprites[i].y > sprites[j].y })
	for _, sp := range sprites {
		sp.draw()
	}
}

func (s *Session) drawHazardSprite(screen *ebiten.Image, hz *hazard.Hazard, sx, sy, scale float64) {
	switch hz.Kind {
	case hazard.KindCone:
		w, h := 10*scale, 14*scale
		fillRect(screen, sx-w/2, sy-h, w, h, color.RGBA{255, 120, 0, 255})
		fillRect(screen, sx-w/2, sy-h*0.6, w, 2*scale, color.RGBA{255, 255, 255, 255})
	case hazard.KindBarrier:
		w, h := 60*scale, 18*scale
		fillRect(screen, sx-w/2, sy-h, w, h, color.RGBA{230, 180, 30, 255})
		fillRect(screen, sx-w/2, sy-h, w/4, h, color.RGBA{30, 30, 30, 255})
		fillRect(screen, sx+w/4, sy-h, w/4, h, color.RGBA{30, 30, 30, 255})
	case hazard.KindWarningSign:
		w, h := 20*scale, 24*scale
		fillRect(screen, sx-w/2, sy-h, w, h, color.RGBA{250, 210, 50, 255})
		fillRect(screen, sx-2*scale, sy-h*0.8, 4*scale, h*0.5, color.RGBA{30, 30, 30, 255})
	case hazard.KindOilSlick:
		w := 40 * scale
		fillRect(screen, sx-w/2, sy-6*scale, w, 8*scale, color.RGBA{25, 25, 35, 255})
	case hazard.KindDebris:
		w := 14 * scale
		fillRect(screen, sx-w/2, sy-6*scale, w, 6*scale, color.RGBA{120, 90, 60, 255})
	case hazard.KindPuddle:
		w := 44 * scale
		fillRect(screen, sx-w/2, sy-6*scale, w, 8*scale, color.RGBA{80, 130, 200, 200})
	}
}

func (s *Session) drawVehicleSprite(screen *ebiten.Image, v *traffic.Vehicle, sx, sy, scale float64) {
	body := carPalettes[v.Palette%len(carPalettes)]
	w, h := 36*scale, 56*scale
	if v.Class == traffic.ClassTruck {
		w, h = 46*scale, 84*scale
	}

	fillRect(screen, sx-w/2, sy-h, w, h, body)
	// Windshield at the end facing the player for oncoming traffic.
	glass := color.RGBA{100, 180, 220, 255}
	if v.Direction > 0 {
		fillRect(screen, sx-w/2+2*scale, sy-h*0.85, w-4*scale, h*0.25, glass)
	} else {
		fillRect(screen, sx-w/2+2*scale, sy-h*0.35, w-4*scale, h*0.25, glass)
	}
	// Wheels.
	dark := color.RGBA{30, 30, 30, 255}
	fillRect(screen, sx-w/2-2*scale, sy-h*0.8, 4*scale, h*0.2, dark)
	fillRect(screen, sx+w/2-2*scale, sy-h*0.8, 4*scale, h*0.2, dark)
	fillRect(screen, sx-w/2-2*scale, sy-h*0.25, 4*scale, h*0.2, dark)
	fillRect(screen, sx+w/2-2*scale, sy-h*0.25, 4*scale, h*0.2, dark)
}

// drawPlayerCar renders the player's sprite near the bottom of the
// screen, tilted by steering and spun decoratively while slipping.
func (s *Session) drawPlayerCar(screen *ebiten.Image) {
	const carW, carH = 40, 64
	img := ebiten.NewImage(carW, carH)

	body := s.vehicle.Body
	if body.A == 0 {
		body = color.RGBA{220, 20, 20, 255}
	}
	roof := color.RGBA{body.R / 2, body.G / 2, body.B / 2, 255}

	for y := 6; y < 58; y++ {
		for x := 4; x < 36; x++ {
			img.Set(x, y, body)
		}
	}
	for y := 20; y < 42; y++ {
		for x := 8; x < 32; x++ {
			img.Set(x, y, roof)
		}
	}
	for y := 12; y < 20; y++ {
		for x := 10; x < 30; x++ {
			img.Set(x, y, color.RGBA{100, 180, 220, 255})
		}
	}
	wheel := color.RGBA{30, 30, 30, 255}
	for _, wy := range []int{8, 46} {
		for y := wy; y < wy+10; y++ {
			for x := 0; x < 5; x++ {
				img.Set(x, y, wheel)
				img.Set(carW-1-x, y, wheel)
			}
		}
	}

	op := &ebiten.DrawImageOptions{}
	angle := s.car.Rotation + s.hazards.Spin()
	op.GeoM.Translate(-carW/2, -carH/2)
	op.GeoM.Rotate(angle)
	sx := s.car.X * s.cfg.Road.ScreenWidth
	sy := s.cfg.Road.ScreenHeight - 90
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}

// drawHUD renders the speedometer, timer, score, damage bar, rank, and
// the comic popup.
func (s *Session) drawHUD(screen *ebiten.Image) {
	speedMPH := s.car.Speed * 120

	fillRect(screen, 12, 12, 130, 64, color.RGBA{20, 20, 30, 200})
	s.drawTextAt(screen, fmt.Sprintf("%3.0f MPH", speedMPH), 24, 20, 2, speedColor(speedMPH))
	s.drawSpeedGauge(screen, 24, 52, 106, 10)

	s.drawCentered(screen, fmt.Sprintf("TIME %02.0f", math.Ceil(s.raceTimer)), 16, 2,
		timeColor(s.raceTimer))
	s.drawTextAt(screen, fmt.Sprintf("SCORE %06d", s.Score()),
		s.cfg.Road.ScreenWidth-180, 16, 1.5, color.RGBA{255, 255, 255, 255})
	s.drawTextAt(screen, fmt.Sprintf("POS %d/%d", s.race.Position, s.race.TotalRacers),
		s.cfg.Road.ScreenWidth-180, 40, 1.5, color.RGBA{200, 200, 255, 255})

	// Damage bar along the bottom left.
	s.drawTextAt(screen, "DMG", 12, s.cfg.Road.ScreenHeight-28, 1.5, color.RGBA{255, 255, 255, 255})
	fillRect(screen, 60, s.cfg.Road.ScreenHeight-26, 120, 10, color.RGBA{40, 40, 40, 255})
	fillRect(screen, 60, s.cfg.Road.ScreenHeight-26, 120*s.car.Penalty.Damage, 10,
		color.RGBA{255, 60, 60, 255})

	if s.race.FinalLap && !s.race.GameOver {
		s.drawCentered(screen, "FINAL LAP!", 48, 2, color.RGBA{255, 120, 50, 255})
	}
	if s.comicLife > 0 {
		s.drawCentered(screen, s.comicText, 140, 3, color.RGBA{255, 240, 80, 255})
	}
	if s.car.Penalty.FlashTimer > 0 && s.car.Penalty.LastLabel != "" {
		s.drawCentered(screen, s.car.Penalty.LastLabel, 200, 2, color.RGBA{255, 80, 80, 255})
	}
}

// drawSpeedGauge is the color-banded speed bar under the MPH readout.
func (s *Session) drawSpeedGauge(screen *ebiten.Image, x, y, w, h float64) {
	frac := math.Min(1, s.car.Speed/s.cfg.Player.MaxSpeed)
	fillRect(screen, x, y, w, h, color.RGBA{40, 40, 40, 255})

	var clr color.RGBA
	switch {
	case frac < 0.5:
		clr = color.RGBA{100, 255, 100, 255}
	case frac < 0.8:
		clr = color.RGBA{255, 255, 100, 255}
	default:
		clr = color.RGBA{255, 100, 100, 255}
	}
	fillRect(screen, x, y, w*frac, h, clr)
}

func (s *Session) drawResults(screen *ebiten.Image) {
	fillRect(screen, 0, 0, s.cfg.Road.ScreenWidth, s.cfg.Road.ScreenHeight,
		color.RGBA{10, 10, 20, 180})

	s.drawCentered(screen, "RACE OVER", 60, 4, color.RGBA{255, 200, 50, 255})
	if s.race.Victory {
		s.drawCentered(screen, "YOU WIN!", 108, 3, color.RGBA{100, 255, 100, 255})
	}

	// Standings board: rivals fill every slot except the player's.
	y := 150.0
	ri := 0
	for pos := 1; pos <= s.race.TotalRacers; pos++ {
		name := "YOU"
		clr := color.RGBA{255, 240, 80, 255}
		if pos != s.race.Position && ri < len(s.rivals) {
			name = s.rivals[ri]
			ri++
			clr = color.RGBA{190, 190, 190, 255}
		}
		s.drawTextAt(screen, fmt.Sprintf("%d. %s", pos, name), 70, y, 1.5, clr)
		y += 24
	}

	statX := s.cfg.Road.ScreenWidth - 280
	s.drawTextAt(screen, fmt.Sprintf("SCORE  %06d", s.Score()), statX, 170, 1.5, color.RGBA{255, 255, 255, 255})
	s.drawTextAt(screen, fmt.Sprintf("DISTANCE  %.0f", s.distance), statX, 200, 1.5, color.RGBA{255, 255, 255, 255})
	s.drawTextAt(screen, fmt.Sprintf("TOP SPEED  %3.0f MPH", s.TopSpeed()*120), statX, 230, 1.5, color.RGBA{255, 255, 255, 255})

	s.drawCentered(screen, "ENTER: RACE AGAIN   M: MUSIC", 420, 1.5, color.RGBA{150, 200, 255, 255})
}

func (s *Session) drawCentered(screen *ebiten.Image, label string, y, scale float64, clr color.Color) {
	width := float64(screen.Bounds().Dx())
	textWidth := text.Advance(label, fontFace) * scale
	s.drawTextAt(screen, label, width/2-textWidth/2, y, scale, clr)
}

func (s *Session) drawTextAt(screen *ebiten.Image, label string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, fontFace, op)
}

func speedColor(mph float64) color.RGBA {
	switch {
	case mph < 50:
		return color.RGBA{100, 255, 100, 255}
	case mph < 90:
		return color.RGBA{255, 255, 100, 255}
	default:
		return color.RGBA{255, 100, 100, 255}
	}
}

func timeColor(remaining float64) color.RGBA {
	if remaining <= 10 {
		return color.RGBA{255, 80, 80, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

// fillRect draws a flat rectangle the way the selector screens do.
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
