package road

import (
	"math"

	"github.com/golangdaddy/drive/pkg/tuning"
)

// Bounds is the normalized [0,1] drivable extent of the road for one
// frame. Left is always strictly less than Right.
type Bounds struct {
	Left  float64
	Right float64
}

// Width returns the normalized width of the drivable band.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Mid returns the normalized center line of the road.
func (b Bounds) Mid() float64 { return (b.Left + b.Right) / 2 }

// Contains reports whether a normalized x sits inside the band.
func (b Bounds) Contains(x float64) bool { return x >= b.Left && x <= b.Right }

// LaneCenter returns the normalized center of one of the four traffic
// lanes. Lanes 1-2 occupy the left (oncoming) half, lanes 3-4 the right
// (same-direction) half; each half is split into two half-lane centers.
func (b Bounds) LaneCenter(lane int) float64 {
	mid := b.Mid()
	switch lane {
	case 1:
		return b.Left + (mid-b.Left)*0.25
	case 2:
		return b.Left + (mid-b.Left)*0.75
	case 3:
		return mid + (b.Right-mid)*0.25
	case 4:
		return mid + (b.Right-mid)*0.75
	default:
		return mid
	}
}

// LaneWidth returns the normalized width of a single lane.
func (b Bounds) LaneWidth() float64 { return b.Width() / 4 }

// LaneDirection returns +1 for same-direction lanes (3-4) and -1 for
// oncoming lanes (1-2).
func LaneDirection(lane int) int {
	if lane >= 3 {
		return 1
	}
	return -1
}

// Geometry derives the per-frame road curve, width variation, and the
// normalized boundaries everything else keys off.
type Geometry struct {
	cfg tuning.Road

	curve            float64
	widthOscillation float64
	surfaceNoise     float64
	position         float64 // distance traveled, phase for all periodic terms
	bounds           Bounds
}

// NewGeometry builds a road geometry model centered on the screen.
func NewGeometry(cfg tuning.Road) *Geometry {
	g := &Geometry{cfg: cfg}
	g.deriveBounds()
	return g
}

// Reset rewinds the phase and flattens the road.
func (g *Geometry) Reset() {
	g.curve = 0
	g.widthOscillation = 0
	g.surfaceNoise = 0
	g.position = 0
	g.deriveBounds()
}

// Update advances the road by one frame. The freeway curve is two
// low-frequency sines; while a discrete turn is active its contribution
// dominates and the freeway influence is damped. The blended target is
// low-pass filtered against the previous curve to avoid discontinuities.
func (g *Geometry) Update(dt, speed float64, turn TurnSnapshot) {
	g.position += speed * dt * 10

	freq := g.cfg.FreewayFrequency
	freeway := math.Sin(g.position*freq)*g.cfg.FreewayAmplitude +
		math.Sin(g.position*freq*1.7)*g.cfg.FreewayAmplitude*0.2

	influence := 1.0
	if turn.State != Straight {
		influence = g.cfg.TurnFreewayDamp
	}
	blended := freeway*influence + turn.Contribution

	g.curve = g.curve*g.cfg.CurveSmoothing + blended*(1-g.cfg.CurveSmoothing)

	// Width breathing: two independent layers whose frequencies creep up
	// with speed, plus a faster cosmetic noise term.
	g.widthOscillation = g.cfg.WidthPrimaryAmp*math.Sin(g.position*0.13*(1+speed*0.2)) +
		g.cfg.WidthSecondaryAmp*math.Sin(g.position*0.31*(1+speed*0.35))
	g.surfaceNoise = g.cfg.SurfaceNoiseAmp * speed * math.Cos(g.position*0.9)

	g.deriveBounds()
}

// deriveBounds projects the road into normalized [0,1] space. A safety
// margin of the player's half width keeps boundary contact forgiving.
// If the math ever inverts, the bounds collapse to a centered fallback
// band instead of going degenerate.
func (g *Geometry) deriveBounds() {
	totalWidth := g.cfg.BaseWidth + g.widthOscillation + g.surfaceNoise
	centerPx := g.cfg.ScreenWidth/2 + g.curve*g.cfg.CurvePixelGain
	leftPx := centerPx - totalWidth/2 + g.cfg.PlayerHalfWidth
	rightPx := centerPx + totalWidth/2 - g.cfg.PlayerHalfWidth

	left := clamp(leftPx/g.cfg.ScreenWidth, 0, 1)
	right := clamp(rightPx/g.cfg.ScreenWidth, 0, 1)

	if left >= right {
		mid := clamp((left+right)/2, 0.1, 0.9)
		left = mid - 0.1
		right = mid + 0.1
	}
	g.bounds = Bounds{Left: left, Right: right}
}

// Curve returns the current signed bend strength.
func (g *Geometry) Curve() float64 { return g.curve }

// WidthOscillation returns the current width variation in pixels.
func (g *Geometry) WidthOscillation() float64 { return g.widthOscillation }

// SurfaceNoise returns the cosmetic high-frequency width term.
func (g *Geometry) SurfaceNoise() float64 { return g.surfaceNoise }

// Position returns the accumulated distance phase.
func (g *Geometry) Position() float64 { return g.position }

// Bounds returns the normalized drivable extent for this frame.
func (g *Geometry) Bounds() Bounds { return g.bounds }

// ScanlineOffset returns the horizontal pixel offset of the road center
// at a given screen row, for the pseudo-3D render. depth runs 0 at the
// horizon to 1 at the bottom of the screen; rows nearer the horizon bend
// harder so the road appears to sweep into the curve.
func (g *Geometry) ScanlineOffset(depth float64) float64 {
	d := clamp(depth, 0, 1)
	far := 1 - d
	return g.curve * g.cfg.CurvePixelGain * far * far
}

// WidthAt returns the apparent road width in pixels at a given depth,
// shrinking toward the horizon.
func (g *Geometry) WidthAt(depth float64) float64 {
	d := clamp(depth, 0, 1)
	total := g.cfg.BaseWidth + g.widthOscillation + g.surfaceNoise
	perspective := 0.12 + 0.88*d
	return total * perspective
}
