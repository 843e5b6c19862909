package road

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/drive/pkg/tuning"
)

func TestBoundaryInvariantHolds(t *testing.T) {
	cfg := tuning.Default()
	g := NewGeometry(cfg.Road)
	ts := NewTurnSystem(cfg.Turn, rand.New(rand.NewSource(5)))

	for i := 0; i < 10000; i++ {
		ts.Update(0.016)
		g.Update(0.016, 1.0, ts.Snapshot())
		b := g.Bounds()
		require.Less(t, b.Left, b.Right, "frame %d: boundary inverted", i)
		require.GreaterOrEqual(t, b.Left, 0.0)
		require.LessOrEqual(t, b.Right, 1.0)
	}
}

func TestBoundaryInvariantUnderAdversarialCurve(t *testing.T) {
	g := NewGeometry(tuning.Default().Road)

	for _, curve := range []float64{-50, -5, -1, 1, 5, 50} {
		g.curve = curve
		g.widthOscillation = -280
		g.deriveBounds()
		b := g.Bounds()
		assert.Less(t, b.Left, b.Right, "curve=%v", curve)
	}
}

func TestDegenerateWidthFallsBackToCenteredBand(t *testing.T) {
	cfg := tuning.Default().Road
	cfg.BaseWidth = 10
	cfg.PlayerHalfWidth = 40 // margins eat the whole road
	g := NewGeometry(cfg)

	b := g.Bounds()
	assert.Less(t, b.Left, b.Right)
	assert.InDelta(t, 0.2, b.Width(), 1e-9)
}

func TestCurveIsLowPassFiltered(t *testing.T) {
	g := NewGeometry(tuning.Default().Road)

	hard := TurnSnapshot{State: TurningRight, Progress: 1, Intensity: 1, Contribution: 1}
	g.Update(0.016, 0.5, hard)

	// One frame only moves 30% of the way toward the blended target.
	assert.Greater(t, g.Curve(), 0.0)
	assert.Less(t, g.Curve(), 0.5)
}

func TestRoadPositionAdvancesWithSpeed(t *testing.T) {
	g := NewGeometry(tuning.Default().Road)
	snap := TurnSnapshot{}

	g.Update(0.1, 0.5, snap)
	assert.InDelta(t, 0.5, g.Position(), 1e-9) // speed*dt*10

	g.Update(0.1, 0.0, snap)
	assert.InDelta(t, 0.5, g.Position(), 1e-9) // standing still holds phase
}

func TestFreewayInfluenceDampedWhileTurning(t *testing.T) {
	cfg := tuning.Default().Road
	straight := NewGeometry(cfg)
	turning := NewGeometry(cfg)

	// Same phase, same freeway terms; only the turn state differs and
	// the turn itself contributes zero, isolating the damping.
	for i := 0; i < 100; i++ {
		straight.Update(0.016, 1, TurnSnapshot{State: Straight})
		turning.Update(0.016, 1, TurnSnapshot{State: TurningLeft, Contribution: 0})
	}
	if straight.Curve() != 0 {
		assert.Less(t, absf(turning.Curve()), absf(straight.Curve()))
	}
}

func TestLaneCentersOrderedWithinHalves(t *testing.T) {
	b := Bounds{Left: 0.2, Right: 0.8}
	mid := b.Mid()

	l1, l2 := b.LaneCenter(1), b.LaneCenter(2)
	l3, l4 := b.LaneCenter(3), b.LaneCenter(4)

	assert.True(t, b.Left < l1 && l1 < l2 && l2 < mid, "oncoming lanes sit in the left half")
	assert.True(t, mid < l3 && l3 < l4 && l4 < b.Right, "same-direction lanes sit in the right half")

	assert.Equal(t, -1, LaneDirection(1))
	assert.Equal(t, -1, LaneDirection(2))
	assert.Equal(t, 1, LaneDirection(3))
	assert.Equal(t, 1, LaneDirection(4))
}

func TestScanlineOffsetStrongestAtHorizon(t *testing.T) {
	g := NewGeometry(tuning.Default().Road)
	g.curve = 1

	near := g.ScanlineOffset(1)
	far := g.ScanlineOffset(0)

	assert.Zero(t, near, "the player's own row does not shift")
	assert.Greater(t, far, 0.0)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
