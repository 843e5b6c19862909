package road

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/drive/pkg/tuning"
)

func newTestTurns(seed int64) *TurnSystem {
	return NewTurnSystem(tuning.Default().Turn, rand.New(rand.NewSource(seed)))
}

func TestTurnProgressStaysBoundedAndResets(t *testing.T) {
	ts := newTestTurns(1)

	prev := ts.State()
	for i := 0; i < 4000; i++ {
		ts.Update(0.05)
		assert.GreaterOrEqual(t, ts.Progress(), 0.0)
		assert.LessOrEqual(t, ts.Progress(), 1.0)
		if ts.State() != prev {
			assert.Zero(t, ts.Progress(), "progress must reset on every state change")
			prev = ts.State()
		}
	}
}

func TestTurnIntensityWindow(t *testing.T) {
	cfg := tuning.Default().Turn
	for seed := int64(0); seed < 20; seed++ {
		ts := newTestTurns(seed)
		// Run until the first turn starts.
		for ts.State() == Straight {
			ts.Update(0.1)
		}
		assert.GreaterOrEqual(t, ts.Intensity(), cfg.IntensityMin)
		assert.LessOrEqual(t, ts.Intensity(), cfg.IntensityMax)
	}
}

func TestHalfCosineEasing(t *testing.T) {
	ts := newTestTurns(1)
	ts.state = TurningLeft
	ts.intensity = 1.0
	ts.progress = 0.5

	// 0.5*(1-cos(0.5*pi)) = 0.5, signed toward the left.
	assert.InDelta(t, -0.5, ts.Contribution(), 1e-9)

	ts.state = TurningRight
	assert.InDelta(t, 0.5, ts.Contribution(), 1e-9)

	ts.state = Straight
	assert.Zero(t, ts.Contribution())
}

func TestStraightDurationResampledAfterTurn(t *testing.T) {
	cfg := tuning.Default().Turn
	ts := newTestTurns(7)

	// Through the initial straight and the first full turn.
	for ts.State() == Straight {
		ts.Update(0.1)
	}
	for ts.State() != Straight {
		ts.Update(0.1)
	}

	assert.GreaterOrEqual(t, ts.straightDuration, cfg.StraightMin)
	assert.LessOrEqual(t, ts.straightDuration, cfg.StraightMax)
}

func TestTurnsMostlyAlternate(t *testing.T) {
	ts := newTestTurns(3)

	var turns []TurnState
	prev := ts.State()
	for len(turns) < 60 {
		ts.Update(0.25)
		if prev == Straight && ts.State() != Straight {
			turns = append(turns, ts.State())
		}
		prev = ts.State()
	}
	require.GreaterOrEqual(t, len(turns), 2)

	alternations := 0
	for i := 1; i < len(turns); i++ {
		if turns[i] != turns[i-1] {
			alternations++
		}
	}
	// Weighted 80/20 toward alternating; over 60 turns this is a safe margin.
	assert.Greater(t, alternations, len(turns)/2)
}

func TestSnapshotMatchesAccessors(t *testing.T) {
	ts := newTestTurns(9)
	for i := 0; i < 500; i++ {
		ts.Update(0.05)
	}
	snap := ts.Snapshot()
	assert.Equal(t, ts.State(), snap.State)
	assert.Equal(t, ts.Progress(), snap.Progress)
	assert.Equal(t, ts.Intensity(), snap.Intensity)
	assert.Equal(t, ts.Contribution(), snap.Contribution)
}
