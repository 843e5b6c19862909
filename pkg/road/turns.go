package road

import (
	"math"
	"math/rand"

	"github.com/golangdaddy/drive/pkg/tuning"
)

// TurnState identifies which discrete bend the road is currently in.
type TurnState int

const (
	Straight TurnState = iota
	TurningLeft
	TurningRight
)

// String returns a readable name for HUD/debug output.
func (s TurnState) String() string {
	switch s {
	case TurningLeft:
		return "left"
	case TurningRight:
		return "right"
	default:
		return "straight"
	}
}

// TurnSnapshot is the per-frame view of the turn scheduler consumed by
// the geometry model and the player drive model.
type TurnSnapshot struct {
	State        TurnState
	Progress     float64 // 0..1 through the current turn
	Intensity    float64 // 0.3..1.0 sampled at turn entry
	Contribution float64 // signed, eased curve contribution
}

// TurnSystem schedules discrete left/right road turns, distinct from the
// continuous freeway curve noise. It is a pure scheduler: no invalid
// state is reachable and Update never fails.
type TurnSystem struct {
	cfg tuning.Turn
	rng *rand.Rand

	state            TurnState
	progress         float64
	intensity        float64
	timer            float64
	straightDuration float64
	lastTurn         TurnState
	everTurned       bool
}

// NewTurnSystem builds a scheduler that starts on the long initial
// straight. The RNG is injected so runs are reproducible.
func NewTurnSystem(cfg tuning.Turn, rng *rand.Rand) *TurnSystem {
	return &TurnSystem{
		cfg:              cfg,
		rng:              rng,
		state:            Straight,
		straightDuration: cfg.InitialStraight,
	}
}

// Reset returns the scheduler to the initial straight.
func (ts *TurnSystem) Reset() {
	ts.state = Straight
	ts.progress = 0
	ts.intensity = 0
	ts.timer = 0
	ts.straightDuration = ts.cfg.InitialStraight
	ts.lastTurn = Straight
	ts.everTurned = false
}

// Update advances the scheduler by dt seconds.
func (ts *TurnSystem) Update(dt float64) {
	ts.timer += dt

	if ts.state == Straight {
		if ts.timer >= ts.straightDuration {
			ts.enterTurn()
		}
		return
	}

	ts.progress = math.Min(1, ts.timer/ts.cfg.Duration)
	if ts.progress >= 1 {
		ts.exitTurn()
	}
}

func (ts *TurnSystem) enterTurn() {
	ts.state = ts.pickDirection()
	ts.lastTurn = ts.state
	ts.everTurned = true
	ts.progress = 0
	ts.timer = 0
	ts.intensity = clamp(
		ts.cfg.IntensityBase+(ts.rng.Float64()*2-1)*ts.cfg.IntensityJitter,
		ts.cfg.IntensityMin, ts.cfg.IntensityMax)
}

func (ts *TurnSystem) exitTurn() {
	ts.state = Straight
	ts.progress = 0
	ts.timer = 0
	ts.straightDuration = ts.cfg.StraightMin +
		ts.rng.Float64()*(ts.cfg.StraightMax-ts.cfg.StraightMin)
}

// pickDirection favors alternating away from the previous turn.
func (ts *TurnSystem) pickDirection() TurnState {
	if !ts.everTurned {
		if ts.rng.Float64() < 0.5 {
			return TurningLeft
		}
		return TurningRight
	}
	alternate := ts.rng.Float64() < ts.cfg.AlternateChance
	if (ts.lastTurn == TurningLeft) == alternate {
		return TurningRight
	}
	return TurningLeft
}

// State returns the current turn state.
func (ts *TurnSystem) State() TurnState { return ts.state }

// Progress returns how far through the active turn the road is, 0 while
// straight.
func (ts *TurnSystem) Progress() float64 { return ts.progress }

// Intensity returns the sampled strength of the active turn.
func (ts *TurnSystem) Intensity() float64 { return ts.intensity }

// Contribution returns the signed curve contribution of the active turn,
// eased with a half cosine so the bend ramps in and out smoothly.
func (ts *TurnSystem) Contribution() float64 {
	if ts.state == Straight {
		return 0
	}
	eased := 0.5 * (1 - math.Cos(ts.progress*math.Pi))
	if ts.state == TurningLeft {
		return -eased * ts.intensity
	}
	return eased * ts.intensity
}

// Snapshot captures the per-frame view other components consume.
func (ts *TurnSystem) Snapshot() TurnSnapshot {
	return TurnSnapshot{
		State:        ts.state,
		Progress:     ts.progress,
		Intensity:    ts.intensity,
		Contribution: ts.Contribution(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
