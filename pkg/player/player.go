// Package player integrates input into the drive model: speed, steering,
// involuntary drift, off-road handling, crash detection, and the
// collision penalty bookkeeping every hit feeds into.
package player

import (
	"math"

	"github.com/golangdaddy/drive/pkg/road"
	"github.com/golangdaddy/drive/pkg/tuning"
)

// Input is the per-frame control state supplied by the host.
type Input struct {
	Accelerate bool
	SteerLeft  bool
	SteerRight bool
}

// Stats is the selected vehicle's character, folded into the tuning at
// race start.
type Stats struct {
	Name         string
	TopSpeed     float64 // multiplier on the tuned max speed
	Acceleration float64 // multiplier on the tuned acceleration
	Handling     float64 // multiplier on the tuned steering rate
}

// DefaultStats is the balanced all-rounder used when no vehicle has been
// picked yet.
func DefaultStats() Stats {
	return Stats{Name: "COUPE", TopSpeed: 1, Acceleration: 1, Handling: 1}
}

// PenaltyState tracks the decaying speed penalty, damage, and the
// cooldown that gates how often collisions may register.
type PenaltyState struct {
	SpeedPenalty float64
	Cooldown     float64
	Damage       float64
	FlashTimer   float64
	LastLabel    string
}

// Model is the player's drive state. X is normalized [0,1].
type Model struct {
	cfg   tuning.Player
	stats Stats

	X        float64
	Speed    float64
	Rotation float64 // visual tilt for the renderer, radians

	drift          float64
	offRoadPenalty float64
	offRoad        bool

	Penalty    PenaltyState
	crashed    bool
	crashTimer float64

	TopSpeedReached float64
}

// NewModel builds a player centered on the road at a standstill.
func NewModel(cfg tuning.Player, stats Stats) *Model {
	return &Model{cfg: cfg, stats: stats, X: 0.5}
}

// Reset recenters the player and clears all accumulated state.
func (m *Model) Reset() {
	m.X = 0.5
	m.Speed = 0
	m.Rotation = 0
	m.drift = 0
	m.offRoadPenalty = 0
	m.offRoad = false
	m.Penalty = PenaltyState{}
	m.crashed = false
	m.crashTimer = 0
	m.TopSpeedReached = 0
}

// SetStats swaps in a newly selected vehicle.
func (m *Model) SetStats(s Stats) { m.stats = s }

// Stats returns the active vehicle stats.
func (m *Model) Stats() Stats { return m.stats }

// Update advances the drive model by one frame. slipFactor is the
// hazard system's steering multiplier for this frame (1.0 when dry).
func (m *Model) Update(dt float64, in Input, turn road.TurnSnapshot, b road.Bounds, slipFactor float64) {
	m.tickTimers(dt)
	m.checkCrash()
	m.integrateSpeed(dt, in, turn)
	m.steer(dt, in, turn, slipFactor)
	m.applyOffRoad(dt, b)

	m.X = clamp(m.X, 0, 1)
	if m.Speed > m.TopSpeedReached {
		m.TopSpeedReached = m.Speed
	}
}

func (m *Model) tickTimers(dt float64) {
	if m.Penalty.Cooldown > 0 {
		m.Penalty.Cooldown = math.Max(0, m.Penalty.Cooldown-dt)
	}
	if m.Penalty.FlashTimer > 0 {
		m.Penalty.FlashTimer = math.Max(0, m.Penalty.FlashTimer-dt)
	}
	if m.Penalty.SpeedPenalty > 0 {
		m.Penalty.SpeedPenalty = math.Max(0, m.Penalty.SpeedPenalty-m.cfg.PenaltyRecovery*dt)
	}
	if m.crashTimer > 0 {
		m.crashTimer -= dt
		if m.crashTimer <= 0 {
			m.crashed = false
			m.crashTimer = 0
		}
	}
}

// checkCrash cuts speed hard when the car reaches the extreme screen
// edges at pace. The flag clears itself on a one-shot timer so the host
// can play a sound without managing any state.
func (m *Model) checkCrash() {
	if m.crashed {
		return
	}
	if (m.X < m.cfg.CrashEdgeLow || m.X > m.cfg.CrashEdgeHigh) && m.Speed > m.cfg.CrashSpeedGate {
		m.Speed *= m.cfg.CrashSpeedScale
		m.crashed = true
		m.crashTimer = m.cfg.CrashFlagSeconds
	}
}

// integrateSpeed moves speed toward max while accelerating and toward
// zero while coasting. An active turn saps both rates in proportion to
// its intensity and progress.
func (m *Model) integrateSpeed(dt float64, in Input, turn road.TurnSnapshot) {
	turnLoad := 0.0
	if turn.State != road.Straight {
		turnLoad = turn.Intensity * turn.Progress
	}

	maxSpeed := m.cfg.MaxSpeed * m.stats.TopSpeed
	if in.Accelerate {
		accel := m.cfg.Acceleration * m.stats.Acceleration * (1 - m.cfg.TurnDragFactor*turnLoad)
		m.Speed = math.Min(maxSpeed, m.Speed+accel*dt)
	} else {
		decel := m.cfg.Deceleration * (1 + m.cfg.TurnDragFactor*turnLoad)
		m.Speed = math.Max(0, m.Speed-decel*dt)
	}
}

// steer applies input steering, the racing-line pull toward the inside
// of the current turn, and drift momentum that builds while turning at
// speed and bleeds off on straights.
func (m *Model) steer(dt float64, in Input, turn road.TurnSnapshot, slipFactor float64) {
	steerDelta := m.cfg.SteerRate * m.stats.Handling * dt *
		(1 - m.offRoadPenalty*0.5) * slipFactor

	steerDir := 0.0
	if in.SteerLeft {
		steerDir -= 1
	}
	if in.SteerRight {
		steerDir += 1
	}
	m.X += steerDir * steerDelta

	inside := turnInside(turn.State)
	if inside != 0 {
		load := turn.Intensity * turn.Progress
		m.X += inside * m.cfg.RacingLinePull * load * dt * 10

		if m.Speed > m.cfg.DriftSpeedGate {
			// Momentum carries the car toward the outside of the bend.
			m.drift += -inside * m.cfg.DriftBuildRate * turn.Intensity * (m.Speed - m.cfg.DriftSpeedGate) * dt * 10
		}
	} else {
		m.drift = decayToward(m.drift, m.cfg.DriftDecayRate*dt*10)
	}
	m.X += m.drift * dt

	// Visual tilt from input plus drift, for the renderer only.
	target := steerDir*0.2 + m.drift*2
	m.Rotation += (target - m.Rotation) * math.Min(1, dt*8)
}

// turnInside returns -1 for a left turn (inside is the left), +1 for a
// right turn, 0 on a straight.
func turnInside(s road.TurnState) float64 {
	switch s {
	case road.TurningLeft:
		return -1
	case road.TurningRight:
		return 1
	default:
		return 0
	}
}

// applyOffRoad compares x against the road boundaries. Off the road, a
// corrective nudge pulls the car back in proportion to the overshoot
// while the penalty accumulates with speed; back on the road the
// penalty bleeds off at twice the accumulation rate.
func (m *Model) applyOffRoad(dt float64, b road.Bounds) {
	switch {
	case m.X < b.Left:
		overshoot := b.Left - m.X
		m.X += overshoot * m.cfg.OffRoadNudge * dt
		m.accumulateOffRoad(dt)
	case m.X > b.Right:
		overshoot := m.X - b.Right
		m.X -= overshoot * m.cfg.OffRoadNudge * dt
		m.accumulateOffRoad(dt)
	default:
		m.offRoad = false
		m.offRoadPenalty = math.Max(0, m.offRoadPenalty-2*m.cfg.OffRoadGain*dt)
	}
}

func (m *Model) accumulateOffRoad(dt float64) {
	m.offRoad = true
	m.offRoadPenalty = math.Min(m.cfg.OffRoadCap, m.offRoadPenalty+m.cfg.OffRoadGain*m.Speed*dt)
}

// EffectiveSpeed is the speed after the collision penalty multiplier.
// The multiplier never drops below the tuned floor, so a battered car
// limps rather than stalls.
func (m *Model) EffectiveSpeed() float64 {
	mult := math.Max(m.cfg.PenaltyFloor, 1-m.Penalty.SpeedPenalty)
	return m.Speed * mult
}

// OffRoad reports whether the player is currently outside the road.
func (m *Model) OffRoad() bool { return m.offRoad }

// OffRoadPenalty returns the accumulated off-road handling penalty.
func (m *Model) OffRoadPenalty() float64 { return m.offRoadPenalty }

// Crashed reports the self-clearing hard-crash flag.
func (m *Model) Crashed() bool { return m.crashed }

// Drift returns the current involuntary lateral momentum.
func (m *Model) Drift() float64 { return m.drift }

// ApplyPenalty registers a collision penalty. It returns false without
// mutating anything while the cooldown is running; otherwise the penalty
// and damage accumulate (damage capped), the cooldown and flash timers
// arm, and the label is kept for UI feedback.
func (m *Model) ApplyPenalty(penalty, damage, cooldown, flash float64, label string) bool {
	if m.Penalty.Cooldown > 0 {
		return false
	}
	m.Penalty.SpeedPenalty = math.Min(m.cfg.SpeedPenaltyCap, m.Penalty.SpeedPenalty+penalty)
	m.Penalty.Damage = math.Min(m.cfg.DamageCap, m.Penalty.Damage+damage)
	m.Penalty.Cooldown = cooldown
	m.Penalty.FlashTimer = flash
	m.Penalty.LastLabel = label
	return true
}

func decayToward(v, amount float64) float64 {
	switch {
	case v > amount:
		return v - amount
	case v < -amount:
		return v + amount
	default:
		return 0
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
