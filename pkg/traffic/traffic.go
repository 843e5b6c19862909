// Package traffic owns the NPC vehicle stream: spawning, lane-keeping
// and lane-change AI, inter-vehicle collision avoidance, and directional
// boundary enforcement.
package traffic

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/golangdaddy/drive/pkg/road"
	"github.com/golangdaddy/drive/pkg/tuning"
)

// System maintains the live NPC collection. It is the sole owner of the
// vehicles; callers get the slice for reading but must not retain it
// across frames.
type System struct {
	cfg tuning.Traffic
	rng *rand.Rand

	vehicles   []*Vehicle
	spawnTimer float64
}

// NewSystem builds an empty traffic stream. The RNG is injected so spawn
// sequences are reproducible under a fixed seed.
func NewSystem(cfg tuning.Traffic, rng *rand.Rand) *System {
	return &System{cfg: cfg, rng: rng}
}

// Reset clears all live vehicles and restarts the spawn cadence.
func (s *System) Reset() {
	s.vehicles = s.vehicles[:0]
	s.spawnTimer = 0
}

// Vehicles returns the live NPC collection for this frame.
func (s *System) Vehicles() []*Vehicle { return s.vehicles }

// Count returns the number of live vehicles.
func (s *System) Count() int { return len(s.vehicles) }

// TrucksAhead returns the trucks currently ahead of the player, used by
// the hazard system to seed oil slicks.
func (s *System) TrucksAhead() []*Vehicle {
	var trucks []*Vehicle
	for _, v := range s.vehicles {
		if v.Class == ClassTruck && v.Y > 0 {
			trucks = append(trucks, v)
		}
	}
	return trucks
}

// Update advances spawning, motion, lane AI, avoidance, and boundary
// enforcement for one frame.
func (s *System) Update(dt float64, b road.Bounds, playerX, playerSpeed float64) {
	s.spawnTimer += dt
	if s.spawnTimer >= s.cfg.SpawnInterval {
		s.spawnTimer = 0
		if s.rng.Float64() < s.cfg.SpawnChance && len(s.vehicles) < s.cfg.MaxVehicles {
			s.spawn(b)
		}
	}

	// Motion and per-vehicle AI; survivors build the next frame's list so
	// despawns can never skip a neighbor mid-iteration.
	alive := s.vehicles[:0]
	for _, v := range s.vehicles {
		s.advance(v, dt, playerSpeed)
		if v.Y < s.cfg.DespawnBehindY || v.Y > s.cfg.DespawnAheadY {
			continue
		}
		s.updateLaneAI(v, dt, b, playerX)
		alive = append(alive, v)
	}
	s.vehicles = alive

	s.avoidCollisions(dt, b, playerX)
	for _, v := range s.vehicles {
		s.enforceBoundaries(v, dt, b)
	}
}

// advance applies longitudinal motion. Same-direction traffic moves by
// true relative speed; oncoming traffic adds the player's speed to a
// fixed base so it always reads as approaching. The oncoming term is a
// deliberate visual simplification, not physical closing speed.
func (s *System) advance(v *Vehicle, dt, playerSpeed float64) {
	if v.Direction > 0 {
		v.Y += (v.Speed - playerSpeed) * dt * 100
	} else {
		v.Y -= (s.cfg.OncomingBaseSpeed + playerSpeed) * dt * 100
	}
}

// spawn rolls up one NPC: direction, lane, class, speed, and position.
func (s *System) spawn(b road.Bounds) {
	v := &Vehicle{
		ID:        uuid.New(),
		SpeedMult: 1,
		Palette:   s.rng.Intn(5),
		state:     Cruising,
	}

	if s.rng.Float64() < s.cfg.TruckRatio {
		v.Class = ClassTruck
		v.SpeedMult = s.cfg.TruckSpeedScale
		v.Palette += 5 // darker half of the palette
	}

	if s.rng.Float64() < s.cfg.SameDirectionRatio {
		v.Direction = 1
		v.Lane = 3 + s.rng.Intn(2)
		if s.rng.Float64() < 0.6 {
			// Ahead of the player, biased slow so it drifts toward them.
			v.Y = s.cfg.AheadSpawnMinY + s.rng.Float64()*(s.cfg.AheadSpawnMaxY-s.cfg.AheadSpawnMinY)
			v.Speed = (0.35 + s.rng.Float64()*0.3) * v.SpeedMult
		} else {
			// Behind, biased fast so it catches up.
			v.Y = s.cfg.BehindSpawnMinY + s.rng.Float64()*(s.cfg.BehindSpawnMaxY-s.cfg.BehindSpawnMinY)
			v.Speed = (0.8 + s.rng.Float64()*0.4) * v.SpeedMult
		}
	} else {
		v.Direction = -1
		v.Lane = 1 + s.rng.Intn(2)
		v.Y = s.cfg.DespawnAheadY - 100 - s.rng.Float64()*100
		v.Speed = s.cfg.OncomingBaseSpeed * v.SpeedMult
	}

	v.X = b.LaneCenter(v.Lane)
	s.vehicles = append(s.vehicles, v)
}

// updateLaneAI runs the cruising/lane-change state machine for one
// vehicle. Only same-direction traffic ever changes lanes.
func (s *System) updateLaneAI(v *Vehicle, dt float64, b road.Bounds, playerX float64) {
	if v.changeWait > 0 {
		v.changeWait -= dt
	}

	switch v.State() {
	case ChangingLanes:
		target, _ := v.TargetX()
		step := s.cfg.LaneChangeRate * dt
		if math.Abs(target-v.X) <= s.cfg.LaneChangeSnap {
			v.finishLaneChange()
			return
		}
		if target > v.X {
			v.X += step
		} else {
			v.X -= step
		}
	case Cruising:
		if v.Direction < 0 {
			return
		}
		chance := s.cfg.LaneChangeChance
		if v.Class == ClassTruck {
			chance *= s.cfg.TruckChangeScale
		}
		if v.changeWait <= 0 && s.rng.Float64() < chance {
			s.tryLaneChange(v, b, playerX)
		}
	}
}

// tryLaneChange attempts a merge into the other lane of the vehicle's
// own directional half. A failed safety check simply leaves the vehicle
// cruising.
func (s *System) tryLaneChange(v *Vehicle, b road.Bounds, playerX float64) bool {
	target := otherLane(v.Lane)
	if !s.isLaneChangeSafe(v, target, b, playerX) {
		v.changeWait = s.cfg.LaneChangeCooldown
		return false
	}
	v.beginLaneChange(target, b.LaneCenter(target))
	v.changeWait = s.cfg.LaneChangeCooldown
	if v.Class == ClassTruck {
		v.changeWait *= 2
	}
	return true
}

// otherLane maps a lane to its sibling within the same direction half.
func otherLane(lane int) int {
	switch lane {
	case 1:
		return 2
	case 2:
		return 1
	case 3:
		return 4
	default:
		return 3
	}
}

// isLaneChangeSafe holds when the target lane belongs to the vehicle's
// direction, the target stays inside that half of the road, no nearby
// vehicle occupies or is merging into the lane, and the move keeps
// lateral clearance from the player.
func (s *System) isLaneChangeSafe(v *Vehicle, targetLane int, b road.Bounds, playerX float64) bool {
	if road.LaneDirection(targetLane) != v.Direction {
		return false
	}

	targetX := b.LaneCenter(targetLane)
	mid := b.Mid()
	if v.Direction > 0 {
		if targetX <= mid+s.cfg.HalfMargin || targetX >= b.Right-s.cfg.HalfMargin {
			return false
		}
	} else {
		if targetX <= b.Left+s.cfg.HalfMargin || targetX >= mid-s.cfg.HalfMargin {
			return false
		}
	}

	for _, other := range s.vehicles {
		if other == v {
			continue
		}
		gap := math.Abs(other.Y - v.Y)
		if other.Lane == targetLane && gap < s.cfg.SafeGapY {
			return false
		}
		if other.plan != nil && other.plan.targetLane == targetLane && gap < s.cfg.MergingGapY {
			return false
		}
	}

	if v.Direction > 0 && math.Abs(v.Y) <= s.cfg.PlayerClearanceY {
		if math.Abs(targetX-playerX) < s.cfg.PlayerClearance {
			return false
		}
	}
	return true
}

// avoidCollisions runs the pairwise keep-apart logic: trailing cars
// brake or speed-match behind a leader, and a head-on pairing in the
// same lane forces a best-effort lane change.
func (s *System) avoidCollisions(dt float64, b road.Bounds, playerX float64) {
	for i, a := range s.vehicles {
		for j, o := range s.vehicles {
			if i == j {
				continue
			}
			laneGap := a.Lane - o.Lane
			if laneGap < -1 || laneGap > 1 {
				continue
			}

			if a.Direction == o.Direction {
				s.followLeader(a, o, dt, b, playerX)
				continue
			}

			// Opposing directions sharing a lane: the same-direction car
			// swerves if any safe lane exists. If not, nothing happens;
			// traffic is believable, not provably collision-free.
			if a.Lane == o.Lane && a.Direction > 0 &&
				math.Abs(a.Y-o.Y) < s.cfg.HeadOnWindowY && a.State() == Cruising {
				s.tryLaneChange(a, b, playerX)
			}
		}
	}
}

// followLeader brakes or speed-matches a trailing same-direction car
// toward the one ahead of it. Cars stuck braking long enough roll a
// chance to merge out of the lane.
func (s *System) followLeader(trail, lead *Vehicle, dt float64, b road.Bounds, playerX float64) {
	gap := lead.Y - trail.Y
	if gap <= 0 || gap >= s.cfg.BrakeWindowY {
		trail.brakingFor = math.Max(0, trail.brakingFor-dt)
		return
	}

	if gap < s.cfg.EmergencyGapY {
		matched := lead.Speed * 0.8
		if trail.Speed > matched {
			trail.Speed = matched
		}
		trail.brakingFor += dt
	} else {
		// Proportional speed match: stronger as the gap closes.
		blend := (1 - gap/s.cfg.BrakeWindowY) * 2 * dt
		trail.Speed += (lead.Speed - trail.Speed) * math.Min(1, blend)
		trail.brakingFor += dt * 0.5
	}

	if trail.brakingFor >= s.cfg.StuckBrakeSeconds && trail.State() == Cruising {
		if s.rng.Float64() < s.cfg.StuckMergeChance {
			if s.tryLaneChange(trail, b, playerX) {
				trail.brakingFor = 0
			}
		}
	}
}

// enforceBoundaries clamps each vehicle into its own directional half,
// cancelling any merge that would exit it, and gently recenters cruising
// cars that drift too far from their lane's ideal line.
func (s *System) enforceBoundaries(v *Vehicle, dt float64, b road.Bounds) {
	mid := b.Mid()
	var lo, hi float64
	if v.Direction > 0 {
		lo, hi = mid+s.cfg.HalfMargin, b.Right-s.cfg.HalfMargin
	} else {
		lo, hi = b.Left+s.cfg.HalfMargin, mid-s.cfg.HalfMargin
	}
	if lo >= hi {
		// Degenerate half; park the car on the half's midpoint.
		v.X = (lo + hi) / 2
		v.cancelLaneChange()
		return
	}

	if v.X < lo {
		v.X = lo
		if v.State() == ChangingLanes {
			v.cancelLaneChange()
		}
	} else if v.X > hi {
		v.X = hi
		if v.State() == ChangingLanes {
			v.cancelLaneChange()
		}
	}

	if v.State() != Cruising {
		return
	}
	center := b.LaneCenter(v.Lane)
	if math.Abs(v.X-center) > b.LaneWidth()*s.cfg.LaneDriftTolerance {
		v.X += (center - v.X) * s.cfg.RecenterRate * dt
	}
}

// Nudge shoves a vehicle away from the player along the road after a
// collision so the same contact cannot re-trigger: ahead for
// same-direction traffic, away down the road for oncoming.
func (s *System) Nudge(v *Vehicle, amount float64) {
	v.Y += amount * float64(v.Direction)
}
