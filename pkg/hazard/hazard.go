// Package hazard owns static road hazards (construction zones: cones,
// barriers, warning signs) and dynamic hazards (oil slicks, debris,
// puddles), their spawn cadence, and the slip/damage effects they apply
// to the player.
package hazard

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/golangdaddy/drive/pkg/road"
	"github.com/golangdaddy/drive/pkg/tuning"
)

// Kind identifies a hazard type.
type Kind int

const (
	KindCone Kind = iota
	KindBarrier
	KindWarningSign
	KindOilSlick
	KindDebris
	KindPuddle
)

// String returns a readable name for collision feedback labels.
func (k Kind) String() string {
	switch k {
	case KindCone:
		return "CONE"
	case KindBarrier:
		return "BARRIER"
	case KindWarningSign:
		return "SIGN"
	case KindOilSlick:
		return "OIL SLICK"
	case KindDebris:
		return "DEBRIS"
	case KindPuddle:
		return "PUDDLE"
	default:
		return "HAZARD"
	}
}

// EffectType distinguishes what a dynamic hazard does on contact.
type EffectType int

const (
	EffectSlip EffectType = iota
	EffectDamage
)

// Effect describes what a dynamic hazard applies when hit.
type Effect struct {
	Type     EffectType
	Duration float64
	Strength float64
	Source   Kind
}

// Hazard is one object on the road. X is normalized, Y is longitudinal
// offset from the player. Effect is nil for static kinds.
type Hazard struct {
	ID     uuid.UUID
	X, Y   float64
	Lane   int // -1 for free-positioned hazards
	Kind   Kind
	Effect *Effect
}

// Collidable reports whether the hazard participates in collision
// checks; warning signs are decoration only.
func (h *Hazard) Collidable() bool { return h.Kind != KindWarningSign }

// Static reports whether the hazard belongs to a construction zone.
func (h *Hazard) Static() bool {
	return h.Kind == KindCone || h.Kind == KindBarrier || h.Kind == KindWarningSign
}

// Width returns the collision half-extent in normalized x.
func (h *Hazard) Width() float64 {
	switch h.Kind {
	case KindBarrier:
		return 0.05
	case KindOilSlick, KindPuddle:
		return 0.045
	default:
		return 0.025
	}
}

// Height returns the collision half-extent in longitudinal units.
func (h *Hazard) Height() float64 {
	switch h.Kind {
	case KindBarrier:
		return 14
	case KindOilSlick, KindPuddle:
		return 20
	default:
		return 10
	}
}

// zone tracks a live construction zone's longitudinal extent so the
// concurrency cap can be enforced after spawning.
type zone struct {
	startY, endY float64
}

// TruckInfo is the slice of truck state the oil slick spawner needs.
type TruckInfo struct {
	X, Y   float64
	Length float64
}

// System owns the hazard collection and the active slip effects.
type System struct {
	cfg tuning.Hazard
	rng *rand.Rand

	hazards   []*Hazard
	zones     []zone
	effects   []ActiveEffect
	zoneTimer float64
	spin      float64
}

// NewSystem builds an empty hazard system with an injected RNG.
func NewSystem(cfg tuning.Hazard, rng *rand.Rand) *System {
	return &System{cfg: cfg, rng: rng}
}

// Reset clears hazards, zones, and active effects.
func (s *System) Reset() {
	s.hazards = s.hazards[:0]
	s.zones = s.zones[:0]
	s.effects = s.effects[:0]
	s.zoneTimer = 0
	s.spin = 0
}

// Hazards returns the live hazard collection for this frame.
func (s *System) Hazards() []*Hazard { return s.hazards }

// Update scrolls hazards with the road, prunes anything far behind the
// player, advances the construction zone timer, and ages slip effects.
func (s *System) Update(dt, playerSpeed float64, b road.Bounds) {
	scroll := playerSpeed * dt * 100

	alive := s.hazards[:0]
	for _, h := range s.hazards {
		h.Y -= scroll
		if h.Y < s.cfg.PruneY {
			continue
		}
		alive = append(alive, h)
	}
	s.hazards = alive

	liveZones := s.zones[:0]
	for _, z := range s.zones {
		z.startY -= scroll
		z.endY -= scroll
		if z.endY < s.cfg.PruneY {
			continue
		}
		liveZones = append(liveZones, z)
	}
	s.zones = liveZones

	s.zoneTimer += dt
	if s.zoneTimer >= s.cfg.ZoneInterval {
		s.zoneTimer = 0
		if len(s.zones) < s.cfg.MaxZones {
			s.spawnConstructionZone(b)
		}
	}
}

// SpawnDynamics rolls the per-frame dynamic hazard chances: oil slicks
// behind trucks ahead of the player, and loose debris at a fixed forward
// offset inside the current road boundaries.
func (s *System) SpawnDynamics(b road.Bounds, trucks []TruckInfo) {
	for _, t := range trucks {
		if s.rng.Float64() < s.cfg.OilSlickChance {
			s.add(&Hazard{
				ID:   uuid.New(),
				X:    t.X,
				Y:    t.Y - t.Length,
				Lane: -1,
				Kind: KindOilSlick,
				Effect: &Effect{
					Type:     EffectSlip,
					Duration: s.cfg.OilSlipDuration,
					Strength: s.cfg.OilSlipStrength,
					Source:   KindOilSlick,
				},
			})
		}
	}

	if s.rng.Float64() < s.cfg.DebrisChance {
		x := b.Left + s.rng.Float64()*b.Width()
		s.add(&Hazard{
			ID:   uuid.New(),
			X:    x,
			Y:    s.cfg.DebrisSpawnY,
			Lane: -1,
			Kind: KindDebris,
			Effect: &Effect{
				Type:     EffectDamage,
				Strength: s.cfg.DebrisDamage,
				Source:   KindDebris,
			},
		})
	}
}

// SpawnPuddle places a water puddle. Nothing calls this during normal
// play yet; it is the hook for the planned weather feature.
func (s *System) SpawnPuddle(x, y float64) uuid.UUID {
	h := &Hazard{
		ID:   uuid.New(),
		X:    x,
		Y:    y,
		Lane: -1,
		Kind: KindPuddle,
		Effect: &Effect{
			Type:     EffectSlip,
			Duration: s.cfg.PuddleDuration,
			Strength: s.cfg.PuddleStrength,
			Source:   KindPuddle,
		},
	}
	s.add(h)
	return h.ID
}

// spawnConstructionZone lays out a zone: one random lane or two adjacent
// lanes of one direction get cones along their length, a warning sign
// 100 units ahead of the zone, and a midpoint barrier on long zones.
func (s *System) spawnConstructionZone(b road.Bounds) {
	length := s.cfg.ZoneMinLength + s.rng.Float64()*(s.cfg.ZoneMaxLength-s.cfg.ZoneMinLength)
	startY := s.cfg.ZoneSpawnY
	endY := startY + length

	var lanes []int
	if s.rng.Float64() < 0.5 {
		lanes = []int{1 + s.rng.Intn(4)}
	} else if s.rng.Float64() < 0.5 {
		lanes = []int{1, 2}
	} else {
		lanes = []int{3, 4}
	}

	s.add(&Hazard{
		ID:   uuid.New(),
		X:    b.LaneCenter(lanes[0]),
		Y:    startY - s.cfg.SignLeadDistance,
		Lane: lanes[0],
		Kind: KindWarningSign,
	})

	for _, lane := range lanes {
		x := b.LaneCenter(lane)
		for y := startY; y <= endY; y += s.cfg.ConeSpacing {
			s.add(&Hazard{
				ID:   uuid.New(),
				X:    x,
				Y:    y,
				Lane: lane,
				Kind: KindCone,
			})
		}
	}

	if length > s.cfg.BarrierThreshold {
		s.add(&Hazard{
			ID:   uuid.New(),
			X:    b.LaneCenter(lanes[0]),
			Y:    startY + length/2,
			Lane: lanes[0],
			Kind: KindBarrier,
		})
	}

	s.zones = append(s.zones, zone{startY: startY, endY: endY})
}

func (s *System) add(h *Hazard) {
	s.hazards = append(s.hazards, h)
}

// Remove deletes a hazard by ID. Removing an ID that is already gone is
// a no-op; it reports whether anything was removed.
func (s *System) Remove(id uuid.UUID) bool {
	for i, h := range s.hazards {
		if h.ID == id {
			s.hazards = append(s.hazards[:i], s.hazards[i+1:]...)
			return true
		}
	}
	return false
}

// ZoneCount returns the number of live construction zones.
func (s *System) ZoneCount() int { return len(s.zones) }
