// Package collision detects player-vs-traffic and player-vs-hazard
// overlaps and applies the matching penalties, at most one hit per
// frame, under the shared cooldown.
package collision

import (
	"math"

	"github.com/golangdaddy/drive/pkg/hazard"
	"github.com/golangdaddy/drive/pkg/player"
	"github.com/golangdaddy/drive/pkg/traffic"
	"github.com/golangdaddy/drive/pkg/tuning"
)

// Sound names the resolver hands back so the session can route feedback
// to the audio collaborator without the resolver knowing about audio.
const (
	SoundCrash = "crash"
	SoundThud  = "thud"
	SoundSkid  = "skid"
)

// Event describes a collision that registered this frame.
type Event struct {
	Label string
	Sound string
}

// Resolver performs the per-frame collision pass.
type Resolver struct {
	cfg  tuning.Collision
	boxW float64 // player collision half-width, normalized
	boxH float64 // player collision half-height, longitudinal units
}

// NewResolver builds a resolver. The player's collision box is kept
// deliberately smaller than the sprite for forgiving play.
func NewResolver(cfg tuning.Collision, pcfg tuning.Player, rcfg tuning.Road) *Resolver {
	return &Resolver{
		cfg:  cfg,
		boxW: pcfg.CollisionBoxW / rcfg.ScreenWidth / 2,
		boxH: pcfg.CollisionBoxH / 2,
	}
}

// Resolve checks traffic first, then hazards, short-circuiting on the
// first overlap. While the penalty cooldown runs, no collision of any
// kind registers. It returns nil when nothing happened.
func (r *Resolver) Resolve(p *player.Model, ts *traffic.System, hs *hazard.System) *Event {
	if p.Penalty.Cooldown > 0 {
		return nil
	}
	if ev := r.resolveTraffic(p, ts); ev != nil {
		return ev
	}
	return r.resolveHazards(p, hs)
}

func (r *Resolver) resolveTraffic(p *player.Model, ts *traffic.System) *Event {
	for _, v := range ts.Vehicles() {
		if !r.overlaps(p.X, v.X, v.Width(), v.Y, v.Height()) {
			continue
		}

		penalty, damage, label := r.cfg.CarPenalty, r.cfg.CarDamage, "CAR"
		if v.Class == traffic.ClassTruck {
			penalty, damage, label = r.cfg.TruckPenalty, r.cfg.TruckDamage, "TRUCK"
		}
		if !p.ApplyPenalty(penalty, damage, r.cfg.TrafficCooldown, r.cfg.TrafficFlash, label) {
			return nil
		}
		// Shove the offender along the road so the same contact cannot
		// re-trigger once the cooldown elapses.
		ts.Nudge(v, r.cfg.NudgeY)
		return &Event{Label: label + "!", Sound: SoundCrash}
	}
	return nil
}

func (r *Resolver) resolveHazards(p *player.Model, hs *hazard.System) *Event {
	for _, h := range hs.Hazards() {
		if !h.Collidable() {
			continue
		}
		if !r.overlaps(p.X, h.X, h.Width(), h.Y, h.Height()) {
			continue
		}

		if h.Static() {
			return r.hitStatic(p, hs, h)
		}
		return r.hitDynamic(p, hs, h)
	}
	return nil
}

// hitStatic applies construction hazard penalties. Cones are consumed on
// the hit; barriers persist.
func (r *Resolver) hitStatic(p *player.Model, hs *hazard.System, h *hazard.Hazard) *Event {
	penalty, damage := r.cfg.ConePenalty, r.cfg.ConeDamage
	if h.Kind == hazard.KindBarrier {
		penalty, damage = r.cfg.BarrierPenalty, r.cfg.BarrierDamage
	}
	if !p.ApplyPenalty(penalty, damage, r.cfg.HazardCooldown, r.cfg.HazardFlash, h.Kind.String()) {
		return nil
	}
	if h.Kind == hazard.KindCone {
		hs.Remove(h.ID)
	}
	return &Event{Label: h.Kind.String() + "!", Sound: SoundThud}
}

// hitDynamic applies the hazard's effect descriptor and consumes the
// hazard. Slips go through the active-effect list; damage applies
// instantly alongside a speed penalty.
func (r *Resolver) hitDynamic(p *player.Model, hs *hazard.System, h *hazard.Hazard) *Event {
	if h.Effect == nil {
		return nil
	}

	sound := SoundSkid
	switch h.Effect.Type {
	case hazard.EffectSlip:
		if !p.ApplyPenalty(0, 0, r.cfg.HazardCooldown, r.cfg.HazardFlash, h.Kind.String()) {
			return nil
		}
		hs.AddEffect(*h.Effect)
	case hazard.EffectDamage:
		if !p.ApplyPenalty(h.Effect.Strength, h.Effect.Strength, r.cfg.HazardCooldown, r.cfg.HazardFlash, h.Kind.String()) {
			return nil
		}
		sound = SoundThud
	}
	hs.Remove(h.ID)
	return &Event{Label: h.Kind.String() + "!", Sound: sound}
}

// overlaps runs the rectangle test between the player (centered at
// y=0) and a target at (x, y) with the given half extents.
func (r *Resolver) overlaps(playerX, x, halfW, y, halfH float64) bool {
	return math.Abs(playerX-x) < r.boxW+halfW && math.Abs(y) < r.boxH+halfH
}
