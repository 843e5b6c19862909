package hazard

// ActiveEffect is a live slip effect on the player. Multiple slips
// compose multiplicatively on steering sensitivity.
type ActiveEffect struct {
	Remaining float64
	Strength  float64
	Source    Kind
}

// AddEffect activates a dynamic hazard's slip effect. Damage effects are
// applied instantly at collision time and never become active effects.
func (s *System) AddEffect(e Effect) {
	if e.Type != EffectSlip {
		return
	}
	s.effects = append(s.effects, ActiveEffect{
		Remaining: e.Duration,
		Strength:  e.Strength,
		Source:    e.Source,
	})
}

// ActiveEffects returns the live slip effects.
func (s *System) ActiveEffects() []ActiveEffect { return s.effects }

// SlipFactor returns the player's steering multiplier for this frame:
// the product of all active slip strengths, 1.0 when the road is dry.
func (s *System) SlipFactor() float64 {
	factor := 1.0
	for _, e := range s.effects {
		factor *= e.Strength
	}
	return factor
}

// Slipping reports whether any slip effect is active.
func (s *System) Slipping() bool { return len(s.effects) > 0 }

// Spin returns the decorative spin angle accumulated while slipping.
func (s *System) Spin() float64 { return s.spin }

// UpdateEffects ages slip effects, dropping expired ones, and advances
// the decorative spin: it winds up while any slip is active and bleeds
// off quickly once the road is dry again. It runs after dynamic spawning
// in the frame order.
func (s *System) UpdateEffects(dt, playerSpeed float64) {
	live := s.effects[:0]
	for _, e := range s.effects {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			continue
		}
		live = append(live, e)
	}
	s.effects = live

	if len(s.effects) > 0 {
		s.spin += s.cfg.SpinRate * (0.3 + playerSpeed) * dt
	} else if s.spin > 0 {
		s.spin -= s.cfg.SpinDecay * s.spin * dt
		if s.spin < 0.01 {
			s.spin = 0
		}
	}
}
