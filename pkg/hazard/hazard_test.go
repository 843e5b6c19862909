package hazard

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/drive/pkg/road"
	"github.com/golangdaddy/drive/pkg/tuning"
)

var testBounds = road.Bounds{Left: 0.2, Right: 0.8}

func newTestSystem(seed int64) *System {
	return NewSystem(tuning.Default().Hazard, rand.New(rand.NewSource(seed)))
}

func byKind(s *System, k Kind) []*Hazard {
	var out []*Hazard
	for _, h := range s.Hazards() {
		if h.Kind == k {
			out = append(out, h)
		}
	}
	return out
}

func TestHazardsScrollWithPlayerSpeed(t *testing.T) {
	s := newTestSystem(1)
	id := s.SpawnPuddle(0.5, 100)

	s.Update(0.016, 0.5, testBounds)

	require.Len(t, s.Hazards(), 1)
	assert.Equal(t, id, s.Hazards()[0].ID)
	assert.InDelta(t, 100-0.5*0.016*100, s.Hazards()[0].Y, 1e-9)
}

func TestHazardsPrunedFarBehind(t *testing.T) {
	s := newTestSystem(1)
	s.SpawnPuddle(0.5, -299)

	s.Update(0.1, 1.0, testBounds) // scrolls 10 units, past -300

	assert.Empty(t, s.Hazards())
}

func TestConstructionZoneCadenceAndCap(t *testing.T) {
	cfg := tuning.Default().Hazard
	cfg.ZoneInterval = 1
	s := NewSystem(cfg, rand.New(rand.NewSource(2)))

	s.Update(0.5, 0, testBounds)
	assert.Zero(t, s.ZoneCount(), "no zone before the interval elapses")

	s.Update(0.5, 0, testBounds)
	assert.Equal(t, 1, s.ZoneCount())

	// Player stands still so nothing scrolls away; the cap must hold.
	for i := 0; i < 50; i++ {
		s.Update(1, 0, testBounds)
	}
	assert.LessOrEqual(t, s.ZoneCount(), cfg.MaxZones)
}

func TestConstructionZoneLayout(t *testing.T) {
	cfg := tuning.Default().Hazard
	cfg.ZoneMinLength = 350
	cfg.ZoneMaxLength = 350 // long enough for a midpoint barrier
	s := NewSystem(cfg, rand.New(rand.NewSource(3)))

	s.spawnConstructionZone(testBounds)

	signs := byKind(s, KindWarningSign)
	require.Len(t, signs, 1)
	assert.Equal(t, cfg.ZoneSpawnY-cfg.SignLeadDistance, signs[0].Y)
	assert.False(t, signs[0].Collidable(), "signs are decoration only")

	barriers := byKind(s, KindBarrier)
	require.Len(t, barriers, 1)
	assert.Equal(t, cfg.ZoneSpawnY+175, barriers[0].Y)

	cones := byKind(s, KindCone)
	require.NotEmpty(t, cones)
	assert.Zero(t, len(cones)%9, "each closed lane gets a cone every 40 units over 350")
	for _, c := range cones {
		assert.GreaterOrEqual(t, c.Y, cfg.ZoneSpawnY)
		assert.LessOrEqual(t, c.Y, cfg.ZoneSpawnY+350)
		assert.True(t, c.Collidable())
		assert.True(t, c.Static())
		assert.Nil(t, c.Effect, "static hazards carry no dynamic effect")
	}
}

func TestShortZoneHasNoBarrier(t *testing.T) {
	cfg := tuning.Default().Hazard
	cfg.ZoneMinLength = 200
	cfg.ZoneMaxLength = 200
	s := NewSystem(cfg, rand.New(rand.NewSource(3)))

	s.spawnConstructionZone(testBounds)

	assert.Empty(t, byKind(s, KindBarrier))
}

func TestOilSlickTrailsTruck(t *testing.T) {
	cfg := tuning.Default().Hazard
	cfg.OilSlickChance = 1
	cfg.DebrisChance = 0
	s := NewSystem(cfg, rand.New(rand.NewSource(4)))

	s.SpawnDynamics(testBounds, []TruckInfo{{X: 0.7, Y: 200, Length: 34}})

	slicks := byKind(s, KindOilSlick)
	require.Len(t, slicks, 1)
	assert.Equal(t, 0.7, slicks[0].X)
	assert.Equal(t, 166.0, slicks[0].Y, "slick drops behind the truck's tail")
	require.NotNil(t, slicks[0].Effect)
	assert.Equal(t, EffectSlip, slicks[0].Effect.Type)
	assert.False(t, slicks[0].Static())
}

func TestDebrisSpawnsInsideBounds(t *testing.T) {
	cfg := tuning.Default().Hazard
	cfg.OilSlickChance = 0
	cfg.DebrisChance = 1
	s := NewSystem(cfg, rand.New(rand.NewSource(5)))

	for i := 0; i < 20; i++ {
		s.SpawnDynamics(testBounds, nil)
	}

	debris := byKind(s, KindDebris)
	require.Len(t, debris, 20)
	for _, d := range debris {
		assert.GreaterOrEqual(t, d.X, testBounds.Left)
		assert.LessOrEqual(t, d.X, testBounds.Right)
		assert.Equal(t, cfg.DebrisSpawnY, d.Y)
		require.NotNil(t, d.Effect)
		assert.Equal(t, EffectDamage, d.Effect.Type)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestSystem(1)
	id := s.SpawnPuddle(0.5, 50)

	assert.True(t, s.Remove(id))
	assert.False(t, s.Remove(id), "second removal is a no-op")
	assert.False(t, s.Remove(uuid.New()))
	assert.Empty(t, s.Hazards())
}

func TestSlipFactorComposesMultiplicatively(t *testing.T) {
	s := newTestSystem(1)
	assert.Equal(t, 1.0, s.SlipFactor(), "dry road steers at full strength")

	s.AddEffect(Effect{Type: EffectSlip, Duration: 1, Strength: 0.5, Source: KindOilSlick})
	s.AddEffect(Effect{Type: EffectSlip, Duration: 1, Strength: 0.5, Source: KindPuddle})
	assert.InDelta(t, 0.25, s.SlipFactor(), 1e-9)
	assert.True(t, s.Slipping())
}

func TestDamageEffectsNeverBecomeActive(t *testing.T) {
	s := newTestSystem(1)
	s.AddEffect(Effect{Type: EffectDamage, Strength: 0.15, Source: KindDebris})

	assert.Empty(t, s.ActiveEffects())
	assert.False(t, s.Slipping())
}

func TestSlipEffectsExpire(t *testing.T) {
	s := newTestSystem(1)
	s.AddEffect(Effect{Type: EffectSlip, Duration: 0.5, Strength: 0.3, Source: KindOilSlick})

	s.UpdateEffects(0.4, 0.5)
	assert.True(t, s.Slipping())

	s.UpdateEffects(0.2, 0.5)
	assert.False(t, s.Slipping())
	assert.Equal(t, 1.0, s.SlipFactor())
}

func TestSpinWindsUpWhileSlippingAndBleedsOff(t *testing.T) {
	s := newTestSystem(1)
	s.AddEffect(Effect{Type: EffectSlip, Duration: 1, Strength: 0.3, Source: KindOilSlick})

	for i := 0; i < 30; i++ {
		s.UpdateEffects(0.016, 0.8)
	}
	peak := s.Spin()
	require.Greater(t, peak, 0.0)

	// The effect has expired; spin decays back to exactly zero.
	for i := 0; i < 600; i++ {
		s.UpdateEffects(0.016, 0.8)
	}
	assert.Zero(t, s.Spin())
}

func TestResetClearsEverything(t *testing.T) {
	s := newTestSystem(1)
	s.SpawnPuddle(0.5, 50)
	s.spawnConstructionZone(testBounds)
	s.AddEffect(Effect{Type: EffectSlip, Duration: 5, Strength: 0.3, Source: KindOilSlick})

	s.Reset()

	assert.Empty(t, s.Hazards())
	assert.Zero(t, s.ZoneCount())
	assert.False(t, s.Slipping())
	assert.Zero(t, s.Spin())
}
