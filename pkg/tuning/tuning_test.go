package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsInternallyConsistent(t *testing.T) {
	cfg := Default()

	assert.Less(t, cfg.Turn.StraightMin, cfg.Turn.StraightMax)
	assert.Greater(t, cfg.Turn.Duration, 0.0)
	assert.LessOrEqual(t, cfg.Turn.IntensityMin, cfg.Turn.IntensityBase)
	assert.GreaterOrEqual(t, cfg.Turn.IntensityMax, cfg.Turn.IntensityBase)

	assert.Greater(t, cfg.Traffic.MaxVehicles, 0)
	assert.Less(t, cfg.Traffic.DespawnBehindY, cfg.Traffic.BehindSpawnMinY)
	assert.Greater(t, cfg.Traffic.DespawnAheadY, cfg.Traffic.AheadSpawnMaxY)
	assert.Less(t, cfg.Traffic.EmergencyGapY, cfg.Traffic.BrakeWindowY)

	assert.Less(t, cfg.Hazard.ZoneMinLength, cfg.Hazard.ZoneMaxLength)
	assert.Less(t, cfg.Hazard.BarrierThreshold, cfg.Hazard.ZoneMaxLength)

	assert.Less(t, cfg.Collision.HazardCooldown, cfg.Collision.TrafficCooldown)
	assert.Less(t, cfg.Collision.HazardFlash, cfg.Collision.TrafficFlash)
	assert.LessOrEqual(t, cfg.Collision.TruckDamage, cfg.Player.DamageCap)

	assert.Less(t, cfg.Session.FinalLapSeconds, cfg.Session.RaceSeconds)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("DRIVE_SEED", "42")
	t.Setenv("DRIVE_RACE_SECONDS", "120")
	t.Setenv("DRIVE_TRAFFIC_CAP", "4")

	cfg := Load()

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 120.0, cfg.Session.RaceSeconds)
	assert.Equal(t, 4, cfg.Traffic.MaxVehicles)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DRIVE_SEED", "not-a-number")
	t.Setenv("DRIVE_MAX_SPEED", "")

	cfg := Load()

	assert.Equal(t, Default().Seed, cfg.Seed)
	assert.Equal(t, Default().Player.MaxSpeed, cfg.Player.MaxSpeed)
}
